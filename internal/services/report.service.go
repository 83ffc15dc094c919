package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"sysreport/internal/config"
	"sysreport/internal/models"
	"sysreport/internal/utils"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BootTimeLayout is how the boot timestamp is shown.
const BootTimeLayout = "2006-01-02 15:04:05"

// Options tunes report assembly.
type Options struct {
	// TopProcesses of 0 means DefaultTopProcesses.
	TopProcesses      int
	CPUSampleInterval time.Duration
	AllPartitions     bool
	Logger            *slog.Logger

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// OptionsFromConfig maps the user config onto assembly options.
func OptionsFromConfig(cfg config.Config, logger *slog.Logger) Options {
	return Options{
		TopProcesses:      cfg.TopProcesses,
		CPUSampleInterval: cfg.CPUSampleInterval,
		AllPartitions:     cfg.AllPartitions,
		Logger:            logger,
	}
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.TopProcesses == 0 {
		o.TopProcesses = DefaultTopProcesses
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// BuildReport queries probe and assembles a report. It never panics: the
// result holds either a report or the failure that stopped assembly.
func BuildReport(ctx context.Context, probe Probe, opts Options) (result models.Result) {
	opts = opts.withDefaults()

	defer func() {
		if r := recover(); r != nil {
			opts.Logger.Error("report assembly panicked", "panic", r)
			result = models.Result{Err: fmt.Errorf("unexpected failure: %v", r)}
		}
	}()

	report, err := assemble(ctx, probe, opts)
	if err != nil {
		return models.Result{Err: err}
	}
	return models.Result{Report: report}
}

func assemble(ctx context.Context, probe Probe, opts Options) (*models.SystemReport, error) {
	cpuInfos, err := probe.CPUInfo(ctx)
	if err != nil {
		opts.Logger.Debug("could not get CPU info", "error", err)
		cpuInfos = nil
	}

	system, err := collectSystem(ctx, probe, cpuInfos)
	if err != nil {
		return nil, err
	}

	cpuSection, err := collectCPU(ctx, probe, cpuInfos, opts)
	if err != nil {
		return nil, err
	}

	memory, err := collectMemory(ctx, probe)
	if err != nil {
		return nil, err
	}

	disks, err := collectDisks(ctx, probe, opts)
	if err != nil {
		return nil, err
	}

	stats, err := probe.Interfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	battery, err := probe.Battery(ctx)
	if err != nil {
		opts.Logger.Debug("could not get battery status", "error", err)
		battery = nil
	}

	return &models.SystemReport{
		System:     system,
		CPU:        cpuSection,
		Memory:     memory,
		Disk:       disks,
		Network:    interfacesFromStats(stats),
		Additional: collectAdditional(ctx, probe, opts),
		Battery:    battery,
	}, nil
}

func collectSystem(ctx context.Context, probe Probe, cpuInfos []cpu.InfoStat) (models.System, error) {
	info, err := probe.Identity(ctx)
	if err != nil {
		return models.System{}, fmt.Errorf("failed to get system identity: %w", err)
	}

	var processor string
	if len(cpuInfos) > 0 {
		processor = strings.TrimSpace(cpuInfos[0].ModelName)
	}

	// Version is the kernel build string where the platform exposes one;
	// elsewhere the OS release version stands in.
	version, err := probe.KernelBuild(ctx)
	if err != nil {
		version = info.PlatformVersion
	}

	return models.System{
		System:       cases.Title(language.English).String(info.OS),
		Node:         info.Hostname,
		Release:      info.KernelVersion,
		Version:      version,
		Machine:      info.KernelArch,
		Processor:    processor,
		Architecture: strconv.Itoa(strconv.IntSize) + "bit",
		Platform:     info.Platform,
	}, nil
}

func collectCPU(ctx context.Context, probe Probe, cpuInfos []cpu.InfoStat, opts Options) (models.CPU, error) {
	percentage, err := probe.CPUPercent(ctx, opts.CPUSampleInterval, false)
	if err != nil {
		return models.CPU{}, fmt.Errorf("failed to get CPU usage: %w", err)
	}
	if len(percentage) == 0 {
		return models.CPU{}, fmt.Errorf("failed to get CPU usage: no samples")
	}

	perCore, err := probe.CPUPercent(ctx, 0, true)
	if err != nil {
		opts.Logger.Debug("could not get per-core CPU usage", "error", err)
		perCore = nil
	}
	for i := range perCore {
		perCore[i] = round1(perCore[i])
	}

	logical, err := probe.CPUCounts(ctx, true)
	if err != nil {
		opts.Logger.Warn("could not get logical CPU count", "error", err)
		logical = 0
	}

	physical, err := probe.CPUCounts(ctx, false)
	if err != nil {
		opts.Logger.Debug("could not get physical CPU count", "error", err)
		physical = 0
	}

	frequency, err := probe.CPUFrequency(ctx)
	if err != nil {
		opts.Logger.Debug("could not get current CPU frequency", "error", err)
		frequency = 0
		if len(cpuInfos) > 0 {
			frequency = cpuInfos[0].Mhz
		}
	}

	return models.CPU{
		PhysicalCores:       physical,
		LogicalCores:        logical,
		UsagePercent:        round1(percentage[0]),
		CurrentFrequencyMHz: round1(frequency),
		PerCorePercent:      perCore,
	}, nil
}

func collectMemory(ctx context.Context, probe Probe) (models.Memory, error) {
	virtualMemory, err := probe.VirtualMemory(ctx)
	if err != nil {
		return models.Memory{}, fmt.Errorf("failed to get memory usage: %w", err)
	}

	return models.Memory{
		Total:        utils.FormatUint(virtualMemory.Total),
		Available:    utils.FormatUint(virtualMemory.Available),
		Used:         utils.FormatUint(virtualMemory.Used),
		UsagePercent: round1(virtualMemory.UsedPercent),
	}, nil
}

// collectDisks lists every partition whose usage can be read. A partition
// that fails is skipped; only a failed enumeration is an error.
func collectDisks(ctx context.Context, probe Probe, opts Options) ([]models.Partition, error) {
	partitions, err := probe.Partitions(ctx, opts.AllPartitions)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	statuses := make([]models.Partition, 0, len(partitions))

	for _, partition := range partitions {
		usage, err := probe.DiskUsage(ctx, partition.Mountpoint)
		if err != nil {
			opts.Logger.Debug("could not get disk usage", "mountpoint", partition.Mountpoint, "error", err)
			continue
		}

		statuses = append(statuses, models.Partition{
			Device:       partition.Device,
			Mountpoint:   partition.Mountpoint,
			Fstype:       partition.Fstype,
			Total:        utils.FormatUint(usage.Total),
			Used:         utils.FormatUint(usage.Used),
			Free:         utils.FormatUint(usage.Free),
			UsagePercent: round1(usage.UsedPercent),
		})
	}

	return statuses, nil
}

// collectAdditional gathers the best-effort facts. Nothing here can fail
// the report; each failure becomes an unavailable field.
func collectAdditional(ctx context.Context, probe Probe, opts Options) models.Additional {
	var additional models.Additional

	if boot, err := probe.BootTime(ctx); err != nil {
		opts.Logger.Debug("could not get boot time", "error", err)
		additional.Uptime = models.Unavailable[models.Uptime](err.Error())
		additional.BootTime = models.Unavailable[string](err.Error())
	} else {
		bootAt := time.Unix(int64(boot), 0)
		additional.Uptime = models.Available(SplitUptime(opts.Now().Sub(bootAt)))
		additional.BootTime = models.Available(bootAt.Format(BootTimeLayout))
	}

	if gpus, err := probe.GPUs(ctx); err != nil {
		opts.Logger.Debug("could not get GPU information", "error", err)
		additional.GPUs = models.Unavailable[[]models.GPU](err.Error())
	} else if len(gpus) == 0 {
		additional.GPUs = models.Unavailable[[]models.GPU]("no GPUs found")
	} else {
		additional.GPUs = models.Available(gpus)
	}

	if temps, err := probe.Temperatures(ctx); err != nil {
		opts.Logger.Debug("could not get temperatures", "error", err)
		additional.Temperatures = models.Unavailable[models.Temperatures](err.Error())
	} else if len(temps) == 0 {
		additional.Temperatures = models.Unavailable[models.Temperatures]("no temperature sensors found")
	} else {
		readings := make(models.Temperatures, 0, len(temps))
		for _, t := range temps {
			readings = append(readings, models.SensorReading{
				Sensor: t.SensorKey,
				Reading: models.Reading{
					Current:  round1(t.Temperature),
					High:     round1(t.High),
					Critical: round1(t.Critical),
				},
			})
		}
		additional.Temperatures = models.Available(readings)
	}

	if procs, err := probe.Processes(ctx); err != nil {
		opts.Logger.Debug("could not list processes", "error", err)
		additional.TopProcesses = models.Unavailable[[]models.Process](err.Error())
	} else {
		additional.TopProcesses = models.Available(TopProcesses(procs, opts.TopProcesses))
	}

	return additional
}

// SplitUptime decomposes a duration into days, hours, minutes and seconds.
// Negative durations (clock skew) count as zero.
func SplitUptime(d time.Duration) models.Uptime {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return models.Uptime{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

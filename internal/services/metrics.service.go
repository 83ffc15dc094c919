package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sysreport/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// ErrUnavailable marks a collaborator that has nothing to report on this host.
var ErrUnavailable = errors.New("not available on this host")

// Probe is the set of host queries a report is assembled from. Each method
// is a single read; implementations vary by platform.
type Probe interface {
	Identity(ctx context.Context) (*host.InfoStat, error)
	// KernelBuild is the kernel build string, as "uname -v" prints it.
	KernelBuild(ctx context.Context) (string, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	CPUCounts(ctx context.Context, logical bool) (int, error)
	CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)
	// CPUFrequency is the current clock of the first CPU in MHz.
	CPUFrequency(ctx context.Context) (float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	DiskUsage(ctx context.Context, mountpoint string) (*disk.UsageStat, error)
	Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error)
	BootTime(ctx context.Context) (uint64, error)
	Temperatures(ctx context.Context) ([]host.TemperatureStat, error)
	Processes(ctx context.Context) ([]models.Process, error)
	GPUs(ctx context.Context) ([]models.GPU, error)
	// Battery returns nil, nil when the host has no battery.
	Battery(ctx context.Context) (*models.Battery, error)
}

// HostProbe answers Probe queries from the running host via gopsutil,
// sysfs and the platform battery API.
type HostProbe struct {
	gpus     *GPUProber
	sysRoot  string
	procRoot string
	logger   *slog.Logger
}

// NewHostProbe creates a probe reading GPU and cpufreq state below sysRoot
// (normally /sys).
func NewHostProbe(sysRoot string, logger *slog.Logger) *HostProbe {
	if logger == nil {
		logger = slog.Default()
	}
	if sysRoot == "" {
		sysRoot = "/sys"
	}
	return &HostProbe{
		gpus:     NewGPUProber(sysRoot),
		sysRoot:  sysRoot,
		procRoot: "/proc",
		logger:   logger,
	}
}

func (p *HostProbe) Identity(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

// KernelBuild reads the build string Linux exposes in procfs. Other
// platforms report it as unavailable.
func (p *HostProbe) KernelBuild(ctx context.Context) (string, error) {
	build := readSysfsString(filepath.Join(p.procRoot, "sys", "kernel", "version"))
	if build == "" {
		return "", fmt.Errorf("no kernel build string: %w", ErrUnavailable)
	}
	return build, nil
}

func (p *HostProbe) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return cpu.InfoWithContext(ctx)
}

func (p *HostProbe) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (p *HostProbe) CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, perCPU)
}

// CPUFrequency reads scaling_cur_freq (kHz) of cpu0, then falls back to the
// "cpu MHz" line of /proc/cpuinfo. cpu.Info is not used here: on Linux it
// reports cpuinfo_max_freq whenever cpufreq is present.
func (p *HostProbe) CPUFrequency(ctx context.Context) (float64, error) {
	curFreq := filepath.Join(p.sysRoot, "devices", "system", "cpu", "cpu0", "cpufreq", "scaling_cur_freq")
	if khz, ok := readSysfsInt64(curFreq); ok && khz > 0 {
		return float64(khz) / 1000, nil
	}
	return cpuinfoMHz(filepath.Join(p.procRoot, "cpuinfo"))
}

// cpuinfoMHz returns the first "cpu MHz" value in a /proc/cpuinfo file.
func cpuinfoMHz(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("no current CPU frequency: %w", ErrUnavailable)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse cpu MHz %q: %w", strings.TrimSpace(value), err)
		}
		return mhz, nil
	}
	return 0, fmt.Errorf("no cpu MHz line in %s: %w", path, ErrUnavailable)
}

func (p *HostProbe) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (p *HostProbe) Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, all)
}

func (p *HostProbe) DiskUsage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, mountpoint)
}

func (p *HostProbe) Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	return psnet.InterfacesWithContext(ctx)
}

func (p *HostProbe) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

// Temperatures returns whatever sensors could be read. gopsutil reports
// unreadable sensors as warnings next to partial results; those are logged
// and dropped.
func (p *HostProbe) Temperatures(ctx context.Context) ([]host.TemperatureStat, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil && len(temps) > 0 {
		p.logger.Debug("partial temperature readings", "error", err)
		return temps, nil
	}
	return temps, err
}

func (p *HostProbe) GPUs(ctx context.Context) ([]models.GPU, error) {
	return p.gpus.Enumerate()
}

// round1 rounds a percentage to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

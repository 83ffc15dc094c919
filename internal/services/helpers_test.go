package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"sysreport/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

var errDenied = errors.New("permission denied")

// fakeProbe answers every query from canned values. A non-nil error field
// makes the matching query fail.
type fakeProbe struct {
	identity    *host.InfoStat
	identityErr error
	kernelBuild string
	buildErr    error
	cpuInfo     []cpu.InfoStat
	cpuInfoErr  error
	logical     int
	physical    int
	countsErr   error
	percent     []float64
	perCore     []float64
	percentErr  error
	frequency   float64
	freqErr     error
	memory      *mem.VirtualMemoryStat
	memoryErr   error
	partitions  []disk.PartitionStat
	partsErr    error
	usage       map[string]*disk.UsageStat
	usageErr    map[string]error
	interfaces  []psnet.InterfaceStat
	ifaceErr    error
	bootTime    uint64
	bootErr     error
	temps       []host.TemperatureStat
	tempsErr    error
	processes   []models.Process
	procsErr    error
	gpus        []models.GPU
	gpusErr     error
	battery     *models.Battery
	batteryErr  error
}

func (f *fakeProbe) Identity(ctx context.Context) (*host.InfoStat, error) {
	return f.identity, f.identityErr
}

func (f *fakeProbe) KernelBuild(ctx context.Context) (string, error) {
	return f.kernelBuild, f.buildErr
}

func (f *fakeProbe) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return f.cpuInfo, f.cpuInfoErr
}

func (f *fakeProbe) CPUCounts(ctx context.Context, logical bool) (int, error) {
	if logical {
		return f.logical, f.countsErr
	}
	return f.physical, f.countsErr
}

func (f *fakeProbe) CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	if perCPU {
		return append([]float64(nil), f.perCore...), f.percentErr
	}
	return f.percent, f.percentErr
}

func (f *fakeProbe) CPUFrequency(ctx context.Context) (float64, error) {
	return f.frequency, f.freqErr
}

func (f *fakeProbe) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return f.memory, f.memoryErr
}

func (f *fakeProbe) Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
	return f.partitions, f.partsErr
}

func (f *fakeProbe) DiskUsage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	if err := f.usageErr[mountpoint]; err != nil {
		return nil, err
	}
	return f.usage[mountpoint], nil
}

func (f *fakeProbe) Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	return f.interfaces, f.ifaceErr
}

func (f *fakeProbe) BootTime(ctx context.Context) (uint64, error) {
	return f.bootTime, f.bootErr
}

func (f *fakeProbe) Temperatures(ctx context.Context) ([]host.TemperatureStat, error) {
	return f.temps, f.tempsErr
}

func (f *fakeProbe) Processes(ctx context.Context) ([]models.Process, error) {
	return f.processes, f.procsErr
}

func (f *fakeProbe) GPUs(ctx context.Context) ([]models.GPU, error) {
	return f.gpus, f.gpusErr
}

func (f *fakeProbe) Battery(ctx context.Context) (*models.Battery, error) {
	return f.battery, f.batteryErr
}

const gib = 1024 * 1024 * 1024

// testBootTime is 2026-10-14 06:30:00 UTC.
var testBootTime = uint64(time.Date(2026, 10, 14, 6, 30, 0, 0, time.UTC).Unix())

// newHealthyProbe returns a probe describing a small Linux laptop.
func newHealthyProbe() *fakeProbe {
	return &fakeProbe{
		identity: &host.InfoStat{
			Hostname:        "workbench",
			OS:              "linux",
			Platform:        "ubuntu",
			PlatformVersion: "24.04",
			KernelVersion:   "6.8.0-45-generic",
			KernelArch:      "x86_64",
		},
		kernelBuild: "#45-Ubuntu SMP PREEMPT_DYNAMIC Fri Aug 30 12:02:04 UTC 2024",
		cpuInfo:     []cpu.InfoStat{{ModelName: "AMD Ryzen 7 7840U  ", Mhz: 5132}},
		logical:     16,
		physical:    8,
		percent:     []float64{12.34},
		perCore:     []float64{10.04, 14.66},
		frequency:   3300.125,
		memory: &mem.VirtualMemoryStat{
			Total:       32 * gib,
			Available:   20 * gib,
			Used:        12 * gib,
			UsedPercent: 37.5,
		},
		partitions: []disk.PartitionStat{
			{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", Fstype: "vfat"},
		},
		usage: map[string]*disk.UsageStat{
			"/":         {Total: 512 * gib, Used: 128 * gib, Free: 384 * gib, UsedPercent: 25},
			"/boot/efi": {Total: 512 * 1024 * 1024, Used: 6 * 1024 * 1024, Free: 506 * 1024 * 1024, UsedPercent: 1.17},
		},
		interfaces: []psnet.InterfaceStat{
			{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}, {Addr: "::1/128"}}},
			{Name: "wlp1s0", Flags: []string{"up", "broadcast", "multicast"}, Addrs: psnet.InterfaceAddrList{{Addr: "192.168.1.23/24"}}},
		},
		bootTime: testBootTime,
		temps: []host.TemperatureStat{
			{SensorKey: "k10temp_tctl", Temperature: 52.25, High: 0, Critical: 0},
			{SensorKey: "nvme_composite", Temperature: 38.86, High: 81.86, Critical: 84.86},
		},
		processes: []models.Process{
			{PID: 1, Name: "systemd", CPUPercent: 0.1, MemoryPercent: 0.2},
			{PID: 812, Name: "firefox", CPUPercent: 8.5, MemoryPercent: 6.1},
			{PID: 913, Name: "code", CPUPercent: 8.5, MemoryPercent: 4.0},
			{PID: 1004, Name: "pipewire", CPUPercent: 1.2, MemoryPercent: 0.3},
			{PID: 1201, Name: "gnome-shell", CPUPercent: 3.7, MemoryPercent: 2.9},
			{PID: 1500, Name: "sshd", CPUPercent: 0, MemoryPercent: 0.1},
		},
		gpus: []models.GPU{{ID: 0, Name: "AMD 0x15bf", Driver: "amdgpu", MemoryTotal: "512 MB"}},
	}
}

// brokenProbe fails every query.
func brokenProbe() *fakeProbe {
	return &fakeProbe{
		identityErr: errDenied,
		buildErr:    errDenied,
		cpuInfoErr:  errDenied,
		countsErr:   errDenied,
		percentErr:  errDenied,
		freqErr:     errDenied,
		memoryErr:   errDenied,
		partsErr:    errDenied,
		ifaceErr:    errDenied,
		bootErr:     errDenied,
		tempsErr:    errDenied,
		procsErr:    errDenied,
		gpusErr:     errDenied,
		batteryErr:  errDenied,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{
		TopProcesses: DefaultTopProcesses,
		Logger:       quietLogger(),
		Now: func() time.Time {
			return time.Date(2026, 10, 16, 9, 45, 30, 0, time.UTC)
		},
	}
}

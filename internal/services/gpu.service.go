package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"sysreport/internal/models"
	"sysreport/internal/utils"
)

// GPUProber enumerates graphics adapters by walking /sys/class/drm/card*.
// Utilization, VRAM and temperature come from the attributes the amdgpu
// driver exports; other drivers usually report identity only.
type GPUProber struct {
	// sysRoot is "/sys" in production and a synthetic tree in tests.
	sysRoot string
}

func NewGPUProber(sysRoot string) *GPUProber {
	if sysRoot == "" {
		sysRoot = "/sys"
	}
	return &GPUProber{sysRoot: sysRoot}
}

// Enumerate returns one entry per DRM card device, ordered by card index.
func (p *GPUProber) Enumerate() ([]models.GPU, error) {
	drmBase := filepath.Join(p.sysRoot, "class", "drm")
	entries, err := os.ReadDir(drmBase)
	if err != nil {
		return nil, fmt.Errorf("no DRM devices: %w", ErrUnavailable)
	}

	var gpus []models.GPU
	for _, entry := range entries {
		index, ok := cardIndex(entry.Name())
		if !ok {
			continue
		}
		devicePath := filepath.Join(drmBase, entry.Name(), "device")
		gpus = append(gpus, readGPU(index, devicePath))
	}

	if len(gpus) == 0 {
		return nil, fmt.Errorf("no GPUs found: %w", ErrUnavailable)
	}
	sort.SliceStable(gpus, func(i, j int) bool { return gpus[i].ID < gpus[j].ID })
	return gpus, nil
}

// cardIndex matches card0, card1, ... but not connectors (card0-DP-1) or
// render nodes (renderD128).
func cardIndex(name string) (int, bool) {
	suffix, ok := strings.CutPrefix(name, "card")
	if !ok || suffix == "" {
		return 0, false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return index, true
}

func readGPU(index int, devicePath string) models.GPU {
	gpu := models.GPU{
		ID:     index,
		Driver: readDriverName(devicePath),
	}

	vendor, deviceID := parsePCIUevent(devicePath)
	gpu.Name = readSysfsString(filepath.Join(devicePath, "product_name"))
	if gpu.Name == "" {
		gpu.Name = strings.TrimSpace(vendor + " " + deviceID)
	}
	if gpu.Name == "" {
		gpu.Name = fmt.Sprintf("card%d", index)
	}

	if busy, ok := readSysfsInt64(filepath.Join(devicePath, "gpu_busy_percent")); ok {
		load := float64(busy)
		gpu.LoadPercent = &load
	}
	if used, ok := readSysfsInt64(filepath.Join(devicePath, "mem_info_vram_used")); ok {
		gpu.MemoryUsed = utils.FormatBytes(float64(used))
	}
	if total, ok := readSysfsInt64(filepath.Join(devicePath, "mem_info_vram_total")); ok {
		gpu.MemoryTotal = utils.FormatBytes(float64(total))
	}
	if milli, ok := readHwmonTemp(devicePath); ok {
		celsius := float64(milli) / 1000
		gpu.TemperatureCelsius = &celsius
	}

	return gpu
}

// readDriverName returns the basename of the device's driver symlink.
func readDriverName(devicePath string) string {
	link, err := os.Readlink(filepath.Join(devicePath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(link)
}

// parsePCIUevent extracts the vendor name and device id from lines like
//
//	PCI_ID=1002:744A
func parsePCIUevent(devicePath string) (vendor, deviceID string) {
	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return "", ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok || key != "PCI_ID" {
			continue
		}
		vendorID, rawDeviceID, ok := strings.Cut(value, ":")
		if !ok {
			continue
		}
		vendor = pciVendorName(strings.ToLower(vendorID))
		deviceID = "0x" + strings.ToLower(rawDeviceID)
	}
	return vendor, deviceID
}

func pciVendorName(vendorID string) string {
	switch vendorID {
	case "1002":
		return "AMD"
	case "10de":
		return "NVIDIA"
	case "8086":
		return "Intel"
	case "":
		return ""
	default:
		return "0x" + vendorID
	}
}

// readHwmonTemp reads temp1_input (millidegrees) from the first hwmon
// directory that has one.
func readHwmonTemp(devicePath string) (int64, bool) {
	hwmonBase := filepath.Join(devicePath, "hwmon")
	entries, err := os.ReadDir(hwmonBase)
	if err != nil {
		return 0, false
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "hwmon") {
			continue
		}
		if v, ok := readSysfsInt64(filepath.Join(hwmonBase, entry.Name(), "temp1_input")); ok {
			return v, true
		}
	}
	return 0, false
}

func readSysfsString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readSysfsInt64(path string) (int64, bool) {
	value := readSysfsString(path)
	if value == "" {
		return 0, false
	}
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return result, true
}

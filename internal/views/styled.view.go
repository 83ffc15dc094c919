package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"sysreport/internal/models"
)

// Styled writes the report as labeled, line-oriented text with one section
// per category. Empty fields are left out; a host without a battery gets no
// battery section. A failed result is written as a single error line.
func Styled(w io.Writer, result models.Result) error {
	if msg := failureMessage(result); msg != "" {
		_, err := fmt.Fprintln(w, errorStyle.Render(msg))
		return err
	}

	s := &styledWriter{}
	report := result.Report

	s.section("System Information")
	s.field("system", report.System.System)
	s.field("node", report.System.Node)
	s.field("release", report.System.Release)
	s.field("version", report.System.Version)
	s.field("machine", report.System.Machine)
	s.field("processor", report.System.Processor)
	s.field("architecture", report.System.Architecture)
	s.field("platform", report.System.Platform)

	s.section("CPU")
	s.field("physical_cores", strconv.Itoa(report.CPU.PhysicalCores))
	s.field("logical_cores", strconv.Itoa(report.CPU.LogicalCores))
	s.field("usage_percent", percent(report.CPU.UsagePercent))
	s.field("current_frequency_mhz", number(report.CPU.CurrentFrequencyMHz))
	if len(report.CPU.PerCorePercent) > 0 {
		cores := make([]string, len(report.CPU.PerCorePercent))
		for i, v := range report.CPU.PerCorePercent {
			cores[i] = percent(v)
		}
		s.field("per_core_percent", strings.Join(cores, ", "))
	}

	s.section("Memory")
	s.field("total", report.Memory.Total)
	s.field("available", report.Memory.Available)
	s.field("used", report.Memory.Used)
	s.field("usage_percent", percent(report.Memory.UsagePercent))

	s.section("Disk")
	if len(report.Disk) == 0 {
		s.note("No readable partitions")
	}
	for i, p := range report.Disk {
		s.subtitle(fmt.Sprintf("Partition %d", i+1))
		s.subfield("device", p.Device)
		s.subfield("mountpoint", p.Mountpoint)
		s.subfield("fstype", p.Fstype)
		s.subfield("total", p.Total)
		s.subfield("used", p.Used)
		s.subfield("free", p.Free)
		s.subfield("usage_percent", percent(p.UsagePercent))
	}

	s.section("Network")
	for _, iface := range report.Network {
		s.subtitle("Interface: " + iface.Name)
		for _, addr := range iface.Addresses {
			s.subfield("family", addr.Family)
			s.subfield("address", addr.Address)
			s.subfield("netmask", addr.Netmask)
			s.subfield("broadcast", addr.Broadcast)
		}
	}

	s.section("Additional Information")
	s.additional(report.Additional)

	if report.Battery != nil {
		s.section("Battery")
		s.field("percent", percent(report.Battery.Percent))
		s.field("power_source", report.Battery.PowerSource)
		s.field("time_left", report.Battery.TimeLeft)
	}

	_, err := io.WriteString(w, s.String())
	return err
}

func (s *styledWriter) additional(a models.Additional) {
	if uptime, ok := a.Uptime.Get(); ok {
		s.field("uptime", fmt.Sprintf("%d days, %d hours, %d minutes, %d seconds",
			uptime.Days, uptime.Hours, uptime.Minutes, uptime.Seconds))
	} else {
		s.placeholder("uptime", a.Uptime.Placeholder())
	}

	if boot, ok := a.BootTime.Get(); ok {
		s.field("boot_time", boot)
	} else {
		s.placeholder("boot_time", a.BootTime.Placeholder())
	}

	if gpus, ok := a.GPUs.Get(); ok {
		s.heading("gpus")
		for _, gpu := range gpus {
			s.subtitle(fmt.Sprintf("GPU %d", gpu.ID))
			s.subfield("id", strconv.Itoa(gpu.ID))
			s.subfield("name", gpu.Name)
			s.subfield("driver", gpu.Driver)
			if gpu.LoadPercent != nil {
				s.subfield("load_percent", percent(*gpu.LoadPercent))
			}
			s.subfield("memory_used", gpu.MemoryUsed)
			s.subfield("memory_total", gpu.MemoryTotal)
			if gpu.TemperatureCelsius != nil {
				s.subfield("temperature_celsius", number(*gpu.TemperatureCelsius))
			}
		}
	} else {
		s.placeholder("gpus", a.GPUs.Placeholder())
	}

	if temps, ok := a.Temperatures.Get(); ok {
		s.heading("temperatures")
		for _, t := range temps {
			s.subtitle("Sensor: " + t.Sensor)
			s.subfield("current", number(t.Current))
			s.subfield("high", number(t.High))
			s.subfield("critical", number(t.Critical))
		}
	} else {
		s.placeholder("temperatures", a.Temperatures.Placeholder())
	}

	if procs, ok := a.TopProcesses.Get(); ok {
		s.heading("top_processes")
		for i, p := range procs {
			s.subtitle(fmt.Sprintf("Process %d", i+1))
			s.subfield("pid", strconv.FormatInt(int64(p.PID), 10))
			s.subfield("name", p.Name)
			s.subfield("cpu_percent", percent(p.CPUPercent))
			s.subfield("memory_percent", percent(p.MemoryPercent))
		}
	} else {
		s.placeholder("top_processes", a.TopProcesses.Placeholder())
	}
}

// styledWriter accumulates styled lines.
type styledWriter struct {
	strings.Builder
	sections int
}

func (s *styledWriter) section(title string) {
	if s.sections > 0 {
		s.WriteByte('\n')
	}
	s.sections++
	s.WriteString(sectionRule(title))
	s.WriteByte('\n')
}

func (s *styledWriter) line(indent, key, value string) {
	s.WriteString(indent)
	s.WriteString(labelStyle.Render(Label(key) + ":"))
	s.WriteByte(' ')
	s.WriteString(valueStyle.Render(value))
	s.WriteByte('\n')
}

// field writes "Label: value", skipping empty values.
func (s *styledWriter) field(key, value string) {
	if value == "" {
		return
	}
	s.line("", key, value)
}

func (s *styledWriter) subfield(key, value string) {
	if value == "" {
		return
	}
	s.line(subBlockIndent, key, value)
}

func (s *styledWriter) placeholder(key, text string) {
	s.WriteString(labelStyle.Render(Label(key) + ":"))
	s.WriteByte(' ')
	s.WriteString(dimStyle.Render(text))
	s.WriteByte('\n')
}

func (s *styledWriter) heading(key string) {
	s.WriteString(labelStyle.Render(Label(key) + ":"))
	s.WriteByte('\n')
}

func (s *styledWriter) subtitle(text string) {
	s.WriteString(subtitleStyle.Render(text))
	s.WriteByte('\n')
}

func (s *styledWriter) note(text string) {
	s.WriteString(dimStyle.Render(text))
	s.WriteByte('\n')
}

// number renders a float the way encoding/json does for ordinary magnitudes.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func percent(v float64) string {
	return number(v) + "%"
}

// failureMessage returns the single error line for a failed result, or ""
// when the result holds a report.
func failureMessage(result models.Result) string {
	if result.Err != nil {
		return result.ErrorMessage()
	}
	if result.Report == nil {
		return models.Result{Err: errEmptyReport}.ErrorMessage()
	}
	return ""
}

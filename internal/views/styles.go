package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Colors
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorRed     = lipgloss.Color("#FF5555")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	ruleStyle     = lipgloss.NewStyle().Foreground(colorGray)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	dimStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

const (
	ruleWidth      = 60
	subBlockIndent = "  "
)

// labelOverrides covers keys whose title-cased form reads badly.
var labelOverrides = map[string]string{
	"id":                    "ID",
	"pid":                   "PID",
	"gpus":                  "GPUs",
	"cpu_percent":           "CPU Percent",
	"current_frequency_mhz": "Current Frequency (MHz)",
	"temperature_celsius":   "Temperature (°C)",
}

// Label turns a field key such as "usage_percent" into "Usage Percent".
func Label(key string) string {
	if label, ok := labelOverrides[key]; ok {
		return label
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// sectionRule renders "==== Title ====" padded to ruleWidth.
func sectionRule(title string) string {
	inner := " " + title + " "
	pad := ruleWidth - len(inner)
	if pad < 4 {
		pad = 4
	}
	left := pad / 2
	right := pad - left
	return ruleStyle.Render(strings.Repeat("=", left)) +
		titleStyle.Render(inner) +
		ruleStyle.Render(strings.Repeat("=", right))
}

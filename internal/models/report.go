package models

// Uptime is the time since boot split into calendar-free parts
type Uptime struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Additional groups facts that may be unavailable on a given host
type Additional struct {
	Uptime       Optional[Uptime]       `json:"uptime"`
	BootTime     Optional[string]       `json:"boot_time"`
	GPUs         Optional[[]GPU]        `json:"gpus"`
	Temperatures Optional[Temperatures] `json:"temperatures"`
	TopProcesses Optional[[]Process]    `json:"top_processes"`
}

// SystemReport combines all sections of one run. Battery is nil when the
// host has no battery.
type SystemReport struct {
	System     System      `json:"system"`
	CPU        CPU         `json:"cpu"`
	Memory     Memory      `json:"memory"`
	Disk       []Partition `json:"disk"`
	Network    Interfaces  `json:"network"`
	Additional Additional  `json:"additional"`
	Battery    *Battery    `json:"battery,omitempty"`
}

// Result carries either a populated report or the failure that stopped
// assembly.
type Result struct {
	Report *SystemReport
	Err    error
}

// ErrorMessage is the single line shown for a failed result.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return "An error occurred while retrieving system information: " + r.Err.Error()
}

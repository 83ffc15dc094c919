package models

// Partition represents usage of one mounted filesystem
type Partition struct {
	Device       string  `json:"device"`
	Mountpoint   string  `json:"mountpoint"`
	Fstype       string  `json:"fstype"`
	Total        string  `json:"total"`
	Used         string  `json:"used"`
	Free         string  `json:"free"`
	UsagePercent float64 `json:"usage_percent"`
}

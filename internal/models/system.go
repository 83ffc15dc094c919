package models

// System represents static operating system identity
type System struct {
	System       string `json:"system"`
	Node         string `json:"node"`
	Release      string `json:"release"`
	Version      string `json:"version"`
	Machine      string `json:"machine"`
	Processor    string `json:"processor"`
	Architecture string `json:"architecture"`
	Platform     string `json:"platform"`
}

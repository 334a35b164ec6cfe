package model

import "time"

// ExportVersion is the interchange format version written by exports.
const ExportVersion = "1.0.0"

// ExportData is the versioned full snapshot used for backup and
// restore. It is transient: built on demand, never persisted.
type ExportData struct {
	Version    string      `json:"version"`
	ExportDate time.Time   `json:"exportDate"`
	Tasks      []Task      `json:"tasks"`
	Categories []Category  `json:"categories"`
	Settings   AppSettings `json:"settings"`
}

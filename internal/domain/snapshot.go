package domain

import "time"

// Snapshot is a complete point-in-time export of all record kinds, used for
// backup and restore.
type Snapshot struct {
	Items        []Item        `json:"items"`
	Categories   []Category    `json:"categories"`
	Users        []User        `json:"users"`
	Transactions []Transaction `json:"transactions"`
	ExportDate   time.Time     `json:"exportDate"`
}

// ImportSummary counts the records recreated by a snapshot import.
type ImportSummary struct {
	Categories int `json:"categories"`
	Users      int `json:"users"`
	Items      int `json:"items"`
}

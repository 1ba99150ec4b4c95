package models

// Backup is the full-dataset export/import format. Matches the JSON file the
// web client downloads: both counterparty lists with their transactions.
type Backup struct {
	Version    int            `json:"version"`
	ExportDate string         `json:"exportDate"`
	Suppliers  []Counterparty `json:"suppliers"`
	Clients    []Counterparty `json:"clients"`
}

// BackupVersion is the current backup file format version.
const BackupVersion = 1

package model

import "time"

// Import statuses recorded in import_logs.
const (
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ColumnReport describes how one role was resolved to a column.
type ColumnReport struct {
	Role   string `json:"role"`
	Index  int    `json:"index"`
	Source string `json:"source"` // keyword or fallback
	Header string `json:"header"`
}

// ImportSummary is returned to callers after a successful import.
type ImportSummary struct {
	ImportID      string         `json:"importId"`
	Domain        string         `json:"domain"`
	SheetName     string         `json:"sheetName"`     // canonical name, as stored on every record
	WorkbookSheet string         `json:"workbookSheet"` // tab the rows were read from
	BatchID       string         `json:"batchId"`
	TotalRows     int            `json:"totalRows"`
	ParsedRows    int            `json:"parsedRows"`
	Inserted      int64          `json:"inserted"`
	SkippedRows   int            `json:"skippedRows"`
	HeaderRows    []int          `json:"headerRows"` // 1-based
	Columns       []ColumnReport `json:"columns"`
	Duration      time.Duration  `json:"duration"`
}

// ImportLog is one row of the import journal.
type ImportLog struct {
	ID           string     `json:"id"`
	Domain       string     `json:"domain"`
	Filename     string     `json:"filename"`
	BatchID      string     `json:"batchId"`
	ImportedByID *int       `json:"importedById"`
	Status       string     `json:"status"`
	TotalRows    int        `json:"totalRows"`
	ParsedRows   int        `json:"parsedRows"`
	Inserted     int64      `json:"inserted"`
	SkippedRows  int        `json:"skippedRows"`
	ErrorKind    string     `json:"errorKind,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

package types

import "time"

// LogRecord is one persisted log entry in the record store. Records are
// produced by ingesting the plain-text log files and archives written by
// pkg/logger.
type LogRecord struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Logger    string    `json:"logger"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"` // file the record was ingested from
	CreatedAt time.Time `json:"created_at"`
}

// RecordFilter narrows a record listing. Zero values mean "no constraint".
type RecordFilter struct {
	// Level keeps only records at exactly this level (canonical name).
	Level string `json:"level,omitempty"`

	// Search keeps records whose message contains this substring.
	Search string `json:"search,omitempty"`

	// Since keeps records with a timestamp at or after this instant.
	Since time.Time `json:"since,omitempty"`

	// Limit caps the number of returned records; <= 0 applies a default cap.
	Limit int `json:"limit,omitempty"`

	// Offset skips that many records, for pagination.
	Offset int `json:"offset,omitempty"`
}

package storage

import (
	"time"

	"github.com/modlog/modlog/pkg/types"
)

// SQLiteRecord represents a log record row in SQLite.
type SQLiteRecord struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"timestamp"`
	Level     string    `db:"level"`
	Logger    string    `db:"logger"`
	Message   string    `db:"message"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

// ToLogRecord converts SQLiteRecord to types.LogRecord.
func (r *SQLiteRecord) ToLogRecord() *types.LogRecord {
	return &types.LogRecord{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Level:     r.Level,
		Logger:    r.Logger,
		Message:   r.Message,
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
	}
}

// FromLogRecord converts types.LogRecord to SQLiteRecord.
func (r *SQLiteRecord) FromLogRecord(record *types.LogRecord) {
	r.ID = record.ID
	r.Timestamp = record.Timestamp
	r.Level = record.Level
	r.Logger = record.Logger
	r.Message = record.Message
	r.Source = record.Source
	r.CreatedAt = record.CreatedAt
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/modlog/modlog/pkg/types"
)

// Storage defines the interface for the persisted log record store. The store
// backs the read-only record browsing view; the live log stream itself stays
// file-based.
type Storage interface {
	// Lifecycle operations
	Initialize(ctx context.Context) error
	Close() error
	HealthCheck(ctx context.Context) error

	// Record operations
	SaveRecord(ctx context.Context, record *types.LogRecord) error
	SaveRecords(ctx context.Context, records []*types.LogRecord) (int64, error)
	GetRecord(ctx context.Context, id int64) (*types.LogRecord, error)
	ListRecords(ctx context.Context, filter types.RecordFilter) ([]*types.LogRecord, error)
	CountRecords(ctx context.Context, filter types.RecordFilter) (int64, error)
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Statistics operations
	GetStats(ctx context.Context) (*Stats, error)
}

// Stats represents record store statistics.
type Stats struct {
	TotalRecords    int64            `json:"total_records"`
	RecordsByLevel  map[string]int64 `json:"records_by_level"`
	OldestTimestamp time.Time        `json:"oldest_timestamp,omitempty"`
	NewestTimestamp time.Time        `json:"newest_timestamp,omitempty"`
	DatabaseSize    int64            `json:"database_size_bytes,omitempty"`
}

// Factory creates storage instances based on configuration.
type Factory struct{}

// NewFactory creates a new storage factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a storage instance based on configuration.
func (f *Factory) Create(config *types.StorageConfig) (Storage, error) {
	switch config.Type {
	case "sqlite", "":
		return NewSQLiteStorage(&config.SQLite)
	default:
		return nil, &UnsupportedStorageTypeError{Type: config.Type}
	}
}

// UnsupportedStorageTypeError reports a storage type the factory cannot build.
type UnsupportedStorageTypeError struct {
	Type string
}

func (e *UnsupportedStorageTypeError) Error() string {
	return "unsupported storage type: " + e.Type
}

// RecordNotFoundError reports a lookup for a record that does not exist.
type RecordNotFoundError struct {
	ID int64
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("log record not found: %d", e.ID)
}

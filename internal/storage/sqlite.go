package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/modlog/modlog/pkg/types"
)

const defaultListLimit = 100

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db               *sql.DB
	config           *types.SQLiteConfig
	migrationManager *MigrationManager
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(config *types.SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("SQLite config is required")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}

	// Ensure directory exists (skip for in-memory database)
	if config.Path != ":memory:" {
		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", config.Path+"?_journal_mode=WAL&_foreign_keys=1&_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns := config.MaxConnections
	if maxConns <= 0 {
		maxConns = 2
	}
	db.SetMaxOpenConns(maxConns)
	// Keep at least one idle connection: an in-memory database vanishes when
	// its last connection closes.
	idleConns := maxConns / 2
	if idleConns < 1 {
		idleConns = 1
	}
	db.SetMaxIdleConns(idleConns)
	db.SetConnMaxLifetime(time.Hour)

	return &SQLiteStorage{
		db:               db,
		config:           config,
		migrationManager: NewMigrationManager(db),
	}, nil
}

// Initialize initializes the database and runs migrations.
func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := s.migrationManager.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// HealthCheck checks if the database is accessible.
func (s *SQLiteStorage) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveRecord persists a single log record and sets its ID.
//
// Timestamps are bound in UTC: the driver stores them as text with the
// value's own zone offset, and range comparisons on the column are lexical.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, record *types.LogRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO log_records (timestamp, level, logger, message, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp.UTC(), record.Level, record.Logger, record.Message, record.Source, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save log record: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}
	return nil
}

// SaveRecords persists a batch of records in one transaction and returns the
// number inserted.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []*types.LogRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO log_records (timestamp, level, logger, message, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	var count int64
	for _, record := range records {
		createdAt := record.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		result, err := stmt.ExecContext(ctx,
			record.Timestamp.UTC(), record.Level, record.Logger, record.Message, record.Source, createdAt.UTC())
		if err != nil {
			return 0, fmt.Errorf("failed to save log record: %w", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			record.ID = id
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return count, nil
}

// GetRecord retrieves one record by ID.
func (s *SQLiteStorage) GetRecord(ctx context.Context, id int64) (*types.LogRecord, error) {
	var row SQLiteRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, level, logger, message, source, created_at
		FROM log_records WHERE id = ?`, id).Scan(
		&row.ID, &row.Timestamp, &row.Level, &row.Logger, &row.Message, &row.Source, &row.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, &RecordNotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log record: %w", err)
	}
	return row.ToLogRecord(), nil
}

// ListRecords returns records matching the filter, newest first.
func (s *SQLiteStorage) ListRecords(ctx context.Context, filter types.RecordFilter) ([]*types.LogRecord, error) {
	where, args := buildFilter(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT id, timestamp, level, logger, message, source, created_at
		FROM log_records %s
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?`, where)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list log records: %w", err)
	}
	defer rows.Close()

	var records []*types.LogRecord
	for rows.Next() {
		var row SQLiteRecord
		if err := rows.Scan(&row.ID, &row.Timestamp, &row.Level, &row.Logger,
			&row.Message, &row.Source, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log record: %w", err)
		}
		records = append(records, row.ToLogRecord())
	}
	return records, rows.Err()
}

// CountRecords returns how many records match the filter.
func (s *SQLiteStorage) CountRecords(ctx context.Context, filter types.RecordFilter) (int64, error) {
	where, args := buildFilter(filter)

	var count int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM log_records %s`, where), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count log records: %w", err)
	}
	return count, nil
}

// DeleteRecordsBefore removes records older than cutoff and returns how many
// were deleted.
func (s *SQLiteStorage) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM log_records WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old records: %w", err)
	}
	return result.RowsAffected()
}

// GetStats returns record store statistics.
func (s *SQLiteStorage) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{RecordsByLevel: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM log_records`).Scan(&stats.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT level, COUNT(*) FROM log_records GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count records by level: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level string
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan level count: %w", err)
		}
		stats.RecordsByLevel[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalRecords > 0 {
		// Aggregate expressions lose the column type, so MIN/MAX come back
		// as strings and have to be parsed.
		var oldest, newest sql.NullString
		err = s.db.QueryRowContext(ctx,
			`SELECT MIN(timestamp), MAX(timestamp) FROM log_records`).Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("failed to read timestamp range: %w", err)
		}
		if oldest.Valid && oldest.String != "" {
			if stats.OldestTimestamp, err = parseStoredTime(oldest.String); err != nil {
				return nil, fmt.Errorf("failed to parse oldest timestamp: %w", err)
			}
		}
		if newest.Valid && newest.String != "" {
			if stats.NewestTimestamp, err = parseStoredTime(newest.String); err != nil {
				return nil, fmt.Errorf("failed to parse newest timestamp: %w", err)
			}
		}
	}

	if s.config.Path != ":memory:" {
		if info, err := os.Stat(s.config.Path); err == nil {
			stats.DatabaseSize = info.Size()
		}
	}
	return stats, nil
}

// storedTimeFormats covers the text layouts the driver writes for time.Time
// values, newest bindings first.
var storedTimeFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func parseStoredTime(value string) (time.Time, error) {
	for _, layout := range storedTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// buildFilter translates a RecordFilter into a WHERE clause and arguments.
func buildFilter(filter types.RecordFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Level != "" {
		clauses = append(clauses, "level = ?")
		args = append(args, strings.ToUpper(filter.Level))
	}
	if filter.Search != "" {
		clauses = append(clauses, `message LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC())
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

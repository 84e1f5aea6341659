package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database migration.
type Migration struct {
	Version     int
	Name        string
	Description string
	Up          string
	Down        string
}

// MigrationManager handles database migrations.
type MigrationManager struct {
	db *sql.DB
}

// NewMigrationManager creates a new migration manager.
func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db}
}

// GetMigrations returns all available migrations.
func (m *MigrationManager) GetMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Name:        "initial_schema",
			Description: "Create the log_records table",
			Up: `
				CREATE TABLE IF NOT EXISTS log_records (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					timestamp DATETIME NOT NULL,
					level TEXT NOT NULL,
					logger TEXT NOT NULL,
					message TEXT NOT NULL,
					source TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
			`,
			Down: `
				DROP TABLE IF EXISTS log_records;
			`,
		},
		{
			Version:     2,
			Name:        "add_indexes",
			Description: "Add indexes for the listing filters",
			Up: `
				-- Listing sorts by timestamp descending; filters hit level.
				CREATE INDEX IF NOT EXISTS idx_log_records_timestamp ON log_records(timestamp DESC);
				CREATE INDEX IF NOT EXISTS idx_log_records_level ON log_records(level);
			`,
			Down: `
				DROP INDEX IF EXISTS idx_log_records_level;
				DROP INDEX IF EXISTS idx_log_records_timestamp;
			`,
		},
	}
}

// Migrate applies all pending migrations.
func (m *MigrationManager) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTable(ctx); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	current, err := m.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range m.GetMigrations() {
		if migration.Version <= current {
			continue
		}
		if err := m.apply(ctx, migration); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}
	}
	return nil
}

func (m *MigrationManager) ensureMigrationTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	return err
}

func (m *MigrationManager) currentVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := m.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

func (m *MigrationManager) apply(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.Up); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		migration.Version, migration.Name, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

package logger

import (
	"io"
	"path/filepath"
)

const (
	// DefaultName is used when no logger name is configured.
	DefaultName = "ModelLogger"

	// DefaultTimestampLayout formats record timestamps at second resolution.
	DefaultTimestampLayout = "2006-01-02 15:04:05"

	// DefaultMaxFileSize is the rotation threshold in bytes (10 MiB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultBackupCount is the number of archives kept per log file.
	DefaultBackupCount = 5
)

// Config holds logger construction options. Only the minimum level may be
// changed after construction, via Logger.SetLevel.
type Config struct {
	// Name identifies the logger in every record. Defaults to DefaultName.
	Name string `yaml:"name" json:"name"`

	// FilePath is the live log file. Empty means console-only mode.
	FilePath string `yaml:"file_path" json:"file_path,omitempty"`

	// TimestampLayout is a Go time layout for record timestamps.
	TimestampLayout string `yaml:"timestamp_layout" json:"timestamp_layout,omitempty"`

	// Level is the minimum level name, case-insensitive. Defaults to INFO.
	Level string `yaml:"level" json:"level"`

	// MaxFileSize is the size in bytes at which the live file is rotated.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// BackupCount is how many archives to keep. Zero keeps none.
	BackupCount int `yaml:"backup_count" json:"backup_count"`

	// ArchiveDir is where rotated archives are stored. Defaults to
	// logs/archive under the live file's directory.
	ArchiveDir string `yaml:"archive_dir" json:"archive_dir,omitempty"`

	// Console receives the colorized record line. Defaults to os.Stdout.
	Console io.Writer `yaml:"-" json:"-"`

	// ForceColor enables colorization even when Console is not a terminal.
	ForceColor bool `yaml:"force_color" json:"force_color,omitempty"`

	// OnPruneWarning is invoked when an individual archive removal fails.
	// Nil routes warnings to Console. Prune failures never fail a log call.
	OnPruneWarning func(path string, err error) `yaml:"-" json:"-"`
}

// DefaultConfig returns a console-only configuration with default limits.
func DefaultConfig() Config {
	return Config{
		Name:            DefaultName,
		TimestampLayout: DefaultTimestampLayout,
		Level:           "INFO",
		MaxFileSize:     DefaultMaxFileSize,
		BackupCount:     DefaultBackupCount,
	}
}

// applyDefaults fills zero-valued fields. It does not touch FilePath: an empty
// path is the valid console-only mode.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.TimestampLayout == "" {
		c.TimestampLayout = DefaultTimestampLayout
	}
	if c.Level == "" {
		c.Level = "INFO"
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.BackupCount < 0 {
		c.BackupCount = 0
	}
	if c.FilePath != "" && c.ArchiveDir == "" {
		c.ArchiveDir = DefaultArchiveDir(c.FilePath)
	}
}

// DefaultArchiveDir returns the archive directory used when none is
// configured: logs/archive under the live file's directory.
func DefaultArchiveDir(filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	return filepath.Join(filepath.Dir(abs), "logs", "archive")
}

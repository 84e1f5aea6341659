// Package logger implements a leveled console/file logger with size-based
// rotation, gzip archival, and bounded archive retention.
//
// Records are written as plain text, one per line:
//
//	[<timestamp>] <LEVEL>   <name>: <message>
//
// Console output is colorized per level. Before every file append the live
// file's size is checked against the configured threshold; at or above it,
// the file is gzip-compressed into a timestamped archive and truncated in
// place, and archives beyond the retention count are removed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is a leveled console/file logger. A single instance is safe for
// concurrent use: the rotation check and the append run under one mutex, so
// two goroutines can never both observe a full file and double-rotate it.
type Logger struct {
	name            string
	timestampLayout string
	console         io.Writer
	styler          *Styler
	writer          *fileWriter
	archiver        *Archiver

	mu    sync.Mutex
	level Level

	now func() time.Time
}

// New creates a logger from cfg. When a file path is configured, the archive
// directory is created (with intermediate directories) before the first
// write; failure to create it fails construction. An unrecognized level name
// fails with InvalidLevelError.
func New(cfg Config) (*Logger, error) {
	cfg.applyDefaults()

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	l := &Logger{
		name:            cfg.Name,
		timestampLayout: cfg.TimestampLayout,
		console:         console,
		level:           level,
		now:             time.Now,
	}

	if cfg.ForceColor {
		l.styler = NewStylerEnabled(true)
	} else {
		l.styler = NewStyler(console)
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(cfg.ArchiveDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory %s: %w", cfg.ArchiveDir, err)
		}
		warn := cfg.OnPruneWarning
		if warn == nil {
			warn = func(path string, err error) {
				fmt.Fprintf(console, "warning: failed to remove old archive %s: %v\n", path, err)
			}
		}
		l.archiver = NewArchiver(cfg.ArchiveDir, warn)
		l.writer = newFileWriter(cfg, l.archiver)
	}

	return l, nil
}

// Name returns the logger name embedded in every record.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel changes the minimum level at runtime. An unrecognized name fails
// with InvalidLevelError and leaves the effective level unchanged.
func (l *Logger) SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
	return nil
}

// Archiver exposes the archive inventory for the configured log file. It is
// nil in console-only mode.
func (l *Logger) Archiver() *Archiver {
	return l.archiver
}

// Log emits one record at the given level. Records below the minimum level
// produce no output at all. The colorized line always reaches the console
// once the filter passes; a file failure afterwards is returned to the
// caller but does not retract the console line.
func (l *Logger) Log(level Level, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !level.Enabled(l.level) {
		return nil
	}

	plain := l.format(level, message)
	fmt.Fprintln(l.console, l.styler.Colorize(level, plain))

	if l.writer == nil {
		return nil
	}
	return l.writer.Append(plain)
}

func (l *Logger) format(level Level, message string) string {
	timestamp := l.now().Format(l.timestampLayout)
	return fmt.Sprintf("[%s] %-8s %s: %s", timestamp, level.String(), l.name, message)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(message string) error {
	return l.Log(LevelDebug, message)
}

// Info logs a message at INFO level.
func (l *Logger) Info(message string) error {
	return l.Log(LevelInfo, message)
}

// Success logs a message at SUCCESS level.
func (l *Logger) Success(message string) error {
	return l.Log(LevelSuccess, message)
}

// Warning logs a message at WARNING level.
func (l *Logger) Warning(message string) error {
	return l.Log(LevelWarning, message)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(message string) error {
	return l.Log(LevelError, message)
}

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Successf logs a formatted message at SUCCESS level.
func (l *Logger) Successf(format string, args ...interface{}) error {
	return l.Log(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warningf logs a formatted message at WARNING level.
func (l *Logger) Warningf(format string, args ...interface{}) error {
	return l.Log(LevelWarning, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.Log(LevelError, fmt.Sprintf(format, args...))
}

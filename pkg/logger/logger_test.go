package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	cfg.Console = console
	l, err := New(cfg)
	require.NoError(t, err)
	return l, console
}

func TestNew_Defaults(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	assert.Equal(t, DefaultName, l.Name())
	assert.Equal(t, LevelInfo, l.Level())
	assert.Nil(t, l.Archiver())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "bogus"})
	require.Error(t, err)

	var invalidErr *InvalidLevelError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestNew_CreatesArchiveDir(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	l, _ := newTestLogger(t, Config{FilePath: logPath})
	assert.DirExists(t, filepath.Join(dir, "logs", "archive"))
	assert.Equal(t, filepath.Join(dir, "logs", "archive"), l.Archiver().Dir())
}

func TestLogger_ConsoleOnly(t *testing.T) {
	dir := t.TempDir()
	l, console := newTestLogger(t, Config{Name: "test"})

	require.NoError(t, l.Info("hello"))
	assert.Contains(t, console.String(), "INFO     test: hello")

	// Console-only mode performs zero filesystem writes.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogger_LevelFilter(t *testing.T) {
	l, console := newTestLogger(t, Config{Level: "WARNING"})

	require.NoError(t, l.Debug("nope"))
	require.NoError(t, l.Info("nope"))
	require.NoError(t, l.Success("nope"))
	assert.Empty(t, console.String())

	require.NoError(t, l.Warning("yes"))
	require.NoError(t, l.Error("also"))
	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestLogger_RecordFormat(t *testing.T) {
	l, console := newTestLogger(t, Config{Name: "worker", Level: "DEBUG"})

	require.NoError(t, l.Success("model saved"))
	line := strings.TrimSpace(console.String())

	// [<timestamp>] <LEVEL padded to 8> <name>: <message>
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] SUCCESS  worker: model saved$`, line)

	console.Reset()
	require.NoError(t, l.Debugf("epoch %d done", 3))
	assert.Contains(t, console.String(), "DEBUG    worker: epoch 3 done")
}

func TestLogger_SetLevel(t *testing.T) {
	l, console := newTestLogger(t, Config{})

	require.NoError(t, l.SetLevel("debug"))
	assert.Equal(t, LevelDebug, l.Level())

	// A failed SetLevel leaves the effective level unchanged.
	err := l.SetLevel("bogus")
	require.Error(t, err)
	assert.Equal(t, LevelDebug, l.Level())

	require.NoError(t, l.Debug("visible"))
	assert.Contains(t, console.String(), "visible")
}

func TestLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	l, _ := newTestLogger(t, Config{Name: "test", FilePath: logPath})

	require.NoError(t, l.Info("first"))
	require.NoError(t, l.Error("second"))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO     test: first")
	assert.Contains(t, lines[1], "ERROR    test: second")

	// The file copy carries no ANSI escapes.
	assert.NotContains(t, string(content), "\x1b[")
}

func TestLogger_RotationAndRetention(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	archiveDir := filepath.Join(dir, "archive")

	l, _ := newTestLogger(t, Config{
		Name:        "test",
		FilePath:    logPath,
		MaxFileSize: 100,
		BackupCount: 2,
		ArchiveDir:  archiveDir,
	})

	for i := 0; i < 10; i++ {
		require.NoError(t, l.Infof("record number %02d padding", i))
	}

	archives, err := l.Archiver().List("app.log")
	require.NoError(t, err)
	assert.NotEmpty(t, archives, "expected at least one rotation")
	assert.LessOrEqual(t, len(archives), 2, "retention bound exceeded")

	// The live file holds only records written after the last rotation, and
	// stays within one record of the threshold.
	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(100+80))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "record number 09")
}

func TestLogger_RotateFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	archiveDir := filepath.Join(dir, "archive")

	l, _ := newTestLogger(t, Config{
		FilePath:    logPath,
		MaxFileSize: 10,
		ArchiveDir:  archiveDir,
	})

	// Fill past the threshold, then make the archive dir unusable.
	require.NoError(t, l.Info("a record well beyond ten bytes"))
	require.NoError(t, os.RemoveAll(archiveDir))
	require.NoError(t, os.WriteFile(archiveDir, []byte("not a dir"), 0644))

	err := l.Info("triggers rotation")
	require.Error(t, err)

	var archiveErr *ArchiveError
	assert.ErrorAs(t, err, &archiveErr)

	// The failed rotation left the previous content in place.
	content, readErr := os.ReadFile(logPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "well beyond ten bytes")
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	l, _ := newTestLogger(t, Config{
		FilePath:    logPath,
		MaxFileSize: 200,
		BackupCount: 3,
		ArchiveDir:  filepath.Join(dir, "archive"),
	})

	done := make(chan error)
	for g := 0; g < 4; g++ {
		go func(g int) {
			var firstErr error
			for i := 0; i < 25; i++ {
				if err := l.Infof("goroutine %d record %d", g, i); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			done <- firstErr
		}(g)
	}
	for g := 0; g < 4; g++ {
		require.NoError(t, <-done)
	}

	archives, err := l.Archiver().List("app.log")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(archives), 3)
}

func TestLogger_PruneWarningCallback(t *testing.T) {
	dir := t.TempDir()
	var warnings []string

	l, _ := newTestLogger(t, Config{
		FilePath:   filepath.Join(dir, "app.log"),
		ArchiveDir: filepath.Join(dir, "archive"),
		OnPruneWarning: func(path string, err error) {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
		},
	})

	require.NoError(t, l.Info("no rotation, no warnings"))
	assert.Empty(t, warnings)
}

package logger

import (
	"os"
	"path/filepath"
)

// fileWriter appends records to the live log file, rotating it through the
// archiver when it has reached the size threshold. The rotation check runs
// before the append (check-then-write), so the live file can exceed the
// threshold by at most one record until the next append re-checks it.
type fileWriter struct {
	path        string
	maxFileSize int64
	backupCount int
	archiver    *Archiver
}

func newFileWriter(cfg Config, archiver *Archiver) *fileWriter {
	return &fileWriter{
		path:        cfg.FilePath,
		maxFileSize: cfg.MaxFileSize,
		backupCount: cfg.BackupCount,
		archiver:    archiver,
	}
}

// Append writes one record line to the live file. Callers must serialize
// calls; the check-and-rotate plus the append form one critical section.
func (w *fileWriter) Append(line string) error {
	if w.path == "" {
		return nil
	}

	if err := w.checkAndRotate(); err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &WriteError{Path: w.path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return &WriteError{Path: w.path, Err: err}
	}
	return nil
}

// checkAndRotate rotates and prunes when the live file has reached the size
// threshold. Missing files are a no-op. Rotate failures propagate; prune
// failures are best-effort and never fail the append.
func (w *fileWriter) checkAndRotate() error {
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &WriteError{Path: w.path, Err: err}
	}
	if info.Size() < w.maxFileSize {
		return nil
	}

	if _, err := w.archiver.Rotate(w.path); err != nil {
		return err
	}
	if _, err := w.archiver.Prune(filepath.Base(w.path), w.backupCount); err != nil {
		w.archiver.warn(w.archiver.Dir(), err)
	}
	return nil
}

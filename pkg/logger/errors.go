package logger

import (
	"fmt"
	"strings"
)

// InvalidLevelError is returned when a level name is not one of the five
// recognized names (DEBUG, INFO, SUCCESS, WARNING, ERROR).
type InvalidLevelError struct {
	Name string
}

func (e *InvalidLevelError) Error() string {
	names := make([]string, 0, len(levelNames))
	for _, l := range Levels() {
		names = append(names, l.String())
	}
	return fmt.Sprintf("invalid log level %q: choose from %s", e.Name, strings.Join(names, ", "))
}

// ArchiveError reports a failed rotate or prune operation. The live log file
// is left in its pre-rotation state when a rotate fails.
type ArchiveError struct {
	Op   string // "rotate" or "prune"
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed append to the live log file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write log file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

package logger

import "strings"

// Level represents the severity of a log record. The zero value is LevelDebug.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelSuccess: "SUCCESS",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
}

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the five recognized levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// Enabled reports whether a record at level l passes the configured minimum.
func (l Level) Enabled(min Level) bool {
	return l >= min
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive;
// anything outside the five recognized names fails with InvalidLevelError.
func ParseLevel(name string) (Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == upper {
			return level, nil
		}
	}
	return LevelInfo, &InvalidLevelError{Name: name}
}

// Levels returns all recognized levels in ascending priority order.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelSuccess, LevelWarning, LevelError}
}

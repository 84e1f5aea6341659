package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// envPattern matches ${VAR_NAME} syntax in configuration values.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandPath expands ${VAR} references and a leading ~ in a filesystem path
// from configuration. Unset variables are left as-is so the resulting error
// points at the unresolved reference instead of a silently mangled path.
func ExpandPath(path string) string {
	expanded := envPattern.ReplaceAllStringFunc(path, func(match string) string {
		name := envPattern.FindStringSubmatch(match)[1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
		}
	}
	return expanded
}

package config

import (
	"fmt"
	"strings"

	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{errors: make(ValidationErrors, 0)}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(config *types.Config) error {
	v.errors = v.errors[:0]

	v.validateLogger(&config.Logger)
	v.validateStorage(&config.Storage)
	v.validateServer(&config.Server)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) addError(field, value, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Value: value, Message: message})
}

func (v *Validator) validateLogger(cfg *logger.Config) {
	if cfg.Level != "" {
		if _, err := logger.ParseLevel(cfg.Level); err != nil {
			v.addError("logger.level", cfg.Level,
				"must be one of DEBUG, INFO, SUCCESS, WARNING, ERROR")
		}
	}
	// Zero means "use the default", matching backup_count.
	if cfg.MaxFileSize < 0 {
		v.addError("logger.max_file_size", fmt.Sprintf("%d", cfg.MaxFileSize),
			"must not be negative")
	}
	if cfg.BackupCount < 0 {
		v.addError("logger.backup_count", fmt.Sprintf("%d", cfg.BackupCount),
			"must not be negative")
	}
	if cfg.ArchiveDir != "" && cfg.FilePath == "" {
		v.addError("logger.archive_dir", cfg.ArchiveDir,
			"requires logger.file_path to be set")
	}
}

func (v *Validator) validateStorage(cfg *types.StorageConfig) {
	switch cfg.Type {
	case "", "sqlite":
		if cfg.SQLite.Path == "" {
			v.addError("storage.sqlite.path", "", "database path is required")
		}
	default:
		v.addError("storage.type", cfg.Type, "only 'sqlite' is supported")
	}
}

func (v *Validator) validateServer(cfg *types.ServerConfig) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		v.addError("server.port", fmt.Sprintf("%d", cfg.Port), "must be between 0 and 65535")
	}
	if cfg.RequestsPerSecond < 0 {
		v.addError("server.requests_per_second", fmt.Sprintf("%g", cfg.RequestsPerSecond),
			"must not be negative")
	}
	if cfg.Burst < 0 {
		v.addError("server.burst", fmt.Sprintf("%d", cfg.Burst), "must not be negative")
	}
}

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
	"github.com/modlog/modlog/pkg/utils"
)

// Loader handles configuration loading and processing.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads configuration from a YAML file.
func (l *Loader) LoadFromFile(filePath string) (*types.Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	return l.LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader.
func (l *Loader) LoadFromReader(reader io.Reader) (*types.Config, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return l.LoadFromBytes(content)
}

// LoadFromBytes loads configuration from a byte slice, applies defaults, and
// validates the result.
func (l *Loader) LoadFromBytes(content []byte) (*types.Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.applyDefaults(config)

	if err := NewValidator().Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Default returns the built-in configuration.
func Default() *types.Config {
	return &types.Config{
		App: types.AppConfig{
			Name:    "modlog",
			DataDir: "./data",
		},
		Logger: logger.DefaultConfig(),
		Storage: types.StorageConfig{
			Type: "sqlite",
			SQLite: types.SQLiteConfig{
				Path:           "./data/records.db",
				MaxConnections: 4,
			},
		},
		Server: types.ServerConfig{
			Port:              8585,
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

// applyDefaults fills gaps and expands environment references in paths.
func (l *Loader) applyDefaults(config *types.Config) {
	if config.App.Name == "" {
		config.App.Name = "modlog"
	}
	if config.App.DataDir == "" {
		config.App.DataDir = "./data"
	}
	config.App.DataDir = utils.ExpandPath(config.App.DataDir)

	if config.Logger.FilePath != "" {
		config.Logger.FilePath = utils.ExpandPath(config.Logger.FilePath)
	}
	if config.Logger.ArchiveDir != "" {
		config.Logger.ArchiveDir = utils.ExpandPath(config.Logger.ArchiveDir)
	}
	// Zero means "use the default"; negative values are left for the
	// validator to reject.
	if config.Logger.MaxFileSize == 0 {
		config.Logger.MaxFileSize = logger.DefaultMaxFileSize
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "sqlite"
	}
	if config.Storage.SQLite.Path == "" {
		config.Storage.SQLite.Path = "./data/records.db"
	}
	config.Storage.SQLite.Path = utils.ExpandPath(config.Storage.SQLite.Path)
	if config.Storage.SQLite.MaxConnections <= 0 {
		config.Storage.SQLite.MaxConnections = 4
	}

	if config.Server.Port == 0 {
		config.Server.Port = 8585
	}
}

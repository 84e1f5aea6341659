package types

import (
	"time"

	"github.com/modlog/modlog/pkg/logger"
)

// Config is the main application configuration for the modlog service.
type Config struct {
	App     AppConfig     `yaml:"app" json:"app"`
	Logger  logger.Config `yaml:"logger" json:"logger"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// AppConfig represents application-level configuration.
type AppConfig struct {
	Name    string `yaml:"name" json:"name"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// StorageConfig represents record store configuration.
type StorageConfig struct {
	Type   string       `yaml:"type" json:"type"`
	SQLite SQLiteConfig `yaml:"sqlite" json:"sqlite"`
}

// SQLiteConfig represents SQLite-specific configuration.
type SQLiteConfig struct {
	Path              string        `yaml:"path" json:"path"`
	MaxConnections    int           `yaml:"max_connections" json:"max_connections"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout" json:"connection_timeout"`
}

// ServerConfig represents the record-browsing API server configuration.
type ServerConfig struct {
	Port int `yaml:"port" json:"port"`

	// RequestsPerSecond and Burst bound the API rate limiter. Zero values
	// disable limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modlog/modlog/internal/config"
	"github.com/modlog/modlog/pkg/types"
)

var (
	globalConfigFile string
	globalLogLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modlog",
	Short: "modlog - leveled file logger with gzip archival and a record browser",
	Long: `modlog writes leveled, colorized console/file logs with size-based rotation
and gzip archival, keeps a bounded set of archives per log file, and serves a
read-only browsing API over records ingested into its store.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalConfigFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "log level (DEBUG, INFO, SUCCESS, WARNING, ERROR)")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initEnv reads in ENV variables if set.
func initEnv() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("MODLOG") // MODLOG_LOG_LEVEL, MODLOG_CONFIG, etc.
}

// loadConfig resolves the application configuration for a command: the
// --config flag, then MODLOG_CONFIG, then ./config.yaml if present, then the
// built-in defaults. The --log-level flag overrides the configured level.
func loadConfig() (*types.Config, error) {
	path := globalConfigFile
	if path == "" {
		path = viper.GetString("config")
	}

	var cfg *types.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.NewLoader().LoadFromFile(path)
	default:
		if _, statErr := os.Stat("./config.yaml"); statErr == nil {
			cfg, err = config.NewLoader().LoadFromFile("./config.yaml")
		} else {
			cfg = config.Default()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level := viper.GetString("log_level"); level != "" {
		cfg.Logger.Level = level
	}
	return cfg, nil
}

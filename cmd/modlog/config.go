package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd groups configuration-related subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

// configShowCmd prints the effective configuration after defaults.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

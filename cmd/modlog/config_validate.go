package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modlog/modlog/internal/config"
)

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a modlog configuration file",
	Long: `Validate the syntax and content of a modlog configuration file.

This command checks:
- YAML syntax
- Log level names
- Rotation and retention bounds
- Storage and server settings`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

func init() {
	configCmd.AddCommand(validateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configFile := "./config.yaml"
	if len(args) > 0 {
		configFile = args[0]
	} else if globalConfigFile != "" {
		configFile = globalConfigFile
	}

	if _, err := config.NewLoader().LoadFromFile(configFile); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", configFile)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modlog/modlog/internal/api"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information including build time and git commit",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringP("output", "o", "text", "output format (text, json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	info := api.GetBuildInfo()

	switch output {
	case "json":
		jsonData, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "modlog %s\n", info.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Build Time: %s\n", info.BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", info.GitCommit)
	}
	return nil
}

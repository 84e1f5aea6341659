package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modlog/modlog/pkg/logger"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old log archives beyond the retention count",
	Long: `Apply the archive retention policy immediately: keep the newest archives
for the configured log file and delete the rest. Normally this runs as part of
every rotation; the command exists for reclaiming space after lowering the
backup count.`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().Int("keep", -1, "archives to keep (defaults to the configured backup count)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Logger.FilePath == "" {
		return fmt.Errorf("logger.file_path is not configured; nothing to prune")
	}

	keep := cfg.Logger.BackupCount
	if flagKeep, _ := cmd.Flags().GetInt("keep"); flagKeep >= 0 {
		keep = flagKeep
	}

	archiveDir := cfg.Logger.ArchiveDir
	if archiveDir == "" {
		archiveDir = logger.DefaultArchiveDir(cfg.Logger.FilePath)
	}

	archiver := logger.NewArchiver(archiveDir, func(path string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to remove %s: %v\n", path, err)
	})

	removed, err := archiver.Prune(filepath.Base(cfg.Logger.FilePath), keep)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	for _, path := range removed {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d archive(s) removed, keeping at most %d\n", len(removed), keep)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modlog/modlog/internal/ingest"
	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Import log files or gzip archives into the record store",
	Long: `Parse plain-text log files or .gz archives written by the logger and
persist their records, making them browsable through the API.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("output", "o", "text", "output format (text, json)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewFactory().Create(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	ingestor := ingest.New(store, cfg.Logger.TimestampLayout, log)

	var results []*ingest.Result
	for _, path := range args {
		result, err := ingestor.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	var imported, skipped int64
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d imported, %d skipped\n", r.Source, r.Imported, r.Skipped)
		imported += r.Imported
		skipped += r.Skipped
	}
	fmt.Fprintf(cmd.OutOrStdout(), "total: %d imported, %d skipped\n", imported, skipped)
	return nil
}

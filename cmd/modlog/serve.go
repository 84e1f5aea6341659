package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modlog/modlog/internal/api"
	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the read-only record browsing API",
	Long: `Start the HTTP server that exposes the persisted log records (filter by
level, search by message, newest first) and the gzip archive inventory.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "listen port (overrides configuration)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	var baseName string
	if cfg.Logger.FilePath != "" {
		baseName = filepath.Base(cfg.Logger.FilePath)
	}

	server := api.NewServer(cfg.Server, store, log.Archiver(), baseName, log)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("record API failed: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
)

// Server is the read-only HTTP view over the record store and the archive
// directory. It never writes records; ingestion happens through the CLI.
type Server struct {
	cfg      types.ServerConfig
	server   *http.Server
	storage  storage.Storage
	archiver *logger.Archiver
	baseName string
	log      *logger.Logger
	started  time.Time
}

// NewServer creates a new API server. archiver and baseName may be zero when
// the logger runs console-only; the archives endpoint then returns an empty
// inventory.
func NewServer(cfg types.ServerConfig, store storage.Storage, archiver *logger.Archiver, baseName string, log *logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		storage:  store,
		archiver: archiver,
		baseName: baseName,
		log:      log,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.started = time.Now()

	var limiter *rate.Limiter
	if s.cfg.RequestsPerSecond > 0 {
		burst := s.cfg.Burst
		if burst <= 0 {
			burst = int(s.cfg.RequestsPerSecond)
		}
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), burst)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.setupRouter(limiter),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Infof("record API listening on %s", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Stop()
	}
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("shutting down record API")
	return s.server.Shutdown(ctx)
}

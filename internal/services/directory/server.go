package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/platform/timeouts"
	"github.com/louisbranch/crm-console/internal/services/directory/storage/sqlite"
)

// Config defines the inputs for the directory process.
type Config struct {
	HTTPAddr string
	DBPath   string
	// SeedUsers is how many sample users to create in an empty database.
	SeedUsers int
	Logger    logger.Logger
}

// Server hosts the directory users API.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *sqlite.Store
	log        logger.Logger
}

// NewServer opens the store, seeds it when empty and builds the HTTP server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	log := config.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}

	store, err := openStore(ctx, config.DBPath)
	if err != nil {
		return nil, err
	}
	seeded, err := Seed(ctx, store, config.SeedUsers)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed users: %w", err)
	}
	if seeded > 0 {
		log.Info("seeded users", "count", seeded)
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           NewHandler(store, log),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
		log:        log,
	}, nil
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))
	if cleanPath == "." || cleanPath == "" {
		return nil, errors.New("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

// Handler exposes the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("directory server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	s.log.Info("directory listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the HTTP server and closes the store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		if err := s.httpServer.Close(); err != nil {
			s.log.Warn("close directory server", "error", err)
		}
	}
	if err := s.store.Close(); err != nil {
		s.log.Warn("close directory store", "error", err)
	}
}

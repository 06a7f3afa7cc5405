package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/platform/timeouts"
	"github.com/louisbranch/crm-console/internal/services/shared/usersapi"
)

// Config defines the inputs for the admin console process.
type Config struct {
	HTTPAddr string
	// UsersAPIURL is the base URL of the service answering GET /users.
	UsersAPIURL  string
	UsersTimeout time.Duration
	SessionTTL   time.Duration
	Logger       logger.Logger
	// Fetcher overrides the HTTP users client; tests use it.
	Fetcher usertable.Fetcher
}

// Server hosts the admin console.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	log        logger.Logger
}

// NewServer builds the console server and its users API client.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	log := config.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}

	fetcher := config.Fetcher
	if fetcher == nil {
		client, err := usersapi.New(usersapi.Config{
			BaseURL: config.UsersAPIURL,
			Timeout: config.UsersTimeout,
			Logger:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("users api client: %w", err)
		}
		fetcher = client
	}

	handler := NewHandlerWithConfig(fetcher, HandlerConfig{
		SessionTTL: config.SessionTTL,
		Logger:     log,
	})
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		log:        log,
	}, nil
}

// Handler exposes the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	s.log.Info("admin listening", "addr", s.httpAddr)
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

// Close stops accepting connections immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.log.Warn("close admin server", "error", err)
	}
}

// Package admin parses console flags and launches the admin web server.
package admin

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	entrypoint "github.com/louisbranch/crm-console/internal/platform/cmd"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/services/admin"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr     string        `env:"CRM_CONSOLE_ADMIN_ADDR" envDefault:":8082"`
	UsersAPIURL  string        `env:"CRM_CONSOLE_USERS_API_URL" envDefault:"http://localhost:8090"`
	UsersTimeout time.Duration `env:"CRM_CONSOLE_USERS_TIMEOUT" envDefault:"5s"`
	SessionTTL   time.Duration `env:"CRM_CONSOLE_VIEW_SESSION_TTL" envDefault:"30m"`
	entrypoint.LogConfig
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.UsersAPIURL, "users-api-url", cfg.UsersAPIURL, "base URL of the users API")
	fs.DurationVar(&cfg.UsersTimeout, "users-timeout", cfg.UsersTimeout, "timeout for one users API request")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle lifetime of a browser view session")
	cfg.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the admin console.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.NewLogger(entrypoint.ServiceAdmin, os.Stderr)
	ctx = logger.ContextWithLogger(ctx, log)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, admin.Config{
			HTTPAddr:     cfg.HTTPAddr,
			UsersAPIURL:  cfg.UsersAPIURL,
			UsersTimeout: cfg.UsersTimeout,
			SessionTTL:   cfg.SessionTTL,
			Logger:       log,
		})
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}

// Package directory parses directory flags and launches the users API.
package directory

import (
	"context"
	"flag"
	"fmt"
	"os"

	entrypoint "github.com/louisbranch/crm-console/internal/platform/cmd"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/services/directory"
)

// Config holds the directory command configuration.
type Config struct {
	HTTPAddr  string `env:"CRM_CONSOLE_DIRECTORY_ADDR" envDefault:":8090"`
	DBPath    string `env:"CRM_CONSOLE_DIRECTORY_DB_PATH" envDefault:"data/directory.db"`
	SeedUsers int    `env:"CRM_CONSOLE_DIRECTORY_SEED_USERS" envDefault:"42"`
	entrypoint.LogConfig
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the sqlite database")
	fs.IntVar(&cfg.SeedUsers, "seed-users", cfg.SeedUsers, "sample users to create in an empty database (0 = none)")
	cfg.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SeedUsers < 0 {
		return Config{}, fmt.Errorf("-seed-users must be >= 0")
	}
	return cfg, nil
}

// Run starts the directory users API.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.NewLogger(entrypoint.ServiceDirectory, os.Stderr)
	ctx = logger.ContextWithLogger(ctx, log)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDirectory, func(ctx context.Context) error {
		server, err := directory.NewServer(ctx, directory.Config{
			HTTPAddr:  cfg.HTTPAddr,
			DBPath:    cfg.DBPath,
			SeedUsers: cfg.SeedUsers,
			Logger:    log,
		})
		if err != nil {
			return fmt.Errorf("init directory server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve directory: %w", err)
		}
		return nil
	})
}

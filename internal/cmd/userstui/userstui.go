// Package userstui parses terminal client flags and runs the users table.
package userstui

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/crm-console/internal/platform/cmd"
	"github.com/louisbranch/crm-console/internal/services/shared/usersapi"
	"github.com/louisbranch/crm-console/internal/services/userstui"
)

// Config holds the terminal client configuration.
type Config struct {
	UsersAPIURL  string        `env:"CRM_CONSOLE_USERS_API_URL" envDefault:"http://localhost:8090"`
	UsersTimeout time.Duration `env:"CRM_CONSOLE_USERS_TIMEOUT" envDefault:"5s"`
	// LogFile receives logs; the terminal belongs to the table. Empty discards.
	LogFile string `env:"CRM_CONSOLE_TUI_LOG_FILE"`
	entrypoint.LogConfig
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.UsersAPIURL, "users-api-url", cfg.UsersAPIURL, "base URL of the users API")
	fs.DurationVar(&cfg.UsersTimeout, "users-timeout", cfg.UsersTimeout, "timeout for one users API request")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	cfg.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run shows the users table until the user quits.
func Run(ctx context.Context, cfg Config) error {
	out, closeOut, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeOut()
	log := cfg.NewLogger(entrypoint.ServiceUsersTUI, out)

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceUsersTUI, func(ctx context.Context) error {
		client, err := usersapi.New(usersapi.Config{
			BaseURL: cfg.UsersAPIURL,
			Timeout: cfg.UsersTimeout,
			Logger:  log,
		})
		if err != nil {
			return fmt.Errorf("users api client: %w", err)
		}
		return userstui.Run(ctx, client, log)
	})
}

func openLogOutput(path string) (io.Writer, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return io.Discard, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// Package cmd holds the startup plumbing shared by console processes.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/crm-console/internal/platform/config"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers for command startup telemetry and log prefixes.
const (
	ServiceAdmin     = "admin"
	ServiceDirectory = "directory"
	ServiceUsersTUI  = "userstui"
)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// LogConfig is the logging section embedded in every command config.
type LogConfig struct {
	LogLevel string `env:"CRM_CONSOLE_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"CRM_CONSOLE_LOG_JSON" envDefault:"false"`
}

// BindFlags registers the logging flags on fs.
func (c *LogConfig) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error, disabled")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "emit JSON logs")
}

// NewLogger builds the process logger, prefixed with the upper-cased service
// name.
func (c LogConfig) NewLogger(service string, out io.Writer) logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(c.LogLevel)
	cfg.JSON = c.LogJSON
	cfg.Prefix = "[" + strings.ToUpper(strings.TrimSpace(service)) + "]"
	if out != nil {
		cfg.Output = out
	}
	return logger.NewLogger(cfg)
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures observability and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures observability and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}

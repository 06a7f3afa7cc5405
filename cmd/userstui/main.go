// Package main runs the users table in the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	userstuicmd "github.com/louisbranch/crm-console/internal/cmd/userstui"
	"github.com/louisbranch/crm-console/internal/platform/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("load .env: %v", err)
	}
	cfg, err := userstuicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := userstuicmd.Run(ctx, cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}

package userstui

import (
	"flag"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("userstui", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.UsersAPIURL != "http://localhost:8090" {
		t.Fatalf("expected default users api url, got %q", cfg.UsersAPIURL)
	}
	if cfg.UsersTimeout != 5*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.UsersTimeout)
	}
	if cfg.LogFile != "" {
		t.Fatalf("expected no log file, got %q", cfg.LogFile)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CRM_CONSOLE_TUI_LOG_FILE", "env.log")
	fs := flag.NewFlagSet("userstui", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-users-api-url", "http://flag-users"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.UsersAPIURL != "http://flag-users" {
		t.Fatalf("expected flag users api url, got %q", cfg.UsersAPIURL)
	}
	if cfg.LogFile != "env.log" {
		t.Fatalf("expected env log file, got %q", cfg.LogFile)
	}
}

func TestOpenLogOutput(t *testing.T) {
	out, closeOut, err := openLogOutput("")
	if err != nil {
		t.Fatalf("open discard: %v", err)
	}
	if out != io.Discard {
		t.Fatal("expected discard writer for empty path")
	}
	closeOut()

	out, closeOut, err = openLogOutput(filepath.Join(t.TempDir(), "tui.log"))
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, err := out.Write([]byte("line\n")); err != nil {
		t.Fatalf("write log: %v", err)
	}
	closeOut()

	if _, _, err := openLogOutput(filepath.Join(t.TempDir(), "missing", "tui.log")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

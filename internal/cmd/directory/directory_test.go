package directory

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "data/directory.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.SeedUsers != 42 {
		t.Fatalf("expected default seed count, got %d", cfg.SeedUsers)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CRM_CONSOLE_DIRECTORY_DB_PATH", "/tmp/env.db")
	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9999", "-seed-users", "0"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.SeedUsers != 0 {
		t.Fatalf("expected flag seed count, got %d", cfg.SeedUsers)
	}
}

func TestParseConfigRejectsNegativeSeed(t *testing.T) {
	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-seed-users", "-1"}); err == nil {
		t.Fatal("expected error for negative seed count")
	}
}

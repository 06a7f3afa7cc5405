package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/services/shared/usersapi"
)

func TestNewServerRequiresAddress(t *testing.T) {
	if _, err := NewServer(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "d.db")}); err == nil {
		t.Fatal("expected error for empty http address")
	}
}

func TestNewServerRequiresDBPath(t *testing.T) {
	if _, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestNewServerSeedsAndServesUsers(t *testing.T) {
	server, err := NewServer(context.Background(), Config{
		HTTPAddr:  "127.0.0.1:0",
		DBPath:    filepath.Join(t.TempDir(), "nested", "directory.db"),
		SeedUsers: 12,
		Logger:    logger.Nop(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	var payload []userJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(payload) != 12 {
		t.Fatalf("len = %d, want 12", len(payload))
	}
	if payload[0].UserID != SeedUser(0).UserID {
		t.Fatalf("first user = %+v, want oldest seed user", payload[0])
	}
}

func TestUsersAPIClientReadsDirectory(t *testing.T) {
	server, err := NewServer(context.Background(), Config{
		HTTPAddr:  "127.0.0.1:0",
		DBPath:    filepath.Join(t.TempDir(), "directory.db"),
		SeedUsers: 3,
		Logger:    logger.Nop(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	client, err := usersapi.New(usersapi.Config{BaseURL: ts.URL, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("usersapi.New() error = %v", err)
	}
	users, err := client.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("FetchUsers() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len = %d, want 3", len(users))
	}
	want := SeedUser(1)
	got := users[1]
	if got.UserID != want.UserID || got.Username != want.Username || got.Email != want.Email || got.Role != want.Role || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("user = %+v, want %+v", got, want)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	server, err := NewServer(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "directory.db"),
		Logger:   logger.Nop(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

package usersapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/requestctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{BaseURL: server.URL + "/", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return client
}

func TestFetchUsers(t *testing.T) {
	t.Run("Should decode the users array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/users", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"user_id": 7, "username": "ana", "email": "ana@example.com", "role": "admin", "created_at": "2024-03-01 10:00:00"},
				{"user_id": "b2", "username": "bo", "email": null, "created_at": "2024-03-02T09:30:00Z"},
				{"user_id": "c3"}
			]`))
		})

		users, err := client.FetchUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "7", users[0].UserID)
		assert.Equal(t, "admin", users[0].Role)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), users[0].CreatedAt)
		assert.Equal(t, "", users[1].Email)
		assert.Equal(t, time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC), users[1].CreatedAt)
		assert.True(t, users[2].CreatedAt.IsZero())
	})

	t.Run("Should return an empty slice for an empty array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		users, err := client.FetchUsers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("Should forward the request id from context", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "req-7", r.Header.Get(requestctx.HeaderRequestID))
			_, _ = w.Write([]byte(`[]`))
		})
		ctx := requestctx.WithRequestID(context.Background(), "req-7")
		_, err := client.FetchUsers(ctx)
		require.NoError(t, err)
	})

	t.Run("Should report unavailable on non-2xx status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		})
		_, err := client.FetchUsers(context.Background())
		require.Error(t, err)
		assert.True(t, platformerrors.IsCode(err, platformerrors.CodeUsersUnavailable))
		domainErr, ok := platformerrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "503", domainErr.Metadata["status"])
	})

	t.Run("Should report malformed when body is not an array", func(t *testing.T) {
		for _, body := range []string{`{"users": []}`, `null`, `not json`} {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := client.FetchUsers(context.Background())
			assert.True(t, platformerrors.IsCode(err, platformerrors.CodeUsersMalformed), "body %s: %v", body, err)
		}
	})

	t.Run("Should report malformed entries with their index", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"user_id": "a"}, {"username": "missing id"}]`))
		})
		_, err := client.FetchUsers(context.Background())
		require.True(t, platformerrors.IsCode(err, platformerrors.CodeUsersMalformed))
		domainErr, _ := platformerrors.As(err)
		assert.Equal(t, "1", domainErr.Metadata["index"])
	})

	t.Run("Should keep rows whose created_at is not recognized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[
				{"user_id": "a", "username": "ana", "created_at": "yesterday"},
				{"user_id": "b", "created_at": 1709287200},
				{"user_id": "c", "created_at": ""}
			]`))
		})
		users, err := client.FetchUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "ana", users[0].Username)
		for _, user := range users {
			assert.True(t, user.CreatedAt.IsZero(), "user %s created_at = %v", user.UserID, user.CreatedAt)
		}
	})

	t.Run("Should decode bodies served without a JSON content type", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(`[{"user_id": "a"}]`))
		})
		users, err := client.FetchUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "a", users[0].UserID)
	})

	t.Run("Should report canceled when the context ends", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		t.Cleanup(func() { close(release) })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.FetchUsers(ctx)
		assert.True(t, platformerrors.IsCode(err, platformerrors.CodeUsersCanceled), "err = %v", err)
	})

	t.Run("Should report unavailable when the server is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()
		client, err := New(Config{BaseURL: url})
		require.NoError(t, err)
		_, err = client.FetchUsers(context.Background())
		assert.True(t, platformerrors.IsCode(err, platformerrors.CodeUsersUnavailable))
	})
}

func TestNewValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "http://", "://bad"} {
		_, err := New(Config{BaseURL: raw})
		assert.Error(t, err, "base URL %q", raw)
	}
	_, err := New(Config{BaseURL: "https://crm.example.com/api"})
	assert.NoError(t, err)
}

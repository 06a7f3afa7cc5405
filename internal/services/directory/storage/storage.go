package storage

import (
	"context"

	"github.com/louisbranch/crm-console/internal/core/usertable"
)

// UserStore reads and writes user records.
type UserStore interface {
	// ListUsers returns every user ordered by creation time then id.
	ListUsers(ctx context.Context) ([]usertable.UserRecord, error)
	// PutUser inserts or replaces a user by id.
	PutUser(ctx context.Context, user usertable.UserRecord) error
	CountUsers(ctx context.Context) (int, error)
}

// Store is a composite interface for directory storage concerns.
type Store interface {
	UserStore
	Close() error
}

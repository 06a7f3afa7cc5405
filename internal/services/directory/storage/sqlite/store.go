package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/crm-console/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/crm-console/internal/services/directory/storage"
	"github.com/louisbranch/crm-console/internal/services/directory/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides a SQLite-backed store implementing directory storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ListUsers returns all users ordered by created_at then user_id. Users
// without a creation time sort first.
func (s *Store) ListUsers(ctx context.Context) ([]usertable.UserRecord, error) {
	if s == nil || s.sqlDB == nil {
		return nil, platformerrors.New(platformerrors.CodeStorageUnavailable, "storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT user_id, username, email, role, created_at
FROM users
ORDER BY created_at, user_id`)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorageUnavailable, "list users", err)
	}
	defer rows.Close()

	users := []usertable.UserRecord{}
	for rows.Next() {
		var (
			user      usertable.UserRecord
			createdAt sql.NullInt64
		)
		if err := rows.Scan(&user.UserID, &user.Username, &user.Email, &user.Role, &createdAt); err != nil {
			return nil, platformerrors.Wrap(platformerrors.CodeStorageUnavailable, "scan user", err)
		}
		if createdAt.Valid {
			user.CreatedAt = time.UnixMilli(createdAt.Int64).UTC()
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorageUnavailable, "iterate users", err)
	}
	return users, nil
}

// PutUser inserts or replaces a user record.
func (s *Store) PutUser(ctx context.Context, user usertable.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return platformerrors.New(platformerrors.CodeStorageUnavailable, "storage is not configured")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	var createdAt sql.NullInt64
	if !user.CreatedAt.IsZero() {
		createdAt = sql.NullInt64{Int64: user.CreatedAt.UTC().UnixMilli(), Valid: true}
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO users (user_id, username, email, role, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    username = excluded.username,
    email = excluded.email,
    role = excluded.role,
    created_at = excluded.created_at`,
		user.UserID, user.Username, user.Email, user.Role, createdAt,
	)
	if err != nil {
		return platformerrors.WrapWithMetadata(
			platformerrors.CodeStorageUnavailable,
			"put user",
			map[string]string{"user_id": user.UserID},
			err,
		)
	}
	return nil
}

// CountUsers returns the number of stored users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, platformerrors.New(platformerrors.CodeStorageUnavailable, "storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, platformerrors.Wrap(platformerrors.CodeStorageUnavailable, "count users", err)
	}
	return count, nil
}

var _ storage.Store = (*Store)(nil)

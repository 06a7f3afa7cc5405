package usertable

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
)

// UserRecord is one row of the users table as returned by the users API.
type UserRecord struct {
	UserID    string    `json:"user_id" validate:"required"`
	Username  string    `json:"username" validate:"max=256"`
	Email     string    `json:"email" validate:"max=320"`
	Role      string    `json:"role" validate:"max=64"`
	CreatedAt time.Time `json:"created_at"`
}

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether the record can be shown and selected.
func (r UserRecord) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return platformerrors.New(platformerrors.CodeUsersMalformed, "user_id is required")
	}
	if err := recordValidator.Struct(r); err != nil {
		return platformerrors.Wrap(platformerrors.CodeUsersMalformed, "invalid user record", err)
	}
	return nil
}

// ValidateRows checks every record and rejects duplicate identifiers.
func ValidateRows(rows []UserRecord) error {
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return platformerrors.WrapWithMetadata(
				platformerrors.CodeUsersMalformed,
				"invalid user at index "+strconv.Itoa(i),
				map[string]string{"index": strconv.Itoa(i)},
				err,
			)
		}
		if _, ok := seen[row.UserID]; ok {
			return platformerrors.WithMetadata(
				platformerrors.CodeUsersMalformed,
				"duplicate user_id "+row.UserID,
				map[string]string{"index": strconv.Itoa(i), "user_id": row.UserID},
			)
		}
		seen[row.UserID] = struct{}{}
	}
	return nil
}

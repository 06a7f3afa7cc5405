package usersapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
)

// createdAtLayouts lists the timestamp shapes accepted for created_at.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type wireUser struct {
	UserID    json.RawMessage `json:"user_id"`
	Username  *string         `json:"username"`
	Email     *string         `json:"email"`
	Role      *string         `json:"role"`
	CreatedAt json.RawMessage `json:"created_at"`
}

// record converts the wire entry. createdAtOK is false when created_at was
// present but not a recognized timestamp; the record then has a zero
// CreatedAt and renders an empty cell.
func (w wireUser) record() (user usertable.UserRecord, createdAtOK bool, err error) {
	id, err := decodeID(w.UserID)
	if err != nil {
		return usertable.UserRecord{}, false, err
	}
	createdAt, createdAtOK := parseCreatedAt(w.CreatedAt)
	return usertable.UserRecord{
		UserID:    id,
		Username:  deref(w.Username),
		Email:     deref(w.Email),
		Role:      deref(w.Role),
		CreatedAt: createdAt,
	}, createdAtOK, nil
}

// decodeID accepts a JSON string or number.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("user_id is required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("user_id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("user_id must be a string or number")
	}
	return n.String(), nil
}

// parseCreatedAt reports false for values that are neither empty, null,
// nor a string in one of createdAtLayouts.
func parseCreatedAt(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, true
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

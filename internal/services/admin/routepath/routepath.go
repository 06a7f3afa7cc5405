// Package routepath names every URL served by the admin console.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Users          = "/users"
	UsersTable     = "/users/table"
	UsersSelectAll = "/users/select-all"
	UsersToggle    = "/users/toggle"
	UsersPage      = "/users/page"
	UsersPageSize  = "/users/page-size"
	UsersReload    = "/users/reload"
	UsersPrefix    = "/users/"
)

// UserDetail is the edit target for one user row.
func UserDetail(userID string) string {
	return Users + "/" + escapeSegment(userID)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}

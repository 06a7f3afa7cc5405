// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Users API errors
	CodeUsersUnavailable Code = "USERS_UNAVAILABLE"
	CodeUsersMalformed   Code = "USERS_MALFORMED"
	CodeUsersCanceled    Code = "USERS_CANCELED"

	// Storage errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUsersMalformed:
		return http.StatusBadGateway
	case CodeUsersUnavailable, CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case CodeUsersCanceled:
		// nginx's "client closed request"; there is no stdlib constant.
		return 499
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey returns the catalog key for the user-facing message of c.
func (c Code) MessageKey() string {
	if c == "" {
		c = CodeUnknown
	}
	return "errors." + string(c)
}

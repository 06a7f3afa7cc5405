// Package requestctx carries per-request values across package boundaries.
package requestctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID is the header that carries the request id between services.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// requestIDContextKey is the context key for the request correlation id.
type requestIDContextKey struct{}

// WithRequestID stores a request identifier in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the request identifier stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// EnsureRequestID returns incoming when it is a usable id, or a new one.
func EnsureRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" || len(incoming) > maxRequestIDLength || strings.ContainsAny(incoming, "\r\n") {
		return uuid.NewString()
	}
	return incoming
}

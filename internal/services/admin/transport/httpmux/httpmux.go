// Package httpmux assembles the admin root mux from static assets and the
// console routes.
package httpmux

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/platform/requestctx"
	routepath "github.com/louisbranch/crm-console/internal/services/admin/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withStaticMime != nil {
		staticHandler = withStaticMime(staticHandler)
	}
	rootMux.Handle("GET "+routepath.StaticPrefix, staticHandler)
}

// MountAdminRoutes mounts admin application routes under root path.
func MountAdminRoutes(rootMux *http.ServeMux, adminMux *http.ServeMux) {
	if rootMux == nil || adminMux == nil {
		return
	}
	rootMux.Handle(routepath.Root, adminMux)
}

// WithStaticCache marks embedded assets as cacheable for an hour.
func WithStaticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

// WithRequestLog tags each request with a request id, carries it and a
// request-scoped logger on the context, and logs one line per request at
// debug level, or warn level for server errors.
func WithRequestLog(log logger.Logger, next http.Handler) http.Handler {
	if log == nil || next == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := requestctx.EnsureRequestID(r.Header.Get(requestctx.HeaderRequestID))
		w.Header().Set(requestctx.HeaderRequestID, requestID)
		reqLog := log.With("request_id", requestID)
		ctx := requestctx.WithRequestID(r.Context(), requestID)
		ctx = logger.ContextWithLogger(ctx, reqLog)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		keyvals := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		}
		if rec.status >= http.StatusInternalServerError {
			reqLog.Warn("request failed", keyvals...)
			return
		}
		reqLog.Debug("request", keyvals...)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

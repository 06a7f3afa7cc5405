package directory

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/services/directory/storage"
)

// userJSON is the wire form of a user. Missing timestamps are sent as null.
type userJSON struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt *string `json:"created_at"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler serves the directory HTTP API.
type Handler struct {
	store storage.UserStore
	log   logger.Logger
	mux   *http.ServeMux
}

// NewHandler wires the directory routes over store.
func NewHandler(store storage.UserStore, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{store: store, log: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /users", h.handleListUsers)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, platformerrors.New(platformerrors.CodeStorageUnavailable, "storage is not configured"))
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	payload := make([]userJSON, 0, len(users))
	for _, user := range users {
		payload = append(payload, toUserJSON(user))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := platformerrors.CodeOf(err)
	h.log.Error("list users failed", "code", code, "error", err)
	writeJSON(w, code.HTTPStatus(), errorJSON{Code: string(code), Message: http.StatusText(code.HTTPStatus())})
}

func toUserJSON(user usertable.UserRecord) userJSON {
	out := userJSON{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if !user.CreatedAt.IsZero() {
		value := user.CreatedAt.UTC().Format(time.RFC3339)
		out.CreatedAt = &value
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

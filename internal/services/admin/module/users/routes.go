// Package users mounts the users table routes on the admin mux.
package users

import (
	"net/http"
	"strings"

	routepath "github.com/louisbranch/crm-console/internal/services/admin/routepath"
	sharedroute "github.com/louisbranch/crm-console/internal/services/shared/route"
)

// Service defines users route handlers consumed by this route module.
type Service interface {
	HandleUsersPage(w http.ResponseWriter, r *http.Request)
	HandleUsersTable(w http.ResponseWriter, r *http.Request)
	HandleSelectAll(w http.ResponseWriter, r *http.Request)
	HandleToggleRow(w http.ResponseWriter, r *http.Request)
	HandleSetPage(w http.ResponseWriter, r *http.Request)
	HandleSetPageSize(w http.ResponseWriter, r *http.Request)
	HandleReload(w http.ResponseWriter, r *http.Request)
	HandleUserDetail(w http.ResponseWriter, r *http.Request, userID string)
}

// RegisterRoutes wires user routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc("GET "+routepath.Users, service.HandleUsersPage)
	mux.HandleFunc("GET "+routepath.UsersTable, service.HandleUsersTable)
	mux.HandleFunc("POST "+routepath.UsersSelectAll, service.HandleSelectAll)
	mux.HandleFunc("POST "+routepath.UsersToggle, service.HandleToggleRow)
	mux.HandleFunc("POST "+routepath.UsersPage, service.HandleSetPage)
	mux.HandleFunc("POST "+routepath.UsersPageSize, service.HandleSetPageSize)
	mux.HandleFunc("POST "+routepath.UsersReload, service.HandleReload)
	mux.HandleFunc("GET "+routepath.UsersPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleUserPath(w, r, service)
	})
}

// HandleUserPath parses user detail subroutes and dispatches to service handlers.
func HandleUserPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, routepath.UsersPrefix)
	parts := sharedroute.SplitPathParts(path)
	if len(parts) == 1 {
		service.HandleUserDetail(w, r, parts[0])
		return
	}
	http.NotFound(w, r)
}

package admin

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/crm-console/internal/services/admin/templates"
	sharedhtmx "github.com/louisbranch/crm-console/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

// isHTMXRequest reports whether the request originated from HTMX.
func isHTMXRequest(r *http.Request) bool {
	return sharedhtmx.IsHTMXRequest(r)
}

func htmxLocalizedPageTitle(loc *message.Printer, title string, args ...any) string {
	return sharedhtmx.TitleTag(templates.ComposePageTitle(templates.T(loc, title, args...), loc))
}

// renderPage renders page components with consistent HTMX and non-HTMX behavior.
func renderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	sharedhtmx.RenderPage(w, r, fragment, full, htmxTitle)
}

// renderPageWithStatus is renderPage answering with status.
func renderPageWithStatus(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component, full templ.Component, htmxTitle string) {
	sharedhtmx.RenderPageWithStatus(w, r, status, fragment, full, htmxTitle)
}

// renderFragment writes a component with the given status.
func renderFragment(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

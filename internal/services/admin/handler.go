package admin

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/services/admin/i18n"
	userroutes "github.com/louisbranch/crm-console/internal/services/admin/module/users"
	routepath "github.com/louisbranch/crm-console/internal/services/admin/routepath"
	"github.com/louisbranch/crm-console/internal/services/admin/templates"
	"github.com/louisbranch/crm-console/internal/services/admin/transport/httpmux"
	sharedhtmx "github.com/louisbranch/crm-console/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

// HandlerConfig tunes the admin handler.
type HandlerConfig struct {
	// SessionTTL is how long an idle view session keeps its table state.
	SessionTTL time.Duration
	Logger     logger.Logger
}

// Handler routes admin console requests.
type Handler struct {
	fetcher  usertable.Fetcher
	sessions *viewSessionStore
	log      logger.Logger
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(fetcher usertable.Fetcher) http.Handler {
	return NewHandlerWithConfig(fetcher, HandlerConfig{})
}

// NewHandlerWithConfig builds the HTTP handler with explicit settings.
func NewHandlerWithConfig(fetcher usertable.Fetcher, cfg HandlerConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	handler := &Handler{
		fetcher:  fetcher,
		sessions: newViewSessionStore(cfg.SessionTTL),
		log:      log,
	}
	return handler.routes()
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request) templates.PageContext {
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		Languages:    templates.LanguageOptions(lang, r.URL.Path, r.URL.RawQuery),
	}
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		sharedhtmx.Redirect(w, r, routepath.Users, http.StatusFound)
	})
	userroutes.RegisterRoutes(adminMux, h)

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, staticAssets(), httpmux.WithStaticCache)
	httpmux.MountAdminRoutes(rootMux, adminMux)
	return httpmux.WithRequestLog(h.log, rootMux)
}

func requireSameOrigin(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if r == nil {
		http.Error(w, loc.Sprintf("errors.csrf_invalid"), http.StatusForbidden)
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, loc.Sprintf("errors.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, loc.Sprintf("errors.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	http.Error(w, loc.Sprintf("errors.csrf_invalid"), http.StatusForbidden)
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func isHTTPS(r *http.Request) bool {
	return requestScheme(r) == "https"
}

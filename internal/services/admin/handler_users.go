package admin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/crm-console/internal/core/usertable"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	routepath "github.com/louisbranch/crm-console/internal/services/admin/routepath"
	"github.com/louisbranch/crm-console/internal/services/admin/templates"
	"golang.org/x/text/message"
)

const createdAtLayout = "2006-01-02"

// HandleUsersPage renders the users page. The table is lazily loaded until
// the session has mounted it.
func (h *Handler) HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	session := h.session(w, r)
	snapshot, loading := session.state()
	lazy := !snapshot.Loaded() && snapshot.Err() == nil
	view := buildUsersTableView(snapshot, loading, loc)

	renderPage(
		w, r,
		templates.UsersPage(view, lazy, loc),
		templates.UsersFullPage(view, lazy, h.pageContext(lang, loc, r)),
		htmxLocalizedPageTitle(loc, "title.users"),
	)
}

// HandleUsersTable renders the table fragment, running the initial load on
// the session's first visit.
func (h *Handler) HandleUsersTable(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	session := h.session(w, r)
	if session.claimMount() {
		h.loadUsers(r.Context(), session)
	}
	h.renderUsersTable(w, r, session, loc)
}

// HandleSelectAll selects or clears every loaded row.
func (h *Handler) HandleSelectAll(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	checked, err := strconv.ParseBool(strings.TrimSpace(r.FormValue("checked")))
	if err != nil {
		http.Error(w, loc.Sprintf("errors.bad_request"), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, loc, func(s usertable.Snapshot) usertable.Snapshot {
		return s.ToggleSelectAll(checked)
	})
}

// HandleToggleRow flips one row's selection.
func (h *Handler) HandleToggleRow(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		http.Error(w, loc.Sprintf("errors.bad_request"), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, loc, func(s usertable.Snapshot) usertable.Snapshot {
		return s.ToggleRow(userID)
	})
}

// HandleSetPage moves to another page.
func (h *Handler) HandleSetPage(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	page, err := strconv.Atoi(strings.TrimSpace(r.FormValue("page")))
	if err != nil {
		http.Error(w, loc.Sprintf("errors.bad_request"), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, loc, func(s usertable.Snapshot) usertable.Snapshot {
		return s.SetPage(page)
	})
}

// HandleSetPageSize changes the rows per page.
func (h *Handler) HandleSetPageSize(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	size, err := strconv.Atoi(strings.TrimSpace(r.FormValue("size")))
	if err != nil {
		http.Error(w, loc.Sprintf("errors.bad_request"), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, loc, func(s usertable.Snapshot) usertable.Snapshot {
		return s.SetPageSize(size)
	})
}

// HandleReload fetches the user list again.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	session := h.session(w, r)
	session.claimMount()
	h.loadUsers(r.Context(), session)
	h.respondTable(w, r, session, loc)
}

// HandleUserDetail renders the edit target for one loaded user.
func (h *Handler) HandleUserDetail(w http.ResponseWriter, r *http.Request, userID string) {
	loc, lang := h.localizer(w, r)
	session := h.session(w, r)
	if session.claimMount() {
		h.loadUsers(r.Context(), session)
	}
	snapshot, _ := session.state()

	view := templates.UserDetailView{ID: userID}
	status := http.StatusOK
	if row, ok := snapshot.Row(userID); ok {
		view = templates.UserDetailView{
			Found:     true,
			ID:        row.UserID,
			Username:  row.Username,
			Email:     row.Email,
			Role:      row.Role,
			CreatedAt: formatCreatedAt(row),
		}
	} else {
		status = platformerrors.CodeNotFound.HTTPStatus()
		view.Message = loc.Sprintf("users.detail.not_found", userID)
	}

	renderPageWithStatus(
		w, r, status,
		templates.UserDetailPage(view, loc),
		templates.UserDetailFullPage(view, h.pageContext(lang, loc, r)),
		htmxLocalizedPageTitle(loc, "title.user", userID),
	)
}

// loadUsers runs the loader for session and stores the result unless the
// request was canceled or the session disposed meanwhile.
func (h *Handler) loadUsers(ctx context.Context, session *viewSession) {
	log := h.requestLog(ctx)
	current, _ := session.state()
	outcome := usertable.NewLoader(h.fetcher, session, log).Load(ctx, current)
	if outcome.Canceled {
		session.unmount()
		return
	}
	if !session.update(outcome.ApplyTo) {
		log.Debug("discarding users load for disposed view session")
	}
}

// requestLog prefers the request-scoped logger set by the request log
// middleware.
func (h *Handler) requestLog(ctx context.Context) logger.Logger {
	if log, ok := ctx.Value(logger.LoggerCtxKey).(logger.Logger); ok && log != nil {
		return log
	}
	return h.log
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, loc *message.Printer, fn func(usertable.Snapshot) usertable.Snapshot) {
	session := h.session(w, r)
	session.update(fn)
	h.respondTable(w, r, session, loc)
}

// respondTable answers HTMX with the table fragment and plain form posts
// with a redirect back to the users page.
func (h *Handler) respondTable(w http.ResponseWriter, r *http.Request, session *viewSession, loc *message.Printer) {
	if !isHTMXRequest(r) {
		http.Redirect(w, r, routepath.Users, http.StatusSeeOther)
		return
	}
	h.renderUsersTable(w, r, session, loc)
}

func (h *Handler) renderUsersTable(w http.ResponseWriter, r *http.Request, session *viewSession, loc *message.Printer) {
	snapshot, loading := session.state()
	renderFragment(w, r, http.StatusOK, templates.UsersTable(buildUsersTableView(snapshot, loading, loc), loc))
}

// buildUsersTableView derives everything the table renders from a snapshot.
func buildUsersTableView(snapshot usertable.Snapshot, loading bool, loc *message.Printer) templates.UsersTableView {
	view := templates.UsersTableView{Loading: loading}

	toolbar := snapshot.Toolbar()
	view.Toolbar = templates.ToolbarView{
		Title:       loc.Sprintf("users.toolbar.all"),
		Highlighted: toolbar.Highlighted,
		Action:      string(toolbar.Action),
		ActionLabel: loc.Sprintf("users.toolbar.filter"),
	}
	if toolbar.Selected > 0 {
		view.Toolbar.Title = loc.Sprintf("users.toolbar.selected", toolbar.Selected)
		view.Toolbar.ActionLabel = loc.Sprintf("users.toolbar.delete")
	}

	checkbox := snapshot.SelectAllCheckboxState()
	view.SelectAll = templates.CheckboxView{Checked: checkbox.Checked, Indeterminate: checkbox.Indeterminate}

	if err := snapshot.Err(); err != nil {
		view.ErrorMessage = loc.Sprintf(platformerrors.CodeOf(err).MessageKey())
	}

	visible := snapshot.VisibleSlice()
	view.Rows = make([]templates.UserRow, 0, len(visible))
	for _, row := range visible {
		view.Rows = append(view.Rows, templates.UserRow{
			ID:        row.UserID,
			Username:  row.Username,
			Email:     row.Email,
			Role:      row.Role,
			CreatedAt: formatCreatedAt(row),
			Selected:  snapshot.IsSelected(row.UserID),
		})
	}

	page := snapshot.Page()
	total := snapshot.Total()
	from, to := page.Displayed(total)
	view.Pagination = templates.PaginationView{
		RangeLabel: loc.Sprintf("pagination.range", from, to, total),
		Page:       page.Index,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(total),
	}
	for _, size := range usertable.PageSizes {
		view.Pagination.Sizes = append(view.Pagination.Sizes, templates.PageSizeOption{
			Value:    size,
			Selected: size == page.Size,
		})
	}
	return view
}

func formatCreatedAt(row usertable.UserRecord) string {
	if row.CreatedAt.IsZero() {
		return ""
	}
	return row.CreatedAt.Format(createdAtLayout)
}

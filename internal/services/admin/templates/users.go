package templates

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/crm-console/internal/platform/icons"
	routepath "github.com/louisbranch/crm-console/internal/services/admin/routepath"
)

// UsersTableID is the element swapped by every table action.
const UsersTableID = "users-table"

// UsersTableView is everything the users table renders.
type UsersTableView struct {
	Loading      bool
	ErrorMessage string
	Toolbar      ToolbarView
	SelectAll    CheckboxView
	Rows         []UserRow
	Pagination   PaginationView
}

// ToolbarView is the header strip above the table.
type ToolbarView struct {
	Title       string
	Highlighted bool
	// Action is "delete" or "filter"; neither is wired to a request.
	Action      string
	ActionLabel string
}

// CheckboxView is the tri-state select-all checkbox.
type CheckboxView struct {
	Checked       bool
	Indeterminate bool
}

// UserRow represents a row in the users table.
type UserRow struct {
	ID        string
	Username  string
	Email     string
	Role      string
	CreatedAt string
	Selected  bool
}

// PaginationView drives the table footer.
type PaginationView struct {
	Sizes      []PageSizeOption
	RangeLabel string
	Page       int
	HasPrev    bool
	HasNext    bool
}

// PageSizeOption is one entry of the rows-per-page select.
type PageSizeOption struct {
	Value    int
	Selected bool
}

// UserDetailView provides data for the user edit target page.
type UserDetailView struct {
	Found     bool
	Message   string
	ID        string
	Username  string
	Email     string
	Role      string
	CreatedAt string
}

// UsersPage renders the users page body. When lazy is set the table is
// fetched after the page loads.
func UsersPage(view UsersTableView, lazy bool, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="users-page"><h1>`)
		h.text(T(loc, "title.users"))
		h.raw(`</h1>`)
		if lazy {
			h.raw(`<div`)
			h.attr("id", UsersTableID)
			h.raw(`>`)
			h.render(LazyLoad(routepath.UsersTable, T(loc, "users.loading")))
			h.raw(`</div>`)
		} else {
			h.render(UsersTable(view, loc))
		}
		h.raw(`</section>`)
		return h.err
	})
}

// UsersFullPage renders the users page inside the layout.
func UsersFullPage(view UsersTableView, lazy bool, page PageContext) templ.Component {
	return Layout(page, T(page.Loc, "title.users"), UsersPage(view, lazy, page.Loc))
}

// UsersTable renders toolbar, table and pagination as one swappable block.
func UsersTable(view UsersTableView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div`)
		h.attr("id", UsersTableID)
		h.attr("class", "users-table")
		h.attr("hx-target", "this")
		h.attr("hx-swap", "outerHTML")
		if view.Loading {
			h.attr("aria-busy", "true")
			h.attr("hx-get", routepath.UsersTable)
			h.attr("hx-trigger", "load delay:1s")
		}
		h.raw(`>`)
		h.render(usersToolbar(view.Toolbar, loc))
		switch {
		case view.Loading:
			h.render(Loading(T(loc, "users.loading")))
		case view.ErrorMessage != "":
			h.raw(`<div class="alert alert-error" role="alert">`)
			h.text(view.ErrorMessage)
			h.raw(`</div>`)
		}
		if !view.Loading {
			h.render(usersGrid(view, loc))
			h.render(usersPagination(view.Pagination, loc))
		}
		h.raw(`</div>`)
		return h.err
	})
}

func usersToolbar(view ToolbarView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		class := "toolbar"
		if view.Highlighted {
			class += " toolbar-highlighted"
		}
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(`><h2 class="toolbar-title">`)
		h.text(view.Title)
		h.raw(`</h2><div class="toolbar-actions">`)
		h.raw(`<button type="button" class="btn btn-ghost"`)
		h.attr("data-action", view.Action)
		h.attr("title", view.ActionLabel)
		h.raw(`>`)
		h.render(Icon(icons.ID(view.Action)))
		h.text(view.ActionLabel)
		h.raw(`</button><button type="button" class="btn btn-ghost"`)
		h.attr("hx-post", routepath.UsersReload)
		h.raw(`>`)
		h.render(Icon(icons.Reload))
		h.text(T(loc, "users.toolbar.reload"))
		h.raw(`</button></div></div>`)
		return h.err
	})
}

func usersGrid(view UsersTableView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<table class="table"><thead><tr><th class="select"><input type="checkbox" name="checked"`)
		h.attr("aria-label", T(loc, "users.select_all"))
		h.boolAttr("checked", view.SelectAll.Checked)
		if view.SelectAll.Indeterminate {
			h.attr("data-indeterminate", "true")
		}
		h.attr("hx-post", routepath.UsersSelectAll)
		h.attr("hx-trigger", "change")
		h.attr("hx-vals", jsonVals(map[string]string{"checked": strconv.FormatBool(!view.SelectAll.Checked)}))
		h.raw(`></th>`)
		for _, key := range []string{"users.column.id", "users.column.username", "users.column.email", "users.column.role", "users.column.created_at"} {
			h.raw(`<th>`)
			h.text(T(loc, key))
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead><tbody>`)
		if len(view.Rows) == 0 {
			h.raw(`<tr class="empty"><td colspan="7">`)
			h.text(T(loc, "users.empty"))
			h.raw(`</td></tr>`)
		}
		for _, row := range view.Rows {
			h.render(userRow(row, loc))
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

func userRow(row UserRow, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		vals := jsonVals(map[string]string{"user_id": row.ID})
		h.raw(`<tr`)
		h.attr("role", "checkbox")
		h.attr("aria-checked", strconv.FormatBool(row.Selected))
		h.attr("tabindex", "-1")
		if row.Selected {
			h.attr("class", "selected")
		}
		h.attr("data-user-id", row.ID)
		h.attr("hx-post", routepath.UsersToggle)
		h.attr("hx-trigger", "click[!event.target.closest('a,button')]")
		h.attr("hx-vals", vals)
		h.raw(`><td class="select"><input type="checkbox" tabindex="-1"`)
		h.attr("aria-label", T(loc, "users.select_row", row.ID))
		h.boolAttr("checked", row.Selected)
		h.raw(`></td>`)
		for _, cell := range []string{row.ID, row.Username, row.Email, row.Role, row.CreatedAt} {
			h.raw(`<td>`)
			h.text(cell)
			h.raw(`</td>`)
		}
		h.raw(`<td class="row-actions"><a class="btn btn-ghost btn-sm"`)
		h.attr("href", routepath.UserDetail(row.ID))
		h.attr("hx-boost", "false")
		h.attr("title", T(loc, "users.action.edit"))
		h.raw(`>`)
		h.render(Icon(icons.Edit))
		h.raw(`<span class="sr-only">`)
		h.text(T(loc, "users.action.edit"))
		h.raw(`</span>`)
		h.raw(`</a><button type="button" class="btn btn-ghost btn-sm" data-action="delete"`)
		h.attr("title", T(loc, "users.action.delete"))
		h.raw(`>`)
		h.render(Icon(icons.Delete))
		h.raw(`<span class="sr-only">`)
		h.text(T(loc, "users.action.delete"))
		h.raw(`</span></button></td></tr>`)
		return h.err
	})
}

func usersPagination(view PaginationView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="pagination"><label>`)
		h.text(T(loc, "pagination.rows_per_page"))
		h.raw(` <select name="size"`)
		h.attr("hx-post", routepath.UsersPageSize)
		h.attr("hx-trigger", "change")
		h.raw(`>`)
		for _, size := range view.Sizes {
			value := strconv.Itoa(size.Value)
			h.raw(`<option`)
			h.attr("value", value)
			h.boolAttr("selected", size.Selected)
			h.raw(`>`)
			h.text(value)
			h.raw(`</option>`)
		}
		h.raw(`</select></label><span class="range">`)
		h.text(view.RangeLabel)
		h.raw(`</span>`)
		h.render(pageButton(view.Page-1, !view.HasPrev, T(loc, "pagination.prev"), icons.PrevPage))
		h.render(pageButton(view.Page+1, !view.HasNext, T(loc, "pagination.next"), icons.NextPage))
		h.raw(`</div>`)
		return h.err
	})
}

func pageButton(target int, disabled bool, label string, icon icons.ID) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<button type="button" class="btn btn-ghost btn-sm"`)
		h.attr("aria-label", label)
		h.boolAttr("disabled", disabled)
		h.attr("hx-post", routepath.UsersPage)
		h.attr("hx-vals", jsonVals(map[string]string{"page": strconv.Itoa(target)}))
		h.raw(`>`)
		h.render(Icon(icon))
		h.raw(`</button>`)
		return h.err
	})
}

// UserDetailPage renders the edit target of a single user.
func UserDetailPage(view UserDetailView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="user-detail"><a`)
		h.attr("href", routepath.Users)
		h.raw(`>`)
		h.text(T(loc, "users.detail.back"))
		h.raw(`</a>`)
		if !view.Found {
			h.raw(`<div class="alert alert-warning" role="alert">`)
			h.text(view.Message)
			h.raw(`</div></section>`)
			return h.err
		}
		h.raw(`<h1>`)
		h.text(T(loc, "title.user", view.Username))
		h.raw(`</h1><dl>`)
		fields := []struct{ key, value string }{
			{"users.column.id", view.ID},
			{"users.column.username", view.Username},
			{"users.column.email", view.Email},
			{"users.column.role", view.Role},
			{"users.column.created_at", view.CreatedAt},
		}
		for _, field := range fields {
			h.raw(`<dt>`)
			h.text(T(loc, field.key))
			h.raw(`</dt><dd>`)
			h.text(field.value)
			h.raw(`</dd>`)
		}
		h.raw(`</dl></section>`)
		return h.err
	})
}

// UserDetailFullPage renders the detail page inside the layout.
func UserDetailFullPage(view UserDetailView, page PageContext) templ.Component {
	title := T(page.Loc, "title.user", view.ID)
	if view.Found && view.Username != "" {
		title = T(page.Loc, "title.user", view.Username)
	}
	return Layout(page, title, UserDetailPage(view, page.Loc))
}

func jsonVals(values map[string]string) string {
	encoded, err := json.Marshal(values)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

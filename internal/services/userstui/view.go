package userstui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/i18n/catalog"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	highlightStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	actionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	deleteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
	createdAtDisplay = "2006-01-02"
)

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return styles
}

func buildColumns(state usertable.CheckboxState) []table.Column {
	return []table.Column{
		{Title: checkboxMark(state.Checked, state.Indeterminate), Width: 3},
		{Title: "ID", Width: 12},
		{Title: "Username", Width: 16},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 10},
		{Title: "Joined On", Width: 10},
	}
}

func buildRow(user usertable.UserRecord, selected bool) table.Row {
	createdAt := ""
	if !user.CreatedAt.IsZero() {
		createdAt = user.CreatedAt.Format(createdAtDisplay)
	}
	return table.Row{
		checkboxMark(selected, false),
		truncate(user.UserID, 12),
		user.Username,
		user.Email,
		user.Role,
		createdAt,
	}
}

func checkboxMark(checked, indeterminate bool) string {
	switch {
	case indeterminate:
		return "[-]"
	case checked:
		return "[x]"
	default:
		return "[ ]"
	}
}

// View renders the UI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var view strings.Builder
	view.WriteString(m.renderToolbar())
	view.WriteString("\n\n")

	switch {
	case m.Loading():
		fmt.Fprintf(&view, "  %s Loading users...\n", m.spinner.View())
	case m.snapshot.Err() != nil:
		view.WriteString(errorStyle.Render(errorMessage(m.snapshot.Err())))
		view.WriteString("\n")
	case m.snapshot.Loaded() && m.snapshot.Total() == 0:
		view.WriteString(mutedStyle.Render("No users found."))
		view.WriteString("\n")
	default:
		view.WriteString(m.table.View())
		view.WriteString("\n")
		view.WriteString(m.renderFooter())
	}

	view.WriteString("\n")
	view.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	view.WriteString("\n")
	return view.String()
}

func (m *Model) renderToolbar() string {
	toolbar := m.snapshot.Toolbar()
	if !toolbar.Highlighted {
		return titleStyle.Render("All Users") + "  " + actionStyle.Render("[filter]")
	}
	return highlightStyle.Render(fmt.Sprintf("%d selected", toolbar.Selected)) + "  " + deleteStyle.Render("[delete]")
}

func (m *Model) renderFooter() string {
	page := m.snapshot.Page()
	total := m.snapshot.Total()
	from, to := page.Displayed(total)
	status := fmt.Sprintf("Rows per page: %d   %d–%d of %d", page.Size, from, to, total)
	return mutedStyle.Render(status) + "   " + m.pager.View()
}

// errorMessage looks up the catalog text for the error's code.
func errorMessage(err error) string {
	bundle := catalog.Default()
	if text, ok := bundle.Message(catalog.BaseLocale, platformerrors.CodeOf(err).MessageKey()); ok {
		return text
	}
	text, _ := bundle.Message(catalog.BaseLocale, platformerrors.CodeUnknown.MessageKey())
	return text
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

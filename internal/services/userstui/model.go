package userstui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/platform/logger"
)

// usersLoadedMsg carries a finished load back to the update loop.
type usersLoadedMsg struct {
	outcome usertable.LoadOutcome
}

// Model is the bubbletea model for the users table.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	loader *usertable.Loader
	// loading is the signal the loader raises while a fetch is in flight.
	loading *usertable.LoadingFlag
	log     logger.Logger

	snapshot usertable.Snapshot
	table    table.Model
	spinner  spinner.Model
	pager    paginator.Model
	help     help.Model
	keys     KeyMap
	quitting bool
}

// NewModel builds a model that loads users through fetcher. Canceling ctx or
// quitting abandons any load in flight.
func NewModel(ctx context.Context, fetcher usertable.Fetcher, log logger.Logger) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)
	flag := &usertable.LoadingFlag{}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("•")

	snapshot := usertable.New()
	t := table.New(
		table.WithColumns(buildColumns(snapshot.SelectAllCheckboxState())),
		table.WithFocused(true),
		table.WithHeight(tableHeight(snapshot.Page().Size)),
	)
	t.SetStyles(tableStyles())

	return &Model{
		ctx:      ctx,
		cancel:   cancel,
		loader:   usertable.NewLoader(fetcher, flag, log),
		loading:  flag,
		log:      log,
		snapshot: snapshot,
		table:    t,
		spinner:  s,
		pager:    p,
		help:     help.New(),
		keys:     DefaultKeyMap(),
	}
}

// Snapshot returns the current table state.
func (m *Model) Snapshot() usertable.Snapshot {
	return m.snapshot
}

// Loading reports whether a fetch is in flight.
func (m *Model) Loading() bool {
	return m.loading.Loading()
}

// Init starts the spinner and the initial load.
func (m *Model) Init() tea.Cmd {
	return m.startLoad()
}

// startLoad raises the loading flag before the command runs so the first
// frame already shows the spinner.
func (m *Model) startLoad() tea.Cmd {
	m.loading.SetLoading(true)
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.snapshot))
}

func (m *Model) loadCmd(current usertable.Snapshot) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		return usersLoadedMsg{outcome: loader.Load(ctx, current)}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case usersLoadedMsg:
		if m.quitting || msg.outcome.Canceled {
			return m, nil
		}
		m.snapshot = msg.outcome.ApplyTo(m.snapshot)
		m.syncTable()
		return m, nil

	case spinner.TickMsg:
		if m.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		m.log.Debug("users table closed", "selected", m.snapshot.SelectedCount())
		return m, tea.Quit
	}
	if m.Loading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.startLoad()
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.cursorRow(); ok {
			m.apply(m.snapshot.ToggleRow(row.UserID))
		}
		return m, nil
	case key.Matches(msg, m.keys.SelectAll):
		m.apply(m.snapshot.ToggleSelectAll(!m.snapshot.SelectAllCheckboxState().Checked))
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if m.snapshot.Page().HasPrev() {
			m.apply(m.snapshot.SetPage(m.snapshot.Page().Index - 1))
			m.table.SetCursor(0)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if m.snapshot.Page().HasNext(m.snapshot.Total()) {
			m.apply(m.snapshot.SetPage(m.snapshot.Page().Index + 1))
			m.table.SetCursor(0)
		}
		return m, nil
	case key.Matches(msg, m.keys.PageSize):
		m.apply(m.snapshot.SetPageSize(nextPageSize(m.snapshot.Page().Size)))
		m.table.SetCursor(0)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) apply(next usertable.Snapshot) {
	m.snapshot = next
	m.syncTable()
}

// cursorRow returns the record under the table cursor.
func (m *Model) cursorRow() (usertable.UserRecord, bool) {
	visible := m.snapshot.VisibleSlice()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(visible) {
		return usertable.UserRecord{}, false
	}
	return visible[cursor], true
}

// syncTable rebuilds the bubbles table and paginator from the snapshot.
func (m *Model) syncTable() {
	page := m.snapshot.Page()
	total := m.snapshot.Total()
	visible := m.snapshot.VisibleSlice()

	rows := make([]table.Row, 0, len(visible))
	for _, user := range visible {
		rows = append(rows, buildRow(user, m.snapshot.IsSelected(user.UserID)))
	}
	m.table.SetColumns(buildColumns(m.snapshot.SelectAllCheckboxState()))
	m.table.SetRows(rows)
	m.table.SetHeight(tableHeight(page.Size))
	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.pager.PerPage = page.Size
	m.pager.TotalPages = max(page.PageCount(total), 1)
	m.pager.Page = page.Index
}

func nextPageSize(current int) int {
	for i, size := range usertable.PageSizes {
		if size == current {
			return usertable.PageSizes[(i+1)%len(usertable.PageSizes)]
		}
	}
	return usertable.DefaultPageSize
}

// tableHeight fits one page of rows below the header and its border.
func tableHeight(pageSize int) int {
	return pageSize + 2
}

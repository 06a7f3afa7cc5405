package userstui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUsers(n int) []usertable.UserRecord {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	users := make([]usertable.UserRecord, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, usertable.UserRecord{
			UserID:    fmt.Sprintf("u%d", i),
			Username:  fmt.Sprintf("user%d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Role:      "viewer",
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return users
}

func staticFetcher(users []usertable.UserRecord, err error) usertable.Fetcher {
	return usertable.FetcherFunc(func(context.Context) ([]usertable.UserRecord, error) {
		return users, err
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
	leftKey  = tea.KeyMsg{Type: tea.KeyLeft}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

// loadedModel returns a model whose initial load has completed.
func loadedModel(t *testing.T, fetcher usertable.Fetcher) *Model {
	t.Helper()
	m := NewModel(context.Background(), fetcher, nil)
	t.Cleanup(m.cancel)
	m.Init()
	m.Update(m.loadCmd(m.snapshot)())
	require.False(t, m.Loading())
	return m
}

func TestInitShowsSpinnerUntilLoaded(t *testing.T) {
	m := NewModel(context.Background(), staticFetcher(sampleUsers(2), nil), nil)
	defer m.cancel()

	require.NotNil(t, m.Init())
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading users...")

	m.Update(m.loadCmd(m.snapshot)())
	assert.False(t, m.Loading())
	view := m.View()
	assert.Contains(t, view, "All Users")
	assert.Contains(t, view, "user1")
	assert.Contains(t, view, "1–2 of 2")
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	m := NewModel(context.Background(), staticFetcher(sampleUsers(2), nil), nil)
	defer m.cancel()
	m.Init()

	_, cmd := m.Update(runes("a"))
	assert.Nil(t, cmd)
	assert.Zero(t, m.Snapshot().SelectedCount())
}

func TestSpaceTogglesCursorRow(t *testing.T) {
	m := loadedModel(t, staticFetcher(sampleUsers(3), nil))

	m.Update(spaceKey)
	assert.True(t, m.Snapshot().IsSelected("u1"))
	assert.Contains(t, m.View(), "1 selected")
	assert.Contains(t, m.View(), "[delete]")

	m.Update(spaceKey)
	assert.False(t, m.Snapshot().IsSelected("u1"))
	assert.Contains(t, m.View(), "All Users")
}

func TestSelectAllThenDeselectOneIsIndeterminate(t *testing.T) {
	m := loadedModel(t, staticFetcher(sampleUsers(3), nil))

	m.Update(runes("a"))
	assert.Equal(t, 3, m.Snapshot().SelectedCount())
	assert.Equal(t, usertable.CheckboxState{Checked: true}, m.Snapshot().SelectAllCheckboxState())

	m.Update(downKey)
	m.Update(spaceKey)
	assert.False(t, m.Snapshot().IsSelected("u2"))
	assert.Equal(t, usertable.CheckboxState{Indeterminate: true}, m.Snapshot().SelectAllCheckboxState())
	assert.Contains(t, m.View(), "[-]")

	m.Update(runes("a"))
	assert.Equal(t, 3, m.Snapshot().SelectedCount())
	m.Update(runes("a"))
	assert.Zero(t, m.Snapshot().SelectedCount())
}

func TestPagingKeys(t *testing.T) {
	m := loadedModel(t, staticFetcher(sampleUsers(7), nil))

	m.Update(rightKey)
	assert.Equal(t, 1, m.Snapshot().Page().Index)
	assert.Len(t, m.Snapshot().VisibleSlice(), 2)
	assert.Contains(t, m.View(), "6–7 of 7")

	m.Update(rightKey)
	assert.Equal(t, 1, m.Snapshot().Page().Index, "next on last page is a no-op")

	m.Update(spaceKey)
	assert.True(t, m.Snapshot().IsSelected("u6"))

	m.Update(leftKey)
	assert.Equal(t, 0, m.Snapshot().Page().Index)
	m.Update(leftKey)
	assert.Equal(t, 0, m.Snapshot().Page().Index)
}

func TestPageSizeCyclesAndResetsPage(t *testing.T) {
	m := loadedModel(t, staticFetcher(sampleUsers(30), nil))
	m.Update(rightKey)

	m.Update(runes("s"))
	assert.Equal(t, usertable.PageState{Index: 0, Size: 10}, m.Snapshot().Page())
	m.Update(runes("s"))
	assert.Equal(t, 25, m.Snapshot().Page().Size)
	m.Update(runes("s"))
	assert.Equal(t, 5, m.Snapshot().Page().Size)
}

func TestFetchErrorReplacesTable(t *testing.T) {
	m := loadedModel(t, staticFetcher(nil, errors.New("connection refused")))

	require.Error(t, m.Snapshot().Err())
	assert.Empty(t, m.Snapshot().Rows())
	view := m.View()
	assert.Contains(t, view, "The user directory is unavailable")
	assert.NotContains(t, view, "Joined On")
}

func TestEmptyResult(t *testing.T) {
	m := loadedModel(t, staticFetcher([]usertable.UserRecord{}, nil))
	assert.Contains(t, m.View(), "No users found.")
}

func TestReloadKeepsSelectionOfRemainingRows(t *testing.T) {
	users := sampleUsers(3)
	calls := 0
	fetcher := usertable.FetcherFunc(func(context.Context) ([]usertable.UserRecord, error) {
		calls++
		if calls == 1 {
			return users, nil
		}
		return users[1:], nil
	})
	m := loadedModel(t, fetcher)
	m.Update(runes("a"))

	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	m.Update(m.loadCmd(m.snapshot)())

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, m.Snapshot().SelectedCount())
	assert.False(t, m.Snapshot().IsSelected("u1"))
}

func TestQuitCancelsInFlightLoad(t *testing.T) {
	fetcher := usertable.FetcherFunc(func(ctx context.Context) ([]usertable.UserRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	m := NewModel(context.Background(), fetcher, nil)
	m.Init()
	load := m.loadCmd(m.snapshot)

	done := make(chan tea.Msg, 1)
	go func() { done <- load() }()

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	msg := <-done
	loaded, ok := msg.(usersLoadedMsg)
	require.True(t, ok)
	assert.True(t, loaded.outcome.Canceled)

	m.Update(msg)
	assert.False(t, m.Snapshot().Loaded())
	assert.Empty(t, m.View())
}

func TestNextPageSize(t *testing.T) {
	assert.Equal(t, 10, nextPageSize(5))
	assert.Equal(t, 25, nextPageSize(10))
	assert.Equal(t, 5, nextPageSize(25))
	assert.Equal(t, usertable.DefaultPageSize, nextPageSize(7))
}

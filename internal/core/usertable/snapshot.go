package usertable

import "slices"

// Snapshot is the full view state of the users table at one instant.
type Snapshot struct {
	rows      []UserRecord
	positions map[string]int
	selection SelectionSet
	page      PageState
	loaded    bool
	err       error
}

// CheckboxState is how the select-all checkbox renders.
type CheckboxState struct {
	Checked       bool
	Indeterminate bool
}

// New returns the state of a table that has not loaded yet.
func New() Snapshot {
	return Snapshot{
		rows:      []UserRecord{},
		positions: map[string]int{},
		selection: NewSelectionSet(),
		page:      DefaultPageState(),
	}
}

// Rows returns a copy of the full row collection in API order.
func (s Snapshot) Rows() []UserRecord {
	if s.rows == nil {
		return []UserRecord{}
	}
	return slices.Clone(s.rows)
}

// Total is the number of loaded rows.
func (s Snapshot) Total() int {
	return len(s.rows)
}

// Row looks up a loaded row by id.
func (s Snapshot) Row(id string) (UserRecord, bool) {
	pos, ok := s.positions[id]
	if !ok {
		return UserRecord{}, false
	}
	return s.rows[pos], true
}

// Selection returns the checked ids.
func (s Snapshot) Selection() SelectionSet {
	return s.selection
}

// Page returns the current page window.
func (s Snapshot) Page() PageState {
	if s.page.Size <= 0 {
		return DefaultPageState()
	}
	return s.page
}

// Loaded reports whether a load has completed successfully at least once.
func (s Snapshot) Loaded() bool {
	return s.loaded
}

// Err is the error of the most recent failed load, nil after a success.
func (s Snapshot) Err() error {
	return s.err
}

// WithRows replaces the row collection wholesale. Selected ids that are no
// longer present are dropped and the page index is clamped to the last page.
func (s Snapshot) WithRows(rows []UserRecord) Snapshot {
	next := s
	next.rows = make([]UserRecord, len(rows))
	copy(next.rows, rows)
	next.positions = make(map[string]int, len(rows))
	for i, row := range next.rows {
		next.positions[row.UserID] = i
	}
	next.selection = s.selection.retain(func(id string) bool {
		_, ok := next.positions[id]
		return ok
	})
	next.page = s.Page()
	if last := next.page.LastPage(len(next.rows)); next.page.Index > last {
		next.page.Index = last
	}
	next.loaded = true
	next.err = nil
	return next
}

// WithError records a failed load. The row collection is left as is.
func (s Snapshot) WithError(err error) Snapshot {
	next := s
	if next.rows == nil {
		next.rows = []UserRecord{}
	}
	next.err = err
	return next
}

// ToggleSelectAll selects every loaded row when checked and clears the
// selection otherwise. The current page does not matter.
func (s Snapshot) ToggleSelectAll(checked bool) Snapshot {
	next := s
	if !checked {
		next.selection = NewSelectionSet()
		return next
	}
	ids := make([]string, 0, len(s.rows))
	for _, row := range s.rows {
		ids = append(ids, row.UserID)
	}
	next.selection = NewSelectionSet(ids...)
	return next
}

// ToggleRow flips the membership of id. Unknown ids are ignored.
func (s Snapshot) ToggleRow(id string) Snapshot {
	if _, ok := s.positions[id]; !ok {
		return s
	}
	next := s
	if s.selection.Has(id) {
		next.selection = s.selection.without(id)
	} else {
		next.selection = s.selection.with(id)
	}
	return next
}

// IsSelected reports whether id is checked.
func (s Snapshot) IsSelected(id string) bool {
	return s.selection.Has(id)
}

// SelectedCount is the number of checked rows.
func (s Snapshot) SelectedCount() int {
	return s.selection.Len()
}

// SetPage moves to page index. Negative indexes clamp to 0; indexes past the
// last page are kept and render no rows.
func (s Snapshot) SetPage(index int) Snapshot {
	next := s
	next.page = s.Page()
	if index < 0 {
		index = 0
	}
	next.page.Index = index
	return next
}

// SetPageSize changes the rows per page and returns to the first page.
// Sizes outside PageSizes snap to the closest allowed size.
func (s Snapshot) SetPageSize(size int) Snapshot {
	next := s
	next.page = PageState{Index: 0, Size: NormalizePageSize(size)}
	return next
}

// VisibleSlice returns the rows of the current page.
func (s Snapshot) VisibleSlice() []UserRecord {
	start, end := s.Page().Range(len(s.rows))
	return slices.Clone(s.rows[start:end])
}

// SelectAllCheckboxState derives the header checkbox from the selection.
func (s Snapshot) SelectAllCheckboxState() CheckboxState {
	selected := s.selection.Len()
	total := len(s.rows)
	return CheckboxState{
		Checked:       total > 0 && selected == total,
		Indeterminate: selected > 0 && selected < total,
	}
}

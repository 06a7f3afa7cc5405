package usertable

// ToolbarAction is the single action button offered by the toolbar.
type ToolbarAction string

const (
	ToolbarActionFilter ToolbarAction = "filter"
	ToolbarActionDelete ToolbarAction = "delete"
)

// Toolbar is the header shown above the table.
type Toolbar struct {
	// Selected is the number of checked rows; 0 shows the "All Users" title.
	Selected    int
	Highlighted bool
	Action      ToolbarAction
}

// Toolbar derives the header from the selection size.
func (s Snapshot) Toolbar() Toolbar {
	n := s.selection.Len()
	if n == 0 {
		return Toolbar{Action: ToolbarActionFilter}
	}
	return Toolbar{Selected: n, Highlighted: true, Action: ToolbarActionDelete}
}

package userstui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the users table.
type KeyMap struct {
	Toggle    key.Binding
	SelectAll key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	PageSize  key.Binding
	Reload    key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:    newBinding([]string{" ", "space"}, "toggle row", "space"),
		SelectAll: newBinding([]string{"a"}, "select all", "a"),
		PrevPage:  newBinding([]string{"left", "h"}, "prev page", "←/h"),
		NextPage:  newBinding([]string{"right", "l"}, "next page", "→/l"),
		PageSize:  newBinding([]string{"s"}, "rows per page", "s"),
		Reload:    newBinding([]string{"r"}, "reload", "r"),
		Quit:      newBinding([]string{"q", "ctrl+c", "esc"}, "quit", "q"),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SelectAll, k.PrevPage, k.NextPage, k.PageSize, k.Reload, k.Quit}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Global
	Quit           key.Binding
	CommandPalette key.Binding
	Help           key.Binding
	CycleFocus     key.Binding

	// Paging
	Refresh      key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding

	// Query
	Filter       key.Binding
	ClearFilters key.Binding
	ToggleSort   key.Binding

	// Records
	ToggleDetail key.Binding
	CloseDetail  key.Binding
	CopyValue    key.Binding
	CopyRecord   key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p", "previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last page"),
		),
		PageSizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger pages"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller pages"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by created time"),
		),
		ToggleDetail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand record"),
		),
		CloseDetail: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close detail"),
		),
		CopyValue: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy value"),
		),
		CopyRecord: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy record"),
		),
	}
}

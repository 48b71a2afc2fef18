package msgs

import (
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/core/state"
)

// PanelFocus is the panel receiving navigation keys.
type PanelFocus int

const (
	FocusTable PanelFocus = iota
	FocusDetail
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeFilter
	ModeCommandPalette
	ModeHelp
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeFilter:
		return "FILTER"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// FetchResultMsg is emitted when list request Seq completes. Page is
// already normalized; Err covers transport, status, decode and
// malformed-message failures.
type FetchResultMsg struct {
	Seq       uint64
	Page      history.Page
	Err       error
	RequestID string
	Duration  time.Duration
	Size      int64
}

// RefreshMsg reloads the current page.
type RefreshMsg struct{}

// NextPageMsg / PrevPageMsg move one page.
type NextPageMsg struct{}
type PrevPageMsg struct{}

// GotoPageMsg jumps to a page.
type GotoPageMsg struct {
	Page int
}

// PageSizeMsg steps the page size through the size options.
type PageSizeMsg struct {
	Delta int
}

// ToggleSortMsg cycles the sort of a field.
type ToggleSortMsg struct {
	Field string
}

// OpenFilterMsg opens the filter form.
type OpenFilterMsg struct{}

// ApplyFiltersMsg replaces the active filters.
type ApplyFiltersMsg struct {
	Filters state.Filters
}

// ClearFiltersMsg drops all filters.
type ClearFiltersMsg struct{}

// ToggleDetailMsg expands or collapses the selected record.
type ToggleDetailMsg struct{}

// CopyDetailMsg copies the selected detail row value.
type CopyDetailMsg struct{}

// CopyRecordMsg copies the selected record as JSON.
type CopyRecordMsg struct{}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}

// SwitchThemeMsg requests switching to a named theme. An empty name opens
// the theme picker.
type SwitchThemeMsg struct {
	Name string
}

// SwitchLocaleMsg changes the label language.
type SwitchLocaleMsg struct {
	Locale string
}

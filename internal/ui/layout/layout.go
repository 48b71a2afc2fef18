package layout

// PanelLayout holds calculated dimensions for the table and detail panels.
type PanelLayout struct {
	Width  int
	Height int

	TableWidth   int
	TableHeight  int
	DetailWidth  int
	DetailHeight int

	ContentHeight int // height minus header and status bar

	DetailVisible bool
	SideBySide    bool
	SinglePanel   bool
}

const (
	headerHeight    = 1
	statusBarHeight = 1
	minDetailWidth  = 40
	maxDetailWidth  = 80
	minTableHeight  = 6
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int, detailVisible bool) PanelLayout {
	l := PanelLayout{
		Width:         width,
		Height:        height,
		DetailVisible: detailVisible,
		ContentHeight: height - headerHeight - statusBarHeight,
	}

	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	l.TableWidth = width
	l.TableHeight = l.ContentHeight
	if !detailVisible {
		return l
	}

	switch {
	case width < 60 || l.ContentHeight < 2*minTableHeight && width < 120:
		// Detail replaces the table.
		l.SinglePanel = true
		l.DetailWidth = width
		l.DetailHeight = l.ContentHeight
	case width >= 120:
		l.SideBySide = true
		l.DetailWidth = clamp(width*2/5, minDetailWidth, maxDetailWidth)
		l.TableWidth = width - l.DetailWidth
		l.DetailHeight = l.ContentHeight
	default:
		l.DetailWidth = width
		l.TableHeight = clamp(l.ContentHeight/2, minTableHeight, l.ContentHeight)
		l.DetailHeight = l.ContentHeight - l.TableHeight
	}

	return l
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package pagination

// State is the position of the layout cursor on the current page.
type State int

// Cursor states.
const (
	// AtMarginTop is a fresh page with nothing placed yet.
	AtMarginTop State = iota

	// InGroupHeader means a group header was just reserved.
	InGroupHeader

	// InRow means at least one item of the current group is placed.
	InRow

	// PageFull means the next header or row did not fit.
	PageFull
)

// String returns the string representation.
func (s State) String() string {
	switch s {
	case AtMarginTop:
		return "at_margin_top"
	case InGroupHeader:
		return "in_group_header"
	case InRow:
		return "in_row"
	case PageFull:
		return "page_full"
	default:
		return "unknown"
	}
}

// TransitionFunc observes cursor state changes. pageIndex is the page the
// cursor is on after the transition.
type TransitionFunc func(from, to State, pageIndex int)

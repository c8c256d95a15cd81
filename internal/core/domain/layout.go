package domain

import (
	"fmt"
	"math"
)

// CellAspect is the height/width ratio of every photo box.
// Photos are fitted inside the box; the box itself does not follow the
// image's own aspect ratio.
const CellAspect = 3.0 / 4.0

// PageSize names a supported paper size.
type PageSize string

// Available page sizes.
const (
	PageSizeA4     PageSize = "a4"
	PageSizeA5     PageSize = "a5"
	PageSizeLetter PageSize = "letter"
)

// IsValid returns true if the page size is recognised.
func (p PageSize) IsValid() bool {
	switch p {
	case PageSizeA4, PageSizeA5, PageSizeLetter:
		return true
	default:
		return false
	}
}

// Dimensions returns the portrait width and height in millimetres.
func (p PageSize) Dimensions() (width, height float64) {
	switch p {
	case PageSizeA5:
		return 148, 210
	case PageSizeLetter:
		return 215.9, 279.4
	default:
		return 210, 297
	}
}

// String returns the string representation.
func (p PageSize) String() string {
	return string(p)
}

// AllPageSizes returns all supported page sizes.
func AllPageSizes() []PageSize {
	return []PageSize{PageSizeA4, PageSizeA5, PageSizeLetter}
}

// PageConfig describes the physical page, in millimetres.
type PageConfig struct {
	Width  float64
	Height float64
	Margin float64

	// FooterHeight is a band at the bottom of the content area that
	// placements never enter. The page footer is drawn there.
	FooterHeight float64
}

// ContentWidth returns the width between the side margins.
func (p PageConfig) ContentWidth() float64 {
	return p.Width - 2*p.Margin
}

// ContentTop returns the y coordinate where content starts.
func (p PageConfig) ContentTop() float64 {
	return p.Margin
}

// ContentBottom returns the lowest y coordinate content may reach.
func (p PageConfig) ContentBottom() float64 {
	return p.Height - p.Margin - p.FooterHeight
}

// Validate checks the page has a usable content area.
func (p PageConfig) Validate() error {
	switch {
	case !finite(p.Width, p.Height, p.Margin, p.FooterHeight):
		return fmt.Errorf("%w: page dimensions must be finite numbers", ErrInvalidConfig)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: page size %.1fx%.1f must be positive", ErrInvalidConfig, p.Width, p.Height)
	case p.Margin < 0:
		return fmt.Errorf("%w: negative margin %.1f", ErrInvalidConfig, p.Margin)
	case p.FooterHeight < 0:
		return fmt.Errorf("%w: negative footer height %.1f", ErrInvalidConfig, p.FooterHeight)
	case p.ContentWidth() <= 0:
		return fmt.Errorf("%w: margins leave no content width", ErrInvalidConfig)
	case p.ContentBottom() <= p.ContentTop():
		return fmt.Errorf("%w: margins and footer leave no content height", ErrInvalidConfig)
	}
	return nil
}

// GridConfig describes how photos are arranged within the content area.
type GridConfig struct {
	// Columns per row.
	Columns int

	// CellGap is the horizontal space between cells.
	CellGap float64

	// RowGap is the vertical space below each row; captions are drawn in it.
	RowGap float64

	// HeaderHeight is the band reserved above a group's first row.
	HeaderHeight float64
}

// Validate checks the grid values are usable.
func (g GridConfig) Validate() error {
	switch {
	case !finite(g.CellGap, g.RowGap, g.HeaderHeight):
		return fmt.Errorf("%w: grid gaps and header height must be finite numbers", ErrInvalidConfig)
	case g.Columns < 1:
		return fmt.Errorf("%w: columns must be at least 1, got %d", ErrInvalidConfig, g.Columns)
	case g.CellGap < 0 || g.RowGap < 0:
		return fmt.Errorf("%w: gaps must not be negative", ErrInvalidConfig)
	case g.HeaderHeight < 0:
		return fmt.Errorf("%w: negative header height %.1f", ErrInvalidConfig, g.HeaderHeight)
	}
	return nil
}

// Placement is the box assigned to one item on one page.
type Placement struct {
	ItemID string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// HeaderPlacement is the band assigned to a group's header bar.
type HeaderPlacement struct {
	GroupKey  string
	ItemCount int
	X         float64
	Y         float64
	Width     float64
	Height    float64
}

// PageLayout holds everything placed on one page.
// PageIndex is 1-based, in the order pages were created.
type PageLayout struct {
	PageIndex  int
	Headers    []HeaderPlacement
	Placements []Placement
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

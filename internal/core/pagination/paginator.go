package pagination

import (
	"fmt"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// epsilon absorbs float rounding when a row ends exactly at the bottom.
const epsilon = 1e-9

// Metrics are the cell sizes derived from a page and grid.
type Metrics struct {
	CellWidth  float64
	CellHeight float64

	// RowHeight is CellHeight plus the grid's row gap.
	RowHeight float64
}

// Measure computes cell sizes. Cell height follows domain.CellAspect.
func Measure(page domain.PageConfig, grid domain.GridConfig) Metrics {
	cols := float64(grid.Columns)
	cellWidth := (page.ContentWidth() - (cols-1)*grid.CellGap) / cols
	cellHeight := cellWidth * domain.CellAspect
	return Metrics{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		RowHeight:  cellHeight + grid.RowGap,
	}
}

// Validate checks that a page can hold at least a group header and one row.
func Validate(page domain.PageConfig, grid domain.GridConfig) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := grid.Validate(); err != nil {
		return err
	}

	m := Measure(page, grid)
	if m.CellWidth <= 0 {
		return fmt.Errorf("%w: %d columns with gap %.1f leave no cell width",
			domain.ErrInvalidConfig, grid.Columns, grid.CellGap)
	}
	available := page.ContentBottom() - page.ContentTop()
	if grid.HeaderHeight+m.RowHeight > available+epsilon {
		return fmt.Errorf("%w: content height %.1f cannot fit a header (%.1f) and one row (%.1f)",
			domain.ErrInvalidConfig, available, grid.HeaderHeight, m.RowHeight)
	}
	return nil
}

// Paginator lays groups onto pages for one validated configuration.
type Paginator struct {
	page    domain.PageConfig
	grid    domain.GridConfig
	metrics Metrics

	// OnTransition, when set, is called for every cursor state change.
	OnTransition TransitionFunc
}

// New validates the configuration and returns a Paginator for it.
func New(page domain.PageConfig, grid domain.GridConfig) (*Paginator, error) {
	if err := Validate(page, grid); err != nil {
		return nil, err
	}
	return &Paginator{
		page:    page,
		grid:    grid,
		metrics: Measure(page, grid),
	}, nil
}

// Metrics returns the derived cell sizes.
func (p *Paginator) Metrics() Metrics {
	return p.metrics
}

// Layout places every item of every group and returns the pages used.
// Groups without items are skipped. No items yields no pages.
func (p *Paginator) Layout(groups []domain.Group) []domain.PageLayout {
	c := &cursor{p: p}
	for i := range groups {
		if len(groups[i].Items) == 0 {
			continue
		}
		c.startGroup(&groups[i])
		for j := range groups[i].Items {
			c.place(&groups[i].Items[j])
		}
		c.endGroup()
	}
	return c.pages
}

// Layout is a convenience wrapper around New and Paginator.Layout.
func Layout(groups []domain.Group, page domain.PageConfig, grid domain.GridConfig) ([]domain.PageLayout, error) {
	p, err := New(page, grid)
	if err != nil {
		return nil, err
	}
	return p.Layout(groups), nil
}

// cursor tracks the write position on the current page.
type cursor struct {
	p     *Paginator
	pages []domain.PageLayout
	y     float64
	col   int
	state State
}

func (c *cursor) current() *domain.PageLayout {
	return &c.pages[len(c.pages)-1]
}

func (c *cursor) transition(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	if c.p.OnTransition != nil {
		c.p.OnTransition(from, to, len(c.pages))
	}
}

func (c *cursor) fits(height float64) bool {
	return c.y+height <= c.p.page.ContentBottom()+epsilon
}

func (c *cursor) newPage() {
	if len(c.pages) > 0 {
		c.transition(PageFull)
	}
	c.pages = append(c.pages, domain.PageLayout{PageIndex: len(c.pages) + 1})
	c.y = c.p.page.ContentTop()
	c.col = 0
	c.transition(AtMarginTop)
}

func (c *cursor) startGroup(g *domain.Group) {
	if len(c.pages) == 0 || !c.fits(c.p.grid.HeaderHeight) {
		c.newPage()
	}

	page := c.current()
	page.Headers = append(page.Headers, domain.HeaderPlacement{
		GroupKey:  g.Key,
		ItemCount: len(g.Items),
		X:         c.p.page.Margin,
		Y:         c.y,
		Width:     c.p.page.ContentWidth(),
		Height:    c.p.grid.HeaderHeight,
	})
	c.y += c.p.grid.HeaderHeight
	c.col = 0
	c.transition(InGroupHeader)
}

func (c *cursor) place(item *domain.Item) {
	m := c.p.metrics
	if c.col == 0 && !c.fits(m.RowHeight) {
		c.newPage()
	}

	page := c.current()
	page.Placements = append(page.Placements, domain.Placement{
		ItemID: item.ID,
		X:      c.p.page.Margin + float64(c.col)*(m.CellWidth+c.p.grid.CellGap),
		Y:      c.y,
		Width:  m.CellWidth,
		Height: m.CellHeight,
	})
	c.transition(InRow)

	c.col++
	if c.col == c.p.grid.Columns {
		c.col = 0
		c.y += m.RowHeight
	}
}

// endGroup completes a partially filled final row.
func (c *cursor) endGroup() {
	if c.col != 0 {
		c.col = 0
		c.y += c.p.metrics.RowHeight
	}
}

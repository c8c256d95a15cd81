package domain

import "time"

// Report is a titled collection of photos exported as a single PDF.
type Report struct {
	// ID is the unique identifier for the report.
	ID string

	// Title is printed on the cover page and used for the file name.
	Title string

	// Project is the job, site or client reference.
	Project string

	// Location is where the photos were taken.
	Location string

	// Author is who prepared the report.
	Author string

	// ReportDate is the date printed on the cover page.
	ReportDate time.Time

	// Notes is free text printed on the cover page.
	Notes string

	// Photos in ingestion order. Display order comes from grouping.
	Photos []Photo

	// CreatedAt is when the report was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the report was last saved.
	UpdatedAt time.Time
}

// Items returns the grouping view of the report's photos.
func (r *Report) Items() []Item {
	items := make([]Item, len(r.Photos))
	for i := range r.Photos {
		items[i] = r.Photos[i].Item
	}
	return items
}

// PhotoIndex returns photos keyed by item ID.
func (r *Report) PhotoIndex() map[string]*Photo {
	idx := make(map[string]*Photo, len(r.Photos))
	for i := range r.Photos {
		idx[r.Photos[i].ID] = &r.Photos[i]
	}
	return idx
}

// Summary returns the list view of the report.
func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:         r.ID,
		Title:      r.Title,
		Project:    r.Project,
		PhotoCount: len(r.Photos),
		UpdatedAt:  r.UpdatedAt,
	}
}

// ReportSummary is a lightweight report listing entry.
type ReportSummary struct {
	ID         string
	Title      string
	Project    string
	PhotoCount int
	UpdatedAt  time.Time
}

// ReportMetadata holds the editable cover-page fields of a report.
// Nil fields are left unchanged by an update.
type ReportMetadata struct {
	Title      *string
	Project    *string
	Location   *string
	Author     *string
	ReportDate *time.Time
	Notes      *string
}

// Apply copies the set fields onto the report.
func (m ReportMetadata) Apply(r *Report) {
	if m.Title != nil {
		r.Title = *m.Title
	}
	if m.Project != nil {
		r.Project = *m.Project
	}
	if m.Location != nil {
		r.Location = *m.Location
	}
	if m.Author != nil {
		r.Author = *m.Author
	}
	if m.ReportDate != nil {
		r.ReportDate = *m.ReportDate
	}
	if m.Notes != nil {
		r.Notes = *m.Notes
	}
}

// ExportPlan is the grouped and paginated form of a set of items.
type ExportPlan struct {
	Groups []Group
	Pages  []PageLayout

	// Page and Grid are the configuration the pages were laid out with.
	Page PageConfig
	Grid GridConfig
}

// PageCount returns the number of photo pages in the plan.
func (p *ExportPlan) PageCount() int {
	return len(p.Pages)
}

// ExportResult describes a finished PDF export.
type ExportResult struct {
	// Path is the written file, empty when exporting to a stream.
	Path string

	PhotoCount int
	GroupCount int

	// PageCount counts photo pages; the cover page is not included.
	PageCount int
}

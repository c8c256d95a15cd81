package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
)

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Save upserts the report row and replaces its photo rows.
func (s *reportStore) Save(ctx context.Context, report *domain.Report) error {
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	if report.UpdatedAt.IsZero() {
		report.UpdatedAt = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, title, project, location, author, report_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			project = excluded.project,
			location = excluded.location,
			author = excluded.author,
			report_date = excluded.report_date,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`, report.ID, report.Title, report.Project, report.Location, report.Author,
		nullTime(report.ReportDate), report.Notes, report.CreatedAt.UTC(), report.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM photos WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing photos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO photos (id, report_id, position, display_name, group_key, aspect_ratio,
			source_path, mime_type, data, width, height, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing photo insert: %w", err)
	}
	defer stmt.Close()

	for i := range report.Photos {
		p := &report.Photos[i]
		if _, err := stmt.ExecContext(ctx, p.ID, report.ID, i, p.DisplayName, p.GroupKey, p.AspectRatio,
			p.SourcePath, p.MIMEType, p.Data, p.Width, p.Height, nullTime(p.AddedAt)); err != nil {
			return fmt.Errorf("saving photo %s: %w", p.DisplayName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// Get retrieves a report and its photos by ID.
func (s *reportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, project, location, author, report_date, notes, created_at, updated_at
		FROM reports WHERE id = ?
	`, id)

	var r domain.Report
	var reportDate, createdAt, updatedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Title, &r.Project, &r.Location, &r.Author,
		&reportDate, &r.Notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	r.ReportDate = reportDate.Time
	r.CreatedAt = createdAt.Time
	r.UpdatedAt = updatedAt.Time

	photos, err := s.photos(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Photos = photos

	return &r, nil
}

func (s *reportStore) photos(ctx context.Context, reportID string) ([]domain.Photo, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, display_name, group_key, aspect_ratio, source_path, mime_type, data, width, height, added_at
		FROM photos WHERE report_id = ? ORDER BY position
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		var addedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.GroupKey, &p.AspectRatio, &p.SourcePath,
			&p.MIMEType, &p.Data, &p.Width, &p.Height, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		p.AddedAt = addedAt.Time
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photos: %w", err)
	}
	return photos, nil
}

// List returns report summaries, most recently updated first.
func (s *reportStore) List(ctx context.Context) ([]domain.ReportSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.project, r.updated_at, COUNT(p.id)
		FROM reports r
		LEFT JOIN photos p ON p.report_id = r.id
		GROUP BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	result := []domain.ReportSummary{}
	for rows.Next() {
		var sum domain.ReportSummary
		var updatedAt sql.NullTime
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Project, &updatedAt, &sum.PhotoCount); err != nil {
			return nil, fmt.Errorf("scanning report summary: %w", err)
		}
		sum.UpdatedAt = updatedAt.Time
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	// Sorted here rather than in SQL: DATETIME text with variable
	// fractional seconds does not order reliably.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a report; its photos go with it via ON DELETE CASCADE.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullTime stores the zero time as NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

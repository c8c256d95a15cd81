package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
// Reports are copied on the way in and out so callers cannot mutate
// stored state.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.Report),
	}
}

// Save stores or updates a report.
func (s *ReportStore) Save(_ context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = cloneReport(report)
	return nil
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneReport(&report)
	return &clone, nil
}

// List returns report summaries, most recently updated first.
func (s *ReportStore) List(_ context.Context) ([]domain.ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ReportSummary, 0, len(s.reports))
	for i := range s.reports {
		r := s.reports[i]
		result = append(result, r.Summary())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a report.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func cloneReport(r *domain.Report) domain.Report {
	c := *r
	c.Photos = make([]domain.Photo, len(r.Photos))
	copy(c.Photos, r.Photos)
	return c
}

package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/adsight/moloco-crm/internal/models"
)

// ErrReportNotFound is returned when a report ID is unknown.
var ErrReportNotFound = errors.New("report not found")

// ReportStore holds uploaded report metadata and their raw rows. Listing
// preserves upload order; aggregation re-reads raw rows on every query so
// filters always apply to the source data.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.Report, rows []models.Row) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
	ListRows(ctx context.Context) ([]models.Row, error)
	DeleteReport(ctx context.Context, id string) error
	ClearReports(ctx context.Context) error
	CountReports(ctx context.Context) (int, error)
}

// InMemoryReportStore stores reports in memory. This is the default when no
// database is configured; contents are discarded on restart.
type InMemoryReportStore struct {
	mu      sync.RWMutex
	reports map[string]*models.Report
	rows    map[string][]models.Row
	order   []string
}

func NewInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{
		reports: make(map[string]*models.Report),
		rows:    make(map[string][]models.Row),
	}
}

func (s *InMemoryReportStore) SaveReport(ctx context.Context, report *models.Report, rows []models.Row) error {
	if report == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; !exists {
		s.order = append(s.order, report.ID)
	}
	cp := *report
	s.reports[report.ID] = &cp
	s.rows[report.ID] = append([]models.Row(nil), rows...)
	return nil
}

func (s *InMemoryReportStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrReportNotFound
}

func (s *InMemoryReportStore) ListReports(ctx context.Context) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*models.Report, 0, len(s.order))
	for _, id := range s.order {
		if r, ok := s.reports[id]; ok {
			cp := *r
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (s *InMemoryReportStore) ListRows(ctx context.Context) ([]models.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []models.Row
	for _, id := range s.order {
		res = append(res, s.rows[id]...)
	}
	return res, nil
}

func (s *InMemoryReportStore) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return ErrReportNotFound
	}
	delete(s.reports, id)
	delete(s.rows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryReportStore) ClearReports(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = make(map[string]*models.Report)
	s.rows = make(map[string][]models.Row)
	s.order = nil
	return nil
}

func (s *InMemoryReportStore) CountReports(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports), nil
}

package repository

import (
	"context"
	"database/sql"
	"sync"

	"github.com/adityasinghr651/civics-api/internal/models"
)

// MemoryReportRepository is the process-local fallback store used when the
// database is unconfigured. Same contract as ReportRepository, including
// sql.ErrNoRows for missing ids, but nothing survives a restart.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]models.Report
}

// NewMemoryReportRepository constructs an empty fallback store.
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]models.Report)}
}

// Save stores a newly created report.
func (r *MemoryReportRepository) Save(ctx context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.ID] = *report
	return nil
}

// Get fetches a single report by id.
func (r *MemoryReportRepository) Get(ctx context.Context, id string) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &report, nil
}

// ApplyStatusUpdate merges a status patch into an existing report.
func (r *MemoryReportRepository) ApplyStatusUpdate(ctx context.Context, id string, upd models.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return sql.ErrNoRows
	}
	updatedAt := upd.UpdatedAt
	report.Status = upd.Status
	report.Remarks = upd.Remarks
	report.UpdatedAt = &updatedAt
	r.reports[id] = report
	return nil
}

// ListByReporter linearly scans for reports matching the email.
func (r *MemoryReportRepository) ListByReporter(ctx context.Context, email string) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reports := make([]models.Report, 0)
	for _, report := range r.reports {
		if report.ReporterEmail == email {
			reports = append(reports, report)
		}
	}
	return reports, nil
}

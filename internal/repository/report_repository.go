package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityasinghr651/civics-api/internal/models"
)

const reportColumns = `id, title, description, reporter_email, status, created_at, updated_at, remarks, location`

// ReportRepository persists reports in PostgreSQL.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a newly created report.
func (r *ReportRepository) Save(ctx context.Context, report *models.Report) error {
	const query = `INSERT INTO reports (id, title, description, reporter_email, status, created_at, remarks, location)
VALUES (:id, :title, :description, :reporter_email, :status, :created_at, :remarks, :location)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Get fetches a single report by id. Returns sql.ErrNoRows when absent.
func (r *ReportRepository) Get(ctx context.Context, id string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id = $1`, reportColumns)
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, err
	}
	return &report, nil
}

// ApplyStatusUpdate merges a status patch into an existing report, leaving
// every other column untouched. Returns sql.ErrNoRows when the id is unknown.
func (r *ReportRepository) ApplyStatusUpdate(ctx context.Context, id string, upd models.StatusUpdate) error {
	const query = `UPDATE reports SET status = $1, remarks = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, upd.Status, upd.Remarks, upd.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByReporter returns all reports submitted with the given email. Order is
// whatever the store yields; callers must not rely on it.
func (r *ReportRepository) ListByReporter(ctx context.Context, email string) ([]models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE reporter_email = $1`, reportColumns)
	reports := make([]models.Report, 0)
	if err := r.db.SelectContext(ctx, &reports, query, email); err != nil {
		return nil, fmt.Errorf("list reports by reporter: %w", err)
	}
	return reports, nil
}

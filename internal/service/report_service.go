package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adityasinghr651/civics-api/internal/dto"
	"github.com/adityasinghr651/civics-api/internal/models"
	appErrors "github.com/adityasinghr651/civics-api/pkg/errors"
)

// emailPattern accepts anything shaped local@domain.tld with no whitespace or
// extra @ signs. Deliberately loose; syntax only.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ReportStore is the storage contract the service depends on. Both the
// Postgres repository and the in-memory fallback satisfy it, reporting a
// missing id as sql.ErrNoRows.
type ReportStore interface {
	Save(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, id string) (*models.Report, error)
	ApplyStatusUpdate(ctx context.Context, id string, upd models.StatusUpdate) error
	ListByReporter(ctx context.Context, email string) ([]models.Report, error)
}

type reportNotifier interface {
	NotifyNewReport(ctx context.Context, report *models.Report) error
	NotifyStatusChange(ctx context.Context, report *models.Report, upd models.StatusUpdate) error
}

// ReportService orchestrates the report lifecycle: validate, persist, then
// notify best-effort. Store and notifier are chosen once at startup and
// injected; the service never re-evaluates that choice per call.
type ReportService struct {
	store     ReportStore
	notifier  reportNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(store ReportStore, notifier reportNotifier, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:     store,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
	}
}

// Create validates a submission, persists it with a fresh id, and attempts
// the admin notification. A failed notification is logged and absorbed; the
// report is already durable and the call succeeds.
func (s *ReportService) Create(ctx context.Context, req dto.CreateReportRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Missing required fields: title, description, reporterEmail.")
	}
	if !emailPattern.MatchString(req.ReporterEmail) {
		return "", appErrors.Clone(appErrors.ErrValidation, "Invalid reporterEmail format.")
	}

	report := &models.Report{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		ReporterEmail: req.ReporterEmail,
		Status:        models.StatusReceived,
		CreatedAt:     time.Now().UTC(),
		Location:      models.DefaultLocation,
	}

	if err := s.store.Save(ctx, report); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to create report.")
	}

	if err := s.notifier.NotifyNewReport(ctx, report); err != nil {
		s.logger.Warn("admin notification failed",
			zap.String("report_id", report.ID), zap.Error(err))
	}

	return report.ID, nil
}

// UpdateStatus merges a status patch into an existing report and attempts the
// reporter notification with the pre-update snapshot.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Missing required field: status.")
	}

	report, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Report not found.")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to update report status.")
	}

	upd := models.StatusUpdate{
		Status:    req.Status,
		Remarks:   req.Remarks,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.ApplyStatusUpdate(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Report not found.")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to update report status.")
	}

	if err := s.notifier.NotifyStatusChange(ctx, report, upd); err != nil {
		s.logger.Warn("status update notification failed",
			zap.String("report_id", id), zap.Error(err))
	}

	return nil
}

// Get returns a single report.
func (s *ReportService) Get(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Report not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to fetch report.")
	}
	return report, nil
}

// ListByReporter returns every report submitted with the given email. An
// unknown email yields an empty slice, not an error.
func (s *ReportService) ListByReporter(ctx context.Context, email string) ([]models.Report, error) {
	if !emailPattern.MatchString(email) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid email format.")
	}

	reports, err := s.store.ListByReporter(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to fetch reports.")
	}
	if reports == nil {
		reports = make([]models.Report, 0)
	}
	return reports, nil
}

package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/adityasinghr651/civics-api/internal/models"
	"github.com/adityasinghr651/civics-api/pkg/mailer"
)

const (
	notificationNewReport    = "new_report"
	notificationStatusChange = "status_change"
)

// MailTransport delivers a single message, success or failure.
type MailTransport interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// NotifierService sends the two one-way report notifications. Sends are a
// best-effort side channel: a returned error is for the caller to log and
// count, never to propagate to the client.
type NotifierService struct {
	transport  MailTransport
	adminEmail string
	logger     *zap.Logger
	metrics    *MetricsService
}

// NewNotifierService constructs a NotifierService. A nil transport disables
// sending entirely; notifications are then logged and skipped.
func NewNotifierService(transport MailTransport, adminEmail string, logger *zap.Logger, metrics *MetricsService) *NotifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifierService{
		transport:  transport,
		adminEmail: adminEmail,
		logger:     logger,
		metrics:    metrics,
	}
}

// NotifyNewReport mails the administrator about a freshly submitted report.
func (s *NotifierService) NotifyNewReport(ctx context.Context, report *models.Report) error {
	if s.transport == nil {
		s.logger.Info("mail transport not configured, skipping admin notification",
			zap.String("report_id", report.ID))
		return nil
	}

	msg := mailer.Message{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("New Report Submitted: %q", report.Title),
		HTML:    newReportBody(report),
	}
	err := s.transport.Send(ctx, msg)
	s.record(notificationNewReport, err)
	if err != nil {
		return fmt.Errorf("notify admin of report %s: %w", report.ID, err)
	}
	s.logger.Info("admin notification sent", zap.String("report_id", report.ID))
	return nil
}

// NotifyStatusChange mails the original reporter about a status update. The
// report argument is the pre-update snapshot; the update carries the new
// status and remarks.
func (s *NotifierService) NotifyStatusChange(ctx context.Context, report *models.Report, upd models.StatusUpdate) error {
	if s.transport == nil {
		s.logger.Info("mail transport not configured, skipping status update notification",
			zap.String("report_id", report.ID))
		return nil
	}

	msg := mailer.Message{
		To:      report.ReporterEmail,
		Subject: fmt.Sprintf("Update on your report: %q", report.Title),
		HTML:    statusChangeBody(report, upd),
	}
	err := s.transport.Send(ctx, msg)
	s.record(notificationStatusChange, err)
	if err != nil {
		return fmt.Errorf("notify reporter of report %s: %w", report.ID, err)
	}
	s.logger.Info("status update notification sent",
		zap.String("report_id", report.ID),
		zap.String("recipient", report.ReporterEmail))
	return nil
}

func (s *NotifierService) record(kind string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveNotification(kind, err == nil)
	}
}

func newReportBody(report *models.Report) string {
	var b strings.Builder
	b.WriteString("<h1>New Report Received</h1>")
	b.WriteString("<p>A new civic issue has been reported.</p><ul>")
	fmt.Fprintf(&b, "<li><strong>ID:</strong> %s</li>", html.EscapeString(report.ID))
	fmt.Fprintf(&b, "<li><strong>Title:</strong> %s</li>", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "<li><strong>Description:</strong> %s</li>", html.EscapeString(report.Description))
	fmt.Fprintf(&b, "<li><strong>Reported By:</strong> %s</li>", html.EscapeString(report.ReporterEmail))
	fmt.Fprintf(&b, "<li><strong>Time:</strong> %s</li>", report.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("</ul>")
	return b.String()
}

func statusChangeBody(report *models.Report, upd models.StatusUpdate) string {
	var b strings.Builder
	b.WriteString("<h1>Report Status Updated</h1>")
	b.WriteString("<p>Hello, the status of your report has been updated.</p><ul>")
	fmt.Fprintf(&b, "<li><strong>Title:</strong> %s</li>", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "<li><strong>New Status:</strong> <strong>%s</strong></li>", html.EscapeString(upd.Status))
	if upd.Remarks != "" {
		fmt.Fprintf(&b, "<li><strong>Remarks:</strong> %s</li>", html.EscapeString(upd.Remarks))
	}
	b.WriteString("</ul><p>Thank you for your contribution to our community.</p>")
	return b.String()
}

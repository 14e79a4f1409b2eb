package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityasinghr651/civics-api/internal/models"
	"github.com/adityasinghr651/civics-api/pkg/mailer"
)

type transportStub struct {
	err  error
	sent []mailer.Message
}

func (t *transportStub) Send(ctx context.Context, msg mailer.Message) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, msg)
	return nil
}

func sampleReport() *models.Report {
	return &models.Report{
		ID:            "rep-1",
		Title:         "Pothole",
		Description:   "Big hole on Main St",
		ReporterEmail: "a@example.com",
		Status:        models.StatusReceived,
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Location:      models.DefaultLocation,
	}
}

func TestNotifierNewReport(t *testing.T) {
	transport := &transportStub{}
	notifier := NewNotifierService(transport, "admin@civics.app", nil, nil)

	require.NoError(t, notifier.NotifyNewReport(context.Background(), sampleReport()))
	require.Len(t, transport.sent, 1)

	msg := transport.sent[0]
	assert.Equal(t, "admin@civics.app", msg.To)
	assert.Contains(t, msg.Subject, "New Report Submitted")
	assert.Contains(t, msg.Subject, "Pothole")
	assert.Contains(t, msg.HTML, "rep-1")
	assert.Contains(t, msg.HTML, "Big hole on Main St")
	assert.Contains(t, msg.HTML, "a@example.com")
}

func TestNotifierStatusChange(t *testing.T) {
	transport := &transportStub{}
	notifier := NewNotifierService(transport, "admin@civics.app", nil, nil)

	upd := models.StatusUpdate{Status: "Resolved", Remarks: "fixed", UpdatedAt: time.Now().UTC()}
	require.NoError(t, notifier.NotifyStatusChange(context.Background(), sampleReport(), upd))
	require.Len(t, transport.sent, 1)

	msg := transport.sent[0]
	assert.Equal(t, "a@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Update on your report")
	assert.Contains(t, msg.HTML, "Resolved")
	assert.Contains(t, msg.HTML, "fixed")
}

func TestNotifierStatusChangeOmitsEmptyRemarks(t *testing.T) {
	transport := &transportStub{}
	notifier := NewNotifierService(transport, "admin@civics.app", nil, nil)

	upd := models.StatusUpdate{Status: "Resolved", UpdatedAt: time.Now().UTC()}
	require.NoError(t, notifier.NotifyStatusChange(context.Background(), sampleReport(), upd))
	require.Len(t, transport.sent, 1)
	assert.NotContains(t, transport.sent[0].HTML, "Remarks")
}

func TestNotifierNoopWithoutTransport(t *testing.T) {
	notifier := NewNotifierService(nil, "admin@civics.app", nil, nil)

	assert.NoError(t, notifier.NotifyNewReport(context.Background(), sampleReport()))
	upd := models.StatusUpdate{Status: "Resolved", UpdatedAt: time.Now().UTC()}
	assert.NoError(t, notifier.NotifyStatusChange(context.Background(), sampleReport(), upd))
}

func TestNotifierSurfacesTransportError(t *testing.T) {
	transport := &transportStub{err: errors.New("smtp down")}
	notifier := NewNotifierService(transport, "admin@civics.app", nil, nil)

	err := notifier.NotifyNewReport(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rep-1")
}

func TestNotifierEscapesHTML(t *testing.T) {
	transport := &transportStub{}
	notifier := NewNotifierService(transport, "admin@civics.app", nil, nil)

	report := sampleReport()
	report.Title = `<script>alert("x")</script>`
	require.NoError(t, notifier.NotifyNewReport(context.Background(), report))
	require.Len(t, transport.sent, 1)
	assert.NotContains(t, transport.sent[0].HTML, "<script>")
}

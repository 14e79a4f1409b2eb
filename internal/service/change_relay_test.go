package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adityasinghr651/civics-api/internal/models"
)

func newTestRelay(store ReportStore, notifier reportNotifier) *ChangeRelay {
	return &ChangeRelay{
		channel:  "report_events",
		store:    store,
		notifier: notifier,
		logger:   zap.NewNop(),
	}
}

func relayStoreWith(report *models.Report) *reportStoreStub {
	store := newReportStoreStub()
	store.reports[report.ID] = *report
	return store
}

func relayReport(status string) *models.Report {
	now := time.Now().UTC()
	return &models.Report{
		ID:            "rep-1",
		Title:         "Pothole",
		Description:   "Big hole on Main St",
		ReporterEmail: "a@example.com",
		Status:        status,
		CreatedAt:     now,
		Location:      models.DefaultLocation,
	}
}

func TestRelayHandlesCreate(t *testing.T) {
	notifier := &notifierStub{}
	relay := newTestRelay(relayStoreWith(relayReport(models.StatusReceived)), notifier)

	err := relay.HandleEvent(context.Background(), ChangeEvent{Op: "create", ReportID: "rep-1"})
	require.NoError(t, err)
	require.Len(t, notifier.newReports, 1)
	assert.Equal(t, "rep-1", notifier.newReports[0].ID)
}

func TestRelayCreateUnknownReport(t *testing.T) {
	notifier := &notifierStub{}
	relay := newTestRelay(newReportStoreStub(), notifier)

	err := relay.HandleEvent(context.Background(), ChangeEvent{Op: "create", ReportID: "missing"})
	require.Error(t, err)
	assert.Empty(t, notifier.newReports)
}

func TestRelaySkipsUnchangedStatus(t *testing.T) {
	notifier := &notifierStub{}
	relay := newTestRelay(relayStoreWith(relayReport(models.StatusReceived)), notifier)

	ev := ChangeEvent{
		Op:        "update",
		ReportID:  "rep-1",
		OldStatus: models.StatusReceived,
		NewStatus: models.StatusReceived,
	}
	require.NoError(t, relay.HandleEvent(context.Background(), ev))
	assert.Empty(t, notifier.statusChanges)
}

func TestRelayNotifiesOnStatusTransition(t *testing.T) {
	report := relayReport("Resolved")
	updatedAt := time.Now().UTC()
	report.UpdatedAt = &updatedAt
	report.Remarks = "fixed"

	notifier := &notifierStub{}
	relay := newTestRelay(relayStoreWith(report), notifier)

	ev := ChangeEvent{
		Op:        "update",
		ReportID:  "rep-1",
		OldStatus: models.StatusReceived,
		NewStatus: "Resolved",
	}
	require.NoError(t, relay.HandleEvent(context.Background(), ev))
	require.Len(t, notifier.statusChanges, 1)
	assert.Equal(t, "Resolved", notifier.statusChanges[0].Status)
	assert.Equal(t, "fixed", notifier.statusChanges[0].Remarks)
}

func TestRelayIgnoresUnknownOps(t *testing.T) {
	notifier := &notifierStub{}
	relay := newTestRelay(newReportStoreStub(), notifier)

	require.NoError(t, relay.HandleEvent(context.Background(), ChangeEvent{Op: "delete", ReportID: "rep-1"}))
	assert.Empty(t, notifier.newReports)
	assert.Empty(t, notifier.statusChanges)
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/adityasinghr651/civics-api/internal/models"
)

const (
	relayOpCreate = "create"
	relayOpUpdate = "update"

	relayPingInterval  = 90 * time.Second
	relayMinReconnect  = 10 * time.Second
	relayMaxReconnect  = time.Minute
	relayEventDeadline = 30 * time.Second
)

// ChangeEvent mirrors the payload emitted by the reports change trigger
// (scripts/schema.sql). The trigger sends ids and the status transition only;
// the relay re-reads the row for full fields, keeping the NOTIFY payload well
// under the 8000-byte cap.
type ChangeEvent struct {
	Op        string `json:"op"`
	ReportID  string `json:"report_id"`
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}

// ChangeRelay consumes the store's native change feed and re-sends the same
// notifications the service sends synchronously. It has no caller: every
// failure is logged and the loop moves on.
//
// Running the relay against rows written by this API duplicates emails, since
// the service has already notified. It is therefore disabled by default and
// meant for deployments where reports are written to the database directly.
type ChangeRelay struct {
	listener *pq.Listener
	channel  string
	store    ReportStore
	notifier reportNotifier
	logger   *zap.Logger
	metrics  *MetricsService
}

// NewChangeRelay builds a relay listening on the given channel of the store's
// database.
func NewChangeRelay(dsn, channel string, store ReportStore, notifier reportNotifier, logger *zap.Logger, metrics *MetricsService) *ChangeRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	listener := pq.NewListener(dsn, relayMinReconnect, relayMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("relay listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	return &ChangeRelay{
		listener: listener,
		channel:  channel,
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run subscribes and consumes notifications until the context is cancelled.
func (r *ChangeRelay) Run(ctx context.Context) error {
	if err := r.listener.Listen(r.channel); err != nil {
		return fmt.Errorf("listen on %s: %w", r.channel, err)
	}
	r.logger.Info("change relay started", zap.String("channel", r.channel))

	defer r.listener.Close()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("change relay stopping")
			return ctx.Err()
		case n := <-r.listener.Notify:
			if n == nil {
				// nil notification signals a connection reset; the
				// listener reconnects on its own.
				continue
			}
			r.handlePayload(ctx, n.Extra)
		case <-time.After(relayPingInterval):
			if err := r.listener.Ping(); err != nil {
				r.logger.Warn("relay ping failed", zap.Error(err))
			}
		}
	}
}

func (r *ChangeRelay) handlePayload(ctx context.Context, payload string) {
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		r.logger.Warn("relay received malformed payload", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, relayEventDeadline)
	defer cancel()
	if err := r.HandleEvent(ctx, ev); err != nil {
		r.logger.Warn("relay event handling failed",
			zap.String("op", ev.Op),
			zap.String("report_id", ev.ReportID),
			zap.Error(err))
	}
}

// HandleEvent reacts to a single change-feed event.
func (r *ChangeRelay) HandleEvent(ctx context.Context, ev ChangeEvent) error {
	if r.metrics != nil {
		r.metrics.ObserveRelayEvent(ev.Op)
	}

	switch ev.Op {
	case relayOpCreate:
		report, err := r.store.Get(ctx, ev.ReportID)
		if err != nil {
			return fmt.Errorf("load created report: %w", err)
		}
		return r.notifier.NotifyNewReport(ctx, report)

	case relayOpUpdate:
		// Only a real status transition triggers mail.
		if ev.OldStatus == ev.NewStatus {
			return nil
		}
		report, err := r.store.Get(ctx, ev.ReportID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("updated report vanished: %s", ev.ReportID)
			}
			return fmt.Errorf("load updated report: %w", err)
		}
		upd := models.StatusUpdate{Status: ev.NewStatus, Remarks: report.Remarks}
		if report.UpdatedAt != nil {
			upd.UpdatedAt = *report.UpdatedAt
		}
		return r.notifier.NotifyStatusChange(ctx, report, upd)

	default:
		r.logger.Debug("relay ignoring event", zap.String("op", ev.Op))
		return nil
	}
}

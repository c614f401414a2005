package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
)

// Record is one entry in the incidence notification history: which external
// system was told about which event of which incidence, and how that went.
type Record struct {
	ID          id.ID      `json:"id"`
	IncidenceID string     `json:"incidence_id"`
	SystemCode  string     `json:"system_code"`
	EventKind   event.Kind `json:"event_kind"`
	Status      Status     `json:"status"`
	Skip        SkipCause  `json:"skip,omitempty"`
	Fault       FaultKind  `json:"fault,omitempty"`
	Detail      string     `json:"detail,omitempty"`
	RecordedAt  time.Time  `json:"recorded_at"`
}

// NewRecord builds a history record for one classified dispatch.
func NewRecord(incidenceID, systemCode string, kind event.Kind, out Outcome) *Record {
	return &Record{
		ID:          id.NewRecordID(),
		IncidenceID: incidenceID,
		SystemCode:  systemCode,
		EventKind:   kind,
		Status:      out.Status,
		Skip:        out.Skip,
		Fault:       out.Fault,
		Detail:      out.Detail,
		RecordedAt:  time.Now().UTC(),
	}
}

// Recorder is the history collaborator the dispatcher writes outcomes to.
// The history store itself lives outside this module — callers inject a
// backend (see history/memory, history/redis, history/mongo, history/bun)
// or bridge to their own audit trail with RecorderFunc.
//
// From the dispatcher's point of view a Recorder failure is logs-only: it
// never masks the Outcome returned to the caller.
type Recorder interface {
	// Record persists one history record.
	Record(ctx context.Context, rec *Record) error
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, rec *Record) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, rec *Record) error {
	return f(ctx, rec)
}

// NopRecorder discards all records. It is the default when no recorder is
// injected.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, *Record) error { return nil }

// FailureNotifier is alerted of failed dispatches, fire-and-forget. The
// delivery channel (e-mail, chat, pager) is the backend's concern; errors
// from the notifier are logged and dropped.
type FailureNotifier interface {
	// NotifyFailure reports one failed dispatch.
	NotifyFailure(ctx context.Context, rec *Record) error
}

// FailureNotifierFunc is an adapter to use a plain function as a
// FailureNotifier.
type FailureNotifierFunc func(ctx context.Context, rec *Record) error

// NotifyFailure implements FailureNotifier.
func (f FailureNotifierFunc) NotifyFailure(ctx context.Context, rec *Record) error {
	return f(ctx, rec)
}

// NopNotifier ignores failures. It is the default when no notifier is
// injected.
type NopNotifier struct{}

// NotifyFailure implements FailureNotifier.
func (NopNotifier) NotifyFailure(context.Context, *Record) error { return nil }

// LogNotifier reports failures through a structured logger. It stands in
// until a real delivery channel is wired up.
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyFailure implements FailureNotifier.
func (n LogNotifier) NotifyFailure(_ context.Context, rec *Record) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("external system notification failed",
		slog.String("incidence_id", rec.IncidenceID),
		slog.String("external_system", rec.SystemCode),
		slog.String("event_kind", string(rec.EventKind)),
		slog.String("detail", rec.Detail),
	)
	return nil
}

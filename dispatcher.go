package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
	"github.com/raquelt/notify/incidence"
	"github.com/raquelt/notify/middleware"
)

// Dispatcher delivers incidence lifecycle events to one external-system
// plugin, applying the same pre/post processing around every event:
// correlation, structured logging, implementation-presence detection,
// invocation inside a failure boundary, outcome classification, history
// recording, and failure alerting.
//
// A Dispatcher is immutable after New. Concurrent Notify calls are safe
// only if the plugin's own handler bodies are reentrant; the dispatcher
// imposes no locking or serialization of its own.
type Dispatcher struct {
	plugin      Plugin
	code        string
	handlers    map[event.Kind]HandlerFunc
	interceptor Interceptor // nil unless the plugin implements Interceptor
	recorder    Recorder
	notifier    FailureNotifier
	logger      *slog.Logger
	mws         []middleware.Middleware
	chain       middleware.Middleware
}

// New creates a Dispatcher for the given plugin. The plugin's event
// capabilities are resolved once, here: each per-event handler interface it
// implements is cached into the dispatch table, so Notify never introspects.
func New(p Plugin, opts ...Option) (*Dispatcher, error) {
	if p == nil {
		return nil, ErrNoPlugin
	}

	d := &Dispatcher{
		plugin:   p,
		code:     p.ExternalSystemCode(),
		recorder: NopRecorder{},
		notifier: NopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	d.handlers = capabilities(p)
	if ic, ok := p.(Interceptor); ok {
		d.interceptor = ic
	}

	// Recover sits innermost so no handler fault can escape Notify.
	d.chain = middleware.Chain(append(d.mws, middleware.Recover(d.logger))...)

	return d, nil
}

// Plugin returns the plugin this dispatcher delivers to.
func (d *Dispatcher) Plugin() Plugin { return d.plugin }

// ExternalSystemCode returns the plugin's external system code.
func (d *Dispatcher) ExternalSystemCode() string { return d.code }

// Implements reports whether the plugin supplies a handler for kind.
// Sentinel-based plugins (such as Mux) register a handler for every kind,
// so Implements reflects the capability surface, not the data-dependent
// outcome of a call.
func (d *Dispatcher) Implements(kind event.Kind) bool {
	_, ok := d.handlers[kind]
	return ok
}

// Notify delivers evt for inc to the plugin and returns the classification.
//
// Every call deterministically yields exactly one Outcome: handler faults
// and panics are contained here and converted, never propagated. The
// dispatcher performs a single invocation attempt — no retries.
func (d *Dispatcher) Notify(ctx context.Context, inc *incidence.Incidence, evt event.Event) Outcome {
	// Guard: an unattributable event must reach neither the plugin nor any
	// collaborator, or history would hold entries nothing can correlate.
	if !inc.Valid() {
		d.logger.Error("dispatch rejected: missing incidence id",
			slog.String("external_system", d.code),
			slog.String("event_kind", string(evt.Kind())),
		)
		return Failed(FaultInvalidInput, ErrMissingIncidenceID.Error())
	}

	// Escape hatch: a plugin that claims this event owns the whole
	// dispatch, including its own logging and recording.
	if d.interceptor != nil {
		if out, handled := d.interceptor.Intercept(ctx, inc, evt); handled {
			return out
		}
	}

	del := &middleware.Delivery{
		ID:          id.NewDeliveryID(),
		IncidenceID: inc.ID,
		SystemCode:  d.code,
		Event:       evt,
	}

	d.logger.Info("dispatching event to external system",
		slog.String("delivery_id", del.ID.String()),
		slog.String("incidence_id", inc.ID),
		slog.String("external_system", d.code),
		slog.String("event_kind", string(evt.Kind())),
		slog.Any("payload", evt),
	)

	h, ok := d.handlers[evt.Kind()]
	if !ok {
		d.logger.Info("event not implemented by plugin",
			slog.String("incidence_id", inc.ID),
			slog.String("external_system", d.code),
			slog.String("event_kind", string(evt.Kind())),
		)
		return SkippedNotImplemented()
	}

	err := d.chain(ctx, del, func(ctx context.Context) error {
		return h(ctx, inc, evt)
	})

	out := classify(err)
	d.logOutcome(del, out)

	if out.Recordable() {
		d.record(ctx, del, out)
	}
	if out.IsFailed() {
		d.notifyFailure(ctx, del, out)
	}

	return out
}

// classify maps a handler result onto the outcome taxonomy.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OK()
	case errors.Is(err, ErrNotImplemented):
		return SkippedNotImplemented()
	case errors.Is(err, ErrNotApplicable):
		return SkippedNotApplicable()
	default:
		return Failed(FaultExternalError, err.Error())
	}
}

func (d *Dispatcher) logOutcome(del *middleware.Delivery, out Outcome) {
	attrs := []any{
		slog.String("delivery_id", del.ID.String()),
		slog.String("incidence_id", del.IncidenceID),
		slog.String("external_system", del.SystemCode),
		slog.String("event_kind", string(del.Event.Kind())),
	}

	switch {
	case out.IsOK():
		d.logger.Info("external system notified", attrs...)
	case out.Skip == SkipNotApplicable:
		d.logger.Info("notification not applicable for this input", attrs...)
	case out.IsSkipped():
		d.logger.Info("event not implemented by plugin", attrs...)
	default:
		d.logger.Error("external system notification failed",
			append(attrs, slog.String("detail", out.Detail))...)
	}
}

// record forwards the classified outcome to the history recorder. Recorder
// failures never mask the outcome returned to the caller.
func (d *Dispatcher) record(ctx context.Context, del *middleware.Delivery, out Outcome) {
	rec := NewRecord(del.IncidenceID, del.SystemCode, del.Event.Kind(), out)
	if err := d.recorder.Record(ctx, rec); err != nil {
		d.logger.Warn("failed to record history entry",
			slog.String("incidence_id", del.IncidenceID),
			slog.String("event_kind", string(del.Event.Kind())),
			slog.String("error", err.Error()),
		)
	}
}

// notifyFailure alerts the failure notifier, fire-and-forget.
func (d *Dispatcher) notifyFailure(ctx context.Context, del *middleware.Delivery, out Outcome) {
	rec := NewRecord(del.IncidenceID, del.SystemCode, del.Event.Kind(), out)
	if err := d.notifier.NotifyFailure(ctx, rec); err != nil {
		d.logger.Warn("failure notifier error",
			slog.String("incidence_id", del.IncidenceID),
			slog.String("event_kind", string(del.Event.Kind())),
			slog.String("error", err.Error()),
		)
	}
}

// capabilities builds the dispatch table for p by probing the per-event
// handler interfaces once. This is the compile-time rendering of "does the
// plugin implement handler H": absent entries mean skipped dispatches, and
// no reflection happens on the hot path.
func capabilities(p Plugin) map[event.Kind]HandlerFunc {
	h := make(map[event.Kind]HandlerFunc, 8)

	if impl, ok := p.(FirstAssignmentHandler); ok {
		h[event.KindFirstAssignment] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnFirstAssignment(ctx, inc, evt.(event.FirstAssignment))
		}
	}
	if impl, ok := p.(ActiveHandler); ok {
		h[event.KindActive] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnActive(ctx, inc, evt.(event.Active))
		}
	}
	if impl, ok := p.(DelayedHandler); ok {
		h[event.KindDelayed] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnDelayed(ctx, inc, evt.(event.Delayed))
		}
	}
	if impl, ok := p.(RestoredHandler); ok {
		h[event.KindRestored] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnRestored(ctx, inc, evt.(event.Restored))
		}
	}
	if impl, ok := p.(SolvedHandler); ok {
		h[event.KindSolved] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnSolved(ctx, inc, evt.(event.Solved))
		}
	}
	if impl, ok := p.(ActiveAfterSolvedHandler); ok {
		h[event.KindActiveAfterSolved] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnActiveAfterSolved(ctx, inc, evt.(event.ActiveAfterSolved))
		}
	}
	if impl, ok := p.(AddedNoteHandler); ok {
		h[event.KindAddedNote] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnAddedNote(ctx, inc, evt.(event.AddedNote))
		}
	}
	if impl, ok := p.(AddedAttachmentHandler); ok {
		h[event.KindAddedAttachment] = func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
			return impl.OnAddedAttachment(ctx, inc, evt.(event.AddedAttachment))
		}
	}

	return h
}

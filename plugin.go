package notify

import (
	"context"

	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/incidence"
)

// Plugin is the base interface every external-system integration must
// implement. A concrete plugin opts in to lifecycle events by additionally
// implementing the per-event handler interfaces below; the dispatcher
// detects the capabilities once at construction time, so an event the
// plugin does not implement is skipped without invoking anything.
//
// Plugins are stateless with respect to dispatch: handlers must not assume
// any ordering across calls unless the plugin itself enforces it.
type Plugin interface {
	// ExternalSystemCode returns a short code identifying the external
	// ticketing/workflow system this plugin integrates with.
	ExternalSystemCode() string
}

// HandlerFunc is the kind-erased handler signature used by Mux registration
// and by the dispatcher's internal capability table.
type HandlerFunc func(ctx context.Context, inc *incidence.Incidence, evt event.Event) error

// ──────────────────────────────────────────────────
// Per-event handler capabilities
// ──────────────────────────────────────────────────
//
// Each handler either returns nil (notified ok), ErrNotApplicable (ran and
// decided this input needs no notification, recorded as a skip),
// ErrNotImplemented (treated exactly like a missing capability), or any
// other error (classified as an external failure).

// FirstAssignmentHandler reacts to the first assignment of an incidence.
type FirstAssignmentHandler interface {
	OnFirstAssignment(ctx context.Context, inc *incidence.Incidence, evt event.FirstAssignment) error
}

// ActiveHandler reacts to an incidence entering the active state.
type ActiveHandler interface {
	OnActive(ctx context.Context, inc *incidence.Incidence, evt event.Active) error
}

// DelayedHandler reacts to a delayed incidence.
type DelayedHandler interface {
	OnDelayed(ctx context.Context, inc *incidence.Incidence, evt event.Delayed) error
}

// RestoredHandler reacts to a restored service.
type RestoredHandler interface {
	OnRestored(ctx context.Context, inc *incidence.Incidence, evt event.Restored) error
}

// SolvedHandler reacts to a solved incidence.
type SolvedHandler interface {
	OnSolved(ctx context.Context, inc *incidence.Incidence, evt event.Solved) error
}

// ActiveAfterSolvedHandler reacts to a solved incidence that reopened.
type ActiveAfterSolvedHandler interface {
	OnActiveAfterSolved(ctx context.Context, inc *incidence.Incidence, evt event.ActiveAfterSolved) error
}

// AddedNoteHandler reacts to a note added to an incidence.
type AddedNoteHandler interface {
	OnAddedNote(ctx context.Context, inc *incidence.Incidence, evt event.AddedNote) error
}

// AddedAttachmentHandler reacts to an attachment added to an incidence.
type AddedAttachmentHandler interface {
	OnAddedAttachment(ctx context.Context, inc *incidence.Incidence, evt event.AddedAttachment) error
}

// Interceptor is the one deliberate escape hatch in the plugin contract.
// A plugin that needs different semantics for some events — deciding before
// any common logging that an event must be silently ignored, or doing its
// own bookkeeping — implements Interceptor and claims those events by
// returning handled = true.
//
// A claimed event bypasses the common pipeline entirely: no entry logging,
// no classification, no history record, no failure notification. The
// interceptor owns all of that; the dispatcher returns its Outcome verbatim.
// Unclaimed events (handled = false) fall through to the common path.
//
// The missing-correlation-id guard still runs first: an unattributable
// incidence reaches no plugin code, intercepted or not.
type Interceptor interface {
	Intercept(ctx context.Context, inc *incidence.Incidence, evt event.Event) (out Outcome, handled bool)
}

package notify

import (
	"context"

	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/incidence"
)

// Compile-time capability checks: a Mux presents every handler to the
// dispatcher and resolves presence per kind at call time instead.
var (
	_ Plugin                   = (*Mux)(nil)
	_ FirstAssignmentHandler   = (*Mux)(nil)
	_ ActiveHandler            = (*Mux)(nil)
	_ DelayedHandler           = (*Mux)(nil)
	_ RestoredHandler          = (*Mux)(nil)
	_ SolvedHandler            = (*Mux)(nil)
	_ ActiveAfterSolvedHandler = (*Mux)(nil)
	_ AddedNoteHandler         = (*Mux)(nil)
	_ AddedAttachmentHandler   = (*Mux)(nil)
)

// Mux is a registration-map Plugin: integrations that prefer plain functions
// over methods register a HandlerFunc per event kind at construction time.
//
// A Mux implements every handler capability, so the dispatcher always finds
// an entry for it; kinds with no registered function return
// ErrNotImplemented, which classifies exactly like a missing capability —
// the sentinel-signal strategy and the existence-check strategy produce
// identical outcomes by construction.
type Mux struct {
	code     string
	handlers map[event.Kind]HandlerFunc
}

// NewMux creates an empty Mux for the given external system code.
func NewMux(externalSystemCode string) *Mux {
	return &Mux{
		code:     externalSystemCode,
		handlers: make(map[event.Kind]HandlerFunc, 8),
	}
}

// Handle registers fn for kind, replacing any previous registration.
// Registration is not synchronized: register everything before handing the
// Mux to New.
func (m *Mux) Handle(kind event.Kind, fn HandlerFunc) {
	m.handlers[kind] = fn
}

// ExternalSystemCode implements Plugin.
func (m *Mux) ExternalSystemCode() string { return m.code }

// dispatch resolves the registered function for evt's kind, signalling
// ErrNotImplemented for kinds nothing was registered for.
func (m *Mux) dispatch(ctx context.Context, inc *incidence.Incidence, evt event.Event) error {
	fn, ok := m.handlers[evt.Kind()]
	if !ok {
		return ErrNotImplemented
	}
	return fn(ctx, inc, evt)
}

// OnFirstAssignment implements FirstAssignmentHandler.
func (m *Mux) OnFirstAssignment(ctx context.Context, inc *incidence.Incidence, evt event.FirstAssignment) error {
	return m.dispatch(ctx, inc, evt)
}

// OnActive implements ActiveHandler.
func (m *Mux) OnActive(ctx context.Context, inc *incidence.Incidence, evt event.Active) error {
	return m.dispatch(ctx, inc, evt)
}

// OnDelayed implements DelayedHandler.
func (m *Mux) OnDelayed(ctx context.Context, inc *incidence.Incidence, evt event.Delayed) error {
	return m.dispatch(ctx, inc, evt)
}

// OnRestored implements RestoredHandler.
func (m *Mux) OnRestored(ctx context.Context, inc *incidence.Incidence, evt event.Restored) error {
	return m.dispatch(ctx, inc, evt)
}

// OnSolved implements SolvedHandler.
func (m *Mux) OnSolved(ctx context.Context, inc *incidence.Incidence, evt event.Solved) error {
	return m.dispatch(ctx, inc, evt)
}

// OnActiveAfterSolved implements ActiveAfterSolvedHandler.
func (m *Mux) OnActiveAfterSolved(ctx context.Context, inc *incidence.Incidence, evt event.ActiveAfterSolved) error {
	return m.dispatch(ctx, inc, evt)
}

// OnAddedNote implements AddedNoteHandler.
func (m *Mux) OnAddedNote(ctx context.Context, inc *incidence.Incidence, evt event.AddedNote) error {
	return m.dispatch(ctx, inc, evt)
}

// OnAddedAttachment implements AddedAttachmentHandler.
func (m *Mux) OnAddedAttachment(ctx context.Context, inc *incidence.Incidence, evt event.AddedAttachment) error {
	return m.dispatch(ctx, inc, evt)
}

// Package example is a reference external-system plugin used in tests and
// documentation. It simulates a remote ticketing system whose behavior is
// driven entirely by the external ticket id carried on the event, so every
// outcome class is reproducible without a network.
package example

import (
	"context"
	"fmt"

	"github.com/raquelt/notify"
	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/incidence"
)

// SystemCode is the external system code the example plugin reports.
const SystemCode = "EXAMPLE"

// Sentinel ticket ids that drive the simulated remote system.
const (
	// TicketIDOK makes every implemented handler succeed.
	TicketIDOK = "EXTERNAL_ID_OK"
	// TicketIDNOK makes every implemented handler fail as if the remote
	// system rejected the call.
	TicketIDNOK = "EXTERNAL_ID_NOK"
	// TicketIDNotApplicable makes the delayed handler decline the input
	// with an explicit not-applicable skip.
	TicketIDNotApplicable = "EXTERNAL_ID_NOT_IMPLEMENT"
)

// Plugin handles first assignments, delays, restorations and solutions.
// It deliberately leaves the remaining event kinds unimplemented so the
// skip path is exercised end to end.
type Plugin struct{}

var (
	_ notify.Plugin                 = (*Plugin)(nil)
	_ notify.FirstAssignmentHandler = (*Plugin)(nil)
	_ notify.DelayedHandler         = (*Plugin)(nil)
	_ notify.RestoredHandler        = (*Plugin)(nil)
	_ notify.SolvedHandler          = (*Plugin)(nil)
)

// New returns the example plugin.
func New() *Plugin { return &Plugin{} }

// ExternalSystemCode implements notify.Plugin.
func (*Plugin) ExternalSystemCode() string { return SystemCode }

// OnFirstAssignment implements notify.FirstAssignmentHandler.
func (p *Plugin) OnFirstAssignment(_ context.Context, _ *incidence.Incidence, evt event.FirstAssignment) error {
	return p.call(evt.ExternalTicketID)
}

// OnDelayed implements notify.DelayedHandler. A ticket the remote system
// does not track is an explicit, audited no-op rather than a failure.
func (p *Plugin) OnDelayed(_ context.Context, _ *incidence.Incidence, evt event.Delayed) error {
	if evt.ExternalTicketID == TicketIDNotApplicable {
		return notify.ErrNotApplicable
	}
	return p.call(evt.ExternalTicketID)
}

// OnRestored implements notify.RestoredHandler.
func (p *Plugin) OnRestored(_ context.Context, _ *incidence.Incidence, evt event.Restored) error {
	return p.call(evt.ExternalTicketID)
}

// OnSolved implements notify.SolvedHandler.
func (p *Plugin) OnSolved(_ context.Context, _ *incidence.Incidence, evt event.Solved) error {
	return p.call(evt.ExternalTicketID)
}

// call simulates the remote round trip.
func (*Plugin) call(ticketID string) error {
	switch ticketID {
	case TicketIDOK:
		return nil
	case TicketIDNOK:
		return fmt.Errorf("remote system rejected ticket %s", ticketID)
	default:
		return fmt.Errorf("unknown ticket %s", ticketID)
	}
}

// QuietPlugin wraps Plugin with an interceptor that silently ignores note
// events: the remote system has no notion of annotations, and unlike an
// unimplemented handler this must leave no log line behind. Claimed events
// bypass the common pipeline, so the interceptor reports success without
// any bookkeeping.
type QuietPlugin struct {
	Plugin
}

var _ notify.Interceptor = (*QuietPlugin)(nil)

// NewQuiet returns the example plugin with note events silenced.
func NewQuiet() *QuietPlugin { return &QuietPlugin{} }

// Intercept implements notify.Interceptor.
func (*QuietPlugin) Intercept(_ context.Context, _ *incidence.Incidence, evt event.Event) (notify.Outcome, bool) {
	if evt.Kind() == event.KindAddedNote {
		return notify.OK(), true
	}
	return notify.Outcome{}, false
}

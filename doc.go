// Package notify dispatches incidence lifecycle events to external-system
// integrations. It owns the contract between a generic notification surface
// and plugin-supplied handlers: detecting whether a plugin implements an
// event, invoking the handler inside a failure boundary, classifying the
// result, and recording the outcome — one reusable pipeline applied
// uniformly across every event kind, so no plugin author reimplements that
// bookkeeping.
//
// # Quick Start
//
//	d, err := notify.New(myPlugin,
//	    notify.WithRecorder(memory.New()),
//	    notify.WithFailureNotifier(notify.LogNotifier{}),
//	)
//	if err != nil { ... }
//
//	out := d.Notify(ctx, inc, event.Solved{
//	    ExternalTicketID: "TT-4711",
//	    CauseStatus:      "fixed upstream",
//	})
//
// Every Notify call yields exactly one Outcome: Ok, Skipped, or Failed.
// Handler errors and panics never escape the dispatcher.
//
// # Plugins
//
// A plugin implements Plugin plus any subset of the per-event handler
// interfaces (FirstAssignmentHandler, ActiveHandler, ...). Events it does
// not implement are skipped without a history record. A handler may return
// ErrNotApplicable to skip a specific input on purpose — that skip IS
// recorded. Mux offers function-based registration for integrations that
// prefer it over methods. Interceptor lets a plugin take over the entire
// dispatch for selected events, opting out of the common pipeline.
//
// # Collaborators
//
// History recording and failure alerting are injected side-effect sinks
// behind the Recorder and FailureNotifier interfaces. Backends for the
// recorder live in history/memory, history/redis, history/mongo, and
// history/bun. Middleware (tracing, metrics, logging) wraps every handler
// invocation; see the middleware package.
//
// All entity IDs minted here use TypeID — type-prefixed, K-sortable,
// UUIDv7-based identifiers. Incidence ids are opaque strings owned by the
// external incidence store.
package notify

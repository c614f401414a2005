// Package middleware provides composable middleware for plugin handler
// invocation. Middleware wraps handler calls synchronously and can modify
// execution (recover from panics, log, add tracing and metrics).
package middleware

import (
	"context"

	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
)

// Delivery describes one notification in flight through the middleware
// chain: which incidence it belongs to, which external system is being
// notified, and the event being delivered.
type Delivery struct {
	// ID uniquely identifies this dispatch attempt.
	ID id.ID
	// IncidenceID is the correlation id of the incidence.
	IncidenceID string
	// SystemCode identifies the external system the plugin integrates with.
	SystemCode string
	// Event is the lifecycle event being delivered.
	Event event.Event
}

// Handler is the terminal function that invokes the plugin handler.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the delivery being executed, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, d *Delivery, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, tracing, recover) executes as:
//
//	logging → tracing → recover → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, d, prev)
			}
		}
		return h(ctx)
	}
}

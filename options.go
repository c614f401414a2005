package notify

import (
	"log/slog"

	"github.com/raquelt/notify/middleware"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets the structured logger for the dispatcher. The same logger
// backs the built-in recover boundary, so set it before relying on panic
// diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) error {
		d.logger = l
		return nil
	}
}

// WithRecorder sets the history recorder the dispatcher forwards classified
// outcomes to. Defaults to NopRecorder.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) error {
		d.recorder = r
		return nil
	}
}

// WithFailureNotifier sets the collaborator alerted on failed dispatches.
// Defaults to NopNotifier.
func WithFailureNotifier(n FailureNotifier) Option {
	return func(d *Dispatcher) error {
		d.notifier = n
		return nil
	}
}

// WithMiddleware appends middleware around every handler invocation, applied
// in the given order with the first one outermost. middleware.Recover is
// always installed innermost regardless of this option.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(d *Dispatcher) error {
		d.mws = append(d.mws, mws...)
		return nil
	}
}

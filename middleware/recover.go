package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("plugin handler panicked",
					slog.String("incidence_id", d.IncidenceID),
					slog.String("external_system", d.SystemCode),
					slog.String("event_kind", string(d.Event.Kind())),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in %s handler: %v", d.Event.Kind(), r)
			}
		}()
		return next(ctx)
	}
}

package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs handler invocation and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		logger.Info("handler started",
			slog.String("delivery_id", d.ID.String()),
			slog.String("incidence_id", d.IncidenceID),
			slog.String("external_system", d.SystemCode),
			slog.String("event_kind", string(d.Event.Kind())),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("handler failed",
				slog.String("delivery_id", d.ID.String()),
				slog.String("incidence_id", d.IncidenceID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("handler completed",
				slog.String("delivery_id", d.ID.String()),
				slog.String("incidence_id", d.IncidenceID),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}

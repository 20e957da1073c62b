package obs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey carries the per-request id assigned by the API middleware.
const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration and outcome of an operation. Use as:
//
//	defer obs.Time(ctx, logger, "osrm.Route")(&err)
func Time(ctx context.Context, logger *logrus.Logger, name string) func(errp *error) {
	start := time.Now()

	if logger == nil {
		return func(*error) {}
	}

	entry := logger.WithFields(logrus.Fields{
		"req_id": RequestID(ctx),
		"op":     name,
	})

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			entry.WithError(*errp).WithField("dur_ms", dur.Milliseconds()).Warn("operation failed")
			return
		}
		entry.WithField("dur_ms", dur.Milliseconds()).Debug("operation complete")
	}
}

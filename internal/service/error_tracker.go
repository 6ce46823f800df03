package service

import (
	"context"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/internal/utils"
)

type logErrorTracker struct{}

// NewLogErrorTracker returns an [ErrorTracker] that writes every tracked
// error to the context logger at warn level.
func NewLogErrorTracker() ErrorTracker {
	return logErrorTracker{}
}

func (logErrorTracker) Track(ctx context.Context, err error, fields map[string]string) {
	if err == nil {
		return
	}

	event := logger.FromContext(ctx).Warn().Err(err).Str("reason", failureReason(err))
	for k, v := range fields {
		event = event.Str(k, v)
	}
	event.Msg("tracked sync error")
}

// trackRunError reports err with the operation name and the run id found in
// ctx.
func trackRunError(ctx context.Context, tracker ErrorTracker, err error, operation string) {
	fields := map[string]string{"operation": operation}
	if runID, ok := utils.GetRunIDFromContext(ctx); ok {
		fields["run_id"] = runID
	}
	tracker.Track(ctx, err, fields)
}

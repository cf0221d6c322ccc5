package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/model"
)

// SkipLogger records skips in the log only. The backend has no skip endpoint.
type SkipLogger struct {
	log *zap.Logger
}

// LogSkips returns a SkipRecorder that writes each skip at debug level
func LogSkips(logger *zap.Logger) *SkipLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkipLogger{log: logger.Named("skips")}
}

// RecordSkip logs the skipped key
func (s *SkipLogger) RecordSkip(_ context.Context, key model.Key) error {
	s.log.Debug("Skipped", zap.Stringer("key", key))
	return nil
}

package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionCleaner removes sessions that can no longer be used.
type SessionCleaner interface {
	Clean(ctx context.Context) (int64, error)
}

// SessionJanitor runs cleaner every interval until ctx is cancelled.
func SessionJanitor(ctx context.Context, cleaner SessionCleaner, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := cleaner.Clean(ctx)
			if err != nil {
				logger.Error("Session cleanup failed", zap.Error(err))
				continue
			}
			logger.Info("Expired sessions cleaned", zap.Int64("removed", removed))
		}
	}
}

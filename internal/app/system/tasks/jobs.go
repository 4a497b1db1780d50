// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	snapshotstore "github.com/dalemusser/pageveil/internal/app/store/snapshots"
	"github.com/dalemusser/pageveil/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SnapshotCleanupJob creates a job that removes snapshots older than the
// configured retention. Mongo's TTL monitor does this on its own, but it
// keeps honoring an old expiry when the retention setting is shortened
// between restarts, so this job enforces the current value.
func SnapshotCleanupJob(db *mongo.Database, retention time.Duration, logger *zap.Logger) Job {
	store := snapshotstore.New(db)
	return Job{
		Name:     "snapshot-cleanup",
		Interval: 15 * time.Minute,
		Run: func(ctx context.Context) error {
			ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch, logger, "snapshot-cleanup")
			defer cancel()

			deleted, err := store.DeleteOlderThan(ctx, time.Now().UTC().Add(-retention))
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up expired snapshots",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}

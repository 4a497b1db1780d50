// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	snapshotstore "github.com/dalemusser/pageveil/internal/app/store/snapshots"
)

/*
EnsureAll is called at startup. Each ensure step is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, snapshotTTL time.Duration) error {
	var problems []string

	if err := snapshotstore.New(db).EnsureIndexes(ctx, snapshotTTL); err != nil {
		problems = append(problems, "snapshots: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New("index creation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

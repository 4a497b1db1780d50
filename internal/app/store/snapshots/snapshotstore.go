// internal/app/store/snapshots/snapshotstore.go
package snapshotstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/pageveil/internal/app/store/storeutil"
	"github.com/dalemusser/pageveil/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("snapshots")}
}

// EnsureIndexes creates the recent-list index and the TTL index that
// expires snapshots after ttl.
func (s *Store) EnsureIndexes(ctx context.Context, ttl time.Duration) error {
	indexes := []mongo.IndexModel{
		// Site-wide recent snapshots (latest-first)
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_snapshots_created"),
		},
		// Expire snapshots; they exist only to back the viewer iframe and
		// the short history list.
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().
				SetName("idx_snapshots_ttl").
				SetExpireAfterSeconds(int32(ttl.Seconds())),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a Snapshot, assigning a UUID and CreatedAt when unset,
// and returns the stored id.
func (s *Store) Create(ctx context.Context, snap models.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Get retrieves a snapshot by id. Returns mongo.ErrNoDocuments if it does
// not exist (or has expired).
func (s *Store) Get(ctx context.Context, id string) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Recent retrieves the most recent snapshots, latest first, without the
// document bodies (the history list never needs them). page is 1-based.
func (s *Store) Recent(ctx context.Context, limit, page int64) ([]models.Snapshot, error) {
	opts := storeutil.Paginate(limit, page).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"html": 0})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var snaps []models.Snapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// DeleteOlderThan removes snapshots created before the cutoff and returns
// how many were deleted. The TTL index handles expiry in the normal case;
// this backs it up when the configured retention is shortened after the
// index was created.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

package eventstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// ListRaw returns events as raw maps, sorted upcoming-first: start
// ascending, then legacy date ascending, newest created last as the tie
// break.
func (s *Store) ListRaw(ctx context.Context, skip, limit int64) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "start", Value: 1},
			{Key: "date", Value: 1},
			{Key: "created_at", Value: -1},
		}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// AllRaw loads every event, for the featured-events sampler.
func (s *Store) AllRaw(ctx context.Context) ([]bson.M, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts all events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// GetRaw loads one event by id as a raw map. Returns
// mongo.ErrNoDocuments when absent.
func (s *Store) GetRaw(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get loads one event as a typed model, for the registration flow.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Register appends an attendee and bumps the counter in one update so
// concurrent registrations never lose a count.
func (s *Store) Register(ctx context.Context, eventID primitive.ObjectID, userID, source string) error {
	attendee := models.Attendee{
		UserID:             userID,
		RegisteredAt:       time.Now().UTC(),
		RegistrationSource: source,
	}
	_, err := s.c.UpdateByID(ctx, eventID, bson.M{
		"$push": bson.M{"attendees": attendee},
		"$inc":  bson.M{"attendee_count": 1},
	})
	return err
}

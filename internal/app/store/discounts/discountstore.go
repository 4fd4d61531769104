package discountstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("discounts")}
}

// activeFilter matches discounts that are enabled and past the proposal
// stage. Records without a status field count as active.
func activeFilter() bson.M {
	return bson.M{
		"enabled": bson.M{"$ne": false},
		"$or": bson.A{
			bson.M{"status": bson.M{"$ne": "proposed"}},
			bson.M{"status": bson.M{"$exists": false}},
		},
	}
}

// ListRaw returns active discounts newest first.
func (s *Store) ListRaw(ctx context.Context, skip, limit int64) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, activeFilter(), opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts active discounts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, activeFilter())
}

// GetRaw loads one active discount by id. Proposed or disabled discounts
// read as absent.
func (s *Store) GetRaw(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	filter := activeFilter()
	filter["_id"] = id
	var doc bson.M
	if err := s.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

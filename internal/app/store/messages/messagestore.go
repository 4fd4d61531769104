package messagestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Store writes entries into the admin UI's inbox. Failures here are
// logged and swallowed by callers so a broken inbox never blocks a
// member-facing flow.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("messages")}
}

// Add appends an unread inbox message.
func (s *Store) Add(ctx context.Context, msg models.AdminMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.Read = false
	_, err := s.c.InsertOne(ctx, msg)
	return err
}

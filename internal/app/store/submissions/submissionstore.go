package submissionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Store holds the append-only submission audit collections. Nothing in the
// API reads these back; they exist for the admin UI and support queries.
type Store struct {
	contact      *mongo.Collection
	applications *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		contact:      db.Collection("contact_submissions"),
		applications: db.Collection("application_submissions"),
	}
}

// RecordContact appends a contact form audit row.
func (s *Store) RecordContact(ctx context.Context, sub models.ContactSubmission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	_, err := s.contact.InsertOne(ctx, sub)
	return err
}

// RecordApplication appends a membership application audit row.
func (s *Store) RecordApplication(ctx context.Context, sub models.ApplicationSubmission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	_, err := s.applications.InsertOne(ctx, sub)
	return err
}

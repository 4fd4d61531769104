package loginstore

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/reqinfo"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Sources recorded with each login event.
const (
	SourceWebLogin      = "web_login"
	SourceRememberToken = "remember_token"
	SourcePasswordReset = "password_reset"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_events")}
}

// Create inserts a LoginEvent. If Timestamp is zero, it's set to
// time.Now().UTC().
func (s *Store) Create(ctx context.Context, ev models.LoginEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// Record builds a LoginEvent from the HTTP request and inserts it.
// source is one of the Source constants.
func (s *Store) Record(ctx context.Context, r *http.Request, userID, email, source string) error {
	return s.Create(ctx, models.LoginEvent{
		UserID:    userID,
		Email:     email,
		Source:    source,
		Timestamp: time.Now().UTC(),
		IP:        reqinfo.ClientIP(r),
	})
}

package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember creates a paid, visible test member.
func (f *Fixtures) CreateMember(ctx context.Context, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:                      primitive.NewObjectID(),
		Email:                   email,
		FirstName:               "Test",
		LastName:                "Member",
		Paid:                    true,
		CompanyName:             "Test Company",
		ShowInBusinessDirectory: true,
		CreatedAt:               now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return u
}

// CreateMemberWithPassword creates a member who can log in with password.
func (f *Fixtures) CreateMemberWithPassword(ctx context.Context, email, passwordHash string) models.User {
	f.t.Helper()

	u := f.CreateMember(ctx, email)
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"password_hash": passwordHash},
	})
	if err != nil {
		f.t.Fatalf("failed to set test member password: %v", err)
	}
	u.PasswordHash = passwordHash
	return u
}

// CreateEvent creates a future test event.
func (f *Fixtures) CreateEvent(ctx context.Context, title string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Date:      now.Add(72 * time.Hour).Format("2006-01-02"),
		Time:      "18:00",
		Location:  "Test Venue",
		Price:     "Free",
		CreatedAt: now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

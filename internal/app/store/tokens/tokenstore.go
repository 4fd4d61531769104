package tokenstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

const (
	// AuthTokenTTL bounds the window the portal has to exchange a handoff
	// token for a session.
	AuthTokenTTL = 5 * time.Minute

	// RememberTokenTTL is the lifetime of a remember-me credential.
	RememberTokenTTL = 30 * 24 * time.Hour
)

// Provenance values for issued auth tokens.
const (
	FromLogin         = ""
	FromRemember      = "remember"
	FromPasswordReset = "password_reset"
)

type Store struct {
	auth     *mongo.Collection
	remember *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		auth:     db.Collection("auth_tokens"),
		remember: db.Collection("remember_tokens"),
	}
}

// NewToken returns a 64-char hex token from 32 random bytes.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueAuthToken mints a short-lived single-use handoff token for userID.
// provenance is one of FromLogin, FromRemember, FromPasswordReset.
func (s *Store) IssueAuthToken(ctx context.Context, userID, provenance string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	doc := models.AuthToken{
		Token:             token,
		UserID:            userID,
		ExpiresAt:         now.Add(AuthTokenTTL),
		Used:              false,
		CreatedAt:         now,
		FromRemember:      provenance == FromRemember,
		FromPasswordReset: provenance == FromPasswordReset,
	}
	if _, err := s.auth.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return token, nil
}

// IssueRememberToken mints a long-lived remember credential for userID.
func (s *Store) IssueRememberToken(ctx context.Context, userID string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	doc := models.RememberToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(RememberTokenTTL),
		CreatedAt: now,
	}
	if _, err := s.remember.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return token, nil
}

// FindValidRemember loads an unexpired remember token. Returns
// mongo.ErrNoDocuments for unknown or expired tokens.
func (s *Store) FindValidRemember(ctx context.Context, token string) (*models.RememberToken, error) {
	var rt models.RememberToken
	err := s.remember.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteRemember removes a remember token, for rotation on use.
func (s *Store) DeleteRemember(ctx context.Context, token string) error {
	_, err := s.remember.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// EnsureIndexes creates lookup indexes and TTL expiry so stale tokens
// age out of both collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	authModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_auth_tokens_token"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_auth_tokens").SetExpireAfterSeconds(0),
		},
	}
	if _, err := s.auth.Indexes().CreateMany(ctx, authModels); err != nil {
		return err
	}
	rememberModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_remember_tokens_token"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_remember_tokens").SetExpireAfterSeconds(0),
		},
	}
	_, err := s.remember.Indexes().CreateMany(ctx, rememberModels)
	return err
}

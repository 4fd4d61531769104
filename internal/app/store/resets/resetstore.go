package resetstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// PinTTL bounds how long a texted PIN stays valid.
const PinTTL = 15 * time.Minute

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("password_resets")}
}

// GeneratePIN returns a random 6-digit PIN, zero-padded so "004217" is a
// valid value.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Create records a new reset request, purging any prior requests for the
// same user so only one PIN is ever live.
func (s *Store) Create(ctx context.Context, userID, email, phoneLast4 string) (*models.PasswordReset, error) {
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return nil, err
	}
	pin, err := GeneratePIN()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	reset := models.PasswordReset{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Email:      email,
		PIN:        pin,
		PhoneLast4: phoneLast4,
		ExpiresAt:  now.Add(PinTTL),
		Used:       false,
		CreatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

// FindValid loads the pending reset matching email and pin that is unused
// and unexpired. Returns mongo.ErrNoDocuments otherwise.
func (s *Store) FindValid(ctx context.Context, email, pin string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := s.c.FindOne(ctx, bson.M{
		"email":      email,
		"pin":        pin,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&reset)
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// MarkUsed burns a reset so its PIN cannot be replayed.
func (s *Store) MarkUsed(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"used": true}})
	return err
}

// EnsureIndexes creates the PIN lookup index and TTL expiry.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	idxModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "pin", Value: 1}},
			Options: options.Index().SetName("idx_password_resets_email_pin"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_password_resets").SetExpireAfterSeconds(0),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, idxModels)
	return err
}

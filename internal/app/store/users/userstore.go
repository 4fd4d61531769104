package userstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/notify"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// LegacyAdminEmail is the synthetic account backing the env-configured
// admin credential pair.
const LegacyAdminEmail = "admin@system.local"

// ErrDuplicateEmail is returned when an insert loses the unique-email race.
// Callers convert it to the endpoint's success/409 response instead of
// retrying.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// NotDeleted is the visibility predicate excluding soft-deleted members.
// Production data predates the flag, so absence counts as not deleted.
func NotDeleted() bson.M {
	return bson.M{"deleted": bson.M{"$ne": true}}
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail loads a user by normalized email, including soft-deleted
// records. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetActiveByEmail is GetByEmail restricted to non-deleted users.
func (s *Store) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	filter := NotDeleted()
	filter["email"] = NormalizeEmail(email)
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetActiveByID loads a non-deleted user by ObjectID.
func (s *Store) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	filter := NotDeleted()
	filter["_id"] = id
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID regardless of deletion state. Used by
// the reset flow, which operates on the id recorded in the reset request.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindRaw returns matching documents as raw maps for the normalization
// pipeline. opts carries projection, sort, skip, and limit.
func (s *Store) FindRaw(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]bson.M, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOneRaw returns one matching document as a raw map.
func (s *Store) FindOneRaw(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (bson.M, error) {
	var doc bson.M
	if err := s.c.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Count counts documents matching filter, ignoring pagination.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Insert adds a new user, mapping a unique-email collision to
// ErrDuplicateEmail.
func (s *Store) Insert(ctx context.Context, u models.User) (primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}
	return u.ID, nil
}

// EnableEventReminder turns on the event_reminder notification preference
// for both email and SMS channels, preserving other preferences.
func (s *Store) EnableEventReminder(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"notification_preferences.event_reminder": bson.M{
				"email": true,
				"sms":   true,
			},
		},
	})
	return err
}

// ApplyApplication overwrites the application profile fields on an existing
// member, mapping a unique-email collision to ErrDuplicateEmail.
func (s *Store) ApplyApplication(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdatePassword replaces the password hash and stamps
// password_updated_at.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password_hash":       hash,
			"password_updated_at": time.Now().UTC(),
		},
	})
	return err
}

// RecordLastLogin stamps last_login with the current time.
func (s *Store) RecordLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"last_login": time.Now().UTC()},
	})
	return err
}

// EnsureLegacyAdmin finds the synthetic admin user, creating it on first
// legacy-credential login.
func (s *Store) EnsureLegacyAdmin(ctx context.Context) (*models.User, error) {
	u, err := s.GetByEmail(ctx, LegacyAdminEmail)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	admin := models.User{
		ID:           primitive.NewObjectID(),
		Email:        LegacyAdminEmail,
		FirstName:    "System",
		LastName:     "Admin",
		IsSuperAdmin: true,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, admin); err != nil {
		if wafflemongo.IsDup(err) {
			// Concurrent first login created it; load that one.
			return s.GetByEmail(ctx, LegacyAdminEmail)
		}
		return nil, err
	}
	return &admin, nil
}

// SuperAdmins lists super admins with a phone on file, for notification
// fan-out. Implements notify.AdminDirectory.
func (s *Store) SuperAdmins(ctx context.Context) ([]notify.Admin, error) {
	filter := NotDeleted()
	filter["is_super_admin"] = true
	filter["phone"] = bson.M{"$exists": true, "$ne": ""}

	proj := options.Find().SetProjection(bson.M{"email": 1, "phone": 1})
	cur, err := s.c.Find(ctx, filter, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []notify.Admin
	for cur.Next(ctx) {
		var a struct {
			Email string `bson:"email"`
			Phone string `bson:"phone"`
		}
		if cur.Decode(&a) == nil {
			out = append(out, notify.Admin{Email: a.Email, Phone: a.Phone})
		}
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique email index the duplicate-key race
// contract depends on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
	})
	return err
}

// RandomPasswordHash returns a bcrypt hash of a fresh random password.
// Accounts created by the contact, join, and event-register flows get one
// so the record is complete but unusable for login until a reset.
func RandomPasswordHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// HashPassword hashes a user-supplied password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

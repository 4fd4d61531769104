// internal/domain/models/tokens.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthToken is a short-lived, single-use credential issued after a
// successful login, remember exchange, or password reset. The portal
// front end exchanges it for a session and marks it used.
type AuthToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	UserID    string             `bson:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Used      bool               `bson:"used"`
	CreatedAt time.Time          `bson:"created_at"`

	// Provenance flags; at most one is set.
	FromRemember      bool `bson:"from_remember,omitempty"`
	FromPasswordReset bool `bson:"from_password_reset,omitempty"`
}

// RememberToken is a long-lived credential enabling silent
// re-authentication without a password.
type RememberToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	UserID    string             `bson:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// PasswordReset is a pending SMS PIN reset request. At most one active
// request exists per user; issuing a new one purges the old.
type PasswordReset struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Email      string             `bson:"email"`
	PIN        string             `bson:"pin"` // 6 digits, zero-padded
	PhoneLast4 string             `bson:"phone_last4"`
	ExpiresAt  time.Time          `bson:"expires_at"`
	Used       bool               `bson:"used"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// LoginEvent is an audit row recorded on every successful login, remember
// exchange, or password reset.
type LoginEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Email     string             `bson:"email"`
	Source    string             `bson:"source"` // web_login | remember_token | password_reset
	Timestamp time.Time          `bson:"timestamp"`
	IP        string             `bson:"ip,omitempty"`
}

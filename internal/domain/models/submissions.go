// internal/domain/models/submissions.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactSubmission is an append-only audit record of a contact form post.
type ContactSubmission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	BusinessName  string             `bson:"business_name,omitempty"`
	BusinessPhone string             `bson:"business_phone,omitempty"`
	MobilePhone   string             `bson:"mobile_phone,omitempty"`
	Message       string             `bson:"message,omitempty"`
	OptIn         bool               `bson:"opt_in"`
	SubmittedAt   time.Time          `bson:"submitted_at"`
	IPAddress     string             `bson:"ip_address,omitempty"`
	UserAgent     string             `bson:"user_agent,omitempty"`
}

// ApplicationSubmission is an append-only audit record of a membership
// application (new or update).
type ApplicationSubmission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	MemberID     string             `bson:"member_id"`
	Email        string             `bson:"email"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	BusinessName string             `bson:"business_name"`
	IsUpdate     bool               `bson:"is_update"`
	SubmittedAt  time.Time          `bson:"submitted_at"`
	IPAddress    string             `bson:"ip_address,omitempty"`
	UserAgent    string             `bson:"user_agent,omitempty"`
	Source       string             `bson:"source"`
}

// AdminMessage is an inbox entry for the separate admin UI. Entries are
// append-only; the admin UI owns the read flag.
type AdminMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Subject   string             `bson:"subject"`
	Body      string             `bson:"body"`
	MemberID  string             `bson:"member_id,omitempty"`
	From      string             `bson:"from"`
	To        string             `bson:"to"`
	Read      bool               `bson:"read"`
	CreatedAt time.Time          `bson:"created_at"`
}

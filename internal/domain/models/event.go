// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recurrence descriptors for Event.Repeat.
const (
	RepeatNone       = "none"        // one-off event
	RepeatMonthlyDOM = "monthly_dom" // monthly on the same day of month
	RepeatMonthlyNth = "monthly_nth" // monthly on the Nth weekday (RepeatN, RepeatWeekday)
)

// Event is a chamber event. attendee_count is a denormalized counter kept
// equal to len(attendees); registration appends an attendee and increments
// the counter in one update so the two cannot drift under concurrent
// registrations.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Host        string             `bson:"host,omitempty" json:"host,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Date        string             `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	Time        string             `bson:"time,omitempty" json:"time,omitempty"` // HH:MM 24h, or a legacy display range
	Hours       float64            `bson:"hours,omitempty" json:"hours,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       string             `bson:"price,omitempty" json:"price,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	EventType   string             `bson:"eventType,omitempty" json:"eventType,omitempty"`
	Badges      []Badge            `bson:"badges,omitempty" json:"badges,omitempty"`
	Presenter   string             `bson:"presenter,omitempty" json:"presenter,omitempty"`
	Keynote     string             `bson:"keynote,omitempty" json:"keynote,omitempty"`
	MemberQuote string             `bson:"member_quote,omitempty" json:"member_quote,omitempty"`
	MembersOnly bool               `bson:"members_only,omitempty" json:"members_only,omitempty"`

	Repeat        string `bson:"repeat,omitempty" json:"repeat,omitempty"`
	RepeatN       int    `bson:"repeat_n,omitempty" json:"repeat_n,omitempty"`
	RepeatWeekday int    `bson:"repeat_weekday,omitempty" json:"repeat_weekday,omitempty"` // 0=Sunday

	Attendees     []Attendee `bson:"attendees,omitempty" json:"attendees,omitempty"`
	AttendeeCount int        `bson:"attendee_count,omitempty" json:"attendee_count,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// Badge is a display label attached to an event card.
type Badge struct {
	Label   string `bson:"label" json:"label"`
	Variant string `bson:"variant" json:"variant"` // primary | warning | ...
}

// Attendee is one registration on an event. UserID is the string form of the
// registrant's ObjectID; a user appears at most once per event.
type Attendee struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	RegisteredAt       time.Time `bson:"registered_at" json:"registered_at"`
	RegistrationSource string    `bson:"registration_source,omitempty" json:"registration_source,omitempty"`
}

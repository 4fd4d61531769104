// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member of the directory. Identity, contact profile, and
// the member's business profile are merged into one document, matching the
// portal's users collection. Email is the de-duplication key (unique index,
// stored lowercase). Soft-deleted users (Deleted=true) are excluded from all
// public listings; records are never hard-deleted by the API.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	FirstName    string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	MiddleName   string             `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	ContactTitle string             `bson:"contact_title,omitempty" json:"contact_title,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo        string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"`

	// Paid appears under both legacy names in production data; either flag
	// set means the member is paid.
	Paid   bool `bson:"paid,omitempty" json:"paid,omitempty"`
	IsPaid bool `bson:"is_paid,omitempty" json:"is_paid,omitempty"`

	Deleted      bool `bson:"deleted,omitempty" json:"-"`
	IsSuperAdmin bool `bson:"is_super_admin,omitempty" json:"-"`

	// Business profile. Company and CompanyName are a legacy/new field pair;
	// writes set both, reads fall back Company <- CompanyName.
	Company             string            `bson:"company,omitempty" json:"company,omitempty"`
	CompanyName         string            `bson:"company_name,omitempty" json:"company_name,omitempty"`
	CompanyPhone        string            `bson:"company_phone,omitempty" json:"company_phone,omitempty"`
	CompanyEmail        string            `bson:"company_email,omitempty" json:"company_email,omitempty"`
	CompanyWebsite      string            `bson:"company_website,omitempty" json:"company_website,omitempty"`
	CompanyAddress      string            `bson:"company_address,omitempty" json:"company_address,omitempty"`
	CompanyCity         string            `bson:"company_city,omitempty" json:"company_city,omitempty"`
	CompanyState        string            `bson:"company_state,omitempty" json:"company_state,omitempty"`
	CompanyZip          string            `bson:"company_zip,omitempty" json:"company_zip,omitempty"`
	CompanyDescription  string            `bson:"company_description,omitempty" json:"company_description,omitempty"`
	BusinessDescription string            `bson:"business_description,omitempty" json:"business_description,omitempty"`
	BusinessCategory    string            `bson:"business_category,omitempty" json:"business_category,omitempty"`
	NumEmployees        string            `bson:"num_employees,omitempty" json:"num_employees,omitempty"`
	CompanyPhoto        string            `bson:"company_photo,omitempty" json:"company_photo,omitempty"`
	CompanyPhotos       []string          `bson:"company_photos,omitempty" json:"company_photos,omitempty"`
	VideoURL            string            `bson:"video_url,omitempty" json:"video_url,omitempty"`
	SocialMedia         map[string]string `bson:"social_media,omitempty" json:"social_media,omitempty"`
	BusinessHours       map[string]Hours  `bson:"business_hours,omitempty" json:"business_hours,omitempty"`
	BusinessFAQs        string            `bson:"business_faqs,omitempty" json:"business_faqs,omitempty"`
	Interests           []string          `bson:"interests,omitempty" json:"interests,omitempty"`

	// Leadership role tags: board, advisor, chairman, president,
	// vice_president, executive, director, standard.
	MemberStatus []string `bson:"member_status,omitempty" json:"member_status,omitempty"`
	BoardTitle   string   `bson:"board_title,omitempty" json:"board_title,omitempty"`

	ShowInBusinessDirectory bool `bson:"show_in_business_directory,omitempty" json:"show_in_business_directory,omitempty"`
	ShowInMemberDirectory   bool `bson:"show_in_member_directory,omitempty" json:"show_in_member_directory,omitempty"`
	ShowInPublicTeam        bool `bson:"show_in_public_team,omitempty" json:"show_in_public_team,omitempty"`

	// notification kind -> channel -> enabled
	NotificationPreferences map[string]map[string]bool `bson:"notification_preferences,omitempty" json:"notification_preferences,omitempty"`

	SignedUpBy          string     `bson:"signed_up_by,omitempty" json:"signed_up_by,omitempty"`
	AgreedToTerms       bool       `bson:"agreed_to_terms,omitempty" json:"agreed_to_terms,omitempty"`
	AgreedToTermsAt     *time.Time `bson:"agreed_to_terms_at,omitempty" json:"agreed_to_terms_at,omitempty"`
	HearAboutUs         string     `bson:"hear_about_us,omitempty" json:"hear_about_us,omitempty"`
	PreferredStartMonth string     `bson:"preferred_start_month,omitempty" json:"preferred_start_month,omitempty"`
	ApplicationNotes    string     `bson:"application_notes,omitempty" json:"application_notes,omitempty"`
	ApplicationStatus   string     `bson:"application_status,omitempty" json:"application_status,omitempty"`
	ApplicationDate     *time.Time `bson:"application_date,omitempty" json:"application_date,omitempty"`

	CreatedAt         time.Time  `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	LastLogin         *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	PasswordUpdatedAt *time.Time `bson:"password_updated_at,omitempty" json:"password_updated_at,omitempty"`
}

// Hours is one day's business hours.
type Hours struct {
	Status string `bson:"status" json:"status"` // open | closed
	Open   string `bson:"open,omitempty" json:"open,omitempty"`
	Close  string `bson:"close,omitempty" json:"close,omitempty"`
}

// HasPaid reports whether either paid flag is set.
func (u *User) HasPaid() bool {
	return u.Paid || u.IsPaid
}

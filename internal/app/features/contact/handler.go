// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	submissionstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/submissions"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/inputval"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/notify"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/reqinfo"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

const thanksMessage = "Thank you for contacting us! We will be in touch shortly."

// Handler processes contact form posts. Every submission is recorded;
// known emails get event reminders enabled, unknown ones become unpaid
// members.
type Handler struct {
	Users       *userstore.Store
	Submissions *submissionstore.Store
	Notifier    *notify.Notifier
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       userstore.New(db),
		Submissions: submissionstore.New(db),
		Notifier:    notifier,
		Log:         logger,
	}
}

// Submit serves POST /v1/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)

	email := userstore.NormalizeEmail(httpjson.Str(body, "email", "business_email", "business-email"))
	firstName := httpjson.Str(body, "first_name", "first-name")
	lastName := httpjson.Str(body, "last_name", "last-name")

	businessName := httpjson.Str(body, "business_name", "business-name")
	businessPhone := httpjson.Str(body, "business_phone", "business-phone")
	mobilePhone := httpjson.Str(body, "mobile_phone", "mobile-phone")
	message := httpjson.Str(body, "message")
	optIn := httpjson.Bool(body, "opt_in", "opt-in")

	if email == "" || !inputval.IsValidEmail(email) {
		httpjson.Error(w, http.StatusBadRequest, "Valid email address is required")
		return
	}
	if firstName == "" {
		httpjson.Error(w, http.StatusBadRequest, "First name is required")
		return
	}
	if lastName == "" {
		httpjson.Error(w, http.StatusBadRequest, "Last name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Submissions.RecordContact(ctx, models.ContactSubmission{
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		BusinessName:  businessName,
		BusinessPhone: businessPhone,
		MobilePhone:   mobilePhone,
		Message:       message,
		OptIn:         optIn,
		IPAddress:     reqinfo.ClientIP(r),
		UserAgent:     reqinfo.UserAgent(r),
	})
	if err != nil {
		h.Log.Error("record contact submission", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing, err := h.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("look up contact email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	form := notify.ContactForm{
		FirstName:   firstName,
		LastName:    lastName,
		CompanyName: businessName,
		Email:       email,
		Message:     message,
	}

	if existing != nil {
		if err := h.Users.EnableEventReminder(ctx, existing.ID); err != nil {
			h.Log.Error("enable event reminder", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		h.Notifier.NotifyContactForm(ctx, form, true)

		httpjson.OK(w, map[string]any{
			"success":       true,
			"message":       thanksMessage,
			"existing_user": true,
		})
		return
	}

	phone := mobilePhone
	if phone == "" {
		phone = businessPhone
	}

	hash, err := userstore.RandomPasswordHash()
	if err != nil {
		h.Log.Error("generate placeholder password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	newUser := models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Company:      businessName,
		CompanyName:  businessName,
		CompanyPhone: businessPhone,
		PasswordHash: hash,
		Role:         "member",
		SignedUpBy:   "contact_form",
		NotificationPreferences: map[string]map[string]bool{
			"event_reminder": {"email": true, "sms": true},
		},
	}

	if _, err := h.Users.Insert(ctx, newUser); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			// Another request won the insert race; treat as existing.
			httpjson.OK(w, map[string]any{
				"success":       true,
				"message":       thanksMessage,
				"existing_user": true,
			})
			return
		}
		h.Log.Error("create member from contact form", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Notifier.NotifySignup(ctx, notify.Signup{
		FirstName:   firstName,
		LastName:    lastName,
		CompanyName: businessName,
		Phone:       phone,
	}, "Contact Form")
	h.Notifier.NotifyContactForm(ctx, form, false)

	httpjson.OK(w, map[string]any{
		"success":       true,
		"message":       thanksMessage,
		"existing_user": false,
	})
}

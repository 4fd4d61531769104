// internal/app/features/joinevents/handler.go
package joinevents

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/inputval"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Handler signs visitors up for event calendar reminders. Mirrors the
// contact flow minus the submission record and admin alerts.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// Submit serves POST /v1/join-events.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)

	email := userstore.NormalizeEmail(httpjson.Str(body, "email"))
	firstName := httpjson.Str(body, "first_name", "first-name")
	lastName := httpjson.Str(body, "last_name", "last-name")
	phone := httpjson.Str(body, "phone")
	company := httpjson.Str(body, "company")

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

	existing, err := h.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("look up join email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if existing != nil {
		if err := h.Users.EnableEventReminder(ctx, existing.ID); err != nil {
			h.Log.Error("enable event reminder", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		httpjson.OK(w, map[string]any{
			"success":       true,
			"message":       "You are now subscribed to event reminders!",
			"existing_user": true,
		})
		return
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
		Company:      company,
		CompanyName:  company,
		PasswordHash: hash,
		Role:         "member",
		SignedUpBy:   "join_event_form",
		NotificationPreferences: map[string]map[string]bool{
			"event_reminder": {"email": true, "sms": true},
		},
	}

	if _, err := h.Users.Insert(ctx, newUser); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.OK(w, map[string]any{
				"success":       true,
				"message":       "You are already signed up for event reminders!",
				"existing_user": true,
			})
			return
		}
		h.Log.Error("create member from join form", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"success":       true,
		"message":       "Thank you for signing up! You will receive event reminders.",
		"existing_user": false,
	})
}

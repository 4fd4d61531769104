// internal/app/features/eventregister/handler.go
package eventregister

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/events"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/inputval"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/notify"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// registrationSource tags attendees added through the public site.
const registrationSource = "web"

// Handler registers members for events. Logged-in members register with
// one click; new visitors sign up and register in one request.
type Handler struct {
	Users    *userstore.Store
	Events   *eventstore.Store
	Notifier *notify.Notifier
	Log      *zap.Logger

	// PortalBaseURL is the member portal origin for the login redirect.
	// SiteBaseURL is the public site origin the login returns to.
	PortalBaseURL string
	SiteBaseURL   string
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, portalBaseURL, siteBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		Events:        eventstore.New(db),
		Notifier:      notifier,
		Log:           logger,
		PortalBaseURL: portalBaseURL,
		SiteBaseURL:   siteBaseURL,
	}
}

// Register serves POST /v1/event-register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	eventIDHex := httpjson.Str(body, "event_id")
	if eventIDHex == "" {
		httpjson.Error(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(eventIDHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.Events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		h.Log.Error("load event for registration", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if userID := httpjson.Str(body, "user_id"); userID != "" {
		h.registerMember(ctx, w, event, userID)
		return
	}
	h.registerNewUser(ctx, w, event, body)
}

// registerMember is the one-click flow for logged-in members.
func (h *Handler) registerMember(ctx context.Context, w http.ResponseWriter, event *models.Event, userID string) {

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if _, err := h.Users.GetActiveByID(ctx, uid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("load user for registration", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Best-effort duplicate check; the database does not enforce
	// (event, user) uniqueness.
	for _, attendee := range event.Attendees {
		if attendee.UserID == userID {
			httpjson.Respond(w, http.StatusConflict, map[string]any{
				"success": false,
				"error":   "already_registered",
				"message": "You are already registered for this event.",
			})
			return
		}
	}

	if err := h.Events.Register(ctx, event.ID, userID, registrationSource); err != nil {
		h.Log.Error("register attendee", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"success": true,
		"message": "You have been registered for this event!",
		"attendee": map[string]any{
			"user_id":       userID,
			"registered_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// registerNewUser creates an unpaid member and registers them in one
// request.
func (h *Handler) registerNewUser(ctx context.Context, w http.ResponseWriter, event *models.Event, body map[string]any) {

	firstName := httpjson.Str(body, "first_name")
	lastName := httpjson.Str(body, "last_name")
	phone := httpjson.Str(body, "phone")
	companyName := httpjson.Str(body, "company_name")
	email := userstore.NormalizeEmail(httpjson.Str(body, "email"))
	agreeTerms := httpjson.Bool(body, "agree_terms")

	switch {
	case firstName == "":
		httpjson.Error(w, http.StatusBadRequest, "First name is required")
		return
	case lastName == "":
		httpjson.Error(w, http.StatusBadRequest, "Last name is required")
		return
	case phone == "":
		httpjson.Error(w, http.StatusBadRequest, "Phone is required")
		return
	case companyName == "":
		httpjson.Error(w, http.StatusBadRequest, "Business name is required")
		return
	case email == "" || !inputval.IsValidEmail(email):
		httpjson.Error(w, http.StatusBadRequest, "Valid email is required")
		return
	case !agreeTerms:
		httpjson.Error(w, http.StatusBadRequest, "You must agree to the membership terms")
		return
	}

	if _, err := h.Users.GetActiveByEmail(ctx, email); err == nil {
		httpjson.Respond(w, http.StatusConflict, map[string]any{
			"success":   false,
			"error":     "email_exists",
			"message":   "An account with this email already exists. Please log in to register.",
			"login_url": h.loginURL(event.ID.Hex()),
		})
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("check registration email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := userstore.RandomPasswordHash()
	if err != nil {
		h.Log.Error("generate placeholder password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now().UTC()
	newUser := models.User{
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		Phone:           phone,
		Company:         companyName,
		CompanyName:     companyName,
		PasswordHash:    hash,
		Role:            "member",
		SignedUpBy:      "register_event",
		AgreedToTerms:   true,
		AgreedToTermsAt: &now,
	}

	newUserID, err := h.Users.Insert(ctx, newUser)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Respond(w, http.StatusConflict, map[string]any{
				"success": false,
				"error":   "email_exists",
				"message": "An account with this email already exists.",
			})
			return
		}
		h.Log.Error("create member from event registration", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Notifier.NotifySignup(ctx, notify.Signup{
		FirstName:   firstName,
		LastName:    lastName,
		CompanyName: companyName,
		Phone:       phone,
	}, "Event Registration")

	if err := h.Events.Register(ctx, event.ID, newUserID.Hex(), registrationSource); err != nil {
		h.Log.Error("register new attendee", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"success": true,
		"message": "Account created and registered for event!",
		"attendee": map[string]any{
			"user_id":       newUserID.Hex(),
			"registered_at": time.Now().UTC().Format(time.RFC3339),
		},
		"new_user": true,
	})
}

// loginURL builds the portal login link that returns to the event
// registration page.
func (h *Handler) loginURL(eventID string) string {
	redirect := h.SiteBaseURL + "/event-register.php?id=" + eventID
	return h.PortalBaseURL + "/login.php?redirect=" + url.QueryEscape(redirect)
}

// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	loginstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/logins"
	resetstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/resets"
	tokenstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/tokens"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/ratelimit"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/sms"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Handler owns the token-handoff auth flows: password login, remember
// exchange, and the SMS PIN reset.
type Handler struct {
	Users   *userstore.Store
	Tokens  *tokenstore.Store
	Resets  *resetstore.Store
	Logins  *loginstore.Store
	SMS     sms.Sender
	Limiter *ratelimit.AuthLimiter
	Log     *zap.Logger

	// PortalBaseURL is the member portal origin tokens redirect to.
	PortalBaseURL string

	// LegacyAdminUser/Pass are the env-configured credential pair that
	// maps onto the synthetic system admin account.
	LegacyAdminUser string
	LegacyAdminPass string
}

func NewHandler(db *mongo.Database, sender sms.Sender, portalBaseURL, legacyUser, legacyPass string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:           userstore.New(db),
		Tokens:          tokenstore.New(db),
		Resets:          resetstore.New(db),
		Logins:          loginstore.New(db),
		SMS:             sender,
		Limiter:         ratelimit.NewAuthLimiter(),
		Log:             logger,
		PortalBaseURL:   portalBaseURL,
		LegacyAdminUser: legacyUser,
		LegacyAdminPass: legacyPass,
	}
}

func (h *Handler) redirectURL(token string) string {
	return h.PortalBaseURL + "/auth.php?token=" + token
}

// Login serves POST /v1/auth-login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	login := httpjson.Str(body, "email")
	password, _ := body["password"].(string)
	remember := httpjson.Bool(body, "remember")

	if login == "" || password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}

	if ok, reason := h.Limiter.Check(r, login); !ok {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	var user *models.User

	// The legacy admin pair maps onto a synthetic account provisioned on
	// first use.
	if h.LegacyAdminUser != "" && login == h.LegacyAdminUser && password == h.LegacyAdminPass {
		admin, err := h.Users.EnsureLegacyAdmin(ctx)
		if err != nil {
			h.Log.Error("ensure legacy admin", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		user = admin
	}

	if user == nil {
		found, err := h.Users.GetActiveByEmail(ctx, login)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("look up login email", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if found != nil && userstore.CheckPassword(found.PasswordHash, password) {
			user = found
		}
	}

	if user == nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.Limiter.ResetEmail(login)

	userID := user.ID.Hex()
	token, err := h.Tokens.IssueAuthToken(ctx, userID, tokenstore.FromLogin)
	if err != nil {
		h.Log.Error("issue auth token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var rememberToken any
	if remember {
		rt, err := h.Tokens.IssueRememberToken(ctx, userID)
		if err != nil {
			h.Log.Error("issue remember token", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		rememberToken = rt
	}

	h.recordLogin(ctx, r, user, loginstore.SourceWebLogin)

	httpjson.OK(w, map[string]any{
		"success":        true,
		"token":          token,
		"remember_token": rememberToken,
		"redirect":       h.redirectURL(token),
	})
}

// Remember serves POST /v1/auth-remember, exchanging a remember token for
// a fresh one-time auth token.
func (h *Handler) Remember(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rememberToken := httpjson.Str(body, "remember_token")
	if rememberToken == "" {
		httpjson.Error(w, http.StatusBadRequest, "No remember token provided")
		return
	}

	remember, err := h.Tokens.FindValidRemember(ctx, rememberToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid or expired remember token")
			return
		}
		h.Log.Error("look up remember token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	uid, err := primitive.ObjectIDFromHex(remember.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid or expired remember token")
		return
	}
	user, err := h.Users.GetActiveByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Orphaned token; drop it so the client stops retrying.
			if derr := h.Tokens.DeleteRemember(ctx, rememberToken); derr != nil {
				h.Log.Warn("delete orphaned remember token", zap.Error(derr))
			}
			httpjson.Error(w, http.StatusUnauthorized, "User not found")
			return
		}
		h.Log.Error("load remember user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.Tokens.IssueAuthToken(ctx, user.ID.Hex(), tokenstore.FromRemember)
	if err != nil {
		h.Log.Error("issue auth token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordLogin(ctx, r, user, loginstore.SourceRememberToken)

	httpjson.OK(w, map[string]any{
		"success":  true,
		"token":    token,
		"redirect": h.redirectURL(token),
	})
}

// ForgotPassword serves POST /v1/auth-forgot-password, issuing an SMS
// PIN. Only the last 4 phone digits ever reach the response.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	email := userstore.NormalizeEmail(httpjson.Str(body, "email"))
	if email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Please enter your email address.")
		return
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	user, err := h.Users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "No account found with that email address.")
			return
		}
		h.Log.Error("look up reset email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user.Phone == "" {
		httpjson.Error(w, http.StatusBadRequest, "No phone number on file for this account. Please contact support.")
		return
	}
	phone := sms.CleanPhone(user.Phone)
	if len(phone) != 10 {
		httpjson.Error(w, http.StatusBadRequest, "Invalid phone number on file. Please contact support.")
		return
	}
	last4 := phone[len(phone)-4:]

	reset, err := h.Resets.Create(ctx, user.ID.Hex(), email, last4)
	if err != nil {
		h.Log.Error("create password reset", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	message := fmt.Sprintf("Your Orlando Chamber password reset code is: %s\n\nThis code expires in 15 minutes.", reset.PIN)
	result := h.SMS.Send(ctx, phone, message, "OCOC Password Reset", false, "password_reset")
	if !result.Success {
		httpjson.Error(w, http.StatusInternalServerError, "Failed to send PIN code. Please try again or contact support.")
		return
	}

	httpjson.OK(w, map[string]any{
		"success":     true,
		"phone_last4": last4,
		"email":       email,
		"message":     "PIN code sent to your phone ending in " + last4,
	})
}

// VerifyPIN serves POST /v1/auth-verify-pin. Without a new password it
// only confirms the PIN; with one it completes the reset and logs the
// user in.
func (h *Handler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	email := userstore.NormalizeEmail(httpjson.Str(body, "email"))
	pin := httpjson.Str(body, "pin")
	newPassword, _ := body["new_password"].(string)
	confirmPassword, _ := body["confirm_password"].(string)

	if email == "" || pin == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email and PIN are required.")
		return
	}

	reset, err := h.Resets.FindValid(ctx, email, pin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid or expired PIN code. Please request a new one.")
			return
		}
		h.Log.Error("look up password reset", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if newPassword == "" {
		httpjson.OK(w, map[string]any{
			"success":  true,
			"verified": true,
			"message":  "PIN verified. Please enter your new password.",
		})
		return
	}

	if len(newPassword) < 6 {
		httpjson.Error(w, http.StatusBadRequest, "Password must be at least 6 characters.")
		return
	}
	if newPassword != confirmPassword {
		httpjson.Error(w, http.StatusBadRequest, "Passwords do not match.")
		return
	}

	uid, err := primitive.ObjectIDFromHex(reset.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found.")
			return
		}
		h.Log.Error("load reset user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := userstore.HashPassword(newPassword)
	if err != nil {
		h.Log.Error("hash new password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		h.Log.Error("update password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.Resets.MarkUsed(ctx, reset.ID); err != nil {
		h.Log.Error("mark reset used", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.Tokens.IssueAuthToken(ctx, user.ID.Hex(), tokenstore.FromPasswordReset)
	if err != nil {
		h.Log.Error("issue auth token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordLogin(ctx, r, user, loginstore.SourcePasswordReset)

	httpjson.OK(w, map[string]any{
		"success":  true,
		"message":  "Password updated successfully.",
		"token":    token,
		"redirect": h.redirectURL(token),
	})
}

// recordLogin stamps last_login and appends the audit row. Both are
// best-effort; a failed audit never blocks the login.
func (h *Handler) recordLogin(ctx context.Context, r *http.Request, user *models.User, source string) {
	if err := h.Users.RecordLastLogin(ctx, user.ID); err != nil {
		h.Log.Warn("record last_login", zap.Error(err))
	}
	if err := h.Logins.Record(ctx, r, user.ID.Hex(), user.Email, source); err != nil {
		h.Log.Warn("record login event", zap.Error(err))
	}
}

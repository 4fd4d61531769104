package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	loginstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/logins"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/sms"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
	"github.com/productdesignexperts/api.connexus.team/internal/testutil"
)

type fakeSender struct {
	sent    []string
	succeed bool
}

func (f *fakeSender) Send(ctx context.Context, phone, body, subject string, useMMS bool, logType string) sms.Result {
	f.sent = append(f.sent, body)
	if !f.succeed {
		return sms.Result{Success: false, Error: "down"}
	}
	return sms.Result{Success: true}
}

func newTestHandler(t *testing.T, sender sms.Sender) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, sender, "https://portal.example.com", "legacyadmin", "legacypass", zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func postJSON(t *testing.T, h http.HandlerFunc, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return m
}

func TestLoginValidation(t *testing.T) {
	h, _ := newTestHandler(t, &fakeSender{succeed: true})

	rec := postJSON(t, h.Login, map[string]any{"email": "a@b.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: got %d, want 400", rec.Code)
	}
	if got := decode(t, rec)["error"]; got != "Email and password required" {
		t.Fatalf("unexpected error message: %v", got)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t, &fakeSender{succeed: true})

	rec := postJSON(t, h.Login, map[string]any{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: got %d, want 401", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	h, _ := newTestHandler(t, &fakeSender{succeed: true})

	body := map[string]any{"email": "target@example.com", "password": "wrong"}
	for i := 0; i < 5; i++ {
		if rec := postJSON(t, h.Login, body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want 401", i+1, rec.Code)
		}
	}
	if rec := postJSON(t, h.Login, body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("throttled attempt: got %d, want 429", rec.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	h, fx := newTestHandler(t, &fakeSender{succeed: true})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := userstore.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := fx.CreateMemberWithPassword(ctx, "login@example.com", hash)

	rec := postJSON(t, h.Login, map[string]any{
		"email":    "login@example.com",
		"password": "secret123",
		"remember": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	token, _ := resp["token"].(string)
	if len(token) != 64 {
		t.Fatalf("expected 64-char token, got %q", token)
	}
	if resp["redirect"] != "https://portal.example.com/auth.php?token="+token {
		t.Fatalf("unexpected redirect: %v", resp["redirect"])
	}
	if rt, _ := resp["remember_token"].(string); len(rt) != 64 {
		t.Fatalf("expected remember token, got %v", resp["remember_token"])
	}

	n, err := fx.DB().Collection("login_events").CountDocuments(ctx, bson.M{
		"user_id": user.ID.Hex(),
		"source":  loginstore.SourceWebLogin,
	})
	if err != nil {
		t.Fatalf("count login events: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 login event, got %d", n)
	}
}

func TestLoginLegacyAdmin(t *testing.T) {
	h, fx := newTestHandler(t, &fakeSender{succeed: true})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postJSON(t, h.Login, map[string]any{
		"email":    "legacyadmin",
		"password": "legacypass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("legacy login: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	n, err := fx.DB().Collection("users").CountDocuments(ctx, bson.M{"email": userstore.LegacyAdminEmail})
	if err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected provisioned admin account, got %d", n)
	}
}

func TestRememberExchange(t *testing.T) {
	h, fx := newTestHandler(t, &fakeSender{succeed: true})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateMember(ctx, "remember@example.com")
	rt, err := h.Tokens.IssueRememberToken(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("issue remember token: %v", err)
	}

	rec := postJSON(t, h.Remember, map[string]any{"remember_token": rt})
	if rec.Code != http.StatusOK {
		t.Fatalf("remember: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h.Remember, map[string]any{"remember_token": "bogus"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: got %d, want 401", rec.Code)
	}
}

func TestForgotPasswordSMSFailureFailsRequest(t *testing.T) {
	sender := &fakeSender{succeed: false}
	h, fx := newTestHandler(t, sender)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateMember(ctx, "reset@example.com")
	_, err := fx.DB().Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"phone": "(407) 555-1234"},
	})
	if err != nil {
		t.Fatalf("set phone: %v", err)
	}

	rec := postJSON(t, h.ForgotPassword, map[string]any{"email": "reset@example.com"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("sms failure: got %d, want 500", rec.Code)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 send attempt, got %d", len(sender.sent))
	}
}

func TestForgotAndVerifyPINFlow(t *testing.T) {
	sender := &fakeSender{succeed: true}
	h, fx := newTestHandler(t, sender)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := userstore.HashPassword("oldpassword")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := fx.CreateMemberWithPassword(ctx, "pin@example.com", hash)
	_, err = fx.DB().Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"phone": "407-555-9876"},
	})
	if err != nil {
		t.Fatalf("set phone: %v", err)
	}

	rec := postJSON(t, h.ForgotPassword, map[string]any{"email": "pin@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("forgot password: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec)["phone_last4"]; got != "9876" {
		t.Fatalf("unexpected phone_last4: %v", got)
	}

	// Read the PIN back out of the collection; the fake sender only proves
	// the message went out.
	var reset models.PasswordReset
	err = fx.DB().Collection("password_resets").
		FindOne(ctx, bson.M{"email": "pin@example.com"}).Decode(&reset)
	if err != nil {
		t.Fatalf("load pending reset: %v", err)
	}

	wrongPIN := "000000"
	if reset.PIN == wrongPIN {
		wrongPIN = "000001"
	}
	rec = postJSON(t, h.VerifyPIN, map[string]any{"email": "pin@example.com", "pin": wrongPIN})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong pin: got %d, want 401", rec.Code)
	}

	rec = postJSON(t, h.VerifyPIN, map[string]any{"email": "pin@example.com", "pin": reset.PIN})
	if rec.Code != http.StatusOK {
		t.Fatalf("verify only: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec)["verified"]; got != true {
		t.Fatalf("expected verified:true, got %v", got)
	}

	rec = postJSON(t, h.VerifyPIN, map[string]any{
		"email":            "pin@example.com",
		"pin":              reset.PIN,
		"new_password":     "short",
		"confirm_password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: got %d, want 400", rec.Code)
	}

	rec = postJSON(t, h.VerifyPIN, map[string]any{
		"email":            "pin@example.com",
		"pin":              reset.PIN,
		"new_password":     "newpassword1",
		"confirm_password": "newpassword1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The PIN is single-use once the password changes.
	rec = postJSON(t, h.VerifyPIN, map[string]any{"email": "pin@example.com", "pin": reset.PIN})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused pin: got %d, want 401", rec.Code)
	}

	updated, err := h.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !userstore.CheckPassword(updated.PasswordHash, "newpassword1") {
		t.Fatal("new password does not verify")
	}
	if userstore.CheckPassword(updated.PasswordHash, "oldpassword") {
		t.Fatal("old password still verifies")
	}
}

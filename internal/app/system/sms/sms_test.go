package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type recordingSink struct {
	docs []bson.M
}

func (s *recordingSink) Log(_ context.Context, doc bson.M) {
	s.docs = append(s.docs, doc)
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(407) 555-0133", "4075550133"},
		{"407.555.0133", "4075550133"},
		{"+1 407 555 0133", "14075550133"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanPhone(tt.input); got != tt.want {
			t.Errorf("CleanPhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSend_Success(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MessageID":"abc123"}`))
	}))
	defer srv.Close()

	sink := &recordingSink{}
	c := New(srv.URL, "17273618845", "test-key", sink, zap.NewNop())

	res := c.Send(context.Background(), "(407) 555-0133", "hello", "Test", false, "unit_test")
	if !res.Success {
		t.Fatalf("Send failed: %s", res.Error)
	}

	to, ok := gotPayload["To"].([]any)
	if !ok || len(to) != 1 || to[0] != "14075550133" {
		t.Errorf("To: got %#v, want [14075550133]", gotPayload["To"])
	}
	if gotPayload["From"] != "17273618845" {
		t.Errorf("From: got %v", gotPayload["From"])
	}
	if gotPayload["LicenseKey"] != "test-key" {
		t.Errorf("LicenseKey: got %v", gotPayload["LicenseKey"])
	}
	if gotPayload["UseMMS"] != false {
		t.Errorf("UseMMS: got %v", gotPayload["UseMMS"])
	}

	if len(sink.docs) != 1 {
		t.Fatalf("audit records: got %d, want 1", len(sink.docs))
	}
	doc := sink.docs[0]
	if doc["type"] != "unit_test" || doc["success"] != true {
		t.Errorf("audit doc: %#v", doc)
	}
}

func TestSend_InvalidPhone(t *testing.T) {
	sink := &recordingSink{}
	c := New("http://unused.invalid", "1", "k", sink, zap.NewNop())

	res := c.Send(context.Background(), "555-0133", "hi", "s", false, "unit_test")
	if res.Success {
		t.Error("expected failure for short phone number")
	}
	if res.Error != "Invalid phone number" {
		t.Errorf("error: got %q", res.Error)
	}
	// Invalid input is rejected before any request or audit record.
	if len(sink.docs) != 0 {
		t.Errorf("audit records: got %d, want 0", len(sink.docs))
	}
}

func TestSend_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	sink := &recordingSink{}
	c := New(srv.URL, "1", "k", sink, zap.NewNop())

	res := c.Send(context.Background(), "4075550133", "hi", "s", false, "unit_test")
	if res.Success {
		t.Error("expected failure for non-JSON response")
	}
	if len(sink.docs) != 1 {
		t.Fatalf("audit records: got %d, want 1 (failures are audited too)", len(sink.docs))
	}
	if sink.docs[0]["success"] != false {
		t.Errorf("audit success flag: %v", sink.docs[0]["success"])
	}
}

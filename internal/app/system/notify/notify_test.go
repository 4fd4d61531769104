package notify

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/sms"
)

type stubDirectory struct {
	admins []Admin
}

func (d *stubDirectory) SuperAdmins(context.Context) ([]Admin, error) {
	return d.admins, nil
}

type stubSender struct {
	sent    []string // phones
	bodies  []string
	failFor map[string]bool
}

func (s *stubSender) Send(_ context.Context, phone, body, _ string, _ bool, _ string) sms.Result {
	s.sent = append(s.sent, phone)
	s.bodies = append(s.bodies, body)
	if s.failFor[phone] {
		return sms.Result{Success: false, Error: "carrier rejected"}
	}
	return sms.Result{Success: true}
}

type nullSink struct{}

func (nullSink) Log(context.Context, bson.M) {}

func TestNotifySignup_SkipsInvalidPhones(t *testing.T) {
	dir := &stubDirectory{admins: []Admin{
		{Email: "a@x.com", Phone: "(407) 555-0101"},
		{Email: "b@x.com", Phone: ""},        // no phone
		{Email: "c@x.com", Phone: "555-123"}, // too short
	}}
	sender := &stubSender{}
	n := New(dir, sender, nullSink{}, zap.NewNop())

	res := n.NotifySignup(context.Background(), Signup{FirstName: "Pat", LastName: "Lee"}, "Contact Form")

	if res.Sent != 1 || res.Failed != 0 {
		t.Errorf("result: %+v, want 1 sent 0 failed", res)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "4075550101" {
		t.Errorf("sent to: %v", sender.sent)
	}
	if !strings.Contains(sender.bodies[0], "Source: Contact Form") {
		t.Errorf("body missing source: %q", sender.bodies[0])
	}
}

func TestNotifyContactForm_FailureIsolated(t *testing.T) {
	dir := &stubDirectory{admins: []Admin{
		{Email: "a@x.com", Phone: "4075550101"},
		{Email: "b@x.com", Phone: "4075550102"},
	}}
	sender := &stubSender{failFor: map[string]bool{"4075550101": true}}
	n := New(dir, sender, nullSink{}, zap.NewNop())

	res := n.NotifyContactForm(context.Background(), ContactForm{
		FirstName: "Pat", LastName: "Lee", Email: "pat@x.com",
		Message: strings.Repeat("m", 300),
	}, true)

	if res.Sent != 1 || res.Failed != 1 {
		t.Errorf("result: %+v, want 1 sent 1 failed", res)
	}
	// Both recipients were attempted despite the first failing.
	if len(sender.sent) != 2 {
		t.Errorf("attempts: %d, want 2", len(sender.sent))
	}
	// Long messages are truncated in the alert body.
	if !strings.Contains(sender.bodies[0], "...") {
		t.Error("expected truncated message marker")
	}
	if !strings.Contains(sender.bodies[0], "(Existing member)") {
		t.Error("expected existing-member marker")
	}
}

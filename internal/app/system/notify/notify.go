// Package notify fans out SMS alerts to the chamber's super admins when the
// public site produces a signup or a contact form submission. One
// recipient's delivery failure never blocks the others, and fan-out failure
// never fails the request that triggered it.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/sms"
)

// Admin is one notification recipient.
type Admin struct {
	Email string
	Phone string
}

// AdminDirectory lists super admins with a phone number on file.
type AdminDirectory interface {
	SuperAdmins(ctx context.Context) ([]Admin, error)
}

// FanoutResult aggregates one notification run.
type FanoutResult struct {
	Sent   int
	Failed int
}

// Notifier sends admin alerts.
type Notifier struct {
	Admins AdminDirectory
	SMS    sms.Sender
	Audit  sms.Sink
	Log    *zap.Logger
}

func New(admins AdminDirectory, sender sms.Sender, audit sms.Sink, logger *zap.Logger) *Notifier {
	return &Notifier{Admins: admins, SMS: sender, Audit: audit, Log: logger}
}

// Signup holds the new-member fields included in a signup alert.
type Signup struct {
	FirstName   string
	LastName    string
	CompanyName string
	Phone       string
}

// sourceDescription expands the signup source tag for the alert body.
func sourceDescription(source string) string {
	switch source {
	case "Event Form":
		return "Signed up for event calendar reminders on homepage"
	case "Contact Form":
		return "Submitted contact form on website"
	case "Direct Signup":
		return "Registered via signup page"
	default:
		return source
	}
}

// NotifySignup alerts every super admin about a new member signup.
func (n *Notifier) NotifySignup(ctx context.Context, s Signup, source string) FanoutResult {
	msg := fmt.Sprintf("OCOC New Signup Alert!\n\nSource: %s\n(%s)\n\nName: %s %s\nCompany: %s\nPhone: %s",
		source, sourceDescription(source),
		orNA(s.FirstName), orNA(s.LastName), orNA(s.CompanyName), orNA(s.Phone))

	res := n.fanout(ctx, msg, "OCOC New Signup", "signup_notification")

	if n.Audit != nil {
		n.Audit.Log(ctx, bson.M{
			"type":   "admin_signup_notification",
			"source": source,
			"new_user": bson.M{
				"first_name":   s.FirstName,
				"last_name":    s.LastName,
				"company_name": s.CompanyName,
				"phone":        s.Phone,
			},
			"results": bson.M{"sent": res.Sent, "failed": res.Failed},
		})
	}
	return res
}

// ContactForm holds the submission fields included in a contact alert.
type ContactForm struct {
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Message     string
}

// NotifyContactForm alerts every super admin about a contact form
// submission. existing marks submissions from a known member.
func (n *Notifier) NotifyContactForm(ctx context.Context, c ContactForm, existing bool) FanoutResult {
	var b strings.Builder
	fmt.Fprintf(&b, "OCOC Contact Form Submission\n\nName: %s %s\n", orNA(c.FirstName), orNA(c.LastName))
	if c.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", c.CompanyName)
	}
	fmt.Fprintf(&b, "Email: %s\n", orNA(c.Email))
	if existing {
		b.WriteString("(Existing member)\n")
	}
	if c.Message != "" {
		msg := c.Message
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		fmt.Fprintf(&b, "\nMessage:\n%s", msg)
	}

	res := n.fanout(ctx, b.String(), "OCOC Contact Form", "contact_form_notification")

	if n.Audit != nil {
		n.Audit.Log(ctx, bson.M{
			"type":          "admin_contact_form_notification",
			"existing_user": existing,
			"submission": bson.M{
				"first_name":   c.FirstName,
				"last_name":    c.LastName,
				"company_name": c.CompanyName,
				"email":        c.Email,
				"message":      c.Message,
			},
			"results": bson.M{"sent": res.Sent, "failed": res.Failed},
		})
	}
	return res
}

// fanout sends msg to every admin with a valid 10-digit phone.
func (n *Notifier) fanout(ctx context.Context, msg, subject, logType string) FanoutResult {
	var res FanoutResult

	admins, err := n.Admins.SuperAdmins(ctx)
	if err != nil {
		n.Log.Error("admin lookup for notification failed", zap.Error(err))
		return res
	}

	for _, a := range admins {
		phone := sms.CleanPhone(a.Phone)
		if len(phone) != 10 {
			continue
		}
		r := n.SMS.Send(ctx, phone, msg, subject, false, logType)
		if r.Success {
			res.Sent++
		} else {
			res.Failed++
			n.Log.Warn("admin notification failed",
				zap.String("admin", a.Email),
				zap.String("error", r.Error))
		}
	}
	return res
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

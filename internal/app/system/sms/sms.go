// Package sms sends text messages through the Esendex messaging API and
// writes an audit record for every attempt, successful or not.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultEndpoint is the Esendex REST send endpoint.
const DefaultEndpoint = "https://messaging.esendex.us/Messaging.svc/SendMessage"

// Result is the outcome of one send attempt.
type Result struct {
	Success bool
	Error   string
}

// Sender delivers one SMS to a 10-digit US phone number. Implementations
// must log every attempt to their audit sink regardless of outcome.
type Sender interface {
	Send(ctx context.Context, phone, body, subject string, useMMS bool, logType string) Result
}

// Sink receives audit records for send attempts. Sink failures are
// swallowed; auditing never fails a send.
type Sink interface {
	Log(ctx context.Context, doc bson.M)
}

// Client is the Esendex-backed Sender.
type Client struct {
	Endpoint   string
	From       string
	LicenseKey string
	HTTP       *http.Client
	Audit      Sink
	Log        *zap.Logger
}

// New constructs a Client with a 30-second outbound timeout.
func New(endpoint, from, licenseKey string, audit Sink, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   endpoint,
		From:       from,
		LicenseKey: licenseKey,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		Audit:      audit,
		Log:        logger,
	}
}

// CleanPhone strips everything but digits.
func CleanPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Send delivers one message. The phone number is cleaned to digits and must
// be exactly 10 digits. The attempt is audited with the request payload, the
// raw response, and the outcome.
func (c *Client) Send(ctx context.Context, phone, body, subject string, useMMS bool, logType string) Result {
	phone = CleanPhone(phone)
	if len(phone) != 10 {
		return Result{Success: false, Error: "Invalid phone number"}
	}

	payload := bson.M{
		"Body":        body,
		"Concatenate": false,
		"From":        c.From,
		"IsUnicode":   false,
		"LicenseKey":  c.LicenseKey,
		"Subject":     subject,
		"To":          []string{"1" + phone},
		"UseMMS":      useMMS,
	}

	reqJSON, _ := json.Marshal(payload)
	raw, sendErr := c.post(ctx, reqJSON)

	res := Result{Success: true}
	if sendErr != nil {
		res = Result{Success: false, Error: sendErr.Error()}
	} else {
		// Esendex answers with a JSON document on success; anything else
		// (HTML error page, empty body) counts as a failure.
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			res = Result{Success: false, Error: "Unexpected response from SMS service"}
		} else if _, ok := decoded.(map[string]any); !ok {
			if _, ok := decoded.([]any); !ok {
				res = Result{Success: false, Error: "Unexpected response from SMS service"}
			}
		}
	}

	if c.Audit != nil {
		c.Audit.Log(ctx, bson.M{
			"type":         logType,
			"phone":        phone,
			"final_body":   body,
			"payload":      payload,
			"request_json": string(reqJSON),
			"response_raw": string(raw),
			"success":      res.Success,
			"error":        res.Error,
		})
	}
	if !res.Success && c.Log != nil {
		c.Log.Warn("sms send failed",
			zap.String("type", logType),
			zap.String("error", res.Error))
	}
	return res
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

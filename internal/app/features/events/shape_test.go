package events

import (
	"testing"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
)

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"18:00", "6:00 PM"},
		{"09:30", "9:30 AM"},
		{"00:15", "12:15 AM"},
		{"12:00", "12:00 PM"},
		{"23:59", "11:59 PM"},
		{"6:00 PM - 8:00 PM", "6:00 PM - 8:00 PM"}, // legacy display range
		{"", ""},
		{"25:00", "25:00"}, // not a valid clock value
	}
	for _, tt := range tests {
		if got := DisplayTime(tt.in); got != tt.want {
			t.Errorf("DisplayTime(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCTALabel(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"Free", "RSVP"},
		{"UNKNOWN", "RSVP"},
		{"", "RSVP"},
		{"$25", "Register ($25)"},
	}
	for _, tt := range tests {
		if got := CTALabel(tt.price); got != tt.want {
			t.Errorf("CTALabel(%q): got %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestShape(t *testing.T) {
	imgs := images.New("https://my.example.com")

	doc := map[string]any{
		"id":    "abc",
		"title": "Monthly Mixer",
		"time":  "18:00",
		"price": "$10",
		"image": "/uploads/mixer.jpg",
	}
	shaped := Shape(doc, imgs)

	if shaped["time_display"] != "6:00 PM" {
		t.Errorf("time_display: got %v", shaped["time_display"])
	}
	cta, ok := shaped["cta"].(map[string]any)
	if !ok || cta["label"] != "Register ($10)" {
		t.Errorf("cta: got %v", shaped["cta"])
	}
	thumb, ok := shaped["thumbnail"].(map[string]any)
	if !ok {
		t.Fatalf("thumbnail missing: %v", shaped["thumbnail"])
	}
	if thumb["src"] != "https://my.example.com/uploads/mixer.jpg" {
		t.Errorf("thumbnail src: got %v", thumb["src"])
	}
	if thumb["alt"] != "Monthly Mixer image" {
		t.Errorf("thumbnail alt: got %v", thumb["alt"])
	}
}

func TestShapeWithoutImage(t *testing.T) {
	imgs := images.New("https://my.example.com")

	shaped := Shape(map[string]any{"title": "No Image"}, imgs)
	if _, present := shaped["thumbnail"]; present {
		t.Error("thumbnail block present for event without image")
	}
}

func TestShapeNil(t *testing.T) {
	if got := Shape(nil, images.New("")); got != nil {
		t.Errorf("Shape(nil): got %v, want nil", got)
	}
}

package featuredevents

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"go.uber.org/zap"
)

func TestSample(t *testing.T) {
	docs := []bson.M{
		{"title": "a"}, {"title": "b"}, {"title": "c"}, {"title": "d"},
	}

	got := sample(docs, 2)
	if len(got) != 2 {
		t.Fatalf("sample size: got %d, want 2", len(got))
	}
	if got[0]["title"] == got[1]["title"] {
		t.Error("sample returned the same document twice")
	}

	// Requesting more than available returns everything once.
	got = sample(docs, 10)
	if len(got) != 4 {
		t.Fatalf("oversized sample: got %d, want 4", len(got))
	}
	seen := map[any]bool{}
	for _, d := range got {
		if seen[d["title"]] {
			t.Errorf("duplicate %v in sample", d["title"])
		}
		seen[d["title"]] = true
	}

	// The input slice must not be reordered.
	if docs[0]["title"] != "a" || docs[3]["title"] != "d" {
		t.Error("sample mutated its input")
	}
}

func TestFormatDefaults(t *testing.T) {
	h := &Handler{Images: images.New("https://my.example.com"), Log: zap.NewNop()}

	id := primitive.NewObjectID()
	card := h.format(bson.M{"_id": id})

	if card["title"] != "UNKNOWN" || card["location"] != "UNKNOWN" {
		t.Errorf("missing fields not defaulted: %v", card)
	}
	img := card["image"].(map[string]any)
	if img["src"] != "https://my.example.com/images/Leadership.jpg" {
		t.Errorf("default image: got %v", img["src"])
	}
	if img["alt"] != "Event image" {
		t.Errorf("alt for untitled event: got %v, want %q", img["alt"], "Event image")
	}
	primary := card["primary_cta"].(map[string]any)
	if primary["label"] != "RSVP" {
		t.Errorf("cta label: got %v", primary["label"])
	}
	if card["id"] != id.Hex() {
		t.Errorf("id: got %v, want %s", card["id"], id.Hex())
	}
}

func TestFormatPricedEvent(t *testing.T) {
	h := &Handler{Images: images.New("https://my.example.com"), Log: zap.NewNop()}

	card := h.format(bson.M{
		"_id":   primitive.NewObjectID(),
		"title": "Gala",
		"date":  "2026-10-01T00:00:00Z",
		"time":  "19:00",
		"price": "$50",
		"image": "https://cdn.example.com/gala.jpg",
	})

	if card["date"] != "2026-10-01" {
		t.Errorf("date: got %v", card["date"])
	}
	if card["time"] != "7:00 PM" {
		t.Errorf("time: got %v", card["time"])
	}
	primary := card["primary_cta"].(map[string]any)
	if primary["label"] != "Register ($50)" {
		t.Errorf("cta label: got %v", primary["label"])
	}
	img := card["image"].(map[string]any)
	if img["src"] != "https://cdn.example.com/gala.jpg" {
		t.Errorf("absolute image rewritten: %v", img["src"])
	}
	if img["alt"] != "Gala image" {
		t.Errorf("alt: got %v", img["alt"])
	}
}

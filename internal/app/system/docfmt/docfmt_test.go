package docfmt

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocument_Nil(t *testing.T) {
	if got := Document(nil); got != nil {
		t.Errorf("Document(nil) = %v, want nil", got)
	}
}

func TestDocument_RenamesID(t *testing.T) {
	oid := primitive.NewObjectID()
	out := Document(bson.M{"_id": oid, "title": "Mixer"})

	if _, ok := out["_id"]; ok {
		t.Error("_id should be removed")
	}
	if out["id"] != oid.Hex() {
		t.Errorf("id: got %v, want %s", out["id"], oid.Hex())
	}
	if out["title"] != "Mixer" {
		t.Errorf("title: got %v", out["title"])
	}
}

func TestDocument_Timestamps(t *testing.T) {
	at := time.Date(2025, 1, 21, 11, 30, 0, 0, time.UTC)

	out := Document(bson.M{
		"created_at": primitive.NewDateTimeFromTime(at),
		"updated_at": at,
	})

	for _, key := range []string{"created_at", "updated_at"} {
		s, ok := out[key].(string)
		if !ok {
			t.Fatalf("%s: got %T, want string", key, out[key])
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatalf("%s: %q is not RFC3339: %v", key, s, err)
		}
		if !parsed.Equal(at) {
			t.Errorf("%s: %v does not round-trip to %v", key, parsed, at)
		}
	}
}

func TestDocument_Nested(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2025, 2, 5, 7, 30, 0, 0, time.UTC)

	out := Document(bson.M{
		"attendees": primitive.A{
			bson.M{"user_id": oid, "registered_at": primitive.NewDateTimeFromTime(at)},
		},
		"badges": primitive.A{"primary", "warning"},
	})

	attendees, ok := out["attendees"].([]any)
	if !ok || len(attendees) != 1 {
		t.Fatalf("attendees: got %#v", out["attendees"])
	}
	first, ok := attendees[0].(map[string]any)
	if !ok {
		t.Fatalf("attendee: got %T", attendees[0])
	}
	if first["user_id"] != oid.Hex() {
		t.Errorf("nested user_id: got %v", first["user_id"])
	}
	if _, ok := first["registered_at"].(string); !ok {
		t.Errorf("nested registered_at: got %T", first["registered_at"])
	}

	badges, ok := out["badges"].([]any)
	if !ok || !reflect.DeepEqual(badges, []any{"primary", "warning"}) {
		t.Errorf("badges: got %#v", out["badges"])
	}
}

func TestDocument_ScalarsPassThrough(t *testing.T) {
	in := bson.M{"title": "Summit", "price": 150.0, "members_only": true, "notes": nil}
	out := Document(in)

	for k, v := range in {
		if !reflect.DeepEqual(out[k], v) {
			t.Errorf("%s: got %#v, want %#v", k, out[k], v)
		}
	}
}

func TestDocument_Idempotent(t *testing.T) {
	doc := bson.M{
		"_id":        primitive.NewObjectID(),
		"title":      "Roundtable",
		"created_at": primitive.NewDateTimeFromTime(time.Now()),
		"attendees": primitive.A{
			bson.M{"user_id": primitive.NewObjectID().Hex()},
		},
	}

	once := Document(doc)
	twice := Document(bson.M(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("formatting is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

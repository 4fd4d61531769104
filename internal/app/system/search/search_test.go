package search

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubstringEscapesMetacharacters(t *testing.T) {
	got := Substring("a.b+c")
	if got.Pattern != `a\.b\+c` {
		t.Errorf("pattern: got %q, want %q", got.Pattern, `a\.b\+c`)
	}
	if got.Options != "i" {
		t.Errorf("options: got %q, want i", got.Options)
	}
}

func TestAnyField(t *testing.T) {
	or := AnyField("plumbing", "company", "company_name")
	if len(or) != 2 {
		t.Fatalf("clause count: got %d, want 2", len(or))
	}
	first, ok := or[0].(bson.M)
	if !ok {
		t.Fatalf("clause type: %T", or[0])
	}
	re, ok := first["company"].(primitive.Regex)
	if !ok || re.Pattern != "plumbing" {
		t.Errorf("company clause: got %v", first)
	}
}

func TestAnyFieldBlankQuery(t *testing.T) {
	if got := AnyField("   ", "company"); got != nil {
		t.Errorf("blank query: got %v, want nil", got)
	}
}

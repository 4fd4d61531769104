package fieldpick

import (
	"reflect"
	"testing"
)

func TestFirst(t *testing.T) {
	doc := map[string]any{
		"company":      "Acme LLC",
		"company_name": "Acme Incorporated",
		"empty":        "",
	}

	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"new field wins", []string{"company_name", "company"}, "Acme Incorporated"},
		{"falls back past missing", []string{"missing", "company"}, "Acme LLC"},
		{"falls back past empty", []string{"empty", "company"}, "Acme LLC"},
		{"all missing", []string{"missing", "also_missing"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := First(doc, tt.fields...); got != tt.want {
				t.Errorf("First(%v) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestFirst_NonString(t *testing.T) {
	doc := map[string]any{"count": 3, "name": "x"}
	if got := First(doc, "count", "name"); got != "x" {
		t.Errorf("First skipped non-string: got %q, want %q", got, "x")
	}
}

func TestBool(t *testing.T) {
	doc := map[string]any{"paid": false, "is_paid": true}
	if !Bool(doc, "is_paid", "paid") {
		t.Error("Bool(is_paid, paid) = false, want true")
	}
	if Bool(doc, "paid", "is_paid") {
		t.Error("Bool(paid, is_paid) = true, want false (first present wins)")
	}
	if Bool(doc, "missing") {
		t.Error("Bool(missing) = true, want false")
	}
}

func TestStrings(t *testing.T) {
	doc := map[string]any{
		"photos_any": []any{"/uploads/a.jpg", "/uploads/b.jpg"},
		"photos_str": []string{"/uploads/c.jpg"},
	}

	if got := Strings(doc, "photos_any"); !reflect.DeepEqual(got, []string{"/uploads/a.jpg", "/uploads/b.jpg"}) {
		t.Errorf("Strings([]any) = %#v", got)
	}
	if got := Strings(doc, "photos_str"); !reflect.DeepEqual(got, []string{"/uploads/c.jpg"}) {
		t.Errorf("Strings([]string) = %#v", got)
	}
	if got := Strings(doc, "missing"); got != nil {
		t.Errorf("Strings(missing) = %#v, want nil", got)
	}
}

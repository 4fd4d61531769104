package businesses

import (
	"testing"

	"go.uber.org/zap"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
)

func TestShapeFallbackChains(t *testing.T) {
	h := &Handler{Images: images.New("https://my.example.com"), Log: zap.NewNop()}

	// Legacy document: only the old field names are populated.
	legacy := h.shape(map[string]any{
		"id":                   "abc",
		"company":              "Legacy Plumbing",
		"phone":                "4075551234",
		"business_description": "Pipes and more",
		"first_name":           "Pat",
		"last_name":            "Jones",
	})
	if legacy["businessName"] != "Legacy Plumbing" {
		t.Errorf("businessName fallback: got %v", legacy["businessName"])
	}
	if legacy["phone"] != "4075551234" {
		t.Errorf("phone fallback: got %v", legacy["phone"])
	}
	if legacy["description"] != "Pipes and more" {
		t.Errorf("description fallback: got %v", legacy["description"])
	}
	if legacy["contactName"] != "Pat Jones" {
		t.Errorf("contactName: got %v", legacy["contactName"])
	}

	// New-style document: company_* fields win over legacy.
	modern := h.shape(map[string]any{
		"id":                  "def",
		"company":             "Old Name",
		"company_name":        "New Name LLC",
		"company_phone":       "4075559999",
		"phone":               "4075550000",
		"company_description": "Modern description",
		"company_photo":       "/uploads/logo.png",
	})
	if modern["businessName"] != "New Name LLC" {
		t.Errorf("businessName precedence: got %v", modern["businessName"])
	}
	if modern["phone"] != "4075559999" {
		t.Errorf("phone precedence: got %v", modern["phone"])
	}
	if modern["logoUrl"] != "https://my.example.com/uploads/logo.png" {
		t.Errorf("logoUrl: got %v", modern["logoUrl"])
	}
}

func TestShapeNil(t *testing.T) {
	h := &Handler{Images: images.New(""), Log: zap.NewNop()}
	if got := h.shape(nil); got != nil {
		t.Errorf("shape(nil): got %v, want nil", got)
	}
}

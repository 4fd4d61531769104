package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int64
		wantOffset int64
	}{
		{"defaults", "", 20, 0},
		{"explicit", "limit=5&offset=40", 5, 40},
		{"limit above max clamps", "limit=9999", 100, 0},
		{"limit zero clamps to one", "limit=0", 1, 0},
		{"negative limit clamps to one", "limit=-3", 1, 0},
		{"negative offset clamps to zero", "offset=-5", 20, 0},
		{"non-numeric limit falls back", "limit=abc", 20, 0},
		{"non-numeric offset falls back", "offset=xyz&limit=30", 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/events?"+tt.query, nil)
			p := Parse(r, DefaultLimit, MaxLimit)
			if p.Limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", p.Limit, tt.wantLimit)
			}
			if p.Offset != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", p.Offset, tt.wantOffset)
			}
		})
	}
}

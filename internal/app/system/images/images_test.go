package images

import "testing"

func TestResolve(t *testing.T) {
	rv := New("https://myococ.connexus.team")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"http://x/y.jpg", "http://x/y.jpg"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"/uploads/a.png", "https://myococ.connexus.team/uploads/a.png"},
		{"/images/Leadership.jpg", "https://myococ.connexus.team/images/Leadership.jpg"},
		{"uploads/b.jpg", "https://myococ.connexus.team/uploads/b.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := rv.Resolve(tt.input); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	rv := New("https://myococ.connexus.team/")
	got := rv.Resolve("/uploads/a.png")
	want := "https://myococ.connexus.team/uploads/a.png"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveAll(t *testing.T) {
	rv := New("https://myococ.connexus.team")
	got := rv.ResolveAll([]string{"", "/uploads/a.png"})
	if got[0] != "" || got[1] != "https://myococ.connexus.team/uploads/a.png" {
		t.Errorf("ResolveAll = %#v", got)
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Acme Analytics", "acme-analytics"},
		{"  FinTech  Hub!  ", "fintech-hub"},
		{"Already-Slugged", "already-slugged"},
		{"a__b..c", "a-b-c"},
		{"Startup 2026", "startup-2026"},
	}
	for _, c := range cases {
		if got := MakeSlug(c.in); got != c.want {
			t.Fatalf("MakeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeSlugFallback(t *testing.T) {
	got := MakeSlug("!!!")
	if !strings.HasPrefix(got, "startup-") || len(got) != len("startup-")+8 {
		t.Fatalf("expected random fallback slug, got %q", got)
	}
	if MakeSlug("???") == got {
		t.Fatalf("fallback slugs should not repeat: %q", got)
	}
}

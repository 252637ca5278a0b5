package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MakeSlug derives a URL-safe slug from a startup name: lowercase, runs of
// non-alphanumerics collapse to single hyphens. Names with no usable
// characters fall back to a random identifier.
func MakeSlug(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range lowered {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "startup-" + uuid.NewString()[:8]
	}
	return slug
}

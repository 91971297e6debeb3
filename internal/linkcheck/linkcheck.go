// Package linkcheck rewrites placeholder links emitted by the LLM into
// deterministic search URLs so every link shown to a user resolves.
package linkcheck

import (
	"strings"

	"github.com/internai/internai/internal/model"
)

// Kind selects the search engine used for a rewritten link.
type Kind string

const (
	KindYouTube       Kind = "youtube"
	KindCertification Kind = "certification"
	KindResource      Kind = "resource"
)

// ParseKind maps a free-text type to a Kind. Unknown values are resources.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindYouTube:
		return KindYouTube
	case KindCertification:
		return KindCertification
	default:
		return KindResource
	}
}

var placeholders = []string{"actual-url.com", "example.com", "youtube.com/video", "..."}

// IsPlaceholder reports whether u is empty or contains a known placeholder.
func IsPlaceholder(u string) bool {
	u = strings.TrimSpace(u)
	if u == "" {
		return true
	}
	lower := strings.ToLower(u)
	for _, p := range placeholders {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Sanitize returns res with a URL that starts with https:// and contains no
// placeholder. Valid https URLs are returned unchanged; the name never changes.
func Sanitize(res model.Resource, kind Kind) model.Resource {
	u := strings.TrimSpace(res.URL)
	switch {
	case IsPlaceholder(u):
		res.URL = SearchURL(res.Name, kind)
	case hasScheme(u, "https://"):
		res.URL = u
	case hasScheme(u, "http://"):
		res.URL = "https://" + u[len("http://"):]
	case strings.Contains(u, "://") || strings.HasPrefix(strings.ToLower(u), "javascript:"):
		res.URL = SearchURL(res.Name, kind)
	default:
		res.URL = "https://" + strings.TrimPrefix(u, "//")
	}
	return res
}

// SanitizeAll applies Sanitize to every entry in place and returns rs.
func SanitizeAll(rs []model.Resource, kind Kind) []model.Resource {
	for i := range rs {
		rs[i] = Sanitize(rs[i], kind)
	}
	return rs
}

// SearchURL builds the fallback search link for name.
func SearchURL(name string, kind Kind) string {
	q := EncodeComponent(strings.TrimSpace(name))
	switch kind {
	case KindYouTube:
		return "https://www.youtube.com/results?search_query=" + q + "+tutorial"
	case KindCertification:
		return "https://www.coursera.org/search?query=" + q
	default:
		return "https://www.google.com/search?q=" + q + "+learning+resources"
	}
}

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// letters, digits and -_.!~*'() pass through, spaces become %20.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func hasScheme(u, scheme string) bool {
	return len(u) >= len(scheme) && strings.EqualFold(u[:len(scheme)], scheme)
}

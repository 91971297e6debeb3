// Package skill normalizes free-text skill and role strings for comparison.
// Matching is exact or substring only; there is no stemming or synonym table.
package skill

import "strings"

// Normalize lower-cases s and strips surrounding whitespace.
// The empty string normalizes to the empty string.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Contains reports whether s contains sub after normalizing both.
// An empty sub never matches.
func Contains(s, sub string) bool {
	n := Normalize(sub)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(s), n)
}

// Overlaps reports whether either string contains the other after
// normalization. Empty inputs never overlap.
func Overlaps(a, b string) bool {
	return Contains(a, b) || Contains(b, a)
}

// Dedupe drops blank entries and repeated skills, keeping the first spelling
// of each normalized value in input order.
func Dedupe(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := Normalize(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// Subtract returns the entries of from whose normalized form is not in remove.
func Subtract(from, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, s := range remove {
		drop[Normalize(s)] = true
	}
	out := make([]string, 0, len(from))
	for _, s := range from {
		if !drop[Normalize(s)] {
			out = append(out, s)
		}
	}
	return out
}

package adapter

import (
	"strconv"
	"strings"
	"time"
)

// parseRetryAfter parses a Retry-After header given in seconds (e.g. "120").
// Returns zero if absent, negative or unparseable.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

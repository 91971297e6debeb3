package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// WorkMode is where a posting expects the candidate to work.
type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeOnSite WorkMode = "On-site"
	WorkModeHybrid WorkMode = "Hybrid"
)

// ParseWorkMode accepts the canonical spellings case-insensitively.
// An empty string yields On-site, the default for admin-created postings.
func ParseWorkMode(s string) (WorkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return WorkModeOnSite, nil
	case "remote":
		return WorkModeRemote, nil
	case "on-site", "onsite", "on site":
		return WorkModeOnSite, nil
	case "hybrid":
		return WorkModeHybrid, nil
	default:
		return "", fmt.Errorf("%w: unknown work mode %q", ErrInvalidInput, s)
	}
}

// Posting lifecycle and kind values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	TypeInternship = "internship"
	TypeJob        = "job"
)

// Where a posting came from.
const (
	SourceLive  = "live"  // upstream job-search API
	SourceMock  = "mock"  // development fixtures when no API key is configured
	SourceLocal = "local" // the local job store
)

// JobPosting is the unified representation of a listing, whether persisted by
// an administrator or synthesized per request from the upstream search API.
type JobPosting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	WorkMode       WorkMode  `json:"workMode"`
	Compensation   string    `json:"compensation,omitempty"`
	SourceAt       time.Time `json:"sourceAt"`
	Type           string    `json:"type,omitempty"`
	RequiredSkills []string  `json:"requiredSkills,omitempty"`
	Link           string    `json:"link,omitempty"`
	Logo           string    `json:"logo,omitempty"`
	ApplyBy        string    `json:"applyBy,omitempty"`
	Source         string    `json:"source"`
	Status         string    `json:"status,omitempty"`
	PostedBy       string    `json:"postedBy,omitempty"`
}

// SearchQuery parameterizes a live job search.
type SearchQuery struct {
	Keyword  string
	Location string
	Page     int
}

// JobSearcher fetches listings for a query from a source (e.g. JSearch).
type JobSearcher interface {
	Search(ctx context.Context, q SearchQuery) ([]JobPosting, error)
}

// Notifier announces newly published postings.
type Notifier interface {
	Notify(jobs []JobPosting) error
}

// JobFilter decides whether a posting should be shown.
type JobFilter interface {
	Match(job JobPosting) bool
}

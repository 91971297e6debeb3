package model

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// UserProfile is the candidate side of a match. Skills are unique and
// unordered; Region is the declared Indian state or union territory, empty
// when the user has not set one.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Skills    []string  `json:"skills"`
	Region    string    `json:"region,omitempty"`
	Role      string    `json:"role"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Role   string
	// Trusted is false when the identity came from an unsigned X-User-ID header.
	Trusted bool
}

// IsAdmin reports whether the caller may manage postings.
func (i Identity) IsAdmin() bool {
	return i.Trusted && i.Role == RoleAdmin
}

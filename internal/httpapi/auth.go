package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/internai/internai/internal/model"
)

// UserIDHeader carries an unsigned user ID set by a trusted gateway.
const UserIDHeader = "X-User-ID"

// Claims is the JWT payload issued to callers.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator resolves the caller of a request from a bearer token or,
// when enabled, the X-User-ID header.
type Authenticator struct {
	secret      []byte
	trustHeader bool
	now         func() time.Time
}

// NewAuthenticator creates an Authenticator. With an empty secret no token
// verifies, so only the header path (if trusted) can identify callers.
func NewAuthenticator(secret string, trustHeader bool) *Authenticator {
	return &Authenticator{secret: []byte(secret), trustHeader: trustHeader, now: time.Now}
}

// IssueToken signs an HS256 token for userID with role, valid for ttl.
func (a *Authenticator) IssueToken(userID, role string, ttl time.Duration) (string, error) {
	if len(a.secret) == 0 {
		return "", fmt.Errorf("%w: set JWT_SECRET or auth.jwt_secret", model.ErrNotConfigured)
	}
	now := a.now()
	claims := Claims{
		ID:   userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Identify returns the caller of r. An invalid token falls through to the
// header when one is present; with neither, the error wraps ErrUnauthorized.
func (a *Authenticator) Identify(r *http.Request) (model.Identity, error) {
	var tokenErr error
	if raw, ok := bearerToken(r); ok {
		id, err := a.verify(raw)
		if err == nil {
			return id, nil
		}
		tokenErr = err
	}

	if a.trustHeader {
		if uid := strings.TrimSpace(r.Header.Get(UserIDHeader)); uid != "" {
			return model.Identity{UserID: uid, Role: model.RoleStudent}, nil
		}
	}

	if tokenErr != nil {
		return model.Identity{}, fmt.Errorf("%w: token is not valid", model.ErrUnauthorized)
	}
	return model.Identity{}, fmt.Errorf("%w: no token, authorization denied", model.ErrUnauthorized)
}

func (a *Authenticator) verify(raw string) (model.Identity, error) {
	if len(a.secret) == 0 {
		return model.Identity{}, errors.New("no signing secret configured")
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return model.Identity{}, err
	}
	if claims.ID == "" {
		return model.Identity{}, errors.New("token has no id claim")
	}
	role := claims.Role
	if role == "" {
		role = model.RoleStudent
	}
	return model.Identity{UserID: claims.ID, Role: role, Trusted: true}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

type identityKey struct{}

func withIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// identityFrom returns the caller stored by requireAuth or optionalAuth.
func identityFrom(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(model.Identity)
	return id, ok
}

// requireAuth rejects requests without an identity.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.auth.Identify(r)
		if err != nil {
			s.fail(w, r, "authorization required", err)
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), id)))
	}
}

// requireAdmin rejects callers that are not signed-in administrators.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		id, _ := identityFrom(r.Context())
		if !id.IsAdmin() {
			s.fail(w, r, "Access denied. Admin only.", fmt.Errorf("%w: user %s is not an admin", model.ErrForbidden, id.UserID))
			return
		}
		next(w, r)
	})
}

// optionalAuth attaches an identity when one can be resolved and otherwise
// serves the request anonymously.
func (s *Server) optionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := s.auth.Identify(r); err == nil {
			r = r.WithContext(withIdentity(r.Context(), id))
		}
		next(w, r)
	}
}

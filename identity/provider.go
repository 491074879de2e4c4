// Package identity resolves the caller behind a request. Every provider
// validates the presented token on each call; nothing is trusted from a
// previously decoded session.
package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// User is a validated identity. ID doubles as the owner's profile ID.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Provider resolves a bearer token to a validated user or fails with ErrUnauthenticated
type Provider interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

// TokenFromRequest reads the bearer token from the Authorization header,
// falling back to the named session cookie
func TokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

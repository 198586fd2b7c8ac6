// File: internal/shared/session.go
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the identity assertion produced by a federated login.
// Email is always present for an authenticated session; the rest is optional
// profile data.
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// SessionService defines the interface for issuing and validating session tokens.
type SessionService interface {
	Issue(session *Session) (token string, expiresAt time.Time, err error)
	Validate(token string) (*Session, error)
}

// SessionClaims represents the JWT claims carried by a session token.
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// File: internal/session/service.go
package session

import (
	"fmt"
	"strings"
	"time"

	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service issues and validates HMAC-signed session tokens. A token stands in
// for the identity assertion between the Google callback and subsequent
// requests, mirroring a JWT-strategy web session.
type Service struct {
	secret []byte
	maxAge time.Duration
	logger *zap.Logger
}

var _ shared.SessionService = (*Service)(nil)

// NewService creates a new session token service.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		secret: []byte(cfg.SessionSecret),
		maxAge: cfg.SessionMaxAge,
		logger: logger.Named("SessionService"),
	}
}

// Issue signs a session token for the given assertion.
func (s *Service) Issue(sess *shared.Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.maxAge)

	claims := shared.SessionClaims{
		Email:   strings.ToLower(strings.TrimSpace(sess.Email)),
		Name:    sess.Name,
		Picture: sess.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a session token, returning the embedded assertion.
func (s *Service) Validate(tokenString string) (*shared.Session, error) {
	claims := &shared.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("session token has no email claim")
	}

	return &shared.Session{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

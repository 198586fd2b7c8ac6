package session

import (
	"testing"
	"time"

	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(secret string, maxAge time.Duration) *Service {
	return NewService(&config.Config{
		SessionSecret: secret,
		SessionMaxAge: maxAge,
	}, zap.NewNop())
}

func TestService_IssueAndValidate(t *testing.T) {
	svc := newTestService("test-secret", 24*time.Hour)

	token, expiresAt, err := svc.Issue(&shared.Session{
		Email:   "  User@Example.com ",
		Name:    "Mario Rossi",
		Picture: "https://example.com/p.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sess.Email)
	assert.Equal(t, "Mario Rossi", sess.Name)
	assert.Equal(t, "https://example.com/p.png", sess.Picture)
}

func TestService_Validate_TamperedToken(t *testing.T) {
	svc := newTestService("test-secret", 24*time.Hour)

	token, _, err := svc.Issue(&shared.Session{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token + "x")
	assert.Error(t, err)
}

func TestService_Validate_WrongSecret(t *testing.T) {
	issuer := newTestService("secret-one", 24*time.Hour)
	validator := newTestService("secret-two", 24*time.Hour)

	token, _, err := issuer.Issue(&shared.Session{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestService_Validate_ExpiredToken(t *testing.T) {
	svc := newTestService("test-secret", -time.Hour)

	token, _, err := svc.Issue(&shared.Session{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestService_Validate_RejectsUnsignedToken(t *testing.T) {
	svc := newTestService("test-secret", 24*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, shared.SessionClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestService_Validate_RejectsMissingEmail(t *testing.T) {
	svc := newTestService("test-secret", 24*time.Hour)

	token, _, err := svc.Issue(&shared.Session{Email: "   "})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestService_Validate_Garbage(t *testing.T) {
	svc := newTestService("test-secret", 24*time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}

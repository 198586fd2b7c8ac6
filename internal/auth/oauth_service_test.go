package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func oauthTestConfig() *config.Config {
	return &config.Config{
		GoogleClientID:       "client-id",
		GoogleClientSecret:   "client-secret",
		GoogleRedirectURL:    "http://localhost:8080/auth/google/callback",
		SessionSecret:        "test-secret",
		SessionCookieName:    "lead_session",
		OAuthStateCookieName: "oauth_state",
	}
}

func newOAuthTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c.Request = req
	return c, rec
}

func TestOAuthService_GetGoogleLoginURL(t *testing.T) {
	cfg := oauthTestConfig()
	svc := NewOAuthService(cfg, session.NewService(cfg, zap.NewNop()), zap.NewNop())

	c, rec := newOAuthTestContext(t, "/auth/google/login")
	loginURL, err := svc.GetGoogleLoginURL(c)
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.NotEmpty(t, parsed.Query().Get("state"))

	// The state in the login URL must round-trip through the state cookie.
	var stateCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cfg.OAuthStateCookieName {
			stateCookie = ck
		}
	}
	require.NotNil(t, stateCookie, "state cookie should be set")
	assert.Equal(t, parsed.Query().Get("state"), stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
}

func TestOAuthService_HandleGoogleCallback_MissingStateCookie(t *testing.T) {
	cfg := oauthTestConfig()
	svc := NewOAuthService(cfg, session.NewService(cfg, zap.NewNop()), zap.NewNop())

	c, _ := newOAuthTestContext(t, "/auth/google/callback?code=abc&state=xyz")
	_, _, _, err := svc.HandleGoogleCallback(c, "abc", "xyz")

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestOAuthService_HandleGoogleCallback_StateMismatch(t *testing.T) {
	cfg := oauthTestConfig()
	svc := NewOAuthService(cfg, session.NewService(cfg, zap.NewNop()), zap.NewNop())

	c, _ := newOAuthTestContext(t, "/auth/google/callback?code=abc&state=attacker")
	c.Request.AddCookie(&http.Cookie{Name: cfg.OAuthStateCookieName, Value: "expected"})

	_, _, _, err := svc.HandleGoogleCallback(c, "abc", "attacker")

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

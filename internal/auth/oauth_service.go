// File: internal/auth/oauth_service.go
package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OAuthService defines the interface for the federated login handshake.
// The application only reads the resulting identity assertion; everything
// else about the provider exchange stays behind this boundary.
type OAuthService interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.Session, string, time.Time, error)
}

type oauthService struct {
	cfg      *config.Config
	sessions shared.SessionService
	logger   *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(
	cfg *config.Config,
	sessions shared.SessionService,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL generates the URL for Google OAuth login.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateAndSetOAuthState(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state for Google", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	googleCfg := getGoogleOAuthConfig(s.cfg)
	authURL := googleCfg.AuthCodeURL(state)
	s.logger.Debug("Generated Google login URL", zap.String("url", authURL))
	return authURL, nil
}

// HandleGoogleCallback processes the callback from Google and issues a
// session token for the asserted identity.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.Session, string, time.Time, error) {
	storedState, err := getOAuthStateCookie(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to get stored OAuth state for Google callback", zap.Error(err))
		return nil, "", time.Time{}, common.ErrBadRequest.WithDetails("Invalid session or state mismatch.")
	}
	if state != storedState {
		s.logger.Error("Google OAuth state mismatch",
			zap.String("received_state", state), zap.String("stored_state", storedState))
		return nil, "", time.Time{}, common.ErrBadRequest.WithDetails("OAuth state mismatch. Possible CSRF attack.")
	}

	googleCfg := getGoogleOAuthConfig(s.cfg)
	ctx := c.Request.Context()

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code for token", zap.Error(err))
		return nil, "", time.Time{}, common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}
	if !token.Valid() {
		s.logger.Error("Google token received is invalid")
		return nil, "", time.Time{}, common.ErrServiceUnavailable.WithDetails("Received invalid token from Google.")
	}

	client := googleCfg.Client(ctx, token)
	userInfoResp, err := client.Get(GoogleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, "", time.Time{}, common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}
	defer userInfoResp.Body.Close()

	if userInfoResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(userInfoResp.Body)
		s.logger.Error("Google user info request failed",
			zap.Int("status", userInfoResp.StatusCode), zap.String("body", string(bodyBytes)))
		return nil, "", time.Time{}, common.ErrServiceUnavailable.WithDetails("Google user info request failed.")
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(userInfoResp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, "", time.Time{}, common.ErrInternalServer.WithDetails("Could not process Google user information.")
	}
	if googleUser.Email == "" {
		s.logger.Error("Google user info is missing an email address", zap.String("sub", googleUser.Sub))
		return nil, "", time.Time{}, common.ErrUnauthorized.WithDetails("Google account has no email address.")
	}

	sess := &shared.Session{
		Email:   strings.ToLower(googleUser.Email),
		Name:    googleUser.Name,
		Picture: googleUser.Picture,
	}

	sessionToken, expiresAt, err := s.sessions.Issue(sess)
	if err != nil {
		s.logger.Error("Failed to issue session token after Google login", zap.Error(err), zap.String("email", sess.Email))
		return nil, "", time.Time{}, common.ErrInternalServer.WithDetails("Could not create session.")
	}

	s.logger.Info("Google OAuth login successful", zap.String("email", sess.Email))
	return sess, sessionToken, expiresAt, nil
}

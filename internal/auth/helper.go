// File: internal/auth/helper.go
package auth

import (
	"fmt"
	"net/http"

	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/platform/crypto"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	// GoogleUserInfoURL is a variable for testing.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// oauthStateCookieMaxAge bounds the window between login start and callback.
const oauthStateCookieMaxAge = 10 * 60 // seconds

// setOAuthStateCookie sets the short-lived cookie carrying the OAuth state.
func setOAuthStateCookie(c *gin.Context, cfg *config.Config, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.OAuthStateCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   oauthStateCookieMaxAge,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// getOAuthStateCookie retrieves and deletes the OAuth state cookie.
func getOAuthStateCookie(c *gin.Context, cfg *config.Config) (string, error) {
	cookie, err := c.Request.Cookie(cfg.OAuthStateCookieName)
	if err != nil {
		return "", fmt.Errorf("%s cookie not found: %w", cfg.OAuthStateCookieName, err)
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.OAuthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return cookie.Value, nil
}

// SetSessionCookie attaches the signed session token to the response.
func SetSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateAndSetOAuthState(c *gin.Context, cfg *config.Config) (string, error) {
	state, err := crypto.GenerateSecureRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	setOAuthStateCookie(c, cfg, state)
	return state, nil
}

func getGoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

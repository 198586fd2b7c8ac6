// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	oauthService OAuthService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(oauthService OAuthService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		oauthService: oauthService,
		cfg:          cfg,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
// authMW gates the routes that need an existing session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google/login", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/me", authMW, h.me)
	}
}

func (h *Handler) googleLogin(c *gin.Context) {
	loginURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.logger.Warn("Google callback missing code or state",
			zap.Bool("has_code", code != ""), zap.Bool("has_state", state != ""))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing code or state parameter."))
		return
	}

	sess, sessionToken, _, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	SetSessionCookie(c, h.cfg, sessionToken)
	h.logger.Info("Session established", zap.String("email", sess.Email))

	// Browser flow lands on the gated form page after sign-in.
	c.Redirect(http.StatusFound, "/contacts")
}

func (h *Handler) me(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	common.RespondOK(c, "Session retrieved successfully.", sess)
}

func (h *Handler) logout(c *gin.Context) {
	ClearSessionCookie(c, h.cfg)
	common.RespondOK(c, "Logged out.", nil)
}

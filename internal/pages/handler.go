// File: internal/pages/handler.go
package pages

import (
	"embed"
	"html/template"
	"net/http"

	"lead_capture_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates for the Gin engine.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// Handler serves the sign-in and contact-form pages.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new pages handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes sets up the page routes with their session gates: the form
// page requires a session, and an already signed-in visit to the sign-in
// page bounces back to the form.
func (h *Handler) RegisterRoutes(router *gin.Engine, requireSessionPage, redirectIfAuthenticated gin.HandlerFunc) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/contacts")
	})
	router.GET("/contacts", requireSessionPage, h.contacts)
	router.GET("/auth/signin", redirectIfAuthenticated, h.signIn)
}

func (h *Handler) signIn(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.html", nil)
}

func (h *Handler) contacts(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	email := ""
	if sess != nil {
		email = sess.Email
	}
	c.HTML(http.StatusOK, "contacts.html", gin.H{"Email": email})
}

// File: internal/lead/handler.go
package lead

import (
	"errors"
	"net/http"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for lead handlers.
type Handler struct {
	service Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new lead handler.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for lead operations. All of them require
// an authenticated session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	apiGroup := router.Group("/api", authMW)
	{
		apiGroup.POST("/submit-form", h.submitForm)
		apiGroup.GET("/leads", h.listLeads)
	}
}

// submitForm handles POST /api/submit-form. The response bodies follow the
// form's contract: {"success":true} on acceptance and {"error": "..."} on
// any rejection.
func (h *Handler) submitForm(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Submit form: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), sess, req); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			status := apiErr.StatusCode
			// The wire contract reports duplicates as a plain 400, with the
			// same generic copy as validation failures carry their own.
			if status == http.StatusConflict {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": apiErr.Message})
			return
		}
		h.logger.Error("Submit form failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// listLeads handles GET /api/leads. Only the configured admin email may list
// captured leads.
func (h *Handler) listLeads(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	if h.cfg.AdminEmail == "" || sess.Email != h.cfg.AdminEmail {
		h.logger.Warn("Non-admin attempted to list leads", zap.String("email", sess.Email))
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Only the admin account may list leads."))
		return
	}

	var query ListLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters."))
		return
	}

	leads, pagination, err := h.service.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		responses = append(responses, ToLeadResponse(&leads[i]))
	}
	common.RespondPaginated(c, "Leads retrieved successfully.", responses, pagination)
}

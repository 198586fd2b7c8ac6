// File: internal/lead/service.go
package lead

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/metrics"
	"lead_capture_backend/internal/shared"
	"lead_capture_backend/internal/webhook"

	"go.uber.org/zap"
)

// DuplicateLeadMessage is the fixed, user-facing copy returned for any
// duplicate, regardless of whether the email or the phone collided.
const DuplicateLeadMessage = "Abbiamo già nel nostro database il suo numero o la sua mail, se non riceve i nostri messaggi provi a contattarci telefonicamente."

// Service defines the interface for lead business logic.
type Service interface {
	Submit(ctx context.Context, sess *shared.Session, req SubmitFormRequest) (*Lead, error)
	List(ctx context.Context, page, pageSize int) ([]Lead, *common.Pagination, error)
}

// ServiceImplementation implements the lead Service interface.
type ServiceImplementation struct {
	repo     Repository
	notifier webhook.Notifier
	cfg      *config.Config
	logger   *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new lead service.
func NewService(
	repo Repository,
	notifier webhook.Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func invalidInput(message string) *common.APIError {
	return common.NewAPIError(http.StatusBadRequest, "INVALID_INPUT", message)
}

func duplicateLead() *common.APIError {
	return common.NewAPIError(http.StatusConflict, "DUPLICATE_LEAD", DuplicateLeadMessage)
}

// Submit runs the full accept/reject workflow for one submission:
// authentication check, field validation, duplicate detection, webhook
// notification, persistence. It short-circuits on the first failure; no
// step is retried, and nothing is written before the webhook succeeds.
func (s *ServiceImplementation) Submit(ctx context.Context, sess *shared.Session, req SubmitFormRequest) (*Lead, error) {
	metrics.SubmissionsTotal.Inc()

	if sess == nil || strings.TrimSpace(sess.Email) == "" {
		return nil, common.ErrUnauthorized
	}
	// The session's email is authoritative; any client-supplied email is
	// ignored.
	email := strings.ToLower(strings.TrimSpace(sess.Email))

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonInvalidInput).Inc()
		return nil, invalidInput("The name field is required and cannot be empty.")
	}
	if phone == "" {
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonInvalidInput).Inc()
		return nil, invalidInput("The phone field is required and cannot be empty.")
	}
	if !IsValidPhone(phone) {
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonInvalidInput).Inc()
		return nil, invalidInput("The phone field must be a valid phone number.")
	}

	if err := s.checkDuplicate(ctx, email, phone); err != nil {
		return nil, err
	}

	// Notify before persisting: a successful notification implies the record
	// creation is about to happen. If the write then fails, the
	// inconsistency is user-visible but not reconciled.
	if err := s.notifier.Notify(ctx, webhook.Payload{Name: name, Phone: phone, Email: email}); err != nil {
		s.logger.Error("Webhook notification failed, aborting submission",
			zap.Error(err), zap.String("email", email))
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonWebhookFailure).Inc()
		metrics.WebhookFailuresTotal.Inc()
		return nil, common.NewAPIError(http.StatusInternalServerError, "UPSTREAM_FAILURE", "Failed to submit form")
	}

	newLead := &Lead{Email: email, Name: name, Phone: phone}
	if err := s.repo.Create(ctx, newLead); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == http.StatusConflict {
			// A concurrent submission won the race; the store's uniqueness
			// constraint is the backstop for the non-atomic pre-check.
			s.logger.Warn("Lead creation hit uniqueness constraint after duplicate check passed",
				zap.String("email", email))
			metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonDuplicate).Inc()
			return nil, duplicateLead()
		}
		s.logger.Error("Failed to create lead record", zap.Error(err), zap.String("email", email))
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonPersistenceFailure).Inc()
		return nil, common.NewAPIError(http.StatusInternalServerError, "PERSISTENCE_FAILURE", "Failed to submit form")
	}

	metrics.SubmissionsAcceptedTotal.Inc()
	s.logger.Info("Lead captured", zap.String("leadID", newLead.ID.String()), zap.String("email", email))
	return newLead, nil
}

// checkDuplicate applies the duplicate policy. The configured admin email is
// exempt from the email-uniqueness rule so it can register multiple phone
// numbers, but its phone is still checked against all existing records.
func (s *ServiceImplementation) checkDuplicate(ctx context.Context, email, phone string) error {
	var err error
	if s.cfg.AdminEmail != "" && email == s.cfg.AdminEmail {
		_, err = s.repo.FindByPhone(ctx, phone)
	} else {
		_, err = s.repo.FindConflict(ctx, email, phone)
	}

	if err == nil {
		// A record matched: duplicate. The response deliberately does not
		// reveal whether the email or the phone collided.
		metrics.SubmissionsRejectedTotal.WithLabelValues(metrics.ReasonDuplicate).Inc()
		return duplicateLead()
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Duplicate check failed", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to check for duplicate lead: %w", err)
	}
	return nil
}

// List returns a page of captured leads, newest first.
func (s *ServiceImplementation) List(ctx context.Context, page, pageSize int) ([]Lead, *common.Pagination, error) {
	leads, pagination, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list leads", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve leads.")
	}
	return leads, pagination, nil
}

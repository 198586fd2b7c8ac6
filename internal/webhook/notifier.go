// File: internal/webhook/notifier.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lead_capture_backend/internal/config"

	"go.uber.org/zap"
)

// Payload carries the accepted submission fields forwarded to the webhook.
type Payload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// notification is the wire body: the submission fields plus a
// server-assigned timestamp.
type notification struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// Notifier defines the interface for forwarding accepted submissions to an
// external endpoint. A single attempt is made; the caller decides what a
// failure means for the rest of the workflow.
type Notifier interface {
	Notify(ctx context.Context, payload Payload) error
}

// HTTPNotifier posts submissions as JSON to a configured URL.
type HTTPNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

var _ Notifier = (*HTTPNotifier)(nil)

// NewHTTPNotifier creates a notifier targeting the configured webhook URL.
func NewHTTPNotifier(cfg *config.Config, logger *zap.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: cfg.WebhookTimeout},
		logger: logger.Named("WebhookNotifier"),
		now:    time.Now,
	}
}

// Notify issues one outbound POST with the payload and a server-generated
// ISO-8601 timestamp. Any non-2xx status or transport failure is an error.
func (n *HTTPNotifier) Notify(ctx context.Context, payload Payload) error {
	if n.url == "" {
		n.logger.Warn("Webhook URL is not configured; rejecting notification")
		return fmt.Errorf("webhook URL is not configured")
	}

	body, err := json.Marshal(notification{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("Webhook call failed", zap.Error(err))
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Error("Webhook returned non-success status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Webhook notified", zap.Int("status", resp.StatusCode))
	return nil
}

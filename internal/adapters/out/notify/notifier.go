// Package notify delivers actor notifications. The current transport posts to
// the notification gateway over HTTP; delivery stays best effort either way.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"

	"github.com/rs/zerolog"
)

const deliverTimeout = 5 * time.Second

// GatewayNotifier implements ports.Notifier against the notification gateway.
type GatewayNotifier struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewGatewayNotifier creates a notifier posting to the given gateway URL.
func NewGatewayNotifier(baseURL string, log zerolog.Logger) (*GatewayNotifier, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	return &GatewayNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: deliverTimeout},
		log:     log.With().Str("component", "notifier").Logger(),
	}, nil
}

type notificationPayload struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// Notify posts one message to the gateway. Any failure wraps
// ports.ErrNotificationFailure for the caller to log and move past.
func (n *GatewayNotifier) Notify(ctx context.Context, recipient kernel.UUID, message string) error {
	body, err := json.Marshal(notificationPayload{
		Recipient: recipient.String(),
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("%w: encode notification: %v", ports.ErrNotificationFailure, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, n.baseURL+"/api/v1/notifications", bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("%w: build notification request: %v", ports.ErrNotificationFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: deliver notification: %v", ports.ErrNotificationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: gateway returned %d", ports.ErrNotificationFailure, resp.StatusCode)
	}

	n.log.Debug().Str("recipient", recipient.String()).Msg("notification delivered")
	return nil
}

// LogNotifier implements ports.Notifier by writing notifications to the log.
// Used when no gateway is configured, typically in local development.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

// Notify logs the message instead of delivering it.
func (n *LogNotifier) Notify(_ context.Context, recipient kernel.UUID, message string) error {
	n.log.Info().
		Str("recipient", recipient.String()).
		Str("message", message).
		Msg("notification")
	return nil
}

// Package notifier delivers best-effort notifications to Slack.
// Delivery failures are logged and reported to the caller but are never
// allowed to fail the operation that triggered them.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kakeibo/internal/logger"
)

// Servicer defines the contract for outbound notifications.
type Servicer interface {
	Send(message string) error
	Enabled() bool
}

// slackNotifier posts messages to a Slack incoming webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Servicer for the given webhook URL.
// An empty URL yields a disabled notifier whose Send is a no-op.
func NewSlackNotifier(webhookURL string) Servicer {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether a webhook is configured.
func (n *slackNotifier) Enabled() bool {
	return n.webhookURL != ""
}

// Send posts a message to the webhook.
func (n *slackNotifier) Send(message string) error {
	if !n.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return fmt.Errorf("failed to encode slack payload: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.Get().Warnw("slack notification failed", "error", err.Error())
		return fmt.Errorf("failed to deliver slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Get().Warnw("slack notification rejected", "status", resp.StatusCode)
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

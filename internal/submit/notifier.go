package submit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Notifier delivers the flattened record to an external intake endpoint.
// Implementations report transport failures and rejecting responses as
// errors; the coordinator decides whether they matter.
type Notifier interface {
	Notify(ctx context.Context, payload url.Values) error
}

// WebhookNotifier posts the payload form-encoded to a fixed endpoint.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewWebhookNotifier constructs a notifier for the given endpoint. A zero
// timeout falls back to the client default (no timeout).
func NewWebhookNotifier(endpoint string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Notify posts the payload. Any non-2xx status counts as delivery failure.
func (n *WebhookNotifier) Notify(ctx context.Context, payload url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint,
		strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			n.logger.Warn("failed to close notification response body",
				zap.String("op", "submit.WebhookNotifier.Notify"),
				zap.Error(closeErr),
			)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}
	return nil
}

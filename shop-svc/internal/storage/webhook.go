package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookLogger posts a copy of each order to an automation webhook. The
// response body is ignored; only the status decides success.
type WebhookLogger struct {
	URL    string
	Client HTTPClient
}

func NewWebhookLogger(url string, client HTTPClient) *WebhookLogger {
	return &WebhookLogger{URL: url, Client: client}
}

func (w *WebhookLogger) Name() string {
	return "webhook"
}

func (w *WebhookLogger) LogOrder(ctx context.Context, summary domain.OrderSummary) error {
	body, err := json.Marshal(order.NewPayload(summary))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

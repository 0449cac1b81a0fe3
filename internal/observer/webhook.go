package observer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iamruinous/pica-emulator/internal/config"
)

// Webhook POSTs each event as JSON to a configured HTTP endpoint.
type Webhook struct {
	url     string
	method  string
	headers map[string]string
	enabled bool
	client  *http.Client
}

// NewWebhook creates a new webhook sink.
func NewWebhook(cfg config.ObserverConfig) (*Webhook, error) {
	url, _ := cfg.Options["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("webhook url is required")
	}

	method := "POST"
	if m, ok := cfg.Options["method"].(string); ok {
		method = m
	}

	timeout := 10 * time.Second
	if t, ok := cfg.Options["timeout"].(string); ok {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	headers := make(map[string]string)
	if h, ok := cfg.Options["headers"].(map[string]interface{}); ok {
		for k, v := range h {
			if s, ok := v.(string); ok {
				headers[k] = s
			}
		}
	}

	return &Webhook{
		url:     url,
		method:  method,
		headers: headers,
		enabled: cfg.Enabled,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Send posts an event to the webhook.
func (w *Webhook) Send(ctx context.Context, evt *PicaEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, w.method, w.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if _, ok := w.headers["Content-Type"]; !ok {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Close closes the webhook sink (no-op).
func (w *Webhook) Close() error { return nil }

// Name returns the sink identifier.
func (w *Webhook) Name() string { return fmt.Sprintf("webhook:%s", w.url) }

// Enabled returns whether this sink is enabled.
func (w *Webhook) Enabled() bool { return w.enabled }

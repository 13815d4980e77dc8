// Forward matched leads to the automation webhook (n8n).
// Delivery is best effort: at most once, no retry, no queue.

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-nextdoor-leads/internal/metrics"
	"go-nextdoor-leads/internal/scraper"

	"github.com/charmbracelet/log"
)

type Dispatcher struct {
	url        string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// New creates a dispatcher. An empty url disables delivery.
func New(url string, timeout time.Duration, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

func (d *Dispatcher) Enabled() bool {
	return d.url != ""
}

// Dispatch delivers match and never reports failure to the caller:
// problems are logged and counted so the rest of the batch carries on.
func (d *Dispatcher) Dispatch(ctx context.Context, match scraper.Match) {
	if !d.Enabled() {
		log.Warn("⚠️ No webhook URL provided. Skipping send.", "keyword", match.Keyword)
		d.metrics.Dispatched(metrics.DispatchSkipped)
		return
	}

	if err := d.Send(ctx, match); err != nil {
		log.Error("⚠️ Webhook failed", "keyword", match.Keyword, "err", err)
		d.metrics.Dispatched(metrics.DispatchFailed)
		return
	}
	log.Info("📨 Sent to webhook", "keyword", match.Keyword)
	d.metrics.Dispatched(metrics.DispatchSent)
}

// Send posts match as JSON. Any transport error or non-2xx status is an ErrDispatchFailure.
func (d *Dispatcher) Send(ctx context.Context, match scraper.Match) error {
	body, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal match: %w", scraper.ErrDispatchFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", scraper.ErrDispatchFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", scraper.ErrDispatchFailure, err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned status %d: %s", scraper.ErrDispatchFailure, resp.StatusCode, string(snippet))
	}
	return nil
}

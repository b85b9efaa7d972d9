// Package notify pushes cost summaries to an external webhook, typically a
// chat integration watching the production run.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ovolab/eggcost/internal/domain/models"
	"github.com/ovolab/eggcost/pkg/money"
)

// Notifier delivers a cost summary to an external receiver.
type Notifier interface {
	SendSummary(ctx context.Context, summary models.CostSummary) error
}

// WebhookNotifier is a resty-backed Notifier POSTing JSON messages.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookNotifier builds a notifier for the given webhook URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookNotifier{httpClient: restyClient, url: url}
}

// SendSummary posts a human-readable summary line plus the raw figures.
func (n *WebhookNotifier) SendSummary(ctx context.Context, summary models.CostSummary) error {
	payload := map[string]any{
		"text": fmt.Sprintf("Easter egg costing: %s per egg, suggested price %s at %.0f%% margin (run of %d).",
			money.Format(summary.TotalCostPerEgg),
			money.Format(summary.SuggestedPrice),
			summary.ProfitMargin,
			summary.EggQuantity),
		"summary": summary,
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("send summary webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("summary webhook rejected with status %d", resp.StatusCode())
	}
	return nil
}

package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ovolab/eggcost/internal/domain/models"
)

func TestSendSummary_PostsJSONPayload(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	summary := models.CostSummary{EggQuantity: 10, TotalCostPerEgg: 10, ProfitMargin: 40, SuggestedPrice: 10 / 0.6}

	if err := n.SendSummary(context.Background(), summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Text    string             `json:"text"`
		Summary models.CostSummary `json:"summary"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if !strings.Contains(payload.Text, "40%") {
		t.Errorf("text should mention the margin, got %q", payload.Text)
	}
	if payload.Summary.EggQuantity != 10 {
		t.Errorf("raw summary not forwarded: %+v", payload.Summary)
	}
}

func TestSendSummary_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)

	if err := n.SendSummary(context.Background(), models.CostSummary{}); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

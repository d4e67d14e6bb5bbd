// Package upstream fetches orders from the storefront's order API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OrderSource implements ports.OrderSource over a JSON HTTP API:
//
//	GET {base}/owners/{owner_id}/orders/{order_id}
//
// A 404 means the storefront does not know the order.
type OrderSource struct {
	baseURL string
	token   string
	client  HTTPClient
	log     zerolog.Logger
}

// NewOrderSource creates an OrderSource. A nil client gets a default one with timeout.
func NewOrderSource(baseURL, token string, timeout time.Duration, client HTTPClient, log zerolog.Logger) *OrderSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &OrderSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		log:     log,
	}
}

func (s *OrderSource) FetchOrder(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.UpstreamOrder, error) {
	endpoint := fmt.Sprintf("%s/owners/%s/orders/%s", s.baseURL, ownerID, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	s.log.Debug().
		Str("order_id", orderID).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("upstream order fetched")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("fetch order %s: unexpected status %d", orderID, resp.StatusCode)
	}

	var order domain.UpstreamOrder
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &order, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Notification delivery headers.
const (
	HeaderSignature = "X-Fulfillment-Signature"
	HeaderTimestamp = "X-Fulfillment-Timestamp"
	HeaderEvent     = "X-Fulfillment-Event"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookNotifier implements ports.NotificationSink by POSTing signed JSON
// to a single configured URL.
type webhookNotifier struct {
	url        string
	secret     string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	retries    []time.Duration
	sleep      func(time.Duration)
	log        zerolog.Logger
}

// NewWebhookNotifier creates a notification sink. An empty url disables
// delivery; events are then only logged.
func NewWebhookNotifier(
	url string,
	secret string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	retries []time.Duration,
	log zerolog.Logger,
) ports.NotificationSink {
	return &webhookNotifier{
		url:        url,
		secret:     secret,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		retries:    retries,
		sleep:      time.Sleep,
		log:        log,
	}
}

// Notify delivers n asynchronously with retries.
func (s *webhookNotifier) Notify(ctx context.Context, n domain.Notification) {
	if s.url == "" {
		s.log.Debug().
			Str("event", string(n.Event)).
			Str("fulfillment_id", n.FulfillmentID.String()).
			Msg("notification: no webhook URL configured, skipping")
		return
	}

	body, err := json.Marshal(n)
	if err != nil {
		s.log.Error().Err(err).Str("event", string(n.Event)).Msg("notification: failed to marshal payload")
		return
	}

	go s.deliverWithRetries(context.WithoutCancel(ctx), n, body)
}

func (s *webhookNotifier) deliverWithRetries(ctx context.Context, n domain.Notification, body []byte) {
	log := s.log.With().
		Str("notification_id", n.ID.String()).
		Str("event", string(n.Event)).
		Str("fulfillment_id", n.FulfillmentID.String()).
		Logger()

	for attempt := 0; attempt <= len(s.retries); attempt++ {
		if attempt > 0 {
			s.sleep(s.retries[attempt-1])
		}

		status, err := s.deliver(ctx, n, body)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("notification: delivery failed")
			continue
		}
		if status >= 200 && status < 300 {
			log.Info().Int("attempt", attempt+1).Int("status", status).Msg("notification: delivered")
			return
		}
		log.Warn().Int("attempt", attempt+1).Int("status", status).Msg("notification: non-2xx response, retrying")
	}

	log.Error().Msg("notification: all retry attempts exhausted")
}

func (s *webhookNotifier) deliver(ctx context.Context, n domain.Notification, body []byte) (int, error) {
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, string(n.Event))
	req.Header.Set(HeaderTimestamp, ts)
	if s.secret != "" {
		req.Header.Set(HeaderSignature, s.sigSvc.Sign(s.secret, now, body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

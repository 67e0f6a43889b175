package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

var (
	_ ResultSink = (*WebhookSink)(nil)
	_ ResultSink = (*store.RedisResultMirror)(nil)
)

// ResultSink receives every finalized result once, after the sweep that
// produced it has released the manager.
type ResultSink interface {
	Name() string
	Publish(ctx context.Context, r domain.AuctionResult) error
}

const eventAuctionFinalized = "auction.finalized"

// auctionFinalizedPayload is the JSON payload for auction.finalized webhooks.
type auctionFinalizedPayload struct {
	Event     string               `json:"event"`
	Timestamp string               `json:"timestamp"`
	Data      auctionFinalizedData `json:"data"`
}

type auctionFinalizedData struct {
	Item          string      `json:"item"`
	CloseTime     int64       `json:"close_time"`
	Winner        string      `json:"winner"`
	WinningBidID  string      `json:"winning_bid_id,omitempty"`
	Status        string      `json:"status"`
	PricePaid     json.Number `json:"price_paid"`
	TotalBidCount int         `json:"total_bid_count"`
	HighestBid    json.Number `json:"highest_bid"`
	LowestBid     json.Number `json:"lowest_bid"`
	Digest        string      `json:"digest"`
}

// WebhookSink POSTs each finalized result to a fixed URL.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink creates a WebhookSink. The timeout bounds each delivery.
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the sink in logs and metrics.
func (s *WebhookSink) Name() string {
	return "webhook"
}

// Publish sends the result with the delivery headers. Any non-2xx response
// is reported as an error.
func (s *WebhookSink) Publish(ctx context.Context, r domain.AuctionResult) error {
	payload := auctionFinalizedPayload{
		Event:     eventAuctionFinalized,
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: auctionFinalizedData{
			Item:          r.Item,
			CloseTime:     r.CloseTime,
			Winner:        r.Winner,
			WinningBidID:  r.WinningBidID,
			Status:        string(r.Status),
			PricePaid:     json.Number(domain.FormatAmount(r.PricePaid)),
			TotalBidCount: r.TotalBidCount,
			HighestBid:    json.Number(domain.FormatAmount(r.HighestBid)),
			LowestBid:     json.Number(domain.FormatAmount(r.LowestBid)),
			Digest:        domain.ResultDigest(r),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Event-Type", eventAuctionFinalized)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

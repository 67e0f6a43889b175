package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/engine"
	"github.com/efreitasn/auctionhouse/internal/metrics"
)

// AuctionService validates incoming events, applies them to the engine and
// fans finalized results out to the configured sinks.
type AuctionService struct {
	manager     *engine.Manager
	metrics     *metrics.Metrics
	logger      *slog.Logger
	sinks       []ResultSink
	sinkTimeout time.Duration
}

// NewAuctionService creates a new AuctionService. A zero sinkTimeout leaves
// sink deliveries bounded only by the caller's context.
func NewAuctionService(
	manager *engine.Manager,
	m *metrics.Metrics,
	logger *slog.Logger,
	sinkTimeout time.Duration,
	sinks ...ResultSink,
) *AuctionService {
	return &AuctionService{
		manager:     manager,
		metrics:     m,
		logger:      logger,
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
	}
}

// ListItem validates and registers a listing.
func (s *AuctionService) ListItem(ev domain.ListItem) (domain.ListingOutcome, error) {
	if ev.Item == "" {
		return "", &domain.ValidationError{Message: "item is required"}
	}
	if ev.ReservePrice.IsNegative() {
		return "", &domain.ValidationError{Message: "reserve_price must be non-negative"}
	}
	if ev.CloseTime < 0 {
		return "", &domain.ValidationError{Message: "close_time must be non-negative"}
	}

	outcome := s.manager.CreateAuction(ev.Item, ev.ReservePrice, ev.CloseTime)
	s.metrics.ListingsTotal.WithLabelValues(string(outcome)).Inc()
	s.metrics.ActiveAuctions.Set(float64(s.manager.ActiveCount()))

	switch outcome {
	case domain.ListingReplaced:
		s.logger.Warn("active auction replaced by relisting",
			slog.String("item", ev.Item),
			slog.String("seller", ev.Seller),
			slog.Int64("close_time", ev.CloseTime),
		)
	case domain.ListingRejectedFinalized:
		s.logger.Debug("listing dropped, item already finalized",
			slog.String("item", ev.Item),
			slog.String("seller", ev.Seller),
		)
	default:
		s.logger.Debug("item listed",
			slog.String("item", ev.Item),
			slog.String("seller", ev.Seller),
			slog.String("reserve_price", ev.ReservePrice.String()),
			slog.Int64("close_time", ev.CloseTime),
		)
	}
	return outcome, nil
}

// PlaceBid validates a bid, assigns it an ID and submits it. Rejections by
// the auction are reported through the outcome, not as errors.
func (s *AuctionService) PlaceBid(ev domain.PlaceBid) (domain.Bid, domain.BidOutcome, error) {
	if ev.Item == "" {
		return domain.Bid{}, "", &domain.ValidationError{Message: "item is required"}
	}
	if ev.Bidder == "" {
		return domain.Bid{}, "", &domain.ValidationError{Message: "bidder is required"}
	}
	if !ev.Amount.IsPositive() {
		return domain.Bid{}, "", &domain.ValidationError{Message: "amount must be greater than zero"}
	}

	bid := domain.Bid{
		ID:          uuid.New().String(),
		Bidder:      ev.Bidder,
		Amount:      ev.Amount,
		SubmittedAt: ev.Timestamp,
	}
	outcome := s.manager.PlaceBid(ev.Item, bid)
	s.metrics.BidsTotal.WithLabelValues(string(outcome)).Inc()

	if !outcome.Accepted() {
		s.logger.Debug("bid rejected",
			slog.String("item", ev.Item),
			slog.String("bidder", ev.Bidder),
			slog.String("amount", ev.Amount.String()),
			slog.Int64("timestamp", ev.Timestamp),
			slog.String("outcome", string(outcome)),
		)
	}
	return bid, outcome, nil
}

// AdvanceTime runs a heartbeat sweep and delivers what it finalized. Sink
// failures are logged and counted; they never undo the sweep.
func (s *AuctionService) AdvanceTime(ctx context.Context, ev domain.AdvanceTime) []domain.AuctionResult {
	start := time.Now()
	results, err := s.manager.AdvanceTime(ev.Timestamp)
	s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	s.metrics.ActiveAuctions.Set(float64(s.manager.ActiveCount()))
	if err != nil {
		s.logger.Error("sweep could not archive every result",
			slog.Int64("timestamp", ev.Timestamp),
			slog.String("error", err.Error()),
		)
	}

	for _, r := range results {
		s.metrics.FinalizedTotal.WithLabelValues(string(r.Status)).Inc()
		s.logger.Info("auction finalized",
			slog.String("item", r.Item),
			slog.Int64("close_time", r.CloseTime),
			slog.String("status", string(r.Status)),
			slog.String("winner", r.Winner),
			slog.String("price_paid", r.PricePaid.String()),
			slog.Int("total_bid_count", r.TotalBidCount),
		)
		s.publish(ctx, r)
	}
	return results
}

// publish hands a result to every sink in turn.
func (s *AuctionService) publish(ctx context.Context, r domain.AuctionResult) {
	for _, sink := range s.sinks {
		sinkCtx, cancel := s.sinkContext(ctx)
		err := sink.Publish(sinkCtx, r)
		cancel()

		if err != nil {
			s.metrics.SinkFailuresTotal.WithLabelValues(sink.Name()).Inc()
			s.logger.Error("result delivery failed",
				slog.String("sink", sink.Name()),
				slog.String("item", r.Item),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *AuctionService) sinkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.sinkTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.sinkTimeout)
}

// Apply dispatches any event. Only AdvanceTime produces results.
func (s *AuctionService) Apply(ctx context.Context, ev domain.Event) ([]domain.AuctionResult, error) {
	switch e := ev.(type) {
	case domain.ListItem:
		_, err := s.ListItem(e)
		return nil, err
	case domain.PlaceBid:
		_, _, err := s.PlaceBid(e)
		return nil, err
	case domain.AdvanceTime:
		return s.AdvanceTime(ctx, e), nil
	default:
		return nil, fmt.Errorf("%w: unsupported event %T", domain.ErrMalformedEvent, ev)
	}
}

// GetAuction returns the state of an active auction.
func (s *AuctionService) GetAuction(item string) (engine.AuctionSnapshot, error) {
	snap, ok := s.manager.Snapshot(item)
	if !ok {
		return engine.AuctionSnapshot{}, domain.ErrAuctionNotFound
	}
	return snap, nil
}

// GetResult returns the archived result for an item.
func (s *AuctionService) GetResult(item string) (domain.AuctionResult, error) {
	r, ok := s.manager.Result(item)
	if !ok {
		return domain.AuctionResult{}, domain.ErrResultNotFound
	}
	return r, nil
}

// ListResults returns every archived result in (close time, item) order.
func (s *AuctionService) ListResults() []domain.AuctionResult {
	return s.manager.Results()
}

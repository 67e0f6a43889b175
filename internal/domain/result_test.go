package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func soldResult() AuctionResult {
	return AuctionResult{
		Item:          "toaster_1",
		CloseTime:     20,
		Winner:        "8",
		WinningBidID:  "bid-8",
		Status:        AuctionStatusSold,
		PricePaid:     decimal.RequireFromString("12.50"),
		TotalBidCount: 3,
		HighestBid:    decimal.RequireFromString("20.00"),
		LowestBid:     decimal.RequireFromString("7.50"),
	}
}

func TestUnsoldResult(t *testing.T) {
	r := UnsoldResult("tv_1", 100)

	if r.Item != "tv_1" || r.CloseTime != 100 {
		t.Errorf("UnsoldResult kept item=%q close=%d, want tv_1/100", r.Item, r.CloseTime)
	}
	if r.Sold() {
		t.Error("Sold() = true for an unsold result")
	}
	if r.Winner != NoWinner {
		t.Errorf("Winner = %q, want NoWinner", r.Winner)
	}
	if !r.PricePaid.IsZero() || !r.HighestBid.IsZero() || !r.LowestBid.IsZero() {
		t.Errorf("amounts = %s/%s/%s, want zero", r.PricePaid, r.HighestBid, r.LowestBid)
	}
	if r.TotalBidCount != 0 {
		t.Errorf("TotalBidCount = %d, want 0", r.TotalBidCount)
	}
}

func TestResultDigest_Stable(t *testing.T) {
	a := soldResult()
	b := soldResult()
	// Same value with a different scale must hash the same.
	b.PricePaid = decimal.RequireFromString("12.5")

	if ResultDigest(a) != ResultDigest(b) {
		t.Error("digest should not depend on decimal scale")
	}
	if len(ResultDigest(a)) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(ResultDigest(a)))
	}
}

func TestResultDigest_ChangesWithFields(t *testing.T) {
	base := ResultDigest(soldResult())

	mutations := map[string]func(*AuctionResult){
		"winner":    func(r *AuctionResult) { r.Winner = "9" },
		"price":     func(r *AuctionResult) { r.PricePaid = decimal.RequireFromString("12.51") },
		"count":     func(r *AuctionResult) { r.TotalBidCount = 4 },
		"status":    func(r *AuctionResult) { r.Status = AuctionStatusUnsold },
		"closeTime": func(r *AuctionResult) { r.CloseTime = 21 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			r := soldResult()
			mutate(&r)
			if ResultDigest(r) == base {
				t.Errorf("digest unchanged after mutating %s", name)
			}
		})
	}
}

func TestEvent_Kind(t *testing.T) {
	events := map[EventKind]Event{
		EventKindListItem:    ListItem{Item: "a"},
		EventKindPlaceBid:    PlaceBid{Item: "a"},
		EventKindAdvanceTime: AdvanceTime{Timestamp: 1},
	}
	for want, ev := range events {
		if got := ev.Kind(); got != want {
			t.Errorf("Kind() = %q, want %q", got, want)
		}
	}
}

func TestBidOutcome_Accepted(t *testing.T) {
	if !BidAccepted.Accepted() {
		t.Error("BidAccepted.Accepted() = false")
	}
	for _, o := range []BidOutcome{BidRejectedLate, BidRejectedNotImproving, BidRejectedClosed, BidRejectedUnknownItem} {
		if o.Accepted() {
			t.Errorf("%s.Accepted() = true", o)
		}
	}
}

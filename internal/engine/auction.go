package engine

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// Auction is the bidding state of one listed item. PlaceBid and Finalize
// are serialized by the auction's own lock.
type Auction struct {
	item         string
	reservePrice decimal.Decimal
	closeTime    int64

	mu     sync.Mutex
	book   *BidBook
	closed bool
	result domain.AuctionResult
}

// AuctionSnapshot is a read-only view of an auction.
type AuctionSnapshot struct {
	Item         string
	ReservePrice decimal.Decimal
	CloseTime    int64
	BidCount     int
	HighestBid   decimal.Decimal
	Closed       bool
}

// NewAuction opens an auction with no bids.
func NewAuction(item string, reservePrice decimal.Decimal, closeTime int64) *Auction {
	return &Auction{
		item:         item,
		reservePrice: reservePrice,
		closeTime:    closeTime,
		book:         NewBidBook(),
	}
}

// Item returns the auction's key.
func (a *Auction) Item() string { return a.item }

// ReservePrice returns the minimum price at which the item sells.
func (a *Auction) ReservePrice() decimal.Decimal { return a.reservePrice }

// CloseTime returns the last logical timestamp at which bids are accepted.
func (a *Auction) CloseTime() int64 { return a.closeTime }

// PlaceBid offers a bid. A bid submitted after the close time, a bid that
// does not beat the bidder's own standing bid, and any bid after Finalize
// are rejected without changing state.
func (a *Auction) PlaceBid(bid domain.Bid) domain.BidOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return domain.BidRejectedClosed
	}
	if bid.SubmittedAt > a.closeTime {
		return domain.BidRejectedLate
	}
	if prev, ok := a.book.Get(bid.Bidder); ok && prev.Amount.Cmp(bid.Amount) >= 0 {
		return domain.BidRejectedNotImproving
	}

	a.book.Insert(bid)
	return domain.BidAccepted
}

// Finalize closes the auction and computes its result. Only the first call
// settles; later calls return an UNSOLD result with no statistics, while the
// settled result stays available through Result.
func (a *Auction) Finalize() domain.AuctionResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return domain.UnsoldResult(a.item, a.closeTime)
	}
	a.closed = true
	a.result = a.settle()
	return a.result
}

// settle computes the second-price outcome. Caller holds a.mu.
func (a *Auction) settle() domain.AuctionResult {
	result := domain.UnsoldResult(a.item, a.closeTime)
	result.TotalBidCount = a.book.Len()

	best, ok := a.book.Best()
	if !ok {
		return result
	}
	lowest, _ := a.book.Lowest()
	result.HighestBid = best.Amount
	result.LowestBid = lowest.Amount

	if best.Amount.LessThan(a.reservePrice) {
		return result
	}

	result.Status = domain.AuctionStatusSold
	result.Winner = best.Bid.Bidder
	result.WinningBidID = best.Bid.ID
	result.PricePaid = a.reservePrice
	if next, ok := a.book.RunnerUp(); ok {
		result.PricePaid = next.Amount
	}
	return result
}

// Result returns the settled result once the auction has been finalized.
func (a *Auction) Result() (domain.AuctionResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.result, a.closed
}

// Snapshot returns the current state without modifying it.
func (a *Auction) Snapshot() AuctionSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := AuctionSnapshot{
		Item:         a.item,
		ReservePrice: a.reservePrice,
		CloseTime:    a.closeTime,
		BidCount:     a.book.Len(),
		HighestBid:   decimal.Zero,
		Closed:       a.closed,
	}
	if best, ok := a.book.Best(); ok {
		snap.HighestBid = best.Amount
	}
	return snap
}

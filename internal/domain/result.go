package domain

import "github.com/shopspring/decimal"

// AuctionStatus is the final state of a closed auction.
type AuctionStatus string

const (
	AuctionStatusSold   AuctionStatus = "SOLD"
	AuctionStatusUnsold AuctionStatus = "UNSOLD"
)

// NoWinner is the Winner of an auction that did not sell.
const NoWinner = ""

// AuctionResult is the outcome of a finalized auction. A result is produced
// exactly once per auction and never changes afterwards.
type AuctionResult struct {
	Item          string
	CloseTime     int64
	Winner        string
	WinningBidID  string
	Status        AuctionStatus
	PricePaid     decimal.Decimal
	TotalBidCount int
	HighestBid    decimal.Decimal
	LowestBid     decimal.Decimal
}

// UnsoldResult returns an UNSOLD result with no winner, zero price and no
// bid statistics.
func UnsoldResult(item string, closeTime int64) AuctionResult {
	return AuctionResult{
		Item:       item,
		CloseTime:  closeTime,
		Winner:     NoWinner,
		Status:     AuctionStatusUnsold,
		PricePaid:  decimal.Zero,
		HighestBid: decimal.Zero,
		LowestBid:  decimal.Zero,
	}
}

// Sold reports whether the auction produced a winner.
func (r AuctionResult) Sold() bool {
	return r.Status == AuctionStatusSold
}

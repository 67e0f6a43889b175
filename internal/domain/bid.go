package domain

import "github.com/shopspring/decimal"

// Bid is a single offer on a listed item. Bids are immutable values; the
// auction that accepts one owns it from then on.
type Bid struct {
	ID          string
	Bidder      string
	Amount      decimal.Decimal
	SubmittedAt int64 // logical timestamp supplied by the caller
}

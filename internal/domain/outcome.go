package domain

// BidOutcome records what an auction did with a submitted bid. Rejections
// are policy results, not errors.
type BidOutcome string

const (
	BidAccepted             BidOutcome = "accepted"
	BidRejectedLate         BidOutcome = "late"
	BidRejectedNotImproving BidOutcome = "not_improving"
	BidRejectedClosed       BidOutcome = "closed"
	BidRejectedUnknownItem  BidOutcome = "unknown_item"
)

// Accepted reports whether the bid entered the auction's book.
func (o BidOutcome) Accepted() bool {
	return o == BidAccepted
}

// ListingOutcome records what the manager did with a listing.
type ListingOutcome string

const (
	// ListingCreated opened a fresh auction.
	ListingCreated ListingOutcome = "listed"
	// ListingReplaced discarded an active auction for the same item,
	// together with its bids.
	ListingReplaced ListingOutcome = "relisted"
	// ListingRejectedFinalized was dropped because the item already has an
	// archived result.
	ListingRejectedFinalized ListingOutcome = "finalized"
)

package domain

import (
	"crypto/sha256"
	"fmt"
)

// ResultDigest computes a stable fingerprint of a result so that a published
// outcome can be checked against the archive.
//
// Formula: SHA256(item|close_time|winner|status|price_paid|total_bid_count|highest_bid|lowest_bid)
//
// Amounts use their exact decimal representation, so 10 and 10.00 hash alike.
func ResultDigest(r AuctionResult) string {
	data := fmt.Sprintf("%s|%d|%s|%s|%s|%d|%s|%s",
		r.Item,
		r.CloseTime,
		r.Winner,
		r.Status,
		r.PricePaid.String(),
		r.TotalBidCount,
		r.HighestBid.String(),
		r.LowestBid.String(),
	)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

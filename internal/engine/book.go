package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// BookEntry is a single accepted bid resting in an auction's book.
type BookEntry struct {
	Amount decimal.Decimal
	Seq    uint64 // insertion order within the book
	Bid    domain.Bid
}

// entryLess orders entries by amount descending, then insertion sequence
// ascending. Min() returns the leading bid (highest amount, earliest
// insertion).
func entryLess(a, b BookEntry) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c > 0
	}
	return a.Seq < b.Seq
}

// BidBook holds at most one live bid per bidder, ordered for settlement.
// It is not safe for concurrent use; the owning Auction serializes access.
type BidBook struct {
	tree     *btree.BTreeG[BookEntry]
	byBidder map[string]BookEntry // bidder → entry
	nextSeq  uint64
}

// NewBidBook creates an empty book.
func NewBidBook() *BidBook {
	const degree = 32
	return &BidBook{
		tree:     btree.NewG[BookEntry](degree, entryLess),
		byBidder: make(map[string]BookEntry),
	}
}

// Insert adds a bid, replacing any entry the same bidder already holds.
// The replacement takes a fresh sequence number.
func (b *BidBook) Insert(bid domain.Bid) BookEntry {
	if prev, ok := b.byBidder[bid.Bidder]; ok {
		b.tree.Delete(prev)
	}
	b.nextSeq++
	entry := BookEntry{
		Amount: bid.Amount,
		Seq:    b.nextSeq,
		Bid:    bid,
	}
	b.tree.ReplaceOrInsert(entry)
	b.byBidder[bid.Bidder] = entry
	return entry
}

// Get returns the live entry for a bidder.
func (b *BidBook) Get(bidder string) (BookEntry, bool) {
	entry, ok := b.byBidder[bidder]
	return entry, ok
}

// Best returns the leading entry.
func (b *BidBook) Best() (BookEntry, bool) {
	return b.tree.Min()
}

// RunnerUp returns the entry directly behind the leader.
func (b *BidBook) RunnerUp() (BookEntry, bool) {
	var (
		found  BookEntry
		ok     bool
		passed bool
	)
	b.tree.Ascend(func(entry BookEntry) bool {
		if !passed {
			passed = true
			return true
		}
		found, ok = entry, true
		return false
	})
	return found, ok
}

// Lowest returns the entry with the smallest amount.
func (b *BidBook) Lowest() (BookEntry, bool) {
	return b.tree.Max()
}

// Len returns the number of live bids, one per bidder.
func (b *BidBook) Len() int {
	return b.tree.Len()
}

// Walk iterates entries in settlement order. The callback returns true to
// continue, false to stop.
func (b *BidBook) Walk(fn func(BookEntry) bool) {
	b.tree.Ascend(fn)
}

package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// Manager coordinates every active auction and the archive of finalized
// results. Listings and bids run concurrently with each other; a heartbeat
// sweep excludes both for its whole duration, so no auction changes while
// the sweep decides what is due.
type Manager struct {
	sweepMu sync.RWMutex
	active  *Registry
	results *store.ResultStore
}

// NewManager creates a Manager that archives into results.
func NewManager(results *store.ResultStore) *Manager {
	return &Manager{
		active:  NewRegistry(),
		results: results,
	}
}

// CreateAuction lists an item. An active auction for the same item is
// replaced along with its bids. An item that already has an archived result
// stays closed and the listing is dropped, deliberately departing from
// last-listing-wins so the archive never changes.
func (m *Manager) CreateAuction(item string, reservePrice decimal.Decimal, closeTime int64) domain.ListingOutcome {
	m.sweepMu.RLock()
	defer m.sweepMu.RUnlock()

	if m.results.Exists(item) {
		return domain.ListingRejectedFinalized
	}
	if _, replaced := m.active.Put(NewAuction(item, reservePrice, closeTime)); replaced {
		return domain.ListingReplaced
	}
	return domain.ListingCreated
}

// PlaceBid routes a bid to the item's active auction. Bids for items that
// are not listed, or were already finalized, are dropped.
func (m *Manager) PlaceBid(item string, bid domain.Bid) domain.BidOutcome {
	m.sweepMu.RLock()
	defer m.sweepMu.RUnlock()

	a, ok := m.active.Get(item)
	if !ok {
		return domain.BidRejectedUnknownItem
	}
	return a.PlaceBid(bid)
}

// AdvanceTime finalizes every active auction whose close time is at or
// before ts, archives each result and evicts the auction. The results of
// this sweep are returned in (close time, item) order; a repeated call
// with the same ts returns nothing. A result the archive refuses is still
// returned, and the refusal is reported in the joined error.
func (m *Manager) AdvanceTime(ts int64) ([]domain.AuctionResult, error) {
	m.sweepMu.Lock()
	defer m.sweepMu.Unlock()

	due := m.active.Due(ts)
	if len(due) == 0 {
		return nil, nil
	}

	var errs []error
	finalized := make([]domain.AuctionResult, 0, len(due))
	for _, a := range due {
		result := a.Finalize()
		m.active.Remove(a)
		if err := m.results.Put(result); err != nil {
			errs = append(errs, fmt.Errorf("archive result for %s: %w", result.Item, err))
		}
		finalized = append(finalized, result)
	}
	return finalized, errors.Join(errs...)
}

// Result returns the archived result for an item.
func (m *Manager) Result(item string) (domain.AuctionResult, bool) {
	r, err := m.results.Get(item)
	if err != nil {
		return domain.AuctionResult{}, false
	}
	return r, true
}

// Results returns every archived result in (close time, item) order.
func (m *Manager) Results() []domain.AuctionResult {
	return m.results.List()
}

// Snapshot returns a read-only view of an active auction.
func (m *Manager) Snapshot(item string) (AuctionSnapshot, bool) {
	a, ok := m.active.Get(item)
	if !ok {
		return AuctionSnapshot{}, false
	}
	return a.Snapshot(), true
}

// ActiveCount returns the number of auctions not yet finalized.
func (m *Manager) ActiveCount() int {
	return m.active.Len()
}

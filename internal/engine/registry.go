package engine

import (
	"sync"

	"github.com/google/btree"
)

// scheduleEntry places an auction on the close-time schedule. Seq tells a
// listing apart from a later relisting of the same item.
type scheduleEntry struct {
	CloseTime int64
	Item      string
	Seq       uint64
}

// scheduleLess orders the schedule by close time, then item, then listing
// sequence. Min() is the next auction due.
func scheduleLess(a, b scheduleEntry) bool {
	if a.CloseTime != b.CloseTime {
		return a.CloseTime < b.CloseTime
	}
	if a.Item != b.Item {
		return a.Item < b.Item
	}
	return a.Seq < b.Seq
}

type registered struct {
	auction *Auction
	entry   scheduleEntry
}

// Registry is a thread-safe map of item → active Auction, with a secondary
// index sorted by close time so due auctions are found without a full scan.
type Registry struct {
	mu       sync.RWMutex
	auctions map[string]registered
	schedule *btree.BTreeG[scheduleEntry]
	nextSeq  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	const degree = 32
	return &Registry{
		auctions: make(map[string]registered),
		schedule: btree.NewG[scheduleEntry](degree, scheduleLess),
	}
}

// Put registers an auction under its item, replacing whatever was there.
// The replaced auction, if any, is returned.
func (r *Registry) Put(a *Auction) (*Auction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced := r.auctions[a.Item()]
	if replaced {
		r.schedule.Delete(prev.entry)
	}

	r.nextSeq++
	entry := scheduleEntry{
		CloseTime: a.CloseTime(),
		Item:      a.Item(),
		Seq:       r.nextSeq,
	}
	r.schedule.ReplaceOrInsert(entry)
	r.auctions[a.Item()] = registered{auction: a, entry: entry}

	if replaced {
		return prev.auction, true
	}
	return nil, false
}

// Get returns the active auction for an item.
func (r *Registry) Get(item string) (*Auction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.auctions[item]
	if !ok {
		return nil, false
	}
	return reg.auction, true
}

// Remove evicts a only if it is still the auction registered under its item.
// A relisting that happened in between is left in place.
func (r *Registry) Remove(a *Auction) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.auctions[a.Item()]
	if !ok || reg.auction != a {
		return false
	}
	delete(r.auctions, a.Item())
	r.schedule.Delete(reg.entry)
	return true
}

// Due returns every registered auction whose close time is at or before
// ts, in (close time, item) order.
func (r *Registry) Due(ts int64) []*Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []*Auction
	r.schedule.Ascend(func(entry scheduleEntry) bool {
		if entry.CloseTime > ts {
			return false
		}
		due = append(due, r.auctions[entry.Item].auction)
		return true
	})
	return due
}

// Len returns the number of active auctions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.auctions)
}

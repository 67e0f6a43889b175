package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// ResultStore is a thread-safe in-memory archive of finalized auction
// results, keyed by item. Each key is written at most once.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.AuctionResult
}

// NewResultStore creates an empty ResultStore.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.AuctionResult),
	}
}

// Put archives a result. It returns domain.ErrResultExists if the item
// already has one; the archived value is left untouched.
func (s *ResultStore) Put(r domain.AuctionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[r.Item]; exists {
		return domain.ErrResultExists
	}
	s.results[r.Item] = r
	return nil
}

// Get retrieves the result for an item. It returns
// domain.ErrResultNotFound if the item was never finalized.
func (s *ResultStore) Get(item string) (domain.AuctionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[item]
	if !ok {
		return domain.AuctionResult{}, domain.ErrResultNotFound
	}
	return r, nil
}

// Exists returns true if the item has an archived result.
func (s *ResultStore) Exists(item string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.results[item]
	return ok
}

// Len returns the number of archived results.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.results)
}

// List returns every archived result ordered by close time, then item.
func (s *ResultStore) List() []domain.AuctionResult {
	s.mu.RLock()
	result := make([]domain.AuctionResult, 0, len(s.results))
	for _, r := range s.results {
		result = append(result, r)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CloseTime != result[j].CloseTime {
			return result[i].CloseTime < result[j].CloseTime
		}
		return result[i].Item < result[j].Item
	})
	return result
}

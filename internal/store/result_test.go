package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

func newTestResult(item string, closeTime int64) domain.AuctionResult {
	return domain.AuctionResult{
		Item:          item,
		CloseTime:     closeTime,
		Winner:        "2",
		Status:        domain.AuctionStatusSold,
		PricePaid:     decimal.NewFromInt(10),
		TotalBidCount: 1,
		HighestBid:    decimal.NewFromInt(15),
		LowestBid:     decimal.NewFromInt(15),
	}
}

func TestResultStore_PutAndGet(t *testing.T) {
	s := NewResultStore()
	r := newTestResult("item1", 100)

	if err := s.Put(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get("item1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Winner != "2" || !got.PricePaid.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected result %+v", got)
	}
	if !s.Exists("item1") {
		t.Error("expected item1 to exist")
	}
}

func TestResultStore_Get_NotFound(t *testing.T) {
	s := NewResultStore()

	_, err := s.Get("missing")
	if !errors.Is(err, domain.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
	if s.Exists("missing") {
		t.Error("expected missing to not exist")
	}
}

func TestResultStore_Put_WriteOnce(t *testing.T) {
	s := NewResultStore()
	first := newTestResult("item1", 100)
	if err := s.Put(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := domain.UnsoldResult("item1", 100)
	if err := s.Put(second); !errors.Is(err, domain.ErrResultExists) {
		t.Fatalf("expected ErrResultExists, got %v", err)
	}

	got, _ := s.Get("item1")
	if got.Status != domain.AuctionStatusSold {
		t.Errorf("expected original result kept, got %s", got.Status)
	}
}

func TestResultStore_List_Ordered(t *testing.T) {
	s := NewResultStore()
	s.Put(newTestResult("c", 20))
	s.Put(newTestResult("b", 10))
	s.Put(newTestResult("a", 20))

	list := s.List()
	var got []string
	for _, r := range list {
		got = append(got, fmt.Sprintf("%d:%s", r.CloseTime, r.Item))
	}
	want := "[10:b 20:a 20:c]"
	if fmt.Sprint(got) != want {
		t.Errorf("expected %s, got %v", want, got)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 results, got %d", s.Len())
	}
}

func TestResultStore_List_Empty(t *testing.T) {
	s := NewResultStore()

	list := s.List()
	if list == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(list) != 0 {
		t.Fatalf("expected 0 results, got %d", len(list))
	}
}

func TestResultStore_ConcurrentPutSameItem(t *testing.T) {
	s := NewResultStore()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Put(newTestResult("item1", 100)); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Errorf("expected exactly one successful put, got %d", success)
	}
}

package feed

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.Event
	}{
		{
			name: "sell",
			line: "1|1|SELL|item1|10.00|100",
			want: domain.ListItem{Timestamp: 1, Seller: "1", Item: "item1", ReservePrice: decimal.RequireFromString("10.00"), CloseTime: 100},
		},
		{
			name: "bid",
			line: "2|2|BID|item1|15.00",
			want: domain.PlaceBid{Timestamp: 2, Bidder: "2", Item: "item1", Amount: decimal.RequireFromString("15.00")},
		},
		{
			name: "heartbeat",
			line: "100",
			want: domain.AdvanceTime{Timestamp: 100},
		},
		{
			name: "surrounding whitespace",
			line: "  3 | alice | BID | toaster_1 | 7.5 \n",
			want: domain.PlaceBid{Timestamp: 3, Bidder: "alice", Item: "toaster_1", Amount: decimal.RequireFromString("7.5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind() != tt.want.Kind() {
				t.Fatalf("expected kind %s, got %s", tt.want.Kind(), got.Kind())
			}
			switch want := tt.want.(type) {
			case domain.ListItem:
				g := got.(domain.ListItem)
				if g.Timestamp != want.Timestamp || g.Seller != want.Seller || g.Item != want.Item ||
					!g.ReservePrice.Equal(want.ReservePrice) || g.CloseTime != want.CloseTime {
					t.Errorf("expected %+v, got %+v", want, g)
				}
			case domain.PlaceBid:
				g := got.(domain.PlaceBid)
				if g.Timestamp != want.Timestamp || g.Bidder != want.Bidder || g.Item != want.Item ||
					!g.Amount.Equal(want.Amount) {
					t.Errorf("expected %+v, got %+v", want, g)
				}
			case domain.AdvanceTime:
				if got.(domain.AdvanceTime) != want {
					t.Errorf("expected %+v, got %+v", want, got)
				}
			}
		})
	}
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"non-numeric heartbeat", "abc"},
		{"two fields", "1|2"},
		{"unknown action", "1|1|BUY|item1|10"},
		{"sell missing close", "1|1|SELL|item1|10.00"},
		{"sell extra field", "1|1|SELL|item1|10.00|100|x"},
		{"sell bad reserve", "1|1|SELL|item1|ten|100"},
		{"sell bad close", "1|1|SELL|item1|10.00|soon"},
		{"bid missing amount", "2|2|BID|item1"},
		{"bid bad amount", "2|2|BID|item1|lots"},
		{"bad timestamp", "x|2|BID|item1|10"},
		{"lowercase action", "2|2|bid|item1|10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			if !errors.Is(err, domain.ErrMalformedEvent) {
				t.Fatalf("expected ErrMalformedEvent, got %v", err)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		r    domain.AuctionResult
		want string
	}{
		{
			name: "sold",
			r: domain.AuctionResult{
				Item:          "toaster_1",
				CloseTime:     20,
				Winner:        "8",
				Status:        domain.AuctionStatusSold,
				PricePaid:     decimal.RequireFromString("12.5"),
				TotalBidCount: 3,
				HighestBid:    decimal.RequireFromString("20"),
				LowestBid:     decimal.RequireFromString("7.5"),
			},
			want: "20|toaster_1|8|SOLD|12.50|3|20.00|7.50",
		},
		{
			name: "unsold",
			r:    domain.UnsoldResult("tv_1", 20),
			want: "20|tv_1||UNSOLD|0.00|0|0.00|0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.r); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

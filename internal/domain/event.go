package domain

import "github.com/shopspring/decimal"

// EventKind names the three inputs the auction market understands.
type EventKind string

const (
	EventKindListItem    EventKind = "list_item"
	EventKindPlaceBid    EventKind = "place_bid"
	EventKindAdvanceTime EventKind = "advance_time"
)

// Event is one of ListItem, PlaceBid or AdvanceTime.
type Event interface {
	Kind() EventKind
}

// ListItem opens an auction for Item.
type ListItem struct {
	Timestamp    int64
	Seller       string
	Item         string
	ReservePrice decimal.Decimal
	CloseTime    int64
}

// PlaceBid submits Bidder's offer on Item at logical time Timestamp.
type PlaceBid struct {
	Timestamp int64
	Bidder    string
	Item      string
	Amount    decimal.Decimal
}

// AdvanceTime is a heartbeat: it moves logical time forward to Timestamp.
type AdvanceTime struct {
	Timestamp int64
}

func (ListItem) Kind() EventKind    { return EventKindListItem }
func (PlaceBid) Kind() EventKind    { return EventKindPlaceBid }
func (AdvanceTime) Kind() EventKind { return EventKindAdvanceTime }

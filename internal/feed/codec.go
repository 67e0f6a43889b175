// Package feed reads and writes the pipe-delimited line format used for
// batch replays:
//
//	ts|seller|SELL|item|reserve|close
//	ts|bidder|BID|item|amount
//	ts
//
// Finalized results are written one per line as
// close|item|winner|status|price|count|high|low.
package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

const (
	actionSell = "SELL"
	actionBid  = "BID"

	sellFields = 6
	bidFields  = 5
)

// ParseLine decodes one non-blank line into an event. Malformed lines
// return an error wrapping domain.ErrMalformedEvent.
func ParseLine(line string) (domain.Event, error) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, malformed("invalid timestamp %q", parts[0])
	}

	if len(parts) == 1 {
		return domain.AdvanceTime{Timestamp: ts}, nil
	}
	if len(parts) < 3 {
		return nil, malformed("expected an action after the user, got %d fields", len(parts))
	}

	switch parts[2] {
	case actionSell:
		return parseSell(ts, parts)
	case actionBid:
		return parseBid(ts, parts)
	default:
		return nil, malformed("unknown action %q", parts[2])
	}
}

func parseSell(ts int64, parts []string) (domain.Event, error) {
	if len(parts) != sellFields {
		return nil, malformed("SELL expects %d fields, got %d", sellFields, len(parts))
	}
	reserve, err := domain.ParseAmount(parts[4])
	if err != nil {
		return nil, malformed("reserve price: %v", err)
	}
	closeTime, err := strconv.ParseInt(parts[5], 10, 64)
	if err != nil {
		return nil, malformed("invalid close time %q", parts[5])
	}
	return domain.ListItem{
		Timestamp:    ts,
		Seller:       parts[1],
		Item:         parts[3],
		ReservePrice: reserve,
		CloseTime:    closeTime,
	}, nil
}

func parseBid(ts int64, parts []string) (domain.Event, error) {
	if len(parts) != bidFields {
		return nil, malformed("BID expects %d fields, got %d", bidFields, len(parts))
	}
	amount, err := domain.ParseAmount(parts[4])
	if err != nil {
		return nil, malformed("bid amount: %v", err)
	}
	return domain.PlaceBid{
		Timestamp: ts,
		Bidder:    parts[1],
		Item:      parts[3],
		Amount:    amount,
	}, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedEvent, fmt.Sprintf(format, args...))
}

// FormatResult renders a result as one output line. Amounts carry two
// decimal places.
func FormatResult(r domain.AuctionResult) string {
	return strings.Join([]string{
		strconv.FormatInt(r.CloseTime, 10),
		r.Item,
		r.Winner,
		string(r.Status),
		domain.FormatAmount(r.PricePaid),
		strconv.Itoa(r.TotalBidCount),
		domain.FormatAmount(r.HighestBid),
		domain.FormatAmount(r.LowestBid),
	}, "|")
}

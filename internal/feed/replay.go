package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 64 * 1024

// Applier consumes decoded events.
type Applier interface {
	Apply(ctx context.Context, ev domain.Event) ([]domain.AuctionResult, error)
}

// Stats summarizes a replay.
type Stats struct {
	Lines   int // lines read, including blanks and comments
	Events  int // events applied
	Results int // result lines written
}

// Replay reads events from r one line at a time, applies them in order and
// writes every finalized result to w. Blank lines and lines starting with
// '#' are skipped. The first malformed or rejected line stops the replay
// with an error naming its line number.
func Replay(ctx context.Context, r io.Reader, applier Applier, w io.Writer) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := ParseLine(line)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		results, err := applier.Apply(ctx, ev)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		stats.Events++

		for _, res := range results {
			if _, err := fmt.Fprintln(w, FormatResult(res)); err != nil {
				return stats, fmt.Errorf("write result: %w", err)
			}
			stats.Results++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read feed: %w", err)
	}
	return stats, nil
}

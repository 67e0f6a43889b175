package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// resultKeyPrefix namespaces mirrored results: auction:result:{item}.
const resultKeyPrefix = "auction:result:"

// resultRecord is the JSON shape of a mirrored result.
type resultRecord struct {
	Item          string          `json:"item"`
	CloseTime     int64           `json:"close_time"`
	Winner        string          `json:"winner"`
	WinningBidID  string          `json:"winning_bid_id,omitempty"`
	Status        string          `json:"status"`
	PricePaid     decimal.Decimal `json:"price_paid"`
	TotalBidCount int             `json:"total_bid_count"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	LowestBid     decimal.Decimal `json:"lowest_bid"`
	Digest        string          `json:"digest"`
}

func newResultRecord(r domain.AuctionResult) resultRecord {
	return resultRecord{
		Item:          r.Item,
		CloseTime:     r.CloseTime,
		Winner:        r.Winner,
		WinningBidID:  r.WinningBidID,
		Status:        string(r.Status),
		PricePaid:     r.PricePaid,
		TotalBidCount: r.TotalBidCount,
		HighestBid:    r.HighestBid,
		LowestBid:     r.LowestBid,
		Digest:        domain.ResultDigest(r),
	}
}

func (rec resultRecord) toDomain() domain.AuctionResult {
	return domain.AuctionResult{
		Item:          rec.Item,
		CloseTime:     rec.CloseTime,
		Winner:        rec.Winner,
		WinningBidID:  rec.WinningBidID,
		Status:        domain.AuctionStatus(rec.Status),
		PricePaid:     rec.PricePaid,
		TotalBidCount: rec.TotalBidCount,
		HighestBid:    rec.HighestBid,
		LowestBid:     rec.LowestBid,
	}
}

// RedisOptions configures the connection used by RedisResultMirror.
type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	Channel     string
	DialTimeout time.Duration
}

// RedisResultMirror copies finalized results into Redis and announces them
// on a pub/sub channel. Keys are written once, matching the in-memory
// archive.
type RedisResultMirror struct {
	client  *redis.Client
	channel string
}

// NewRedisResultMirror connects to Redis and verifies the connection.
func NewRedisResultMirror(opts RedisOptions) (*RedisResultMirror, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewRedisResultMirrorFromClient(client, opts.Channel), nil
}

// NewRedisResultMirrorFromClient wraps an existing client.
func NewRedisResultMirrorFromClient(client *redis.Client, channel string) *RedisResultMirror {
	return &RedisResultMirror{
		client:  client,
		channel: channel,
	}
}

// Name identifies the mirror in logs and metrics.
func (m *RedisResultMirror) Name() string {
	return "redis"
}

// Publish stores the result under auction:result:{item} and, when a channel
// is configured, publishes it there. A key that already exists is not
// overwritten and domain.ErrResultExists is returned.
func (m *RedisResultMirror) Publish(ctx context.Context, r domain.AuctionResult) error {
	body, err := json.Marshal(newResultRecord(r))
	if err != nil {
		return fmt.Errorf("encode result %s: %w", r.Item, err)
	}

	created, err := m.client.SetNX(ctx, resultKeyPrefix+r.Item, body, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	if !created {
		return domain.ErrResultExists
	}

	if m.channel == "" {
		return nil
	}
	if err := m.client.Publish(ctx, m.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Lookup reads a mirrored result back. It returns domain.ErrResultNotFound
// if the key does not exist.
func (m *RedisResultMirror) Lookup(ctx context.Context, item string) (domain.AuctionResult, error) {
	body, err := m.client.Get(ctx, resultKeyPrefix+item).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.AuctionResult{}, domain.ErrResultNotFound
		}
		return domain.AuctionResult{}, fmt.Errorf("redis get failed: %w", err)
	}

	var rec resultRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return domain.AuctionResult{}, fmt.Errorf("decode result %s: %w", item, err)
	}
	return rec.toDomain(), nil
}

// Close releases the underlying connection pool.
func (m *RedisResultMirror) Close() error {
	return m.client.Close()
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// historyTTL matches the tracker's retention window, so keys for delisted
// markets expire on their own.
const historyTTL = 7 * 24 * time.Hour

// HistoryStore implements domain.HistoryStore using one JSON-serialized
// snapshot list per market.
//
// Key schema:
//
//	price_history:{marketID} - JSON array of snapshots, 7-day TTL
type HistoryStore struct {
	rdb *redis.Client
}

var _ domain.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore creates a HistoryStore backed by the given Client.
func NewHistoryStore(c *Client) *HistoryStore {
	return &HistoryStore{rdb: c.Underlying()}
}

func historyKey(marketID string) string { return "price_history:" + marketID }

// List returns a market's snapshots in insertion order. It returns
// domain.ErrNoHistory when the key does not exist.
func (s *HistoryStore) List(ctx context.Context, marketID string) ([]domain.PriceSnapshot, error) {
	data, err := s.rdb.Get(ctx, historyKey(marketID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoHistory
		}
		return nil, fmt.Errorf("redis: get history %s: %w", marketID, err)
	}

	var snaps []domain.PriceSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, fmt.Errorf("redis: unmarshal history %s: %w", marketID, err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNoHistory
	}
	return snaps, nil
}

// Replace swaps a market's snapshot list wholesale and refreshes its TTL.
// An empty list deletes the key.
func (s *HistoryStore) Replace(ctx context.Context, marketID string, snaps []domain.PriceSnapshot) error {
	key := historyKey(marketID)

	if len(snaps) == 0 {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis: delete history %s: %w", marketID, err)
		}
		return nil
	}

	data, err := json.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("redis: marshal history %s: %w", marketID, err)
	}
	if err := s.rdb.Set(ctx, key, data, historyTTL).Err(); err != nil {
		return fmt.Errorf("redis: set history %s: %w", marketID, err)
	}
	return nil
}

// Append adds one snapshot to the end of a market's list, creating it when
// missing. Pruning is the tracker's job; Append only refreshes the TTL.
func (s *HistoryStore) Append(ctx context.Context, snap domain.PriceSnapshot) error {
	snaps, err := s.List(ctx, snap.MarketID)
	if err != nil && !errors.Is(err, domain.ErrNoHistory) {
		return err
	}
	return s.Replace(ctx, snap.MarketID, append(snaps, snap))
}

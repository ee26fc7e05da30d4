package history

import (
	"context"
	"sync"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// MemStore is an in-memory HistoryStore for single-process deployments and
// tests. The Redis-backed store is the production implementation.
type MemStore struct {
	mu    sync.RWMutex
	snaps map[string][]domain.PriceSnapshot
}

var _ domain.HistoryStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{snaps: make(map[string][]domain.PriceSnapshot)}
}

// List returns the snapshots recorded for a market in insertion order.
func (s *MemStore) List(_ context.Context, marketID string) ([]domain.PriceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps, ok := s.snaps[marketID]
	if !ok || len(snaps) == 0 {
		return nil, domain.ErrNoHistory
	}
	out := make([]domain.PriceSnapshot, len(snaps))
	copy(out, snaps)
	return out, nil
}

// Replace swaps a market's snapshot list wholesale. An empty list deletes
// the market's entry.
func (s *MemStore) Replace(_ context.Context, marketID string, snaps []domain.PriceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(snaps) == 0 {
		delete(s.snaps, marketID)
		return nil
	}
	stored := make([]domain.PriceSnapshot, len(snaps))
	copy(stored, snaps)
	s.snaps[marketID] = stored
	return nil
}

// Append adds one snapshot without pruning.
func (s *MemStore) Append(_ context.Context, snap domain.PriceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.MarketID] = append(s.snaps[snap.MarketID], snap)
	return nil
}

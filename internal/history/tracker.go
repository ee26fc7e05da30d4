// Package history records rolling price snapshots and detects market movers.
// Snapshots live in a domain.HistoryStore with a seven-day retention window;
// mover results are cached for five minutes since callers poll far more often
// than prices move.
package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantpulse/marketsignal/internal/cache/memory"
	"github.com/quantpulse/marketsignal/internal/domain"
)

const (
	// RetentionWindow is how long snapshots are kept.
	RetentionWindow = 7 * 24 * time.Hour
	// MoversCacheTTL is how long a computed movers list is reused.
	MoversCacheTTL = 5 * time.Minute
	// DefaultMinChange is the 1-hour price change that qualifies a mover.
	DefaultMinChange = 0.05
	// looseMinChange is the floor used for the cached detection pass. It is
	// lower than any caller-facing threshold so one pass serves every filter.
	looseMinChange = 0.01
	// bulkConcurrency caps parallel store writes in one batch.
	bulkConcurrency = 50
)

const moversCacheKey = "movers"

// Timeframe labels accepted by mover detection.
type Timeframe string

const (
	Timeframe1h  Timeframe = "1h"
	Timeframe6h  Timeframe = "6h"
	Timeframe24h Timeframe = "24h"
)

// ParseLookback converts a timeframe label into a duration.
func ParseLookback(label string) (time.Duration, error) {
	switch Timeframe(label) {
	case Timeframe1h, "":
		return time.Hour, nil
	case Timeframe6h:
		return 6 * time.Hour, nil
	case Timeframe24h:
		return 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("history: %w: unknown timeframe %q", domain.ErrInvalidInput, label)
}

// MoverOptions tunes Movers.
type MoverOptions struct {
	MinChange    float64
	Timeframe    Timeframe
	Limit        int
	ForceRefresh bool
}

// Tracker owns snapshot recording, price-change queries and mover detection.
type Tracker struct {
	store  domain.HistoryStore
	clock  domain.Clock
	movers *memory.Cache[[]domain.MarketMover]
}

func NewTracker(store domain.HistoryStore, clock domain.Clock) *Tracker {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Tracker{
		store:  store,
		clock:  clock,
		movers: memory.New[[]domain.MarketMover](MoversCacheTTL, clock),
	}
}

// Record appends one snapshot for a market and prunes anything outside the
// retention window.
func (t *Tracker) Record(ctx context.Context, m domain.Market) error {
	now := t.clock.Now()
	snaps, err := t.store.List(ctx, m.ID)
	if err != nil && !errors.Is(err, domain.ErrNoHistory) {
		return fmt.Errorf("history: record %s: %w", m.ID, err)
	}

	snaps = append(snaps, domain.PriceSnapshot{
		MarketID:  m.ID,
		Platform:  m.Platform,
		YesPrice:  m.YesPrice,
		Timestamp: now,
	})
	snaps = prune(snaps, now.Add(-RetentionWindow))

	if err := t.store.Replace(ctx, m.ID, snaps); err != nil {
		return fmt.Errorf("history: record %s: %w", m.ID, err)
	}
	return nil
}

// RecordBulk snapshots every market in the batch with bounded concurrency.
func (t *Tracker) RecordBulk(ctx context.Context, markets []domain.Market) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, m := range markets {
		g.Go(func() error {
			return t.Record(ctx, m)
		})
	}
	return g.Wait()
}

// PriceChange returns the yes-price change over roughly the given lookback.
// It compares the latest snapshot with the one closest to now minus the
// lookback; the result is ErrUnavailable when that snapshot is further than
// twice the lookback away, and ErrNoHistory when nothing is recorded.
func (t *Tracker) PriceChange(ctx context.Context, marketID string, lookback time.Duration) (float64, error) {
	snaps, err := t.store.List(ctx, marketID)
	if err != nil {
		return 0, err
	}
	if len(snaps) == 0 {
		return 0, domain.ErrNoHistory
	}

	current := snaps[len(snaps)-1]
	target := t.clock.Now().Add(-lookback)

	closest := snaps[0]
	closestDiff := absDuration(closest.Timestamp.Sub(target))
	for _, s := range snaps[1:] {
		if d := absDuration(s.Timestamp.Sub(target)); d < closestDiff {
			closestDiff = d
			closest = s
		}
	}

	if closestDiff > 2*lookback {
		return 0, domain.ErrUnavailable
	}
	return current.YesPrice - closest.YesPrice, nil
}

// DetectMovers scans the markets for significant recent price changes. The
// timeframe selects the lookback label reported to callers, but filtering
// keys on the 1-hour change: short-horizon moves are what the signal layer
// acts on.
func (t *Tracker) DetectMovers(ctx context.Context, markets []domain.Market, minChange float64, _ Timeframe) ([]domain.MarketMover, error) {
	if minChange <= 0 {
		minChange = DefaultMinChange
	}

	now := t.clock.Now()

	var mu sync.Mutex
	var movers []domain.MarketMover

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, m := range markets {
		g.Go(func() error {
			change1h, err := t.PriceChange(gctx, m.ID, time.Hour)
			if err != nil {
				if errors.Is(err, domain.ErrNoHistory) || errors.Is(err, domain.ErrUnavailable) {
					return nil
				}
				return err
			}
			if math.Abs(change1h) < minChange {
				return nil
			}

			change24h, err := t.PriceChange(gctx, m.ID, 24*time.Hour)
			if err != nil {
				change24h = 0
			}

			prev, err := t.previousPrice(gctx, m)
			if err != nil {
				return err
			}

			direction := domain.MoveUp
			if change1h < 0 {
				direction = domain.MoveDown
			}

			mu.Lock()
			movers = append(movers, domain.MarketMover{
				Market:         m,
				PriceChange1h:  change1h,
				PriceChange24h: change24h,
				PreviousPrice:  prev,
				CurrentPrice:   m.YesPrice,
				Direction:      direction,
				Timestamp:      now,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("history: detect movers: %w", err)
	}

	sort.SliceStable(movers, func(i, j int) bool {
		return math.Abs(movers[i].PriceChange1h) > math.Abs(movers[j].PriceChange1h)
	})
	return movers, nil
}

// Movers returns the cached movers list, recomputing when stale or when
// ForceRefresh is set. The cached list is refiltered per caller so different
// thresholds and limits share one detection pass.
func (t *Tracker) Movers(ctx context.Context, markets []domain.Market, opts MoverOptions) ([]domain.MarketMover, error) {
	minChange := opts.MinChange
	if minChange == 0 {
		minChange = DefaultMinChange
	}
	timeframe := opts.Timeframe
	if timeframe == "" {
		timeframe = Timeframe1h
	}
	limit := opts.Limit
	if limit == 0 {
		limit = 20
	}

	if !opts.ForceRefresh {
		if cached, ok := t.movers.Get(moversCacheKey); ok {
			return filterMovers(cached, minChange, limit), nil
		}
	}

	// Detect with the loose floor so the cached list can serve callers with
	// any threshold; the caller's threshold applies on the way out.
	movers, err := t.DetectMovers(ctx, markets, looseMinChange, timeframe)
	if err != nil {
		return nil, err
	}
	t.movers.Set(moversCacheKey, movers)

	return filterMovers(movers, minChange, limit), nil
}

// previousPrice is the second-to-last snapshot's price, or the market's own
// price when history is too short.
func (t *Tracker) previousPrice(ctx context.Context, m domain.Market) (float64, error) {
	snaps, err := t.store.List(ctx, m.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoHistory) {
			return m.YesPrice, nil
		}
		return 0, err
	}
	if len(snaps) < 2 {
		return m.YesPrice, nil
	}
	return snaps[len(snaps)-2].YesPrice, nil
}

func filterMovers(movers []domain.MarketMover, minChange float64, limit int) []domain.MarketMover {
	out := make([]domain.MarketMover, 0, limit)
	for _, mv := range movers {
		if math.Abs(mv.PriceChange1h) < minChange {
			continue
		}
		out = append(out, mv)
		if len(out) == limit {
			break
		}
	}
	return out
}

func prune(snaps []domain.PriceSnapshot, cutoff time.Time) []domain.PriceSnapshot {
	kept := snaps[:0]
	for _, s := range snaps {
		if !s.Timestamp.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	return kept
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

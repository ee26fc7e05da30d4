package history

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// stepClock is a manually advanced clock shared by tracker and cache.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time          { return c.t }
func (c *stepClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *MemStore, *stepClock) {
	clock := &stepClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := NewMemStore()
	return NewTracker(store, clock), store, clock
}

func priceMarket(id string, yes float64) domain.Market {
	return domain.Market{ID: id, Platform: domain.PlatformPolymarket, YesPrice: yes}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPriceChange_OverLookback(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	if err := tr.Record(ctx, priceMarket("polymarket-1", 0.50)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(time.Hour)
	if err := tr.Record(ctx, priceMarket("polymarket-1", 0.58)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	change, err := tr.PriceChange(ctx, "polymarket-1", time.Hour)
	if err != nil {
		t.Fatalf("PriceChange: %v", err)
	}
	if !approx(change, 0.08) {
		t.Errorf("change = %v, want 0.08", change)
	}
}

func TestPriceChange_NoHistory(t *testing.T) {
	tr, _, _ := newTestTracker()

	_, err := tr.PriceChange(context.Background(), "polymarket-missing", time.Hour)
	if !errors.Is(err, domain.ErrNoHistory) {
		t.Fatalf("err = %v, want ErrNoHistory", err)
	}
}

func TestPriceChange_StaleHistoryUnavailable(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	if err := tr.Record(ctx, priceMarket("polymarket-1", 0.50)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(4 * time.Hour)

	// The only snapshot is 3h from the lookback target, beyond twice the
	// 1h lookback.
	_, err := tr.PriceChange(ctx, "polymarket-1", time.Hour)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestRecord_PrunesBeyondRetention(t *testing.T) {
	tr, store, clock := newTestTracker()
	ctx := context.Background()

	if err := tr.Record(ctx, priceMarket("polymarket-1", 0.50)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(8 * 24 * time.Hour)
	if err := tr.Record(ctx, priceMarket("polymarket-1", 0.55)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	snaps, err := store.List(ctx, "polymarket-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("kept %d snapshots, want 1 after pruning", len(snaps))
	}
	if !approx(snaps[0].YesPrice, 0.55) {
		t.Errorf("surviving snapshot price = %v, want the fresh one", snaps[0].YesPrice)
	}
}

func TestDetectMovers_FiltersSmallChanges(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	mover := priceMarket("polymarket-mover", 0.50)
	quiet := priceMarket("polymarket-quiet", 0.50)
	if err := tr.RecordBulk(ctx, []domain.Market{mover, quiet}); err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}

	clock.Advance(time.Hour)
	mover.YesPrice = 0.58
	quiet.YesPrice = 0.51
	if err := tr.RecordBulk(ctx, []domain.Market{mover, quiet}); err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}

	movers, err := tr.DetectMovers(ctx, []domain.Market{mover, quiet}, 0, Timeframe1h)
	if err != nil {
		t.Fatalf("DetectMovers: %v", err)
	}
	if len(movers) != 1 {
		t.Fatalf("got %d movers, want 1", len(movers))
	}
	mv := movers[0]
	if mv.Market.ID != "polymarket-mover" {
		t.Errorf("mover = %q, want polymarket-mover", mv.Market.ID)
	}
	if !approx(mv.PriceChange1h, 0.08) {
		t.Errorf("PriceChange1h = %v, want 0.08", mv.PriceChange1h)
	}
	if mv.Direction != domain.MoveUp {
		t.Errorf("Direction = %q, want up", mv.Direction)
	}
	if !approx(mv.PreviousPrice, 0.50) {
		t.Errorf("PreviousPrice = %v, want 0.50", mv.PreviousPrice)
	}
	if !approx(mv.CurrentPrice, 0.58) {
		t.Errorf("CurrentPrice = %v, want 0.58", mv.CurrentPrice)
	}
}

func TestDetectMovers_ExcludesStaleHistory(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	m := priceMarket("polymarket-stale", 0.50)
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(4 * time.Hour)
	m.YesPrice = 0.70

	movers, err := tr.DetectMovers(ctx, []domain.Market{m}, 0, Timeframe1h)
	if err != nil {
		t.Fatalf("DetectMovers: %v", err)
	}
	if len(movers) != 0 {
		t.Fatalf("got %d movers from stale history, want 0", len(movers))
	}
}

func TestDetectMovers_SortedByMagnitude(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	up := priceMarket("polymarket-up", 0.50)
	down := priceMarket("polymarket-down", 0.60)
	if err := tr.RecordBulk(ctx, []domain.Market{up, down}); err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}

	clock.Advance(time.Hour)
	up.YesPrice = 0.58
	down.YesPrice = 0.40
	if err := tr.RecordBulk(ctx, []domain.Market{up, down}); err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}

	movers, err := tr.DetectMovers(ctx, []domain.Market{up, down}, 0, Timeframe1h)
	if err != nil {
		t.Fatalf("DetectMovers: %v", err)
	}
	if len(movers) != 2 {
		t.Fatalf("got %d movers, want 2", len(movers))
	}
	if movers[0].Market.ID != "polymarket-down" {
		t.Errorf("largest mover = %q, want polymarket-down", movers[0].Market.ID)
	}
	if movers[0].Direction != domain.MoveDown {
		t.Errorf("Direction = %q, want down", movers[0].Direction)
	}
}

func TestMovers_CachedUntilForceRefresh(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	m := priceMarket("polymarket-1", 0.50)
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(time.Hour)
	m.YesPrice = 0.58
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	first, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d movers, want 1", len(first))
	}

	// New data lands but the cached list is still served.
	clock.Advance(time.Minute)
	m.YesPrice = 0.90
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	cached, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(cached) != 1 || !approx(cached[0].PriceChange1h, first[0].PriceChange1h) {
		t.Fatalf("cached movers changed: %+v", cached)
	}

	fresh, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{ForceRefresh: true})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(fresh) != 1 || approx(fresh[0].PriceChange1h, first[0].PriceChange1h) {
		t.Fatalf("ForceRefresh did not recompute, got %+v", fresh)
	}
}

func TestMovers_StrictCallerDoesNotPoisonCache(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	m := priceMarket("polymarket-1", 0.50)
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(time.Hour)
	m.YesPrice = 0.58
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	strict, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{MinChange: 0.20})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(strict) != 0 {
		t.Fatalf("strict caller got %d movers for a 0.08 move, want 0", len(strict))
	}

	// The cached detection pass must still hold the 0.08 mover for looser
	// callers inside the TTL.
	loose, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{MinChange: 0.05})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(loose) != 1 {
		t.Fatalf("loose caller got %d movers, want 1", len(loose))
	}
	if !approx(loose[0].PriceChange1h, 0.08) {
		t.Errorf("PriceChange1h = %v, want 0.08", loose[0].PriceChange1h)
	}
}

func TestMovers_CacheExpires(t *testing.T) {
	tr, _, clock := newTestTracker()
	ctx := context.Background()

	m := priceMarket("polymarket-1", 0.50)
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(time.Hour)
	m.YesPrice = 0.58
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{}); err != nil {
		t.Fatalf("Movers: %v", err)
	}

	clock.Advance(MoversCacheTTL + time.Minute)
	m.YesPrice = 0.80
	if err := tr.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	movers, err := tr.Movers(ctx, []domain.Market{m}, MoverOptions{})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(movers) != 1 || !approx(movers[0].PriceChange1h, 0.30) {
		t.Fatalf("stale cache served after TTL, got %+v", movers)
	}
}

func TestPrune_Idempotent(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snaps := []domain.PriceSnapshot{
		{MarketID: "polymarket-1", YesPrice: 0.40, Timestamp: base.Add(-10 * 24 * time.Hour)},
		{MarketID: "polymarket-1", YesPrice: 0.50, Timestamp: base.Add(-time.Hour)},
		{MarketID: "polymarket-1", YesPrice: 0.55, Timestamp: base},
	}
	cutoff := base.Add(-RetentionWindow)

	once := prune(snaps, cutoff)
	if len(once) != 2 {
		t.Fatalf("prune kept %d snapshots, want 2", len(once))
	}
	twice := prune(once, cutoff)
	if len(twice) != len(once) {
		t.Fatalf("second prune changed size: %d -> %d", len(once), len(twice))
	}
}

func TestParseLookback(t *testing.T) {
	cases := []struct {
		label string
		want  time.Duration
		ok    bool
	}{
		{"", time.Hour, true},
		{"1h", time.Hour, true},
		{"6h", 6 * time.Hour, true},
		{"24h", 24 * time.Hour, true},
		{"7d", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseLookback(tc.label)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseLookback(%q) = %v, %v; want %v", tc.label, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseLookback(%q) err = %v, want ErrInvalidInput", tc.label, err)
		}
	}
}

package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/history"
)

func TestMovers_UsesConfiguredMinChange(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	tracker := history.NewTracker(history.NewMemStore(), clock)

	m := domain.Market{ID: "polymarket-1", Platform: domain.PlatformPolymarket, YesPrice: 0.50}
	if err := tracker.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock.Advance(time.Hour)
	m.YesPrice = 0.58
	if err := tracker.Record(ctx, m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	markets := newStubMarketService(clock, m)

	// With a 0.20 configured threshold the 0.08 move is hidden.
	strict := NewMoverService(markets, tracker, 0.20, discardLogger())
	movers, err := strict.Movers(ctx, history.MoverOptions{})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(movers) != 0 {
		t.Fatalf("got %d movers with configured min change 0.20, want 0", len(movers))
	}

	// A caller-supplied threshold beats the configured one.
	loose, err := strict.Movers(ctx, history.MoverOptions{MinChange: 0.05})
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(loose) != 1 {
		t.Fatalf("got %d movers with caller min change 0.05, want 1", len(loose))
	}
	if math.Abs(loose[0].PriceChange1h-0.08) > 1e-9 {
		t.Errorf("PriceChange1h = %v, want 0.08", loose[0].PriceChange1h)
	}
}

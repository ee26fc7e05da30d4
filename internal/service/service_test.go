package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// stepClock is a manually advanced clock shared by services and caches.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time          { return c.t }
func (c *stepClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
}

// stubSource serves a canned market list without touching the network.
type stubSource struct {
	name    string
	markets []domain.Market
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) FetchMarkets(context.Context) ([]domain.Market, error) {
	return s.markets, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStubMarketService(clock domain.Clock, markets ...domain.Market) *MarketService {
	src := stubSource{name: "stub", markets: markets}
	return NewMarketService([]domain.MarketSource{src}, clock, discardLogger())
}

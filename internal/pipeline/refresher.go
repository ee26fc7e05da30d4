package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quantpulse/marketsignal/internal/arbitrage"
	"github.com/quantpulse/marketsignal/internal/history"
	"github.com/quantpulse/marketsignal/internal/server/ws"
	"github.com/quantpulse/marketsignal/internal/service"
)

// Publisher receives the results of each refresh cycle. The WebSocket hub
// satisfies this; a nil publisher disables fan-out.
type Publisher interface {
	Publish(channel string, payload interface{})
}

// Refresher runs one full refresh cycle: pull fresh markets from every
// platform, record price snapshots, rescan for arbitrage, and recompute
// movers.
type Refresher struct {
	markets   *service.MarketService
	arbs      *service.ArbitrageService
	movers    *service.MoverService
	publisher Publisher
	logger    *slog.Logger
}

func NewRefresher(
	markets *service.MarketService,
	arbs *service.ArbitrageService,
	movers *service.MoverService,
	publisher Publisher,
	logger *slog.Logger,
) *Refresher {
	return &Refresher{
		markets:   markets,
		arbs:      arbs,
		movers:    movers,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "refresher")),
	}
}

// Run executes a single refresh cycle. Snapshot and mover failures are
// logged and tolerated; a market fetch failure fails the cycle since
// everything downstream depends on the corpus.
func (r *Refresher) Run(ctx context.Context) error {
	start := time.Now()

	markets, err := r.markets.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refreshing markets: %w", err)
	}
	r.publish(ws.ChannelMarkets, map[string]any{"count": len(markets)})

	if err := r.movers.Snapshot(ctx); err != nil {
		r.logger.Error("snapshot recording failed", slog.String("error", err.Error()))
	}

	r.arbs.Rescan()
	opps, err := r.arbs.Opportunities(ctx, arbitrage.TopOptions{})
	if err != nil {
		r.logger.Error("arbitrage rescan failed", slog.String("error", err.Error()))
	} else {
		r.publish(ws.ChannelArbitrage, opps)
	}

	movers, err := r.movers.Movers(ctx, history.MoverOptions{ForceRefresh: true})
	if err != nil {
		r.logger.Error("mover detection failed", slog.String("error", err.Error()))
	} else {
		r.publish(ws.ChannelMovers, movers)
	}

	r.logger.Info("refresh cycle complete",
		slog.Int("markets", len(markets)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// RunLoop runs refresh cycles on a repeating interval until the context is
// cancelled.
func (r *Refresher) RunLoop(ctx context.Context, interval time.Duration) error {
	// Run immediately on start.
	if err := r.Run(ctx); err != nil {
		r.logger.Error("refresh cycle failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.Run(ctx); err != nil {
				r.logger.Error("refresh cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (r *Refresher) publish(channel string, payload interface{}) {
	if r.publisher == nil {
		return
	}
	r.publisher.Publish(channel, payload)
}

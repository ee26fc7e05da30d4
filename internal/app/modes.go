package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantpulse/marketsignal/internal/cache/redis"
	"github.com/quantpulse/marketsignal/internal/pipeline"
	"github.com/quantpulse/marketsignal/internal/server"
	"github.com/quantpulse/marketsignal/internal/server/handler"
	"github.com/quantpulse/marketsignal/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

// ServeMode runs the HTTP + WebSocket API without the background refresh
// loop. The market corpus is fetched lazily on first request and refreshed
// through cache expiry.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := deps.Hub.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	a.runServer(ctx, g, deps)

	return g.Wait()
}

// ScanMode runs the background refresh pipeline headless: markets are
// fetched, snapshots recorded, and arbitrage rescanned on the configured
// interval, with results going to the log only.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	refresher := pipeline.NewRefresher(deps.Markets, deps.Arbs, deps.Movers, nil, a.logger)
	orch := pipeline.NewOrchestrator(refresher, a.cfg.Pipeline.RefreshInterval.Duration, a.logger)
	return orch.Run(ctx)
}

// FullMode runs the refresh pipeline and the HTTP + WebSocket API together,
// with refresh results fanned out to WebSocket clients.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)

	if a.cfg.Pipeline.Enabled {
		refresher := pipeline.NewRefresher(deps.Markets, deps.Arbs, deps.Movers, deps.Hub, a.logger)
		orch := pipeline.NewOrchestrator(refresher, a.cfg.Pipeline.RefreshInterval.Duration, a.logger, deps.Hub)
		g.Go(func() error {
			return orch.Run(ctx)
		})
	} else {
		g.Go(func() error {
			err := deps.Hub.Run(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
	}

	if a.cfg.Server.Enabled {
		a.runServer(ctx, g, deps)
	}

	return g.Wait()
}

// runServer builds the HTTP server from config and starts it on the group,
// along with a goroutine that shuts it down gracefully on ctx cancellation.
func (a *App) runServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	var limiter middleware.RateLimiter
	if deps.Redis != nil && a.cfg.Server.RateLimitPerMin > 0 {
		limiter = redis.NewRateLimiter(deps.Redis)
	}

	var pinger handler.Pinger
	if deps.Redis != nil {
		pinger = deps.Redis
	}

	handlers := server.Handlers{
		Health:  handler.NewHealthHandler(pinger, a.logger),
		Analyze: handler.NewAnalyzeHandler(deps.Analysis, a.logger),
		Markets: handler.NewMarketHandler(deps.Markets, a.logger),
		Arb:     handler.NewArbHandler(deps.Arbs, a.logger),
		Movers:  handler.NewMoverHandler(deps.Movers, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
		RateLimiter: limiter,
		RateLimit:   a.cfg.Server.RateLimitPerMin,
		RateWindow:  time.Minute,
	}, handlers, deps.Hub, a.logger)

	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("app: server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
		return nil
	})
}

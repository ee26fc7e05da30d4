// Package service wires the analysis pipeline's pieces behind use-case
// services consumed by the HTTP handlers and the refresh loop.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quantpulse/marketsignal/internal/cache/memory"
	"github.com/quantpulse/marketsignal/internal/domain"
)

const marketsCacheKey = "markets"

// MarketService aggregates the platform sources into one cached corpus.
// Every consumer shares the same five-minute snapshot so a burst of requests
// costs one upstream fetch.
type MarketService struct {
	sources []domain.MarketSource
	cache   *memory.Cache[[]domain.Market]
	logger  *slog.Logger

	mu    sync.RWMutex
	stale []domain.Market
}

// NewMarketService creates a MarketService over the given sources.
func NewMarketService(sources []domain.MarketSource, clock domain.Clock, logger *slog.Logger) *MarketService {
	return &MarketService{
		sources: sources,
		cache:   memory.New[[]domain.Market](memory.DefaultTTL, clock),
		logger:  logger.With(slog.String("component", "market_service")),
	}
}

// Markets returns the combined market corpus, serving the cache while fresh.
// When every source fails, the last good corpus is returned instead so the
// pipeline degrades to stale data rather than an empty response.
func (s *MarketService) Markets(ctx context.Context) ([]domain.Market, error) {
	if cached, ok := s.cache.Get(marketsCacheKey); ok {
		return cached, nil
	}

	markets, err := s.fetchAll(ctx)
	if err != nil {
		s.mu.RLock()
		stale := s.stale
		s.mu.RUnlock()
		if len(stale) > 0 {
			s.logger.WarnContext(ctx, "serving stale markets",
				slog.Int("count", len(stale)),
				slog.String("error", err.Error()),
			)
			return stale, nil
		}
		return nil, err
	}

	s.cache.Set(marketsCacheKey, markets)
	s.mu.Lock()
	s.stale = markets
	s.mu.Unlock()
	return markets, nil
}

// Refresh drops the cached corpus and fetches a fresh one.
func (s *MarketService) Refresh(ctx context.Context) ([]domain.Market, error) {
	s.cache.Invalidate(marketsCacheKey)
	return s.Markets(ctx)
}

// SourceCount reports how many platform sources feed the corpus.
func (s *MarketService) SourceCount() int { return len(s.sources) }

// fetchAll queries every source concurrently. Individual source failures are
// tolerated; the fetch errors only when no source returned anything.
func (s *MarketService) fetchAll(ctx context.Context) ([]domain.Market, error) {
	results := make([][]domain.Market, len(s.sources))
	failures := make([]error, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		g.Go(func() error {
			markets, err := src.FetchMarkets(gctx)
			if err != nil {
				failures[i] = err
				s.logger.WarnContext(gctx, "source fetch failed",
					slog.String("source", src.Name()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = markets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("market_service: fetch: %w", err)
	}

	var combined []domain.Market
	ok := false
	for i, r := range results {
		if failures[i] == nil {
			ok = true
		}
		combined = append(combined, r...)
	}
	if !ok {
		return nil, fmt.Errorf("market_service: all sources failed: %w", failures[0])
	}

	s.logger.InfoContext(ctx, "fetched markets", slog.Int("count", len(combined)))
	return combined, nil
}

package service

import (
	"context"
	"log/slog"

	"github.com/quantpulse/marketsignal/internal/arbitrage"
	"github.com/quantpulse/marketsignal/internal/cache/memory"
	"github.com/quantpulse/marketsignal/internal/domain"
)

const arbCacheKey = "opportunities"

// looseMinSpread is the floor used for the cached corpus scan. It is lower
// than any caller-facing default so one scan can serve every filter.
const looseMinSpread = 0.01

// ArbitrageService runs the O(n*m) cross-platform scan once per cache window
// and refilters the result per caller.
type ArbitrageService struct {
	markets  *MarketService
	detector *arbitrage.Detector
	cache    *memory.Cache[[]domain.ArbitrageOpportunity]
	defaults arbitrage.TopOptions
	logger   *slog.Logger
}

// NewArbitrageService builds the scan service. defaults fills any TopOptions
// field the caller leaves zero.
func NewArbitrageService(markets *MarketService, defaults arbitrage.TopOptions, clock domain.Clock, logger *slog.Logger) *ArbitrageService {
	return &ArbitrageService{
		markets:  markets,
		detector: arbitrage.NewDetector(looseMinSpread),
		cache:    memory.New[[]domain.ArbitrageOpportunity](memory.DefaultTTL, clock),
		defaults: defaults,
		logger:   logger.With(slog.String("component", "arb_service")),
	}
}

// Opportunities returns opportunities passing the caller's filters, backed
// by the shared loose-threshold scan.
func (s *ArbitrageService) Opportunities(ctx context.Context, opts arbitrage.TopOptions) ([]domain.ArbitrageOpportunity, error) {
	full, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	if opts.MinSpread == 0 {
		opts.MinSpread = s.defaults.MinSpread
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = s.defaults.MinConfidence
	}
	if opts.Limit == 0 {
		opts.Limit = s.defaults.Limit
	}
	return arbitrage.Top(full, opts), nil
}

// ForMarket returns the best cached opportunity involving the given market,
// or nil when none exists. Used to attach arbitrage context to signals.
func (s *ArbitrageService) ForMarket(ctx context.Context, marketID string) (*domain.ArbitrageOpportunity, error) {
	full, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range full {
		if full[i].Polymarket.ID == marketID || full[i].Kalshi.ID == marketID {
			op := full[i]
			return &op, nil
		}
	}
	return nil, nil
}

// Rescan forces a fresh corpus scan on the next read.
func (s *ArbitrageService) Rescan() {
	s.cache.Invalidate(arbCacheKey)
}

func (s *ArbitrageService) scan(ctx context.Context) ([]domain.ArbitrageOpportunity, error) {
	return s.cache.GetOrCompute(arbCacheKey, func() ([]domain.ArbitrageOpportunity, error) {
		markets, err := s.markets.Markets(ctx)
		if err != nil {
			return nil, err
		}
		opps := s.detector.Detect(markets)
		s.logger.InfoContext(ctx, "arbitrage scan complete",
			slog.Int("markets", len(markets)),
			slog.Int("opportunities", len(opps)),
		)
		return opps, nil
	})
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/history"
)

// MoverService combines the live market corpus with recorded price history
// to surface the largest short-term price moves.
type MoverService struct {
	markets   *MarketService
	tracker   *history.Tracker
	minChange float64
	logger    *slog.Logger
}

// NewMoverService builds the mover pipeline. minChange is the threshold used
// when the caller does not supply one.
func NewMoverService(markets *MarketService, tracker *history.Tracker, minChange float64, logger *slog.Logger) *MoverService {
	return &MoverService{
		markets:   markets,
		tracker:   tracker,
		minChange: minChange,
		logger:    logger.With(slog.String("component", "mover_service")),
	}
}

// Movers returns the top movers for the current corpus.
func (s *MoverService) Movers(ctx context.Context, opts history.MoverOptions) ([]domain.MarketMover, error) {
	if opts.MinChange == 0 {
		opts.MinChange = s.minChange
	}
	markets, err := s.markets.Markets(ctx)
	if err != nil {
		return nil, fmt.Errorf("mover_service: load markets: %w", err)
	}
	movers, err := s.tracker.Movers(ctx, markets, opts)
	if err != nil {
		return nil, fmt.Errorf("mover_service: detect movers: %w", err)
	}
	return movers, nil
}

// Snapshot records the current prices of the whole corpus into history.
func (s *MoverService) Snapshot(ctx context.Context) error {
	markets, err := s.markets.Markets(ctx)
	if err != nil {
		return fmt.Errorf("mover_service: load markets: %w", err)
	}
	if err := s.tracker.RecordBulk(ctx, markets); err != nil {
		return fmt.Errorf("mover_service: record snapshots: %w", err)
	}
	s.logger.DebugContext(ctx, "recorded price snapshots", slog.Int("markets", len(markets)))
	return nil
}

// PriceChange reports the price change for one market over the given lookback.
func (s *MoverService) PriceChange(ctx context.Context, marketID string, lookback string) (float64, error) {
	d, err := history.ParseLookback(lookback)
	if err != nil {
		return 0, fmt.Errorf("mover_service: %w", err)
	}
	return s.tracker.PriceChange(ctx, marketID, d)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/match"
	"github.com/quantpulse/marketsignal/internal/signal"
)

// AnalyzeOptions tunes one analysis request.
type AnalyzeOptions struct {
	MinConfidence float64
	MaxResults    int
	Strategy      string
}

// AnalysisService is the text-to-signal entry point: match the corpus,
// cross-reference cached arbitrage, and synthesize one trading signal.
type AnalysisService struct {
	markets  *MarketService
	arbs     *ArbitrageService
	matcher  *match.Matcher
	signals  *signal.Generator
	defaults AnalyzeOptions
	logger   *slog.Logger
}

// NewAnalysisService wires the matching pipeline. defaults fills any
// AnalyzeOptions field the caller leaves zero.
func NewAnalysisService(
	markets *MarketService,
	arbs *ArbitrageService,
	matcher *match.Matcher,
	signals *signal.Generator,
	defaults AnalyzeOptions,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		markets:  markets,
		arbs:     arbs,
		matcher:  matcher,
		signals:  signals,
		defaults: defaults,
		logger:   logger.With(slog.String("component", "analysis_service")),
	}
}

func (s *AnalysisService) mergeDefaults(opts AnalyzeOptions) AnalyzeOptions {
	if opts.Strategy == "" {
		opts.Strategy = s.defaults.Strategy
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = s.defaults.MinConfidence
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = s.defaults.MaxResults
	}
	return opts
}

// Analyze matches text against the market corpus and returns the resulting
// trading signal. Empty or whitespace-only text is rejected.
func (s *AnalysisService) Analyze(ctx context.Context, text string, opts AnalyzeOptions) (domain.TradingSignal, error) {
	if strings.TrimSpace(text) == "" {
		return domain.TradingSignal{}, fmt.Errorf("analysis_service: %w: empty text", domain.ErrInvalidInput)
	}

	markets, err := s.markets.Markets(ctx)
	if err != nil {
		return domain.TradingSignal{}, fmt.Errorf("analysis_service: load markets: %w", err)
	}

	opts = s.mergeDefaults(opts)
	matches, err := s.matcher.Match(text, markets, match.Options{
		Strategy:      opts.Strategy,
		MinConfidence: opts.MinConfidence,
		MaxResults:    opts.MaxResults,
	})
	if err != nil {
		return domain.TradingSignal{}, fmt.Errorf("analysis_service: match: %w", err)
	}

	// Cross-reference the top match with the cached arbitrage scan. A scan
	// failure downgrades the signal rather than failing the request.
	var arb *domain.ArbitrageOpportunity
	if len(matches) > 0 {
		arb, err = s.arbs.ForMarket(ctx, matches[0].Market.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "arbitrage lookup failed",
				slog.String("market_id", matches[0].Market.ID),
				slog.String("error", err.Error()),
			)
			arb = nil
		}
	}

	sig := s.signals.Generate(signal.Input{
		Text:            text,
		Matches:         matches,
		Arbitrage:       arb,
		SourcesChecked:  s.markets.SourceCount(),
		MarketsAnalyzed: len(markets),
	})

	s.logger.InfoContext(ctx, "analyzed text",
		slog.String("event_id", sig.EventID),
		slog.String("signal_type", string(sig.SignalType)),
		slog.Int("matches", len(matches)),
	)
	return sig, nil
}

// MatchOnly returns the ranked matches without signal synthesis.
func (s *AnalysisService) MatchOnly(ctx context.Context, text string, opts AnalyzeOptions) ([]domain.MarketMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("analysis_service: %w: empty text", domain.ErrInvalidInput)
	}
	markets, err := s.markets.Markets(ctx)
	if err != nil {
		return nil, fmt.Errorf("analysis_service: load markets: %w", err)
	}
	opts = s.mergeDefaults(opts)
	return s.matcher.Match(text, markets, match.Options{
		Strategy:      opts.Strategy,
		MinConfidence: opts.MinConfidence,
		MaxResults:    opts.MaxResults,
	})
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quantpulse/marketsignal/internal/arbitrage"
	"github.com/quantpulse/marketsignal/internal/cache/redis"
	"github.com/quantpulse/marketsignal/internal/config"
	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/history"
	"github.com/quantpulse/marketsignal/internal/keywords"
	"github.com/quantpulse/marketsignal/internal/match"
	"github.com/quantpulse/marketsignal/internal/platform/kalshi"
	"github.com/quantpulse/marketsignal/internal/platform/polymarket"
	"github.com/quantpulse/marketsignal/internal/server/ws"
	"github.com/quantpulse/marketsignal/internal/service"
	"github.com/quantpulse/marketsignal/internal/signal"
	"github.com/quantpulse/marketsignal/internal/text"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Markets  *service.MarketService
	Arbs     *service.ArbitrageService
	Movers   *service.MoverService
	Analysis *service.AnalysisService
	Tracker  *history.Tracker
	Hub      *ws.Hub

	// Redis is nil when the memory history backend is selected and rate
	// limiting is disabled.
	Redis *redis.Client
}

// needsRedis returns true when any configured component requires a Redis
// connection.
func needsRedis(cfg *config.Config) bool {
	if strings.ToLower(cfg.History.Backend) == "redis" {
		return true
	}
	return cfg.Server.Enabled && cfg.Server.RateLimitPerMin > 0
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that
// should be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	clock := domain.RealClock{}
	deps := &Dependencies{}

	// --- Redis (only when a component needs it) ---
	if needsRedis(cfg) {
		client, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		deps.Redis = client
	}

	// --- Price history store ---
	var store domain.HistoryStore
	if strings.ToLower(cfg.History.Backend) == "redis" {
		store = redis.NewHistoryStore(deps.Redis)
	} else {
		store = history.NewMemStore()
	}
	deps.Tracker = history.NewTracker(store, clock)

	// --- Text analysis stack ---
	lex := text.DefaultLexicon()
	syn := text.DefaultSynonyms()
	gen := keywords.NewGenerator(lex, syn)
	matcher := match.NewDefaultMatcher(clock)
	sentiment := text.NewSentimentAnalyzer(lex)
	signals := signal.NewGenerator(sentiment, clock)

	// --- Platform sources ---
	sources := []domain.MarketSource{
		polymarket.NewClient(polymarket.Config{
			BaseURL:     cfg.Polymarket.BaseURL,
			TargetCount: cfg.Polymarket.TargetCount,
			MaxPages:    cfg.Polymarket.MaxPages,
			Timeout:     cfg.Polymarket.Timeout.Duration,
		}, gen, clock),
		kalshi.NewClient(kalshi.Config{
			BaseURL:     cfg.Kalshi.BaseURL,
			TargetCount: cfg.Kalshi.TargetCount,
			MaxPages:    cfg.Kalshi.MaxPages,
			Timeout:     cfg.Kalshi.Timeout.Duration,
		}, gen, clock),
	}

	// --- Services ---
	deps.Markets = service.NewMarketService(sources, clock, logger)
	deps.Arbs = service.NewArbitrageService(deps.Markets, arbitrage.TopOptions{
		MinSpread:     cfg.Arbitrage.MinSpread,
		MinConfidence: cfg.Arbitrage.MinConfidence,
		Limit:         cfg.Arbitrage.Limit,
	}, clock, logger)
	deps.Movers = service.NewMoverService(deps.Markets, deps.Tracker, cfg.History.MinChange, logger)
	deps.Analysis = service.NewAnalysisService(deps.Markets, deps.Arbs, matcher, signals, service.AnalyzeOptions{
		Strategy:      cfg.Matching.Strategy,
		MinConfidence: cfg.Matching.MinConfidence,
		MaxResults:    cfg.Matching.MaxResults,
	}, logger)

	deps.Hub = ws.NewHub(logger)

	return deps, cleanup, nil
}

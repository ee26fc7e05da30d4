package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// MarketLister is what the market handler needs from the service layer.
type MarketLister interface {
	Markets(ctx context.Context) ([]domain.Market, error)
	Refresh(ctx context.Context) ([]domain.Market, error)
	SourceCount() int
}

// MarketHandler serves the market corpus endpoints.
type MarketHandler struct {
	markets MarketLister
	logger  *slog.Logger
}

func NewMarketHandler(markets MarketLister, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{markets: markets, logger: logger}
}

type listMarketsResponse struct {
	Markets []domain.Market `json:"markets"`
	Total   int             `json:"total"`
	Sources int             `json:"sources"`
}

// ListMarkets returns the cached corpus, optionally filtered by platform or
// category and force-refreshed.
// GET /api/markets?platform=polymarket&category=crypto&limit=100&refresh=1
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	var (
		markets []domain.Market
		err     error
	)
	if queryBool(r, "refresh") {
		markets, err = h.markets.Refresh(r.Context())
	} else {
		markets, err = h.markets.Markets(r.Context())
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list markets failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "failed to load markets")
		return
	}

	markets = filterMarkets(markets, r.URL.Query().Get("platform"), r.URL.Query().Get("category"))

	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(markets) {
		markets = markets[:limit]
	}

	writeJSON(w, http.StatusOK, listMarketsResponse{
		Markets: markets,
		Total:   len(markets),
		Sources: h.markets.SourceCount(),
	})
}

func filterMarkets(markets []domain.Market, platform, category string) []domain.Market {
	if platform == "" && category == "" {
		return markets
	}
	out := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if platform != "" && !strings.EqualFold(string(m.Platform), platform) {
			continue
		}
		if category != "" && !strings.EqualFold(m.Category, category) {
			continue
		}
		out = append(out, m)
	}
	return out
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quantpulse/marketsignal/internal/arbitrage"
	"github.com/quantpulse/marketsignal/internal/domain"
)

// ArbScanner is what the arbitrage handler needs from the service layer.
type ArbScanner interface {
	Opportunities(ctx context.Context, opts arbitrage.TopOptions) ([]domain.ArbitrageOpportunity, error)
}

// ArbHandler serves the cross-platform arbitrage endpoints.
type ArbHandler struct {
	arbs   ArbScanner
	logger *slog.Logger
}

func NewArbHandler(arbs ArbScanner, logger *slog.Logger) *ArbHandler {
	return &ArbHandler{arbs: arbs, logger: logger}
}

type listArbsResponse struct {
	Opportunities []domain.ArbitrageOpportunity `json:"opportunities"`
	Total         int                           `json:"total"`
}

// ListOpportunities returns current arbitrage opportunities sorted by
// spread, widest first.
// GET /api/arbitrage?min_spread=0.03&min_confidence=0.5&limit=20&category=crypto
func (h *ArbHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	opts := arbitrage.TopOptions{
		MinSpread:     queryFloat(r, "min_spread", 0),
		MinConfidence: queryFloat(r, "min_confidence", 0),
		Limit:         queryInt(r, "limit", 0),
		Category:      r.URL.Query().Get("category"),
	}

	opps, err := h.arbs.Opportunities(r.Context(), opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: arbitrage scan failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "failed to scan for arbitrage")
		return
	}

	writeJSON(w, http.StatusOK, listArbsResponse{
		Opportunities: opps,
		Total:         len(opps),
	})
}

// ComparePair runs the simple two-price arbitrage check.
// GET /api/arbitrage/pair?polymarket=0.62&kalshi=0.71
func (h *ArbHandler) ComparePair(w http.ResponseWriter, r *http.Request) {
	poly := queryFloat(r, "polymarket", -1)
	kalshi := queryFloat(r, "kalshi", -1)
	if poly < 0 || poly > 1 || kalshi < 0 || kalshi > 1 {
		writeError(w, http.StatusBadRequest, "polymarket and kalshi must be prices in [0,1]")
		return
	}

	writeJSON(w, http.StatusOK, arbitrage.ComparePair(poly, kalshi))
}

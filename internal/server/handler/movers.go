package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/history"
)

// MoverDetector is what the movers handler needs from the service layer.
type MoverDetector interface {
	Movers(ctx context.Context, opts history.MoverOptions) ([]domain.MarketMover, error)
	PriceChange(ctx context.Context, marketID string, lookback string) (float64, error)
}

// MoverHandler serves the price-movement endpoints.
type MoverHandler struct {
	movers MoverDetector
	logger *slog.Logger
}

func NewMoverHandler(movers MoverDetector, logger *slog.Logger) *MoverHandler {
	return &MoverHandler{movers: movers, logger: logger}
}

type listMoversResponse struct {
	Movers []domain.MarketMover `json:"movers"`
	Total  int                  `json:"total"`
}

// ListMovers returns the markets with the largest recent price moves.
// GET /api/movers?min_change=0.05&timeframe=1h&limit=10&refresh=1
func (h *MoverHandler) ListMovers(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	if _, err := history.ParseLookback(timeframe); err != nil {
		writeError(w, http.StatusBadRequest, "unknown timeframe")
		return
	}

	opts := history.MoverOptions{
		MinChange:    queryFloat(r, "min_change", 0),
		Timeframe:    history.Timeframe(timeframe),
		Limit:        queryInt(r, "limit", 0),
		ForceRefresh: queryBool(r, "refresh"),
	}

	movers, err := h.movers.Movers(r.Context(), opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list movers failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "failed to detect movers")
		return
	}

	writeJSON(w, http.StatusOK, listMoversResponse{
		Movers: movers,
		Total:  len(movers),
	})
}

// GetPriceChange reports the price change for one market over a lookback.
// GET /api/movers/{id}/change?timeframe=1h
func (h *MoverHandler) GetPriceChange(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing market id")
		return
	}

	change, err := h.movers.PriceChange(r.Context(), id, r.URL.Query().Get("timeframe"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "unknown timeframe")
		case errors.Is(err, domain.ErrNoHistory), errors.Is(err, domain.ErrUnavailable):
			writeError(w, http.StatusNotFound, "no usable history for market")
		default:
			h.logger.ErrorContext(r.Context(), "handler: price change failed",
				slog.String("market_id", id),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to compute price change")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"market_id": id,
		"change":    change,
	})
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/service"
)

// maxAnalyzeTextLen bounds request bodies; anything longer than a few posts
// concatenated is rejected.
const maxAnalyzeTextLen = 10_000

// Analyzer is what the analyze handler needs from the service layer.
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts service.AnalyzeOptions) (domain.TradingSignal, error)
	MatchOnly(ctx context.Context, text string, opts service.AnalyzeOptions) ([]domain.MarketMatch, error)
}

// AnalyzeHandler serves the text analysis endpoints.
type AnalyzeHandler struct {
	analyzer Analyzer
	logger   *slog.Logger
}

func NewAnalyzeHandler(analyzer Analyzer, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, logger: logger}
}

// analyzeRequest is the JSON body for POST /api/analyze.
type analyzeRequest struct {
	Text          string  `json:"text"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
	MaxResults    int     `json:"max_results,omitempty"`
	Strategy      string  `json:"strategy,omitempty"`
	MatchesOnly   bool    `json:"matches_only,omitempty"`
}

// Analyze matches text against the market corpus and returns a trading
// signal, or just the ranked matches when matches_only is set.
// POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Text) > maxAnalyzeTextLen {
		writeError(w, http.StatusBadRequest, "text too long")
		return
	}

	opts := service.AnalyzeOptions{
		MinConfidence: req.MinConfidence,
		MaxResults:    req.MaxResults,
		Strategy:      req.Strategy,
	}

	if req.MatchesOnly {
		matches, err := h.analyzer.MatchOnly(r.Context(), req.Text, opts)
		if err != nil {
			h.writeAnalyzeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
		return
	}

	sig, err := h.analyzer.Analyze(r.Context(), req.Text, opts)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sig)
}

func (h *AnalyzeHandler) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "text must not be empty")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "market data unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "handler: analyze failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/history"
)

type stubMoverDetector struct {
	movers    []domain.MarketMover
	lastOpts  history.MoverOptions
	moversErr error
	change    float64
	changeErr error
}

func (s *stubMoverDetector) Movers(_ context.Context, opts history.MoverOptions) ([]domain.MarketMover, error) {
	s.lastOpts = opts
	return s.movers, s.moversErr
}

func (s *stubMoverDetector) PriceChange(context.Context, string, string) (float64, error) {
	return s.change, s.changeErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListMovers_UnknownTimeframeRejected(t *testing.T) {
	stub := &stubMoverDetector{}
	h := NewMoverHandler(stub, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/movers?timeframe=7d", nil)
	rec := httptest.NewRecorder()
	h.ListMovers(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "unknown timeframe" {
		t.Errorf("error = %q, want unknown timeframe", body["error"])
	}
}

func TestListMovers_PassesOptionsThrough(t *testing.T) {
	stub := &stubMoverDetector{movers: []domain.MarketMover{{CurrentPrice: 0.58}}}
	h := NewMoverHandler(stub, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/movers?timeframe=6h&min_change=0.1&limit=3&refresh=1", nil)
	rec := httptest.NewRecorder()
	h.ListMovers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.lastOpts.Timeframe != history.Timeframe6h {
		t.Errorf("Timeframe = %q, want 6h", stub.lastOpts.Timeframe)
	}
	if stub.lastOpts.MinChange != 0.1 || stub.lastOpts.Limit != 3 || !stub.lastOpts.ForceRefresh {
		t.Errorf("opts = %+v", stub.lastOpts)
	}

	var body listMoversResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 1 {
		t.Errorf("Total = %d, want 1", body.Total)
	}
}

func TestGetPriceChange_MapsSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid timeframe", domain.ErrInvalidInput, http.StatusBadRequest},
		{"no history", domain.ErrNoHistory, http.StatusNotFound},
		{"sparse history", domain.ErrUnavailable, http.StatusNotFound},
	}
	for _, tc := range cases {
		stub := &stubMoverDetector{changeErr: tc.err}
		h := NewMoverHandler(stub, discardLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/movers/polymarket-1/change", nil)
		req.SetPathValue("id", "polymarket-1")
		rec := httptest.NewRecorder()
		h.GetPriceChange(rec, req)

		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

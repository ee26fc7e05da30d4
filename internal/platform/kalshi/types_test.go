package kalshi

import (
	"testing"
)

func TestExtractSeriesTicker(t *testing.T) {
	cases := []struct {
		ticker string
		want   string
	}{
		{"KXBTC-26FEB1708", "KXBTC"},
		{"KXPRES-2028-DEM", "KXPRES"},
		{"FED", "FED"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := extractSeriesTicker(tc.ticker); got != tc.want {
			t.Errorf("extractSeriesTicker(%q) = %q, want %q", tc.ticker, got, tc.want)
		}
	}
}

func TestWebURL_DerivesSeriesFromEventTicker(t *testing.T) {
	m := APIMarket{
		Ticker:      "KXBTC-26FEB1708-T95000",
		EventTicker: "KXBTC-26FEB1708",
		Title:       "Bitcoin above $95,000?",
	}
	want := "https://kalshi.com/markets/kxbtc/bitcoin-above-95000/kxbtc-26feb1708"
	if got := m.webURL(); got != want {
		t.Errorf("webURL = %q, want %q", got, want)
	}
}

func TestIsSimple_FiltersParlaysAndComboTitles(t *testing.T) {
	cases := []struct {
		name   string
		market APIMarket
		want   bool
	}{
		{"plain binary", APIMarket{Ticker: "KXBTC-26FEB17", Title: "Bitcoin above $95,000?"}, true},
		{"mve collection", APIMarket{Ticker: "KXBTC-1", Title: "t", MVECollectionTicker: "MVE-1"}, false},
		{"multigame ticker", APIMarket{Ticker: "KXMULTIGAME-3", Title: "t"}, false},
		{"yes-prefixed leg", APIMarket{Ticker: "KXNFL-1", Title: "Yes Chiefs win"}, false},
		{"multi-leg title", APIMarket{Ticker: "KXNFL-1", Title: "a, b, c, d"}, false},
		{"missing ticker", APIMarket{Title: "t"}, false},
	}
	for _, tc := range cases {
		if got := tc.market.IsSimple(); got != tc.want {
			t.Errorf("%s: IsSimple = %v, want %v", tc.name, got, tc.want)
		}
	}
}

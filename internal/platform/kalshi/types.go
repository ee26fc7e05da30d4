package kalshi

import (
	"regexp"
	"strings"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// APIMarket represents a market as returned by the Kalshi trade API.
// Prices come in cents with optional dollar variants.
type APIMarket struct {
	Ticker              string  `json:"ticker"`
	EventTicker         string  `json:"event_ticker"`
	SeriesTicker        string  `json:"series_ticker"`
	Title               string  `json:"title"`
	MarketType          string  `json:"market_type"`
	MVECollectionTicker string  `json:"mve_collection_ticker"`
	YesAsk              float64 `json:"yes_ask"`
	YesAskDollars       float64 `json:"yes_ask_dollars"`
	YesBid              float64 `json:"yes_bid"`
	YesBidDollars       float64 `json:"yes_bid_dollars"`
	NoAsk               float64 `json:"no_ask"`
	NoBid               float64 `json:"no_bid"`
	LastPrice           float64 `json:"last_price"`
	LastPriceDollars    float64 `json:"last_price_dollars"`
	Volume              float64 `json:"volume"`
	Volume24h           float64 `json:"volume_24h"`
	OpenInterest        float64 `json:"open_interest"`
	CloseTime           string  `json:"close_time"`
	Status              string  `json:"status"`
}

// marketsResponse is the paged envelope of the markets endpoint.
type marketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

var (
	mveTickerRe = regexp.MustCompile(`(?i)MULTIGAME|MVE`)
	yesPrefixRe = regexp.MustCompile(`(?i)^yes\s`)

	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// IsSimple reports whether the market is a plain binary market. Multi-variable
// event (parlay) markets and multi-leg combo titles are filtered out.
func (m *APIMarket) IsSimple() bool {
	if m.Title == "" || m.Ticker == "" {
		return false
	}
	if m.MVECollectionTicker != "" {
		return false
	}
	if mveTickerRe.MatchString(m.Ticker) {
		return false
	}
	if yesPrefixRe.MatchString(strings.TrimSpace(m.Title)) {
		return false
	}
	// More than two commas is likely a multi-leg title.
	if strings.Count(m.Title, ",") > 2 {
		return false
	}
	return true
}

// MidYesPrice derives the Yes price, preferring the dollar variants of the
// bid/ask midpoint, then cent midpoints, then the last trade, then 0.5.
func (m *APIMarket) MidYesPrice() float64 {
	switch {
	case m.YesAskDollars > 0:
		return (m.YesBidDollars + m.YesAskDollars) / 2
	case m.YesAsk > 0:
		return (m.YesBid + m.YesAsk) / 2 / 100
	case m.LastPriceDollars > 0:
		return m.LastPriceDollars
	case m.LastPrice > 0:
		return m.LastPrice / 100
	}
	return 0.5
}

// ToDomainMarket converts an APIMarket to a domain.Market. Kalshi listings
// carry no keyword array or description, so keywords come from the title.
func (m *APIMarket) ToDomainMarket(gen KeywordGenerator, now time.Time) domain.Market {
	yes := domain.ClampPrice(m.MidYesPrice())

	market := domain.Market{
		ID:          "kalshi-" + m.Ticker,
		Platform:    domain.PlatformKalshi,
		Title:       m.Title,
		Keywords:    gen.Generate(m.Title, ""),
		YesPrice:    yes,
		NoPrice:     domain.ClampPrice(1 - yes),
		Volume24h:   m.volume24h(),
		URL:         m.webURL(),
		Category:    inferCategory(m.categoryTicker()),
		LastUpdated: now,
		Ticker:      m.Ticker,
	}
	if m.CloseTime != "" {
		if t, err := time.Parse(time.RFC3339, m.CloseTime); err == nil {
			market.EndDate = &t
		}
	}
	return market
}

func (m *APIMarket) volume24h() float64 {
	if m.Volume24h > 0 {
		return m.Volume24h
	}
	return m.Volume
}

func (m *APIMarket) categoryTicker() string {
	if m.SeriesTicker != "" {
		return m.SeriesTicker
	}
	if m.EventTicker != "" {
		return m.EventTicker
	}
	return m.Ticker
}

// webURL builds the public market page: kalshi.com/markets/{series}/{slug}/{event}.
// The slug segment is SEO-only; the site redirects any slug to the canonical one.
func (m *APIMarket) webURL() string {
	event := m.EventTicker
	if event == "" {
		event = m.Ticker
	}
	series := m.SeriesTicker
	if series == "" {
		series = extractSeriesTicker(event)
	}
	return "https://kalshi.com/markets/" + strings.ToLower(series) + "/" + slugify(m.Title) + "/" + strings.ToLower(event)
}

// extractSeriesTicker pulls the series prefix from an event or market ticker.
// Event tickers follow {SERIES}-{DATE_OR_DESCRIPTOR}, e.g. "KXBTC-26FEB1708".
func extractSeriesTicker(ticker string) string {
	series, _, _ := strings.Cut(ticker, "-")
	return series
}

func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var (
	cryptoRe   = regexp.MustCompile(`BTC|ETH|CRYPTO|SOL|XRP|DOGE|NFT|DEFI`)
	econRe     = regexp.MustCompile(`FED|CPI|GDP|INFL|RATE|ECON|UNEMP|JOBS|RECESS`)
	politicsRe = regexp.MustCompile(`TRUMP|BIDEN|PRES|CONG|SENATE|ELECT|GOP|DEM|HOUSE`)
	techRe     = regexp.MustCompile(`NVDA|AAPL|MSFT|GOOGL|META|AMZN|AI|TECH|TSLA|OPENAI`)
	sportsRe   = regexp.MustCompile(`NFL|NBA|MLB|NHL|SPORT|SUPER|WORLD|FIFA|GOLF|TENNIS`)
	climateRe  = regexp.MustCompile(`CLIMATE|TEMP|WEATHER|CARBON|EMISS|ENERGY|OIL`)
	geoRe      = regexp.MustCompile(`UKRAIN|RUSSIA|CHINA|NATO|TAIWAN|ISRAEL|GAZA|IRAN`)
)

// inferCategory maps a series/event ticker prefix to an internal category tag.
func inferCategory(ticker string) string {
	t := strings.ToUpper(ticker)
	switch {
	case cryptoRe.MatchString(t):
		return "crypto"
	case econRe.MatchString(t):
		return "economics"
	case politicsRe.MatchString(t):
		return "us_politics"
	case techRe.MatchString(t):
		return "technology"
	case sportsRe.MatchString(t):
		return "sports"
	case climateRe.MatchString(t):
		return "climate"
	case geoRe.MatchString(t):
		return "geopolitics"
	}
	return "other"
}

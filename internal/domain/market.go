package domain

import "time"

// Platform identifies the data source a market was ingested from.
type Platform string

const (
	PlatformPolymarket Platform = "polymarket"
	PlatformKalshi     Platform = "kalshi"
)

// Price bounds applied to every ingested YES/NO price. Clamping is policy,
// not an error: upstream feeds occasionally report 0 or 1 exactly, which
// would make spread math and edge math degenerate.
const (
	MinPrice = 0.01
	MaxPrice = 0.99
)

// Market is a tradable binary-outcome record normalized from one of the two
// platforms. Markets are immutable within a pipeline invocation and are
// replaced wholesale on each refresh cycle.
type Market struct {
	ID          string     `json:"id"` // globally unique, prefixed by source, e.g. "polymarket-0x12ab"
	Platform    Platform   `json:"platform"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Keywords    []string   `json:"keywords"` // generated once at ingestion
	YesPrice    float64    `json:"yesPrice"` // clamped to [MinPrice, MaxPrice]
	NoPrice     float64    `json:"noPrice"`  // yesPrice + noPrice ~= 1
	Volume24h   float64    `json:"volume24h"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	LastUpdated time.Time  `json:"lastUpdated"`

	// Source-specific identifiers used only by price-fetch collaborators.
	NumericID string `json:"numericId,omitempty"` // Polymarket numeric ID
	Ticker    string `json:"ticker,omitempty"`    // Kalshi market ticker
}

// ClampPrice forces a price into the [MinPrice, MaxPrice] band.
func ClampPrice(p float64) float64 {
	if p < MinPrice {
		return MinPrice
	}
	if p > MaxPrice {
		return MaxPrice
	}
	return p
}

// ExpiresWithin reports whether the market's end date falls inside the next
// d from now. Markets without an end date never expire.
func (m Market) ExpiresWithin(now time.Time, d time.Duration) bool {
	if m.EndDate == nil {
		return false
	}
	until := m.EndDate.Sub(now)
	return until > 0 && until <= d
}

// MarketMatch pairs a market with the confidence of a lexical match and the
// keyword evidence that produced it. Matches are created per matcher
// invocation and never persisted.
type MarketMatch struct {
	Market          Market   `json:"market"`
	Confidence      float64  `json:"confidence"` // 0..1
	MatchedKeywords []string `json:"matchedKeywords"`
}

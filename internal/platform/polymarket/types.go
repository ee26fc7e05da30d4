package polymarket

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// APIEvent is the parent event nested inside a Gamma market; its slug builds
// the public market URL.
type APIEvent struct {
	Slug string `json:"slug"`
}

// APIMarket represents a market as returned by the Polymarket Gamma API.
type APIMarket struct {
	ID                string     `json:"id"`
	ConditionID       string     `json:"conditionId"`
	Question          string     `json:"question"`
	Description       string     `json:"description"`
	Slug              string     `json:"slug"`
	Events            []APIEvent `json:"events"`
	Outcomes          string     `json:"outcomes"`      // JSON-encoded: "[\"Yes\",\"No\"]"
	OutcomePrices     string     `json:"outcomePrices"` // JSON-encoded: "[\"0.65\",\"0.35\"]"
	Volume            float64    `json:"volume"`
	Volume24h         float64    `json:"volume24hr"`
	Active            bool       `json:"active"`
	Closed            bool       `json:"closed"`
	Category          string     `json:"category"`
	OneDayPriceChange float64    `json:"oneDayPriceChange"`
	EndDateISO        string     `json:"endDateIso"`
}

// IsBinary reports whether the market is a simple active Yes/No market.
// Multi-outcome and non-binary markets are filtered at ingestion.
func (m *APIMarket) IsBinary() bool {
	if m.Question == "" || m.ConditionID == "" || m.Slug == "" {
		return false
	}
	if !m.Active || m.Closed {
		return false
	}
	var outcomes []string
	if err := json.Unmarshal([]byte(m.Outcomes), &outcomes); err != nil {
		return false
	}
	if len(outcomes) != 2 {
		return false
	}
	hasYes, hasNo := false, false
	for _, o := range outcomes {
		switch strings.ToLower(o) {
		case "yes":
			hasYes = true
		case "no":
			hasNo = true
		}
	}
	return hasYes && hasNo
}

// YesPrice extracts the Yes outcome price. Unparseable prices fall back to
// 0.5 so a malformed listing degrades instead of erroring out.
func (m *APIMarket) YesPrice() float64 {
	var outcomes, prices []string
	if err := json.Unmarshal([]byte(m.Outcomes), &outcomes); err != nil {
		return 0.5
	}
	if err := json.Unmarshal([]byte(m.OutcomePrices), &prices); err != nil {
		return 0.5
	}
	for i, o := range outcomes {
		if strings.EqualFold(o, "yes") && i < len(prices) {
			if p, err := strconv.ParseFloat(prices[i], 64); err == nil {
				return p
			}
			return 0.5
		}
	}
	return 0.5
}

// ToDomainMarket converts an APIMarket to a domain.Market. Keyword generation
// happens at ingestion so the matcher sees a uniform keyword surface.
func (m *APIMarket) ToDomainMarket(gen KeywordGenerator, now time.Time) domain.Market {
	yes := domain.ClampPrice(m.YesPrice())
	slug := m.Slug
	if len(m.Events) > 0 && m.Events[0].Slug != "" {
		slug = m.Events[0].Slug
	}

	market := domain.Market{
		ID:          "polymarket-" + m.ConditionID,
		Platform:    domain.PlatformPolymarket,
		Title:       m.Question,
		Description: m.Description,
		Keywords:    gen.Generate(m.Question, m.Description),
		YesPrice:    yes,
		NoPrice:     domain.ClampPrice(1 - yes),
		Volume24h:   m.Volume24h,
		URL:         "https://polymarket.com/event/" + slug,
		Category:    inferCategory(m.Question, m.Category),
		LastUpdated: now,
		NumericID:   m.ID,
	}
	if m.EndDateISO != "" {
		if t, err := time.Parse(time.RFC3339, m.EndDateISO); err == nil {
			market.EndDate = &t
		} else if t, err := time.Parse("2006-01-02", m.EndDateISO); err == nil {
			market.EndDate = &t
		}
	}
	return market
}

var (
	cryptoRe   = regexp.MustCompile(`BTC|ETH|CRYPTO|SOL|XRP|DOGE|BITCOIN|ETHEREUM`)
	econRe     = regexp.MustCompile(`FED|CPI|GDP|INFLATION|RATE|RECESSION|UNEMP|JOBS`)
	politicsRe = regexp.MustCompile(`TRUMP|BIDEN|HARRIS|PRES|CONGRESS|SENATE|ELECT|GOP|DEM|HOUSE`)
	techRe     = regexp.MustCompile(`NVDA|AAPL|MSFT|GOOGLE|META|AMAZON|AI|OPENAI|TECH|TESLA`)
	sportsRe   = regexp.MustCompile(`NFL|NBA|MLB|NHL|SUPER BOWL|WORLD CUP|FIFA|GOLF|TENNIS`)
	climateRe  = regexp.MustCompile(`CLIMATE|WEATHER|CARBON|ENERGY|OIL`)
	geoRe      = regexp.MustCompile(`UKRAINE|RUSSIA|CHINA|NATO|TAIWAN|ISRAEL|GAZA|IRAN`)
)

// inferCategory maps the API category or, failing that, the question text to
// one of the internal category tags.
func inferCategory(question, apiCategory string) string {
	if apiCategory != "" {
		c := strings.ToLower(apiCategory)
		switch {
		case strings.Contains(c, "crypto") || strings.Contains(c, "bitcoin"):
			return "crypto"
		case strings.Contains(c, "politic") || strings.Contains(c, "elect"):
			return "us_politics"
		case strings.Contains(c, "sport") || strings.Contains(c, "nfl") || strings.Contains(c, "nba"):
			return "sports"
		case strings.Contains(c, "tech"):
			return "technology"
		}
	}

	q := strings.ToUpper(question)
	switch {
	case cryptoRe.MatchString(q):
		return "crypto"
	case econRe.MatchString(q):
		return "economics"
	case politicsRe.MatchString(q):
		return "us_politics"
	case techRe.MatchString(q):
		return "technology"
	case sportsRe.MatchString(q):
		return "sports"
	case climateRe.MatchString(q):
		return "climate"
	case geoRe.MatchString(q):
		return "geopolitics"
	}
	return "other"
}

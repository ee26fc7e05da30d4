package domain

// ArbDirection names which platform to buy and which to sell.
type ArbDirection string

const (
	ArbBuyPolySellKalshi ArbDirection = "buy_poly_sell_kalshi"
	ArbBuyKalshiSellPoly ArbDirection = "buy_kalshi_sell_poly"
)

// ArbitrageOpportunity is a pair of same-event markets on the two platforms
// whose YES prices diverge. Confidence measures linkage strength (how sure we
// are the two markets describe the same event), not price confidence.
type ArbitrageOpportunity struct {
	Polymarket      Market       `json:"polymarket"`
	Kalshi          Market       `json:"kalshi"`
	Spread          float64      `json:"spread"` // abs(yesPrice difference), non-negative
	ProfitPotential float64      `json:"profitPotential"`
	Direction       ArbDirection `json:"direction"`
	Confidence      float64      `json:"confidence"`
	MatchReason     string       `json:"matchReason"`
}

// PairComparison is the output of the simple two-price arbitrage check. It
// subtracts an assumed trading fee from the spread, so ProfitPotential may be
// negative even when Detected is true.
type PairComparison struct {
	Detected        bool    `json:"detected"`
	Spread          float64 `json:"spread"`
	ProfitPotential float64 `json:"profit_potential"`
	BuyPlatform     string  `json:"buy_platform"`
	BuyPrice        float64 `json:"buy_price"`
	SellPlatform    string  `json:"sell_platform"`
	SellPrice       float64 `json:"sell_price"`
	Recommendation  string  `json:"recommendation"`
}

package arbitrage

import (
	"fmt"
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// Pairwise fee and spread constants. The pairwise variant prices in a fixed
// round-trip fee, unlike the corpus scan which reports the raw spread.
const (
	// TradingFee approximates 2% total: 1% buy plus 1% sell.
	TradingFee = 0.02
	// PairwiseMinSpread is the floor below which a pair is not worthwhile.
	PairwiseMinSpread = 0.05
)

// ComparePair checks a single already-linked price pair for an exploitable
// spread. Profit potential is the spread net of the trading fee and may be
// negative for thin spreads just above the floor.
func ComparePair(polymarketPrice, kalshiPrice float64) domain.PairComparison {
	spread := polymarketPrice - kalshiPrice
	if spread < 0 {
		spread = -spread
	}
	if spread < PairwiseMinSpread {
		return domain.PairComparison{Recommendation: "No arbitrage opportunity detected"}
	}

	buyPlatform, sellPlatform := string(domain.PlatformPolymarket), string(domain.PlatformKalshi)
	buyPrice, sellPrice := polymarketPrice, kalshiPrice
	if polymarketPrice > kalshiPrice {
		buyPlatform, sellPlatform = sellPlatform, buyPlatform
		buyPrice, sellPrice = kalshiPrice, polymarketPrice
	}

	return domain.PairComparison{
		Detected:        true,
		Spread:          spread,
		ProfitPotential: spread - TradingFee,
		BuyPlatform:     buyPlatform,
		BuyPrice:        buyPrice,
		SellPlatform:    sellPlatform,
		SellPrice:       sellPrice,
		Recommendation: fmt.Sprintf("Buy %s at %.1f%%, sell %s at %.1f%%",
			strings.ToUpper(buyPlatform), buyPrice*100,
			strings.ToUpper(sellPlatform), sellPrice*100),
	}
}

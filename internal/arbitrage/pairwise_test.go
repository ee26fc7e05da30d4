package arbitrage

import (
	"testing"
)

func TestComparePair_DetectsSpread(t *testing.T) {
	got := ComparePair(0.62, 0.71)

	if !got.Detected {
		t.Fatal("ComparePair did not detect a 0.09 spread")
	}
	if !approx(got.Spread, 0.09) {
		t.Errorf("Spread = %v, want 0.09", got.Spread)
	}
	if !approx(got.ProfitPotential, 0.07) {
		t.Errorf("ProfitPotential = %v, want 0.07 after fees", got.ProfitPotential)
	}
	if got.BuyPlatform != "polymarket" || got.SellPlatform != "kalshi" {
		t.Errorf("buy %q sell %q, want buy polymarket sell kalshi", got.BuyPlatform, got.SellPlatform)
	}
	if !approx(got.BuyPrice, 0.62) || !approx(got.SellPrice, 0.71) {
		t.Errorf("prices buy %v sell %v, want 0.62 and 0.71", got.BuyPrice, got.SellPrice)
	}
	if want := "Buy POLYMARKET at 62.0%, sell KALSHI at 71.0%"; got.Recommendation != want {
		t.Errorf("Recommendation = %q, want %q", got.Recommendation, want)
	}
}

func TestComparePair_BuySideFollowsCheaperPrice(t *testing.T) {
	got := ComparePair(0.80, 0.70)

	if !got.Detected {
		t.Fatal("ComparePair did not detect a 0.10 spread")
	}
	if got.BuyPlatform != "kalshi" || got.SellPlatform != "polymarket" {
		t.Errorf("buy %q sell %q, want buy kalshi sell polymarket", got.BuyPlatform, got.SellPlatform)
	}
	if !approx(got.BuyPrice, 0.70) || !approx(got.SellPrice, 0.80) {
		t.Errorf("prices buy %v sell %v, want 0.70 and 0.80", got.BuyPrice, got.SellPrice)
	}
}

func TestComparePair_ThinSpreadRejected(t *testing.T) {
	got := ComparePair(0.50, 0.54)

	if got.Detected {
		t.Fatal("ComparePair detected a spread below the floor")
	}
	if got.Recommendation != "No arbitrage opportunity detected" {
		t.Errorf("Recommendation = %q", got.Recommendation)
	}
	if got.Spread != 0 || got.ProfitPotential != 0 {
		t.Errorf("rejected pair carries spread %v profit %v, want zero values", got.Spread, got.ProfitPotential)
	}
}

func TestComparePair_SpreadAtFloorDetected(t *testing.T) {
	got := ComparePair(0.50, 0.55)

	if !got.Detected {
		t.Fatal("ComparePair rejected a spread exactly at the floor")
	}
	if !approx(got.ProfitPotential, 0.03) {
		t.Errorf("ProfitPotential = %v, want 0.03", got.ProfitPotential)
	}
}

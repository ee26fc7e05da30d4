package match

import (
	"slices"
	"testing"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testMarket(id string, keywords ...string) domain.Market {
	return domain.Market{
		ID:       id,
		Platform: domain.PlatformPolymarket,
		Title:    "Test market " + id,
		Keywords: keywords,
	}
}

func TestMatch_BitcoinQuery(t *testing.T) {
	m := NewDefaultMatcher(fixedClock{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	markets := []domain.Market{
		{
			ID:       "polymarket-btc100k",
			Platform: domain.PlatformPolymarket,
			Title:    "Will Bitcoin exceed $100,000 by end of 2025?",
			Keywords: []string{"bitcoin", "btc", "crypto"},
		},
	}

	matches, err := m.Match("Bitcoin just crossed $100k!", markets, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence < 0.3 {
		t.Errorf("expected confidence >= 0.3, got %g", matches[0].Confidence)
	}
	if !slices.Contains(matches[0].MatchedKeywords, "bitcoin") {
		t.Errorf("expected bitcoin in matched keywords, got %v", matches[0].MatchedKeywords)
	}
}

func TestMatch_EmptyQuery(t *testing.T) {
	m := NewDefaultMatcher(nil)
	matches, err := m.Match("   ", []domain.Market{testMarket("a", "bitcoin")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if matches != nil {
		t.Errorf("expected no matches for empty query, got %v", matches)
	}
}

func TestMatch_ZeroKeywordMarket(t *testing.T) {
	m := NewDefaultMatcher(nil)
	matches, err := m.Match("bitcoin rally", []domain.Market{testMarket("a")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("market without keywords must not match, got %v", matches)
	}
}

func TestMatch_UnknownStrategy(t *testing.T) {
	m := NewDefaultMatcher(nil)
	_, err := m.Match("bitcoin", nil, Options{Strategy: "bogus"})
	if err == nil {
		t.Fatal("expected error for unregistered strategy")
	}
}

func TestMatch_SortedAndTruncated(t *testing.T) {
	m := NewDefaultMatcher(nil)
	markets := []domain.Market{
		testMarket("one-hit", "bitcoin", "filler1", "filler2", "filler3"),
		testMarket("two-hits", "bitcoin", "rally", "filler1", "filler2"),
		testMarket("three-hits", "bitcoin", "rally", "crossed", "filler1"),
	}

	matches, err := m.Match("bitcoin rally crossed", markets, Options{MinConfidence: 0.1, MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected truncation to 2 results, got %d", len(matches))
	}
	if matches[0].Market.ID != "three-hits" || matches[1].Market.ID != "two-hits" {
		t.Errorf("expected descending confidence order, got %s then %s",
			matches[0].Market.ID, matches[1].Market.ID)
	}
	if matches[0].Confidence < matches[1].Confidence {
		t.Errorf("results out of order: %g < %g", matches[0].Confidence, matches[1].Confidence)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewDefaultMatcher(fixedClock{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	markets := []domain.Market{
		testMarket("a", "bitcoin", "btc"),
		testMarket("b", "bitcoin", "rally"),
	}
	first, err := m.Match("bitcoin rally", markets, Options{Strategy: StrategyEnhanced, MinConfidence: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Match("bitcoin rally", markets, Options{Strategy: StrategyEnhanced, MinConfidence: 0.1})
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: result count changed: %d vs %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].Market.ID != first[j].Market.ID || again[j].Confidence != first[j].Confidence {
				t.Fatalf("run %d: result %d changed: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestEnhancedScore_SynonymOnlyBelowThreshold(t *testing.T) {
	m := NewDefaultMatcher(nil)
	s := NewEnhancedScorer(nil, nil)

	// "halving" reaches bitcoin only through the synonym table; one synonym
	// hit over five keywords stays under the 0.28 floor and zeroes out.
	q := m.BuildQuery("halving")
	market := testMarket("btc", "bitcoin", "kw2", "kw3", "kw4", "kw5")
	conf, matched := s.Score(q, market)
	if conf != 0 {
		t.Errorf("expected 0 below threshold, got %g (matched %v)", conf, matched)
	}
}

func TestEnhancedScore_RecencyBoost(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := NewDefaultMatcher(nil)
	s := NewEnhancedScorer(nil, fixedClock{now})

	// Keyword list padded so the score stays well under the 1.0 clamp and
	// the boost is visible.
	q := m.BuildQuery("bitcoin rally crossed")
	base := testMarket("btc", "bitcoin", "rally", "kw3", "kw4", "kw5")

	noDate, _ := s.Score(q, base)

	soon := now.Add(5 * 24 * time.Hour)
	withSoon := base
	withSoon.EndDate = &soon
	soonConf, _ := s.Score(q, withSoon)

	month := now.Add(20 * 24 * time.Hour)
	withMonth := base
	withMonth.EndDate = &month
	monthConf, _ := s.Score(q, withMonth)

	if soonConf-noDate < 0.099 {
		t.Errorf("expected ~0.1 boost inside 7 days, got %g vs %g", soonConf, noDate)
	}
	if monthConf-noDate < 0.049 || monthConf-noDate > 0.051 {
		t.Errorf("expected ~0.05 boost inside 30 days, got %g vs %g", monthConf, noDate)
	}
}

func TestEnhancedScore_CategoryCoherence(t *testing.T) {
	m := NewDefaultMatcher(nil)
	s := NewEnhancedScorer(nil, nil)

	q := m.BuildQuery("bitcoin ethereum blockchain")
	aligned := testMarket("btc", "bitcoin", "ethereum", "blockchain", "kw4", "kw5")
	aligned.Category = "crypto"
	other := aligned
	other.Category = "sports"

	alignedConf, _ := s.Score(q, aligned)
	otherConf, _ := s.Score(q, other)
	if alignedConf <= otherConf {
		t.Errorf("aligned category should outscore mismatched: %g vs %g", alignedConf, otherConf)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(StrategyBasic, NewBasicScorer())

	if _, err := r.Get(StrategyBasic); err != nil {
		t.Errorf("expected registered scorer, got %v", err)
	}
	if _, err := r.Get("missing"); err == nil {
		t.Error("expected error for missing scorer")
	}
	names := r.List()
	if len(names) != 1 || names[0] != StrategyBasic {
		t.Errorf("unexpected names: %v", names)
	}
}

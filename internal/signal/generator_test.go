package signal

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeSentiment returns a canned result so edge math is exact.
type fakeSentiment struct{ result domain.SentimentResult }

func (f fakeSentiment) Analyze(string) domain.SentimentResult { return f.result }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestGenerator(s domain.SentimentResult) *Generator {
	return NewGenerator(fakeSentiment{result: s}, fixedClock{t: testNow})
}

func matchFor(m domain.Market) []domain.MarketMatch {
	return []domain.MarketMatch{{Market: m, Confidence: 0.8}}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGenerate_NoMatches(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentNeutral})

	sig := g.Generate(Input{Text: "nothing tradeable here", SourcesChecked: 2, MarketsAnalyzed: 900})

	if sig.SignalType != domain.SignalTypeUserInterest {
		t.Errorf("SignalType = %q, want user_interest", sig.SignalType)
	}
	if sig.Urgency != domain.UrgencyLow {
		t.Errorf("Urgency = %v, want low", sig.Urgency)
	}
	if sig.Matches == nil || len(sig.Matches) != 0 {
		t.Errorf("Matches = %v, want empty non-nil slice", sig.Matches)
	}
	if sig.SuggestedAction != nil {
		t.Errorf("SuggestedAction = %v, want nil without matches", sig.SuggestedAction)
	}
	if !strings.HasPrefix(sig.EventID, "evt_none_") {
		t.Errorf("EventID = %q, want evt_none_ prefix", sig.EventID)
	}
	if sig.Metadata.SourcesChecked != 2 || sig.Metadata.MarketsAnalyzed != 900 {
		t.Errorf("metadata counters = %d/%d, want 2/900",
			sig.Metadata.SourcesChecked, sig.Metadata.MarketsAnalyzed)
	}
	if sig.Metadata.ModelVersion != ModelVersion {
		t.Errorf("ModelVersion = %q, want %q", sig.Metadata.ModelVersion, ModelVersion)
	}

	again := g.Generate(Input{Text: "nothing tradeable here"})
	if again.EventID != sig.EventID {
		t.Errorf("EventID not stable: %q vs %q", sig.EventID, again.EventID)
	}
}

func TestEventID_KeyedByTopMarket(t *testing.T) {
	m := domain.Market{
		ID:       "polymarket-0x12ab",
		Platform: domain.PlatformPolymarket,
		Category: "crypto",
	}
	matches := matchFor(m)

	a := EventID("bitcoin is ripping", matches)
	b := EventID("completely different phrasing", matches)
	if a != b {
		t.Errorf("same top market produced different ids: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "evt_crypto_") {
		t.Errorf("EventID = %q, want evt_crypto_ prefix", a)
	}
}

func TestGenerate_ArbitrageSpreadForcesCritical(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentNeutral})
	arb := &domain.ArbitrageOpportunity{Spread: 0.06}

	sig := g.Generate(Input{
		Text:      "any text",
		Matches:   matchFor(domain.Market{ID: "polymarket-1", YesPrice: 0.5}),
		Arbitrage: arb,
	})

	if sig.Urgency != domain.UrgencyCritical {
		t.Errorf("Urgency = %v, want critical for spread above 0.05", sig.Urgency)
	}
	if sig.SignalType != domain.SignalTypeArbitrage {
		t.Errorf("SignalType = %q, want arbitrage", sig.SignalType)
	}
	if sig.Arbitrage != arb {
		t.Error("arbitrage context not attached to signal")
	}
}

func TestGenerate_ModerateArbSpreadIsHigh(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentNeutral})

	sig := g.Generate(Input{
		Text:      "any text",
		Matches:   matchFor(domain.Market{ID: "polymarket-1", YesPrice: 0.5}),
		Arbitrage: &domain.ArbitrageOpportunity{Spread: 0.04},
	})

	if sig.Urgency != domain.UrgencyHigh {
		t.Errorf("Urgency = %v, want high for spread in (0.03, 0.05]", sig.Urgency)
	}
}

func TestGenerate_BullishEdgeSuggestsYes(t *testing.T) {
	// implied = 0.5 + 0.8*0.4 = 0.82, edge = 0.8 * |0.82 - 0.5| = 0.256.
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentBullish, Confidence: 0.8})
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.5, Category: "crypto"}

	sig := g.Generate(Input{Text: "bitcoin looks strong today", Matches: matchFor(m)})

	if sig.Urgency != domain.UrgencyHigh {
		t.Errorf("Urgency = %v, want high", sig.Urgency)
	}
	if sig.SignalType != domain.SignalTypeSentimentShift {
		t.Errorf("SignalType = %q, want sentiment_shift", sig.SignalType)
	}
	act := sig.SuggestedAction
	if act == nil {
		t.Fatal("SuggestedAction is nil")
	}
	if act.Direction != domain.DirectionYes {
		t.Errorf("Direction = %q, want YES", act.Direction)
	}
	if !approx(act.Edge, 0.256) {
		t.Errorf("Edge = %v, want 0.256", act.Edge)
	}
	if !approx(act.Confidence, 0.256*1.2) {
		t.Errorf("Confidence = %v, want edge amplified by 1.2", act.Confidence)
	}
	if !strings.Contains(act.Reasoning, "underpriced") {
		t.Errorf("Reasoning = %q, want underpriced rationale", act.Reasoning)
	}
}

func TestGenerate_BearishEdgeSuggestsNo(t *testing.T) {
	// implied = 0.5 - 0.8*0.4 = 0.18, edge = 0.8 * |0.18 - 0.6| = 0.336.
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentBearish, Confidence: 0.8})
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.6}

	sig := g.Generate(Input{Text: "this is going to zero", Matches: matchFor(m)})

	act := sig.SuggestedAction
	if act == nil {
		t.Fatal("SuggestedAction is nil")
	}
	if act.Direction != domain.DirectionNo {
		t.Errorf("Direction = %q, want NO", act.Direction)
	}
	if !strings.Contains(act.Reasoning, "overpriced") {
		t.Errorf("Reasoning = %q, want overpriced rationale", act.Reasoning)
	}
}

func TestGenerate_InsufficientEdgeHolds(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentNeutral, Confidence: 1})
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.5}

	sig := g.Generate(Input{Text: "people are talking about this", Matches: matchFor(m)})

	if sig.Urgency != domain.UrgencyLow {
		t.Errorf("Urgency = %v, want low", sig.Urgency)
	}
	if sig.SignalType != domain.SignalTypeUserInterest {
		t.Errorf("SignalType = %q, want user_interest", sig.SignalType)
	}
	act := sig.SuggestedAction
	if act == nil {
		t.Fatal("SuggestedAction is nil")
	}
	if act.Direction != domain.DirectionHold {
		t.Errorf("Direction = %q, want HOLD", act.Direction)
	}
	if act.Reasoning != "Insufficient edge to justify a trade" {
		t.Errorf("Reasoning = %q", act.Reasoning)
	}
}

func TestGenerate_BreakingNewsClassification(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentNeutral})
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.5}

	sig := g.Generate(Input{Text: "BREAKING: fed decision moved up", Matches: matchFor(m)})

	if sig.SignalType != domain.SignalTypeNewsEvent {
		t.Errorf("SignalType = %q, want news_event", sig.SignalType)
	}
}

func TestGenerate_CriticalOnEdgeVolumeAndExpiry(t *testing.T) {
	// implied = 0.5 + 0.9*0.4 = 0.86, edge = 0.9 * 0.36 = 0.324.
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentBullish, Confidence: 0.9})
	end := testNow.Add(3 * 24 * time.Hour)
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.5, Volume24h: 750_000, EndDate: &end}

	sig := g.Generate(Input{Text: "this resolves friday and looks certain", Matches: matchFor(m)})

	if sig.Urgency != domain.UrgencyCritical {
		t.Errorf("Urgency = %v, want critical", sig.Urgency)
	}
	act := sig.SuggestedAction
	if act == nil {
		t.Fatal("SuggestedAction is nil")
	}
	if !approx(act.Confidence, 0.324*1.5) {
		t.Errorf("Confidence = %v, want edge amplified by 1.5", act.Confidence)
	}
}

func TestGenerate_ExpiryFarAwayStaysHigh(t *testing.T) {
	g := newTestGenerator(domain.SentimentResult{Sentiment: domain.SentimentBullish, Confidence: 0.9})
	end := testNow.Add(60 * 24 * time.Hour)
	m := domain.Market{ID: "polymarket-1", YesPrice: 0.5, Volume24h: 750_000, EndDate: &end}

	sig := g.Generate(Input{Text: "big conviction but months out", Matches: matchFor(m)})

	if sig.Urgency != domain.UrgencyHigh {
		t.Errorf("Urgency = %v, want high when expiry is distant", sig.Urgency)
	}
}

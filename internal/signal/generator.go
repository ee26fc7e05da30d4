// Package signal turns match, sentiment and arbitrage outputs into one
// classified trading signal. Generation is a pure orchestration step with no
// persisted state between invocations.
package signal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// ModelVersion is reported in signal metadata so downstream consumers can
// detect scoring changes.
const ModelVersion = "keyword_matcher_v2.0"

// Edge and urgency thresholds.
const (
	minActionEdge     = 0.10
	criticalEdge      = 0.15
	mediumEdge        = 0.05
	criticalVolume    = 500_000
	criticalArbSpread = 0.05
	highArbSpread     = 0.03
	criticalAmplifier = 1.5
	criticalConfCap   = 0.95
	highAmplifier     = 1.2
	highConfCap       = 0.9
	expirySoonDays    = 7
)

// breakingKeywords mark text as breaking news for signal classification.
var breakingKeywords = []string{
	"breaking", "just in", "announced", "confirmed", "official",
	"reports", "alert", "urgent", "developing",
}

// SentimentAnalyzer scores text direction; satisfied by text.SentimentAnalyzer.
type SentimentAnalyzer interface {
	Analyze(text string) domain.SentimentResult
}

// Input carries everything one signal generation needs. SourcesChecked and
// MarketsAnalyzed are pass-through counters for the metadata block.
type Input struct {
	Text            string
	Matches         []domain.MarketMatch
	Arbitrage       *domain.ArbitrageOpportunity
	SourcesChecked  int
	MarketsAnalyzed int
}

// Generator builds trading signals. The clock is injected so urgency and
// processing-time computations are testable.
type Generator struct {
	sentiment SentimentAnalyzer
	clock     domain.Clock
}

func NewGenerator(sentiment SentimentAnalyzer, clock domain.Clock) *Generator {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Generator{sentiment: sentiment, clock: clock}
}

// Generate produces the terminal TradingSignal. With no matches it returns a
// minimal low-urgency user_interest signal keyed by a text hash; otherwise
// the top match drives edge, urgency and the suggested action.
func (g *Generator) Generate(in Input) domain.TradingSignal {
	start := g.clock.Now()

	if len(in.Matches) == 0 {
		return domain.TradingSignal{
			EventID:    EventID(in.Text, nil),
			SignalType: domain.SignalTypeUserInterest,
			Urgency:    domain.UrgencyLow,
			Matches:    []domain.MarketMatch{},
			Metadata:   g.metadata(start, in),
		}
	}

	sentiment := g.sentiment.Analyze(in.Text)
	top := in.Matches[0]
	edge := computeEdge(top.Market, sentiment)

	urgency := g.computeUrgency(edge, top.Market, in.Arbitrage)
	signalType := classify(in.Text, sentiment, edge, in.Arbitrage != nil)
	action := suggestAction(top.Market, sentiment, edge, urgency)

	return domain.TradingSignal{
		EventID:         EventID(in.Text, in.Matches),
		SignalType:      signalType,
		Urgency:         urgency,
		Matches:         in.Matches,
		SuggestedAction: &action,
		Sentiment:       &sentiment,
		Arbitrage:       in.Arbitrage,
		Metadata:        g.metadata(start, in),
	}
}

func (g *Generator) metadata(start time.Time, in Input) domain.SignalMetadata {
	return domain.SignalMetadata{
		ProcessingTimeMs: g.clock.Now().Sub(start).Milliseconds(),
		SourcesChecked:   in.SourcesChecked,
		MarketsAnalyzed:  in.MarketsAnalyzed,
		ModelVersion:     ModelVersion,
	}
}

// EventID returns a deterministic id for deduplication. Without matches it
// hashes the lowercased text; with matches it hashes the top market's
// platform-qualified id so the same market always yields the same id
// regardless of input phrasing.
func EventID(text string, matches []domain.MarketMatch) string {
	if len(matches) == 0 {
		return "evt_none_" + hash8(strings.ToLower(text))
	}
	top := matches[0].Market
	return fmt.Sprintf("evt_%s_%s", top.Category, hash8(string(top.Platform)+"_"+top.ID))
}

func hash8(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// impliedProbability maps sentiment to a probability: neutral pins 0.5,
// bullish ranges up to 0.9 and bearish down to 0.1 with confidence.
func impliedProbability(s domain.SentimentResult) float64 {
	switch s.Sentiment {
	case domain.SentimentBullish:
		return 0.5 + s.Confidence*0.4
	case domain.SentimentBearish:
		return 0.5 - s.Confidence*0.4
	}
	return 0.5
}

// computeEdge weights the implied-vs-market price gap by sentiment confidence.
func computeEdge(m domain.Market, s domain.SentimentResult) float64 {
	diff := impliedProbability(s) - m.YesPrice
	if diff < 0 {
		diff = -diff
	}
	return s.Confidence * diff
}

func (g *Generator) computeUrgency(edge float64, m domain.Market, arb *domain.ArbitrageOpportunity) domain.Urgency {
	if arb != nil && arb.Spread > criticalArbSpread {
		return domain.UrgencyCritical
	}
	if edge > criticalEdge && m.Volume24h > criticalVolume &&
		m.ExpiresWithin(g.clock.Now(), expirySoonDays*24*time.Hour) {
		return domain.UrgencyCritical
	}
	if edge > minActionEdge {
		return domain.UrgencyHigh
	}
	if arb != nil && arb.Spread > highArbSpread {
		return domain.UrgencyHigh
	}
	if edge > mediumEdge {
		return domain.UrgencyMedium
	}
	return domain.UrgencyLow
}

func classify(text string, s domain.SentimentResult, edge float64, hasArb bool) domain.SignalType {
	if hasArb {
		return domain.SignalTypeArbitrage
	}
	if isBreakingNews(text) {
		return domain.SignalTypeNewsEvent
	}
	if edge > minActionEdge && s.Sentiment != domain.SentimentNeutral {
		return domain.SignalTypeSentimentShift
	}
	return domain.SignalTypeUserInterest
}

func isBreakingNews(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range breakingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func suggestAction(m domain.Market, s domain.SentimentResult, edge float64, urgency domain.Urgency) domain.SuggestedAction {
	if edge < minActionEdge {
		return domain.SuggestedAction{
			Direction: domain.DirectionHold,
			Reasoning: "Insufficient edge to justify a trade",
		}
	}

	implied := impliedProbability(s)
	price := m.YesPrice

	var direction domain.Direction
	var reasoning string
	switch {
	case s.Sentiment == domain.SentimentNeutral:
		direction = domain.DirectionHold
		reasoning = "Neutral sentiment, no clear directional bias"
	case s.Sentiment == domain.SentimentBullish && implied > price:
		direction = domain.DirectionYes
		reasoning = fmt.Sprintf("Bullish sentiment (%.0f%% confidence) suggests YES is underpriced at %.0f%%",
			s.Confidence*100, price*100)
	case s.Sentiment == domain.SentimentBullish:
		direction = domain.DirectionHold
		reasoning = "Bullish sentiment but YES already priced high"
	case implied < price:
		direction = domain.DirectionNo
		reasoning = fmt.Sprintf("Bearish sentiment (%.0f%% confidence) suggests YES is overpriced at %.0f%%",
			s.Confidence*100, price*100)
	default:
		direction = domain.DirectionHold
		reasoning = "Bearish sentiment but YES already priced low"
	}

	confidence := edge
	switch urgency {
	case domain.UrgencyCritical:
		if confidence = edge * criticalAmplifier; confidence > criticalConfCap {
			confidence = criticalConfCap
		}
	case domain.UrgencyHigh:
		if confidence = edge * highAmplifier; confidence > highConfCap {
			confidence = highConfCap
		}
	}

	return domain.SuggestedAction{
		Direction:  direction,
		Confidence: confidence,
		Edge:       edge,
		Reasoning:  reasoning,
	}
}

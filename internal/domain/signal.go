package domain

import (
	"encoding/json"
	"fmt"
)

// SignalType classifies what kind of opportunity a trading signal represents.
type SignalType string

const (
	SignalTypeArbitrage      SignalType = "arbitrage"
	SignalTypeNewsEvent      SignalType = "news_event"
	SignalTypeSentimentShift SignalType = "sentiment_shift"
	SignalTypeUserInterest   SignalType = "user_interest"
)

// Urgency is a totally ordered actionability tier. Comparisons with < and >
// are meaningful: UrgencyLow < UrgencyMedium < UrgencyHigh < UrgencyCritical.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

var urgencyNames = [...]string{"low", "medium", "high", "critical"}

// String returns the wire name of the urgency tier.
func (u Urgency) String() string {
	if u < UrgencyLow || u > UrgencyCritical {
		return "unknown"
	}
	return urgencyNames[u]
}

// MarshalJSON encodes the urgency as its string name.
func (u Urgency) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes an urgency from its string name.
func (u *Urgency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range urgencyNames {
		if name == s {
			*u = Urgency(i)
			return nil
		}
	}
	return fmt.Errorf("unknown urgency %q", s)
}

// Direction is the suggested trade direction.
type Direction string

const (
	DirectionYes  Direction = "YES"
	DirectionNo   Direction = "NO"
	DirectionHold Direction = "HOLD"
)

// SuggestedAction is the directional recommendation attached to a signal.
type SuggestedAction struct {
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"` // 0..1
	Edge       float64   `json:"edge"`
	Reasoning  string    `json:"reasoning"`
}

// SignalMetadata carries processing statistics for downstream consumers.
type SignalMetadata struct {
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	SourcesChecked   int    `json:"sources_checked"`
	MarketsAnalyzed  int    `json:"markets_analyzed"`
	ModelVersion     string `json:"model_version"`
}

// TradingSignal is the terminal output of the analysis pipeline: a ranked,
// classified decision object synthesized from matching, sentiment, and
// arbitrage context. Signals are created fresh per request and hold no state
// between invocations.
type TradingSignal struct {
	EventID         string                `json:"event_id"`
	SignalType      SignalType            `json:"signal_type"`
	Urgency         Urgency               `json:"urgency"`
	Matches         []MarketMatch         `json:"matches"`
	SuggestedAction *SuggestedAction      `json:"suggested_action,omitempty"`
	Sentiment       *SentimentResult      `json:"sentiment,omitempty"`
	Arbitrage       *ArbitrageOpportunity `json:"arbitrage,omitempty"`
	Metadata        SignalMetadata        `json:"metadata"`
}

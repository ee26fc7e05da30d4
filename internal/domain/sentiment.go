package domain

// Sentiment is the directional read of a piece of text.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// SentimentResult is the output of the sentiment analyzer. For bullish and
// bearish results, Confidence is the winning side's share of the total
// sentiment score. For neutral results with mixed evidence, Confidence is a
// "how mixed" measure (1 - |bullishRatio - bearishRatio|), not directional.
type SentimentResult struct {
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"` // 0..1
}

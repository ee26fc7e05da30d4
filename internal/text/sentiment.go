package text

import (
	"math"
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// SentimentAnalyzer scores text against the lexicon's bullish and bearish
// word tables. It is a plain keyword model: one token of lookback for
// negation and strong modifiers, no stemming.
type SentimentAnalyzer struct {
	lex *Lexicon
}

func NewSentimentAnalyzer(lex *Lexicon) *SentimentAnalyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &SentimentAnalyzer{lex: lex}
}

// Analyze classifies text as bullish, bearish or neutral. A preceding
// negation flips a keyword's polarity; a preceding strong modifier doubles
// its weight. Classification requires a dominant side above 60 percent; a
// mixed or empty signal comes back neutral, with neutral confidence equal
// to one minus the gap between the two ratios.
func (a *SentimentAnalyzer) Analyze(text string) domain.SentimentResult {
	words := strings.Fields(strings.ToLower(text))

	var bullish, bearish float64
	for i, raw := range words {
		word := stripNonAlpha(raw)
		prev := ""
		if i > 0 {
			prev = stripNonAlpha(words[i-1])
		}

		_, negated := a.lex.Negations[prev]
		weight := 1.0
		if _, strong := a.lex.StrongModifiers[prev]; strong {
			weight = 2.0
		}

		if _, ok := a.lex.Bullish[word]; ok {
			if negated {
				bearish += weight
			} else {
				bullish += weight
			}
		}
		if _, ok := a.lex.Bearish[word]; ok {
			if negated {
				bullish += weight
			} else {
				bearish += weight
			}
		}
	}

	total := bullish + bearish
	if total == 0 {
		return domain.SentimentResult{Sentiment: domain.SentimentNeutral, Confidence: 0}
	}

	bullRatio := bullish / total
	bearRatio := bearish / total

	switch {
	case bullRatio > 0.6:
		return domain.SentimentResult{Sentiment: domain.SentimentBullish, Confidence: bullRatio}
	case bearRatio > 0.6:
		return domain.SentimentResult{Sentiment: domain.SentimentBearish, Confidence: bearRatio}
	}
	return domain.SentimentResult{
		Sentiment:  domain.SentimentNeutral,
		Confidence: 1 - math.Abs(bullRatio-bearRatio),
	}
}

// stripNonAlpha drops everything but ascii letters, mirroring how contractions
// like "don't" collapse to "dont" before lexicon lookup.
func stripNonAlpha(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

package text

import (
	"math"
	"testing"

	"github.com/quantpulse/marketsignal/internal/domain"
)

func TestAnalyze_Bullish(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	res := a.Analyze("BTC is going to moon, massive rally incoming, easy win")
	if res.Sentiment != domain.SentimentBullish {
		t.Fatalf("expected bullish, got %s", res.Sentiment)
	}
	if res.Confidence <= 0.6 {
		t.Errorf("expected confidence > 0.6, got %g", res.Confidence)
	}
}

func TestAnalyze_Bearish(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	res := a.Analyze("this bubble will crash and everyone will lose everything")
	if res.Sentiment != domain.SentimentBearish {
		t.Fatalf("expected bearish, got %s", res.Sentiment)
	}
}

func TestAnalyze_NegationFlipsPolarity(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	// "not" immediately precedes "bullish", so it counts as bearish.
	res := a.Analyze("I am not bullish on this")
	if res.Sentiment != domain.SentimentBearish {
		t.Fatalf("expected bearish after negation, got %s", res.Sentiment)
	}
}

func TestAnalyze_StrippedContractionNegates(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	// "don't" collapses to "dont" before lookup and still negates.
	res := a.Analyze("don't buy")
	if res.Sentiment != domain.SentimentBearish {
		t.Fatalf("expected bearish, got %s", res.Sentiment)
	}
}

func TestAnalyze_StrongModifierDoublesWeight(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	// One doubled bullish word against one bearish word: 2/3 > 0.6.
	res := a.Analyze("extremely bullish despite the crash")
	if res.Sentiment != domain.SentimentBullish {
		t.Fatalf("expected bullish, got %s", res.Sentiment)
	}
	if math.Abs(res.Confidence-2.0/3.0) > 1e-9 {
		t.Errorf("expected confidence 2/3, got %g", res.Confidence)
	}
}

func TestAnalyze_NegationOnlyAppliesToSentimentWords(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	// "not" precedes "going", which carries no sentiment; nothing matches.
	res := a.Analyze("This is definitely not going to happen")
	if res.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral, got %s", res.Sentiment)
	}
	if res.Confidence != 0 {
		t.Errorf("expected confidence 0, got %g", res.Confidence)
	}
}

func TestAnalyze_MixedSignalIsNeutral(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	// One bullish, one bearish: neither side clears 60 percent.
	res := a.Analyze("could rally or could crash")
	if res.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral, got %s", res.Sentiment)
	}
	// Equal ratios: neutral confidence is 1 - |0.5 - 0.5| = 1.
	if math.Abs(res.Confidence-1) > 1e-9 {
		t.Errorf("expected confidence 1, got %g", res.Confidence)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := NewSentimentAnalyzer(nil)
	res := a.Analyze("")
	if res.Sentiment != domain.SentimentNeutral || res.Confidence != 0 {
		t.Errorf("expected neutral/0, got %s/%g", res.Sentiment, res.Confidence)
	}
}

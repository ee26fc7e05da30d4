package match

import (
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// BasicScorer is the default scoring path: exact and partial keyword hits,
// normalized by the market's keyword count, plus a small multi-match boost.
type BasicScorer struct{}

var _ Scorer = (*BasicScorer)(nil)

func NewBasicScorer() *BasicScorer { return &BasicScorer{} }

func (*BasicScorer) Name() string { return StrategyBasic }

// Score classifies every query-token x market-keyword pair as exact
// (case-insensitive equality) or partial (substring containment either way)
// and combines them as exact*0.7 + partial*0.3 over the keyword count. A
// boost of 0.1 per matched keyword, capped at 0.3, rewards multi-keyword
// evidence. The result is clamped to [0,1].
func (*BasicScorer) Score(q Query, m domain.Market) (float64, []string) {
	if len(m.Keywords) == 0 {
		return 0, nil
	}

	var exact, partial int
	var matched []string
	for _, kw := range m.Keywords {
		kwLower := strings.ToLower(kw)
		hit := false
		isExact := false
		for _, tok := range q.Tokens {
			if tok == kwLower {
				isExact = true
				hit = true
				break
			}
			if strings.Contains(kwLower, tok) || strings.Contains(tok, kwLower) {
				hit = true
			}
		}
		if !hit {
			continue
		}
		if isExact {
			exact++
		} else {
			partial++
		}
		matched = append(matched, kwLower)
	}

	raw := (float64(exact)*0.7 + float64(partial)*0.3) / float64(len(m.Keywords))
	boost := float64(len(matched)) * 0.1
	if boost > 0.3 {
		boost = 0.3
	}
	conf := raw + boost
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf, matched
}

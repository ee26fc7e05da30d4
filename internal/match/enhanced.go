package match

import (
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/text"
)

// denominatorCap bounds the normalization denominator so markets with large
// generated keyword lists are not scored artificially low. Without it a
// strong three-keyword hit on a 25-keyword market lands below threshold.
const denominatorCap = 5

// categoryClusters groups related terms for the coherence bonus: several
// matches from one cluster signal strong topical focus.
var categoryClusters = map[string]map[string]struct{}{
	"gaming":   clusterSet("gaming", "video game", "console", "esports", "pc", "steam", "playstation", "xbox", "nintendo", "switch", "gta", "minecraft", "valorant"),
	"crypto":   clusterSet("crypto", "cryptocurrency", "bitcoin", "ethereum", "btc", "eth", "blockchain", "defi", "web3", "solana", "nft"),
	"music":    clusterSet("music", "album", "tour", "concert", "artist", "song", "single", "spotify", "streaming music", "coachella", "festival"),
	"tech":     clusterSet("tech", "technology", "ai", "software", "startup", "silicon valley", "coding", "developer", "nvidia", "openai"),
	"sports":   clusterSet("sports", "team", "championship", "playoff", "season", "athlete", "coach", "league", "nfl", "nba"),
	"politics": clusterSet("politics", "election", "congress", "president", "senate", "house", "vote", "bill", "policy"),
	"finance":  clusterSet("stock", "stocks", "market", "trading", "wall street", "ipo", "shares", "investor"),
}

func clusterSet(terms ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

// EnhancedScorer distinguishes exact, synonym and title-word hits, applies a
// match-type dependent minimum threshold, and adds coverage, phrase, category
// coherence and recency bonuses on top of the normalized base score.
type EnhancedScorer struct {
	lex   *text.Lexicon
	clock domain.Clock
}

var _ Scorer = (*EnhancedScorer)(nil)

func NewEnhancedScorer(lex *text.Lexicon, clock domain.Clock) *EnhancedScorer {
	if lex == nil {
		lex = text.DefaultLexicon()
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &EnhancedScorer{lex: lex, clock: clock}
}

func (*EnhancedScorer) Name() string { return StrategyEnhanced }

func (s *EnhancedScorer) Score(q Query, m domain.Market) (float64, []string) {
	if len(m.Keywords) == 0 {
		return 0, nil
	}

	var exact, synonym, title, multiWord int
	matchedSet := make(map[string]struct{})
	var matched []string
	add := func(kw string) {
		matchedSet[kw] = struct{}{}
		matched = append(matched, kw)
	}

	for _, kw := range m.Keywords {
		kwLower := strings.ToLower(kw)
		if _, dup := matchedSet[kwLower]; dup {
			continue
		}
		if _, ok := q.Expanded[kwLower]; ok {
			if _, raw := q.TokenSet[kwLower]; raw {
				exact++
			} else {
				synonym++
			}
			if strings.Contains(kwLower, " ") {
				multiWord++
			}
			add(kwLower)
		}
	}

	// Title-word fallback: tweet tokens that appear in the market title but
	// were missed by keyword generation score at the lowest weight.
	for _, tt := range s.titleTokens(m.Title) {
		if _, dup := matchedSet[tt]; dup {
			continue
		}
		if _, ok := q.Expanded[tt]; ok {
			title++
			add(tt)
		}
	}

	weighted := float64(exact)*1.0 + float64(synonym)*0.5 + float64(title)*0.15
	denom := len(m.Keywords)
	if denom > denominatorCap {
		denom = denominatorCap
	}
	normalized := weighted / float64(denom)

	if normalized < minThreshold(exact, synonym, multiWord) {
		return 0, nil
	}

	totalMatched := exact + synonym + title
	bonus := 0.0
	if totalMatched > 0 {
		coverage := float64(totalMatched-1) * 0.05
		if coverage > 0.2 {
			coverage = 0.2
		}
		bonus += coverage
	}
	phrase := float64(multiWord) * 0.12
	if phrase > 0.3 {
		phrase = 0.3
	}
	bonus += phrase
	bonus += coherenceBonus(matched, m.Category)
	bonus += s.recencyBoost(m)

	conf := normalized + bonus
	if conf > 1 {
		conf = 1
	}
	return conf, matched
}

// minThreshold tightens the confidence floor as the evidence weakens: phrase
// hits backed by exact matches need less, synonym-only matches need more.
func minThreshold(exact, synonym, multiWord int) float64 {
	switch {
	case multiWord >= 1 && exact >= 2:
		return 0.15
	case exact >= 3:
		return 0.18
	case exact >= 2 || (exact >= 1 && synonym >= 2):
		return 0.22
	}
	return 0.28
}

func coherenceBonus(matchedKeywords []string, marketCategory string) float64 {
	for category, terms := range categoryClusters {
		n := 0
		for _, kw := range matchedKeywords {
			if _, ok := terms[strings.ToLower(kw)]; ok {
				n++
			}
		}
		if n >= 3 {
			if marketCategory == category {
				return 0.15
			}
			return 0.1
		}
		if n == 2 {
			if marketCategory == category {
				return 0.08
			}
			return 0.05
		}
	}
	return 0
}

// recencyBoost favors markets resolving soon.
func (s *EnhancedScorer) recencyBoost(m domain.Market) float64 {
	if m.EndDate == nil {
		return 0
	}
	days := m.EndDate.Sub(s.clock.Now()).Hours() / 24
	switch {
	case days > 0 && days <= 7:
		return 0.1
	case days > 0 && days <= 30:
		return 0.05
	}
	return 0
}

func (s *EnhancedScorer) titleTokens(title string) []string {
	var out []string
	for _, w := range strings.Fields(normalizeTitleWords(title)) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := s.lex.TitleStops[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func normalizeTitleWords(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

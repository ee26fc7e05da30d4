package match

import (
	"fmt"
	"sort"

	"github.com/quantpulse/marketsignal/internal/domain"
	"github.com/quantpulse/marketsignal/internal/text"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultMinConfidence = 0.3
	DefaultMaxResults    = 5
)

// Options tunes a single Match call.
type Options struct {
	// Strategy selects a registered scorer; empty means basic.
	Strategy string
	// MinConfidence drops matches scoring below it; zero means the default.
	MinConfidence float64
	// MaxResults truncates the ranked list; zero means the default.
	MaxResults int
}

// Matcher turns text into a ranked list of market matches using a registered
// scoring strategy. It is stateless across calls and safe for concurrent use.
type Matcher struct {
	extractor *text.Extractor
	syn       text.SynonymTable
	registry  *Registry
}

func NewMatcher(extractor *text.Extractor, syn text.SynonymTable, registry *Registry) *Matcher {
	if extractor == nil {
		extractor = text.NewExtractor(nil)
	}
	if syn == nil {
		syn = text.DefaultSynonyms()
	}
	return &Matcher{extractor: extractor, syn: syn, registry: registry}
}

// NewDefaultMatcher returns a matcher with both scoring strategies
// registered and the default lexicon and synonym table.
func NewDefaultMatcher(clock domain.Clock) *Matcher {
	lex := text.DefaultLexicon()
	reg := NewRegistry()
	reg.Register(StrategyBasic, NewBasicScorer())
	reg.Register(StrategyEnhanced, NewEnhancedScorer(lex, clock))
	return NewMatcher(text.NewExtractor(lex), text.DefaultSynonyms(), reg)
}

// Match extracts tokens from input, scores every market, and returns matches
// at or above the confidence floor, sorted by confidence descending. Ties
// keep input order. An input with no extractable tokens matches nothing.
func (m *Matcher) Match(input string, markets []domain.Market, opts Options) ([]domain.MarketMatch, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyBasic
	}
	scorer, err := m.registry.Get(strategy)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	minConf := opts.MinConfidence
	if minConf == 0 {
		minConf = DefaultMinConfidence
	}
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}

	q := m.BuildQuery(input)
	if len(q.Tokens) == 0 {
		return nil, nil
	}

	var matches []domain.MarketMatch
	for _, market := range markets {
		conf, matched := scorer.Score(q, market)
		if conf >= minConf {
			matches = append(matches, domain.MarketMatch{
				Market:          market,
				Confidence:      conf,
				MatchedKeywords: matched,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// BuildQuery tokenizes input once and precomputes the raw and
// synonym-expanded token sets shared by all scorers.
func (m *Matcher) BuildQuery(input string) Query {
	tokens := m.extractor.Keywords(input)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}
	expanded := make(map[string]struct{}, len(tokens)*2)
	for _, t := range m.syn.ExpandAll(tokens) {
		expanded[t] = struct{}{}
	}
	return Query{Text: input, Tokens: tokens, TokenSet: tokenSet, Expanded: expanded}
}

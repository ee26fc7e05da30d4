// Package keywords derives a market's search keywords from its title and
// description at ingestion time. One platform ships keyword arrays with its
// listings and the other does not, so every market goes through the same
// generator and the matcher scores a uniform keyword surface.
package keywords

import (
	"strings"

	"github.com/quantpulse/marketsignal/internal/text"
)

// MaxKeywords caps a market's generated keyword list so verbose descriptions
// cannot dilute the matcher's normalization denominator.
const MaxKeywords = 20

// descriptionPrefix is how much of the description is mined when the title
// alone leaves the list under the cap.
const descriptionPrefix = 300

// Generator builds market keyword lists. Title-derived keywords always take
// priority over description-derived ones when the cap is reached.
type Generator struct {
	lex *text.Lexicon
	syn text.SynonymTable
}

func NewGenerator(lex *text.Lexicon, syn text.SynonymTable) *Generator {
	if lex == nil {
		lex = text.DefaultLexicon()
	}
	if syn == nil {
		syn = text.DefaultSynonyms()
	}
	return &Generator{lex: lex, syn: syn}
}

// Generate returns at most MaxKeywords keywords for a market. Title unigrams
// pass a stop-word filter; bigram and trigram windows are kept only when they
// exactly match a synonym-table key. Every kept token is expanded through the
// synonym table, forward only and a single hop. Description unigrams backfill
// remaining slots from the first 300 characters.
func (g *Generator) Generate(title, description string) []string {
	seen := make(map[string]struct{}, MaxKeywords)
	out := make([]string, 0, MaxKeywords)
	add := func(kw string) {
		if len(out) >= MaxKeywords {
			return
		}
		if _, dup := seen[kw]; dup {
			return
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}

	g.collect(title, add)

	if len(out) < MaxKeywords && description != "" {
		prefix := description
		if len(prefix) > descriptionPrefix {
			prefix = prefix[:descriptionPrefix]
		}
		g.collect(prefix, add)
	}
	return out
}

// collect feeds stop-filtered unigrams and synonym-key phrases, plus their
// one-hop expansions, into add in source order.
func (g *Generator) collect(source string, add func(string)) {
	for _, tok := range text.NGrams(clean(source)) {
		if strings.Contains(tok, " ") {
			// Phrases only survive when the synonym table knows them.
			if len(tok) <= 4 {
				continue
			}
			if _, known := g.syn[tok]; !known {
				continue
			}
		} else {
			if len(tok) <= 2 {
				continue
			}
			if _, stop := g.lex.TitleStops[tok]; stop {
				continue
			}
		}
		add(tok)
		for _, syn := range g.syn.Expand(tok) {
			add(syn)
		}
	}
}

// clean lowercases and strips punctuation, preserving & and apostrophes so
// tokens like "s&p" and "don't" survive.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '&', r == '\'':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

package text

import (
	"regexp"
	"strings"
)

var (
	urlRe     = regexp.MustCompile(`https?://\S+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	// preserve & for "s&p" and apostrophes inside words
	nonWordRe = regexp.MustCompile(`[^a-z0-9\s&']`)
	spaceRe   = regexp.MustCompile(`\s+`)

	dollarTickerRe = regexp.MustCompile(`\$([A-Z]{2,5})\b`)
	capsWordRe     = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
	tickerShapeRe  = regexp.MustCompile(`^[A-Z]{3,5}$`)
	namePairRe     = regexp.MustCompile(`\b([A-Z][a-z]+(?:'[A-Z][a-z]+)?)\s+([A-Z][a-z]+(?:'[A-Z][a-z]+)?)\b`)

	monthYearRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec|May)\s+(202[4-9]|20[3-9]\d)\b`)
	quarterRe   = regexp.MustCompile(`(?i)\bQ([1-4])\s*(202[4-9]|20[3-9]\d)\b`)
	yearRe      = regexp.MustCompile(`\b(202[4-9]|20[3-9]\d)\b`)
)

// Entities holds the named entities pulled out of a piece of text. All is the
// concatenation of the other lists in extraction order.
type Entities struct {
	People        []string `json:"people"`
	Tickers       []string `json:"tickers"`
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
	All           []string `json:"all"`
}

// Extractor tokenizes free text and recognizes entities against a Lexicon.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	lex *Lexicon
}

func NewExtractor(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Extractor{lex: lex}
}

// Keywords extracts matchable tokens from raw text: unigrams, bigrams and
// trigrams over the cleaned text plus any hashtag bodies. Unigrams must be
// longer than two characters and pass the stop-word and noise-word filters;
// multi-word phrases only need length (phrases are inherently specific).
// The result is deduplicated, preserving first-seen order.
func (e *Extractor) Keywords(text string) []string {
	normalized := strings.ToLower(text)
	normalized = urlRe.ReplaceAllString(normalized, "")
	normalized = mentionRe.ReplaceAllString(normalized, "")

	var hashtags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		hashtags = append(hashtags, strings.ToLower(m[1]))
	}

	normalized = nonWordRe.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(spaceRe.ReplaceAllString(normalized, " "))

	phrases := NGrams(normalized)

	seen := make(map[string]struct{}, len(phrases)+len(hashtags))
	out := make([]string, 0, len(phrases))
	add := func(tok string) {
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}

	for _, tok := range phrases {
		if strings.Contains(tok, " ") {
			if len(tok) > 4 {
				add(tok)
			}
			continue
		}
		if len(tok) <= 2 {
			continue
		}
		if _, stop := e.lex.StopWords[tok]; stop {
			continue
		}
		if _, noise := e.lex.DomainNoise[tok]; noise {
			continue
		}
		add(tok)
	}
	for _, h := range hashtags {
		add(h)
	}
	return out
}

// NGrams returns the unigrams, bigrams and trigrams of already-cleaned text.
// Multi-word phrases let multi-word synonym keys like "jerome powell" or
// "rate cut" resolve.
func NGrams(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	grams := make([]string, 0, len(words)*3)
	grams = append(grams, words...)
	for i := 0; i+1 < len(words); i++ {
		grams = append(grams, words[i]+" "+words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		grams = append(grams, words[i]+" "+words[i+1]+" "+words[i+2])
	}
	return grams
}

// Entities extracts people, tickers, organizations and dates from text.
func (e *Extractor) Entities(text string) Entities {
	people := e.people(text)
	tickers := e.tickers(text)
	orgs := e.organizations(text)
	dates := e.dates(text)

	all := make([]string, 0, len(people)+len(tickers)+len(orgs)+len(dates))
	all = append(all, people...)
	all = append(all, tickers...)
	all = append(all, orgs...)
	all = append(all, dates...)

	return Entities{
		People:        people,
		Tickers:       tickers,
		Organizations: orgs,
		Dates:         dates,
		All:           all,
	}
}

func (e *Extractor) tickers(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(t string) {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, m := range dollarTickerRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	// Standalone all-caps words that look like tickers, minus common
	// abbreviations like USA and CEO.
	for _, m := range capsWordRe.FindAllStringSubmatch(text, -1) {
		word := m[1]
		if _, excluded := e.lex.TickerExclusions[word]; excluded {
			continue
		}
		if tickerShapeRe.MatchString(word) {
			add(word)
		}
	}
	return out
}

func (e *Extractor) people(text string) []string {
	lower := strings.ToLower(text)
	seen := map[string]struct{}{}
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, person := range e.lex.KnownPeople {
		if strings.Contains(lower, person) {
			add(person)
		}
	}
	// Capitalized word pairs that look like names, excluding well-known
	// place and institution names.
	for _, m := range namePairRe.FindAllStringSubmatch(text, -1) {
		full := strings.ToLower(m[1] + " " + m[2])
		if _, excluded := e.lex.PlaceExclusions[full]; excluded {
			continue
		}
		add(full)
	}
	return out
}

func (e *Extractor) organizations(text string) []string {
	lower := strings.ToLower(text)
	seen := map[string]struct{}{}
	var out []string
	for _, org := range e.lex.Organizations {
		if strings.Contains(lower, org) {
			if _, dup := seen[org]; !dup {
				seen[org] = struct{}{}
				out = append(out, org)
			}
		}
	}
	return out
}

func (e *Extractor) dates(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(d string) {
		if _, dup := seen[d]; !dup {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	for _, m := range monthYearRe.FindAllString(text, -1) {
		add(strings.ToLower(m))
	}
	for _, m := range quarterRe.FindAllStringSubmatch(text, -1) {
		add("q" + m[1] + " " + m[2])
	}
	for _, m := range yearRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	lower := strings.ToLower(text)
	for _, tf := range e.lex.RelativeTimeframes {
		if strings.Contains(lower, tf) {
			add(tf)
		}
	}
	return out
}

// IsEntity reports whether a keyword was recognized as any kind of entity.
// Matchers use it to weight entity keywords above plain tokens.
func IsEntity(keyword string, ents Entities) bool {
	lower := strings.ToLower(keyword)
	for _, p := range ents.People {
		if p == lower {
			return true
		}
	}
	upper := strings.ToUpper(keyword)
	for _, t := range ents.Tickers {
		if t == upper {
			return true
		}
	}
	for _, o := range ents.Organizations {
		if o == lower {
			return true
		}
	}
	for _, d := range ents.Dates {
		if d == lower {
			return true
		}
	}
	return false
}

// HasWordBoundaryMatch reports whether term occurs in text as a whole word.
// Boundaries are non word characters; letters, digits and apostrophes count
// as word characters.
func HasWordBoundaryMatch(text, term string) bool {
	textLower := strings.ToLower(text)
	termLower := strings.ToLower(term)
	if termLower == "" {
		return false
	}
	for idx := strings.Index(textLower, termLower); idx != -1; {
		before := idx == 0 || !isWordChar(textLower[idx-1])
		end := idx + len(termLower)
		after := end >= len(textLower) || !isWordChar(textLower[end])
		if before && after {
			return true
		}
		next := strings.Index(textLower[idx+1:], termLower)
		if next == -1 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '\''
}

package text

import (
	"slices"
	"testing"
)

func TestKeywords_FiltersStopAndNoiseWords(t *testing.T) {
	e := NewExtractor(nil)
	kws := e.Keywords("the market will crash for bitcoin")
	if slices.Contains(kws, "the") || slices.Contains(kws, "will") {
		t.Errorf("stop words leaked into keywords: %v", kws)
	}
	if slices.Contains(kws, "market") {
		t.Errorf("domain noise word leaked into keywords: %v", kws)
	}
	if !slices.Contains(kws, "bitcoin") || !slices.Contains(kws, "crash") {
		t.Errorf("expected bitcoin and crash in keywords, got %v", kws)
	}
}

func TestKeywords_StripsURLsAndMentions(t *testing.T) {
	e := NewExtractor(nil)
	kws := e.Keywords("@whale bitcoin pumping https://example.com/post/123")
	if slices.Contains(kws, "whale") {
		t.Errorf("mention leaked into keywords: %v", kws)
	}
	for _, kw := range kws {
		if kw == "https" || kw == "example" || kw == "com" {
			t.Errorf("URL fragment %q leaked into keywords: %v", kw, kws)
		}
	}
	if !slices.Contains(kws, "bitcoin") {
		t.Errorf("expected bitcoin, got %v", kws)
	}
}

func TestKeywords_HashtagBodiesKept(t *testing.T) {
	e := NewExtractor(nil)
	kws := e.Keywords("big news #Bitcoin #election2028")
	if !slices.Contains(kws, "bitcoin") {
		t.Errorf("expected hashtag body bitcoin, got %v", kws)
	}
	if !slices.Contains(kws, "election2028") {
		t.Errorf("expected hashtag body election2028, got %v", kws)
	}
}

func TestKeywords_MultiWordPhrases(t *testing.T) {
	e := NewExtractor(nil)
	kws := e.Keywords("jerome powell announces rate cut")
	if !slices.Contains(kws, "jerome powell") {
		t.Errorf("expected bigram \"jerome powell\", got %v", kws)
	}
	if !slices.Contains(kws, "rate cut") {
		t.Errorf("expected bigram \"rate cut\", got %v", kws)
	}
}

func TestKeywords_Dedupes(t *testing.T) {
	e := NewExtractor(nil)
	kws := e.Keywords("bitcoin bitcoin bitcoin")
	count := 0
	for _, kw := range kws {
		if kw == "bitcoin" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected bitcoin once, got %d in %v", count, kws)
	}
}

func TestEntities_KnownPerson(t *testing.T) {
	e := NewExtractor(nil)
	ents := e.Entities("Jerome Powell hints at a rate cut")
	if !slices.Contains(ents.People, "jerome powell") {
		t.Errorf("expected jerome powell in people, got %v", ents.People)
	}
}

func TestEntities_PlaceExclusionNotAPerson(t *testing.T) {
	e := NewExtractor(nil)
	ents := e.Entities("New York braces for the storm")
	if slices.Contains(ents.People, "new york") {
		t.Errorf("place name extracted as person: %v", ents.People)
	}
}

func TestEntities_Tickers(t *testing.T) {
	e := NewExtractor(nil)
	ents := e.Entities("$BTC and ETH ripping while the CEO of USA Inc watches")
	if !slices.Contains(ents.Tickers, "BTC") {
		t.Errorf("expected BTC from dollar prefix, got %v", ents.Tickers)
	}
	if !slices.Contains(ents.Tickers, "ETH") {
		t.Errorf("expected standalone ETH, got %v", ents.Tickers)
	}
	if slices.Contains(ents.Tickers, "CEO") || slices.Contains(ents.Tickers, "USA") {
		t.Errorf("excluded abbreviations leaked into tickers: %v", ents.Tickers)
	}
}

func TestEntities_Dates(t *testing.T) {
	e := NewExtractor(nil)
	ents := e.Entities("Fed decision in March 2026, GDP print Q2 2026, all eyes on 2027")
	want := []string{"march 2026", "q2 2026", "2027"}
	for _, w := range want {
		if !slices.Contains(ents.Dates, w) {
			t.Errorf("expected date %q, got %v", w, ents.Dates)
		}
	}
}

func TestEntities_Organizations(t *testing.T) {
	e := NewExtractor(nil)
	ents := e.Entities("The Federal Reserve and OpenAI in one headline")
	if !slices.Contains(ents.Organizations, "federal reserve") {
		t.Errorf("expected federal reserve, got %v", ents.Organizations)
	}
	if !slices.Contains(ents.Organizations, "openai") {
		t.Errorf("expected openai, got %v", ents.Organizations)
	}
}

func TestIsEntity(t *testing.T) {
	ents := Entities{
		People:  []string{"jerome powell"},
		Tickers: []string{"BTC"},
	}
	if !IsEntity("Jerome Powell", ents) {
		t.Error("expected person to be an entity")
	}
	if !IsEntity("btc", ents) {
		t.Error("expected ticker to be an entity (case-insensitive)")
	}
	if IsEntity("bitcoin", ents) {
		t.Error("plain keyword should not be an entity")
	}
}

func TestHasWordBoundaryMatch(t *testing.T) {
	tests := []struct {
		text, term string
		want       bool
	}{
		{"bitcoin is up", "bitcoin", true},
		{"Bitcoin is up", "bitcoin", true},
		{"bitcoins are up", "bitcoin", false},
		{"the abitcoin token", "bitcoin", false},
		{"eth, btc and sol", "btc", true},
		{"", "btc", false},
		{"btc", "", false},
	}
	for _, tt := range tests {
		if got := HasWordBoundaryMatch(tt.text, tt.term); got != tt.want {
			t.Errorf("HasWordBoundaryMatch(%q, %q) = %v, want %v", tt.text, tt.term, got, tt.want)
		}
	}
}

// Package text provides the pure lexical layer of the analysis pipeline:
// keyword extraction, named-entity extraction, and sentiment scoring. All
// functions are deterministic and side-effect free; the word tables they
// consult are carried in a Lexicon so deployments can extend or swap them
// without touching logic.
package text

// Lexicon bundles every word table used by the extractor and the sentiment
// analyzer. Construct one with DefaultLexicon and override fields as needed.
type Lexicon struct {
	// StopWords are filtered out of extracted query keywords.
	StopWords map[string]struct{}
	// DomainNoise are domain words that appear in nearly every finance or
	// politics post and produce false positives as matching signals.
	DomainNoise map[string]struct{}
	// Organizations is the fixed gazetteer matched by substring.
	Organizations []string
	// KnownPeople is the fixed list of full names matched by substring.
	KnownPeople []string
	// PlaceExclusions are capitalized bigrams that look like person names
	// but are not ("new york", "wall street", ...).
	PlaceExclusions map[string]struct{}
	// TickerExclusions are all-caps tokens that are never tickers.
	TickerExclusions map[string]struct{}
	// RelativeTimeframes are date phrases matched by substring.
	RelativeTimeframes []string
	// TitleStops are filtered when deriving keywords from market titles.
	// Broader than StopWords: market titles share boilerplate like "will",
	// "reach" and bare years that carries no matching signal.
	TitleStops map[string]struct{}

	// Sentiment tables.
	Bullish         map[string]struct{}
	Bearish         map[string]struct{}
	StrongModifiers map[string]struct{}
	Negations       map[string]struct{}
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// DefaultLexicon returns the built-in word tables.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		StopWords: set(
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
			"been", "being", "have", "has", "had", "do", "does", "did", "will",
			"would", "should", "could", "may", "might", "can", "this", "that",
			"these", "those", "i", "you", "he", "she", "it", "we", "they", "them",
			"their", "what", "which", "who", "when", "where", "why", "how", "all",
			"just", "so", "than", "too", "very", "not", "no", "yes",
		),
		DomainNoise: set(
			"market", "markets", "price", "prices", "trading", "trade",
			"buy", "sell", "stock", "stocks", "invest", "investing",
			"predict", "prediction", "odds", "bet", "betting", "chance", "probability",
			"likely", "unlikely", "bullish", "bearish",
			"soon", "today", "tomorrow", "week", "month", "year",
			"thread", "breaking", "update", "report", "says", "said",
			"now", "latest",
		),
		Organizations: []string{
			// Government and policy
			"federal reserve", "fed", "fomc", "white house", "pentagon", "congress",
			"senate", "house", "treasury", "sec", "fda", "fbi", "cia", "doj",
			"nato", "un", "united nations", "world bank", "imf",
			// Tech
			"openai", "anthropic", "google", "meta", "facebook", "apple", "microsoft",
			"amazon", "tesla", "spacex", "nvidia", "amd", "intel", "ibm", "oracle",
			"salesforce", "adobe", "netflix", "spotify", "uber", "lyft", "airbnb",
			// Finance
			"goldman sachs", "jpmorgan", "morgan stanley", "blackrock", "vanguard",
			"fidelity", "charles schwab", "citigroup", "bank of america", "wells fargo",
			// Crypto
			"coinbase", "binance", "ftx", "kraken", "gemini", "tether", "circle",
			// Sports
			"nfl", "nba", "mlb", "nhl", "fifa", "uefa", "pga", "formula one", "f1",
			// News and media
			"new york times", "nyt", "wall street journal", "wsj", "bloomberg",
			"reuters", "associated press", "ap", "cnn", "fox news", "msnbc",
		},
		KnownPeople: []string{
			// Politics
			"donald trump", "joe biden", "kamala harris", "ron desantis", "mike pence",
			"barack obama", "hillary clinton", "bernie sanders", "nancy pelosi",
			"mitch mcconnell", "kevin mccarthy", "chuck schumer",
			// Finance and economics
			"jerome powell", "janet yellen", "gary gensler", "warren buffett",
			"elon musk", "jeff bezos", "bill gates", "mark zuckerberg", "tim cook",
			// Tech
			"sam altman", "satya nadella", "sundar pichai", "jensen huang",
			"lisa su", "andy jassy", "dario amodei", "ilya sutskever",
			// Crypto
			"vitalik buterin", "changpeng zhao", "cz", "sam bankman-fried", "sbf",
			// Sports
			"lebron james", "tom brady", "lionel messi", "cristiano ronaldo",
		},
		PlaceExclusions: set(
			"new york", "los angeles", "san francisco", "north korea", "south korea",
			"white house", "supreme court", "wall street", "silicon valley",
			"middle east", "united states", "united kingdom", "european union",
		),
		TickerExclusions: set(
			"USA", "CEO", "CTO", "CFO", "CMO", "CIO", "VP", "NEW", "OLD", "YES", "NO",
		),
		RelativeTimeframes: []string{
			"next week", "next month", "next year", "next quarter",
			"this week", "this month", "this year", "this quarter",
			"by end of year", "end of month", "eoy", "eom",
		},
		TitleStops: set(
			"will", "the", "a", "an", "in", "on", "at", "by", "for", "to", "of",
			"and", "or", "is", "be", "has", "have", "are", "was", "were", "been",
			"do", "does", "did", "2024", "2025", "2026", "2027", "2028", "before",
			"after", "end", "yes", "no", "than", "over", "under", "above", "below",
			"hit", "reach", "win", "lose", "pass", "major", "us", "use", "its",
			"their", "any", "all", "into", "out", "up", "down", "as", "from",
			"with", "this", "that", "not", "new", "more", "most", "least",
			"how", "what", "when", "where", "who", "get", "got", "put", "set",
			"per", "via", "vs",
		),
		Bullish: set(
			"bullish", "moon", "rally", "pump", "surge", "soar", "skyrocket",
			"buy", "long", "calls", "green", "win", "winning", "yes",
			"confirmed", "happening", "inevitable", "obvious", "certain",
			"guarantee", "lock", "easy", "confident", "predict",
			"up", "rise", "increase", "gain", "profit", "success",
			"boom", "growth", "explosive", "parabolic", "breakout",
		),
		Bearish: set(
			"bearish", "dump", "crash", "plunge", "tank", "collapse", "fall",
			"sell", "short", "puts", "red", "lose", "losing", "no", "impossible",
			"unlikely", "doubt", "skeptical", "concern", "worried", "fear", "risk",
			"down", "decline", "drop", "decrease", "loss", "fail", "failure",
			"bubble", "overvalued", "recession", "bear", "correction",
		),
		StrongModifiers: set(
			"very", "extremely", "highly", "absolutely", "completely", "totally",
			"definitely", "certainly", "obviously", "clearly", "strongly", "really",
		),
		// Contractions are stored in their stripped form since tokens are
		// reduced to bare letters before lookup.
		Negations: set(
			"not", "no", "dont", "wont", "cant", "isnt", "arent", "doesnt",
			"never", "neither", "nor", "none", "nobody", "nothing", "nowhere",
		),
	}
}

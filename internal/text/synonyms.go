package text

// SynonymTable maps a token or phrase people write to the canonical market
// keywords it should also count as. Keys may be multi-word; callers that
// support phrase keys extract bigram/trigram windows before lookup.
type SynonymTable map[string][]string

// Expand returns the one-hop forward expansion of a token: the token's
// aliases, or nil when the token has no entry. Expansion is a single hop;
// aliases are not themselves expanded.
func (t SynonymTable) Expand(token string) []string {
	return t[token]
}

// ExpandAll returns tokens plus every one-hop alias, deduplicated, preserving
// first-seen order.
func (t SynonymTable) ExpandAll(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens)*2)
	out := make([]string, 0, len(tokens)*2)
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, tok := range tokens {
		add(tok)
	}
	for _, tok := range tokens {
		for _, syn := range t[tok] {
			add(syn)
		}
	}
	return out
}

// DefaultSynonyms returns the built-in alias table. Entries are grouped by
// topic; both directions of an alias pair are usually present so either
// surface form resolves to the other.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		// Fed / monetary policy
		"fed":                 {"federal reserve", "fomc", "interest rates"},
		"federal reserve":     {"fed", "fomc", "interest rates"},
		"fomc":                {"fed", "federal reserve", "interest rates"},
		"jerome powell":       {"fed", "federal reserve", "fomc"},
		"powell":              {"fed", "federal reserve", "fomc"},
		"janet yellen":        {"treasury", "fiscal policy"},
		"yellen":              {"treasury", "fiscal policy"},
		"rate hike":           {"interest rates", "fed", "fomc"},
		"rate cut":            {"interest rates", "fed", "fomc"},
		"interest rate":       {"fed", "fomc", "monetary policy"},
		"basis points":        {"interest rates", "rate hike", "rate cut"},
		"bps":                 {"basis points", "interest rates"},
		"dot plot":            {"fomc", "fed", "interest rates"},
		"quantitative easing": {"fed", "monetary policy"},
		"qe":                  {"quantitative easing", "fed"},

		// Economics
		"cpi":              {"inflation", "consumer price index"},
		"inflation":        {"cpi", "consumer price index", "cost of living"},
		"pce":              {"inflation", "consumer spending"},
		"gdp":              {"economic growth", "recession"},
		"recession":        {"gdp", "economic downturn", "contraction"},
		"unemployment":     {"jobs", "labor market", "payrolls", "jobless"},
		"nfp":              {"nonfarm payrolls", "jobs", "unemployment"},
		"nonfarm payrolls": {"jobs", "unemployment", "labor market"},
		"payrolls":         {"jobs", "unemployment", "labor market"},
		"layoffs":          {"unemployment", "jobs", "labor market"},
		"sp500":            {"s&p 500", "stocks", "equities"},
		"s&p 500":          {"sp500", "stocks", "equities"},
		"s&p":              {"sp500", "s&p 500", "stocks"},
		"nasdaq":           {"stocks", "equities", "tech stocks"},
		"dow":              {"stocks", "equities", "dow jones"},
		"dow jones":        {"dow", "stocks", "equities"},
		"yield curve":      {"bonds", "treasuries", "interest rates"},
		"treasuries":       {"bonds", "yield curve", "interest rates"},

		// Politics
		"potus":           {"president", "white house"},
		"white house":     {"president", "administration"},
		"gop":             {"republican", "republicans"},
		"rnc":             {"republican", "republicans"},
		"dnc":             {"democrat", "democrats"},
		"doge":            {"spending cuts", "government efficiency", "dogecoin", "crypto", "meme coin"},
		"doj":             {"justice department", "attorney general"},
		"scotus":          {"supreme court"},
		"supreme court":   {"scotus"},
		"senate":          {"congress", "legislation"},
		"house":           {"congress", "legislation", "house of representatives"},
		"congress":        {"senate", "legislation", "house"},
		"executive order": {"president", "administration", "white house"},
		"trump":           {"president", "potus", "administration", "gop", "republican"},
		"donald trump":    {"trump", "potus", "president", "republican"},
		"biden":           {"president", "potus", "democrat", "administration"},
		"harris":          {"democrat", "kamala", "vice president"},
		"rfk":             {"health", "vaccines", "kennedy"},

		// Crypto
		"btc":               {"bitcoin"},
		"bitcoin":           {"btc", "crypto"},
		"eth":               {"ethereum"},
		"ethereum":          {"eth", "crypto"},
		"sol":               {"solana"},
		"solana":            {"sol", "crypto"},
		"xrp":               {"ripple"},
		"ripple":            {"xrp"},
		"sec":               {"securities", "regulation", "crypto regulation"},
		"gensler":           {"sec", "crypto regulation"},
		"etf":               {"exchange traded fund", "bitcoin etf", "spot etf"},
		"spot etf":          {"etf", "bitcoin etf", "sec"},
		"defi":              {"decentralized finance", "crypto"},
		"stablecoin":        {"usdc", "usdt", "tether"},
		"usdc":              {"stablecoin", "crypto"},
		"usdt":              {"stablecoin", "tether", "crypto"},
		"halving":           {"bitcoin", "btc", "crypto"},
		"coinbase":          {"crypto", "bitcoin", "exchange"},
		"binance":           {"crypto", "exchange"},
		"layer 2":           {"ethereum", "eth", "scaling"},
		"l2":                {"layer 2", "ethereum", "eth"},
		"web3":              {"ethereum", "eth", "defi", "crypto"},
		"gas fees":          {"ethereum", "eth"},
		"gwei":              {"ethereum", "eth", "gas fees"},
		"proof of stake":    {"ethereum", "eth", "staking"},
		"staking":           {"ethereum", "eth", "proof of stake"},
		"nft":               {"ethereum", "eth", "digital art"},
		"polygon":           {"ethereum", "eth", "layer 2"},
		"arbitrum":          {"ethereum", "eth", "layer 2"},
		"optimism":          {"ethereum", "eth", "layer 2"},
		"vitalik":           {"ethereum", "eth", "buterin"},
		"buterin":           {"ethereum", "eth", "vitalik"},
		"memecoin":          {"crypto", "solana", "doge"},
		"meme coin":         {"crypto", "solana", "doge"},
		"dogecoin":          {"doge", "crypto"},
		"altcoin":           {"crypto", "altcoins"},
		"altcoins":          {"crypto", "altcoin"},
		"bull run":          {"crypto", "bitcoin", "btc"},
		"bear market":       {"crypto", "recession"},
		"crypto winter":     {"crypto", "bitcoin", "bear market"},
		"blockchain":        {"crypto", "ethereum", "bitcoin"},
		"wallet":            {"crypto", "ethereum", "bitcoin"},
		"kraken":            {"crypto", "exchange"},
		"ftx":               {"crypto", "exchange", "sec"},
		"sbf":               {"ftx", "crypto", "sec"},
		"hodl":              {"bitcoin", "btc", "crypto"},
		"digital gold":      {"bitcoin", "btc", "store of value"},
		"store of value":    {"bitcoin", "btc", "gold"},
		"proof of work":     {"bitcoin", "btc", "mining"},
		"mining":            {"bitcoin", "btc", "hashrate"},
		"hashrate":          {"bitcoin", "btc", "mining"},
		"satoshi":           {"bitcoin", "btc"},
		"sats":              {"bitcoin", "btc", "satoshi"},
		"lightning":         {"bitcoin", "btc", "lightning network"},
		"ordinals":          {"bitcoin", "btc", "nft"},
		"all time high":     {"bitcoin", "crypto", "stocks", "ath"},
		"ath":               {"all time high", "bitcoin", "crypto"},
		"new high":          {"bitcoin", "crypto", "stocks"},
		"100k":              {"bitcoin", "btc", "price target"},
		"150k":              {"bitcoin", "btc", "price target"},
		"200k":              {"bitcoin", "btc", "price target"},
		"strategic reserve": {"bitcoin", "btc", "crypto"},
		"stablecoin bill":   {"stablecoin", "crypto regulation", "congress"},
		"crypto bill":       {"crypto regulation", "sec", "congress"},
		"sui":               {"crypto", "layer 1"},
		"aptos":             {"apt", "crypto", "layer 1"},
		"ton":               {"telegram", "crypto"},
		"bnb":               {"binance", "crypto"},
		"avax":              {"avalanche", "crypto"},
		"avalanche":         {"avax", "crypto"},

		// Tech / AI
		"openai":         {"ai", "artificial intelligence", "chatgpt", "gpt", "llm"},
		"chatgpt":        {"openai", "ai", "llm"},
		"gpt":            {"openai", "chatgpt", "ai", "llm"},
		"anthropic":      {"ai", "claude", "llm", "artificial intelligence"},
		"claude":         {"anthropic", "ai", "llm"},
		"gemini":         {"google", "ai", "llm"},
		"llm":            {"ai", "artificial intelligence"},
		"agi":            {"artificial general intelligence", "ai"},
		"sam altman":     {"openai", "ai", "chatgpt"},
		"altman":         {"openai", "ai", "chatgpt"},
		"jensen huang":   {"nvidia", "nvda", "gpu", "ai chips"},
		"huang":          {"nvidia", "nvda", "gpu"},
		"nvda":           {"nvidia"},
		"nvidia":         {"nvda", "gpu", "ai chips", "semiconductors"},
		"gpu":            {"nvidia", "nvda", "chips"},
		"chips":          {"semiconductors", "nvidia", "tsmc"},
		"semiconductors": {"chips", "nvidia", "tsmc", "intel"},
		"tsmc":           {"semiconductors", "chips", "taiwan"},
		"aapl":           {"apple"},
		"apple":          {"aapl", "iphone", "tim cook"},
		"tim cook":       {"apple", "aapl"},
		"msft":           {"microsoft"},
		"microsoft":      {"msft"},
		"googl":          {"google", "alphabet"},
		"google":         {"googl", "alphabet"},
		"alphabet":       {"google", "googl"},
		"meta":           {"facebook", "instagram"},
		"big tech":       {"apple", "google", "microsoft", "meta", "amazon"},
		"faang":          {"big tech", "apple", "google", "meta", "amazon"},
		"deepseek":       {"ai", "llm", "china ai", "artificial intelligence"},
		"llama":          {"meta", "ai", "llm", "open source ai"},
		"mistral":        {"ai", "llm", "artificial intelligence"},
		"grok":           {"xai", "elon musk", "ai", "llm"},
		"xai":            {"grok", "elon musk", "ai"},
		"perplexity":     {"ai", "search", "llm"},
		"copilot":        {"microsoft", "msft", "ai", "github"},
		"sora":           {"openai", "ai", "video ai"},
		"amazon":         {"amzn", "aws", "cloud", "bezos"},
		"amzn":           {"amazon"},
		"jeff bezos":     {"amazon", "amzn"},
		"bezos":          {"amazon", "amzn"},
		"spacex":         {"elon musk", "rockets", "starship"},
		"starship":       {"spacex", "elon musk"},
		"starlink":       {"spacex", "elon musk", "satellite"},
		"zuckerberg":     {"meta", "facebook", "ai"},
		"intel":          {"semiconductors", "chips"},
		"amd":            {"semiconductors", "chips", "gpu"},

		// Geopolitics
		"nato":         {"alliance", "military", "europe", "ukraine"},
		"ukraine":      {"russia", "war", "nato", "zelensky"},
		"zelensky":     {"ukraine", "russia"},
		"putin":        {"russia", "ukraine", "kremlin"},
		"kremlin":      {"russia", "putin"},
		"beijing":      {"china", "xi jinping"},
		"xi jinping":   {"china", "beijing"},
		"xi":           {"china", "xi jinping", "beijing"},
		"taiwan":       {"china", "semiconductors", "tsmc"},
		"gaza":         {"israel", "hamas", "middle east", "conflict"},
		"israel":       {"gaza", "hamas", "middle east"},
		"ceasefire":    {"ukraine", "russia", "peace", "conflict"},
		"peace deal":   {"ukraine", "russia", "peace agreement", "ceasefire"},
		"middle east":  {"israel", "gaza", "iran", "saudi"},
		"saudi arabia": {"saudi", "oil", "opec"},
		"saudi":        {"saudi arabia", "oil", "opec"},
		"hamas":        {"gaza", "israel", "middle east"},
		"kim jong un":  {"north korea", "nuclear", "missiles"},
		"north korea":  {"kim jong un", "nuclear", "missiles"},
		"modi":         {"india", "bjp"},
		"macron":       {"france", "europe", "eu"},
		"europe":       {"eu", "european", "ecb"},
		"eu":           {"europe", "european union"},
		"china":        {"chinese", "prc", "beijing", "xi"},
		"prc":          {"china", "beijing"},
		"japan":        {"japanese", "yen", "nikkei", "jpy"},
		"india":        {"modi", "rupee", "bse"},
		"germany":      {"german", "euro", "bund", "europe"},
		"uk":           {"britain", "gbp", "pound", "boe"},
		"iran":         {"nuclear", "sanctions", "middle east"},

		// Sports
		"nfl":             {"football", "super bowl"},
		"nba":             {"basketball"},
		"mlb":             {"baseball"},
		"nhl":             {"hockey"},
		"super bowl":      {"nfl", "football"},
		"march madness":   {"ncaa", "basketball"},
		"world cup":       {"soccer", "football", "fifa"},
		"fifa":            {"soccer", "world cup"},
		"mahomes":         {"chiefs", "kansas city", "nfl", "super bowl"},
		"patrick mahomes": {"chiefs", "kansas city", "nfl", "super bowl"},
		"chiefs":          {"kansas city", "nfl", "mahomes", "super bowl"},
		"eagles":          {"philadelphia", "nfl", "super bowl"},
		"celtics":         {"boston", "nba", "basketball"},
		"lakers":          {"los angeles", "nba", "basketball"},
		"warriors":        {"golden state", "nba", "basketball"},
		"lebron":          {"lakers", "nba", "basketball"},
		"curry":           {"warriors", "nba", "basketball"},
		"messi":           {"soccer", "football", "inter miami"},
		"ronaldo":         {"soccer", "football", "cr7"},
		"wimbledon":       {"tennis", "grand slam"},
		"masters":         {"golf", "augusta"},
		"oscars":          {"academy awards", "movies", "film"},
		"grammy":          {"music", "awards"},

		// Climate / energy
		"crude":            {"oil", "wti", "energy"},
		"wti":              {"oil", "crude", "energy"},
		"brent":            {"oil", "crude", "energy"},
		"opec":             {"oil", "energy", "production cuts"},
		"ev":               {"electric vehicle", "tesla", "clean energy"},
		"electric vehicle": {"ev", "tesla"},
		"tesla":            {"ev", "electric vehicle", "elon musk"},
		"elon musk":        {"tesla", "spacex", "twitter", "x", "doge"},
		"musk":             {"tesla", "elon musk", "spacex", "doge"},
		"elon":             {"elon musk", "tesla", "spacex", "doge"},
		"net zero":         {"climate", "emissions", "carbon"},
		"carbon":           {"climate", "emissions", "carbon tax"},
		"global warming":   {"climate change", "climate", "temperature"},
		"climate change":   {"global warming", "climate", "emissions"},

		// Trade / tariffs
		"tariff":     {"trade war", "trade deal", "import tax", "china trade", "trade"},
		"tariffs":    {"tariff", "trade war", "trade deal", "import tax"},
		"trade war":  {"tariff", "tariffs", "china", "trade deal"},
		"trade deal": {"tariff", "tariffs", "trade war", "trade"},
		"sanctions":  {"trade", "russia", "china", "iran"},

		// Immigration / border
		"deportation": {"immigration", "border", "ice", "migrants", "undocumented"},
		"deport":      {"deportation", "immigration", "ice", "border"},
		"immigration": {"border", "deportation", "ice", "migrants"},
		"border":      {"immigration", "deportation", "wall"},
		"migrants":    {"immigration", "border", "deportation"},
		"ice":         {"deportation", "immigration", "border"},

		// Wall Street / institutions
		"goldman sachs":  {"bitcoin", "crypto", "bank", "institutional", "wall street"},
		"goldman":        {"goldman sachs", "bank", "wall street"},
		"jpmorgan":       {"bank", "jamie dimon", "financial", "wall street"},
		"jamie dimon":    {"jpmorgan", "bank", "bitcoin"},
		"dimon":          {"jpmorgan", "bank", "jamie dimon"},
		"morgan stanley": {"bank", "wall street", "institutional"},
		"wall street":    {"banks", "financial", "stocks", "institutional"},
		"larry fink":     {"blackrock", "etf", "bitcoin etf", "institutional"},
		"fink":           {"blackrock", "etf", "bitcoin etf"},
		"ray dalio":      {"bridgewater", "hedge fund", "investment"},
		"warren buffett": {"berkshire", "stocks", "investment"},
		"buffett":        {"berkshire", "stocks"},
		"berkshire":      {"warren buffett", "stocks", "insurance"},
		"citadel":        {"ken griffin", "market maker", "hedge fund"},
		"blackrock":      {"etf", "bitcoin etf", "institutional"},
		"robinhood":      {"stocks", "crypto", "retail investing"},
		"ipo":            {"stocks", "listing", "public offering"},
		"fidelity":       {"bitcoin etf", "fbtc", "etf", "institutional"},
		"ibit":           {"blackrock", "bitcoin etf", "etf"},
		"gbtc":           {"grayscale", "bitcoin etf", "crypto"},
		"grayscale":      {"gbtc", "bitcoin etf", "crypto", "etf"},
		"cathie wood":    {"ark invest", "etf", "bitcoin"},
		"institutional":  {"bitcoin", "etf", "wall street"},
		"treasury":       {"bitcoin", "strategic reserve", "government"},
		"palantir":       {"pltr", "data analytics", "defense"},
		"pltr":           {"palantir"},
		"saylor":         {"bitcoin", "btc", "microstrategy", "mstr"},
		"microstrategy":  {"bitcoin", "btc", "mstr", "saylor"},
		"mstr":           {"microstrategy", "bitcoin", "btc"},

		// Global macro
		"ecb":             {"european central bank", "euro", "interest rates"},
		"boe":             {"bank of england", "pound", "interest rates"},
		"bank of england": {"boe", "pound", "interest rates"},
		"pboc":            {"china", "yuan", "interest rates"},
		"boj":             {"bank of japan", "yen", "japan"},
		"bank of japan":   {"boj", "yen", "japan"},
		"dollar":          {"usd", "dxy", "currency"},
		"dxy":             {"dollar", "usd", "currency"},
		"usd":             {"dollar", "dxy"},
		"euro":            {"eur", "ecb", "europe"},
		"yen":             {"jpy", "japan", "boj"},
		"jpy":             {"yen", "japan"},
		"yuan":            {"cny", "rmb", "china"},
		"gold":            {"xau", "precious metals", "store of value", "commodity"},
		"silver":          {"xag", "precious metals", "commodity"},
		"commodities":     {"gold", "oil", "energy", "agriculture"},
		"housing market":  {"real estate", "mortgage", "fed"},
		"mortgage":        {"housing market", "real estate", "interest rates", "fed"},
		"real estate":     {"housing market", "mortgage"},
		"debt ceiling":    {"congress", "fiscal", "treasury"},
		"bonds":           {"treasuries", "yield", "interest rates"},
		"yield":           {"bonds", "treasuries", "interest rates"},

		// Gaming
		"gta":               {"gta 6", "grand theft auto", "rockstar", "gaming"},
		"gta 6":             {"gta", "grand theft auto", "rockstar", "gaming", "video game"},
		"grand theft auto":  {"gta", "gta 6", "rockstar", "gaming"},
		"rockstar":          {"gta", "gta 6", "gaming", "take two"},
		"elden ring":        {"fromsoftware", "souls", "gaming", "rpg", "dlc"},
		"nintendo":          {"switch", "switch 2", "gaming", "console", "zelda", "mario"},
		"switch":            {"nintendo", "switch 2", "gaming", "console"},
		"zelda":             {"nintendo", "switch", "gaming", "tears of the kingdom"},
		"pokemon":           {"nintendo", "switch", "gaming", "game freak"},
		"minecraft":         {"mojang", "microsoft", "sandbox", "gaming", "video game"},
		"silksong":          {"hollow knight", "indie game", "metroidvania", "gaming"},
		"esports":           {"gaming", "competitive", "tournament", "league"},
		"gaming":            {"video game", "esports", "gamer", "console"},
		"console":           {"gaming", "playstation", "xbox", "nintendo"},
		"playstation":       {"ps5", "sony", "gaming", "console"},
		"ps5":               {"playstation", "sony", "gaming", "console"},
		"xbox":              {"microsoft", "gaming", "console"},
		"valorant":          {"riot games", "fps", "esports", "gaming"},
		"league of legends": {"lol", "riot games", "esports", "moba", "gaming"},

		// Music / entertainment
		"taylor swift":   {"music", "pop", "swifties", "eras tour", "album"},
		"eras tour":      {"taylor swift", "tour", "concert", "music"},
		"beyonce":        {"music", "pop", "renaissance", "tour"},
		"coachella":      {"music festival", "festival", "music", "concert"},
		"music festival": {"coachella", "concert", "music", "tour"},
		"concert":        {"music", "tour", "live music", "show"},
		"tour":           {"concert", "music", "live music"},
		"album":          {"music", "release", "new album"},

		// Social / consumer
		"reddit":         {"social media", "rddt", "stock", "wallstreetbets"},
		"wallstreetbets": {"reddit", "wsb", "stocks", "meme stock"},
		"wsb":            {"wallstreetbets", "reddit", "stocks"},
		"starbucks":      {"coffee", "sbux", "cafe", "union"},
		"mcdonalds":      {"fast food", "breakfast", "restaurant", "mcdonald"},
	}
}

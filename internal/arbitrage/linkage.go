// Package arbitrage links markets across the two platforms and surfaces
// price discrepancies. Two detector variants exist: the corpus Detector runs
// a full platform-partitioned scan with approximate record linkage, and
// Pairwise compares a single already-linked price pair with fees applied.
package arbitrage

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// DefaultMinSpread is the spread floor for the corpus scan.
const DefaultMinSpread = 0.03

var (
	fillerRe     = regexp.MustCompile(`\b(will|before|after|by|in|on|at|the|a|an)\b`)
	yearFillRe   = regexp.MustCompile(`\b(2024|2025|2026|2027|2028)\b`)
	titlePunctRe = regexp.MustCompile(`[^a-z0-9\s]`)
	wsRe         = regexp.MustCompile(`\s+`)
)

// linkage stop words filtered from title entities.
var entityStops = map[string]struct{}{
	"will": {}, "hit": {}, "reach": {}, "win": {}, "lose": {},
	"pass": {}, "than": {}, "over": {}, "under": {},
}

// Detector links same-event markets across platforms by title similarity,
// keyword overlap and shared entities, then reports spreads above a floor.
// It is stateless; the full-corpus scan is O(n*m) over the two platform
// partitions and is meant to run as one batched pass with results cached.
type Detector struct {
	minSpread float64
}

func NewDetector(minSpread float64) *Detector {
	if minSpread <= 0 {
		minSpread = DefaultMinSpread
	}
	return &Detector{minSpread: minSpread}
}

// TopOptions filters a detected opportunity list.
type TopOptions struct {
	MinSpread     float64
	MinConfidence float64
	Limit         int
	Category      string
}

// Detect scans the combined market list and returns every linked
// cross-platform pair whose yes-price spread is at or above the detector's
// floor, sorted by spread descending.
func (d *Detector) Detect(markets []domain.Market) []domain.ArbitrageOpportunity {
	var polys, kalshis []domain.Market
	for _, m := range markets {
		switch m.Platform {
		case domain.PlatformPolymarket:
			polys = append(polys, m)
		case domain.PlatformKalshi:
			kalshis = append(kalshis, m)
		}
	}

	var opps []domain.ArbitrageOpportunity
	for _, poly := range polys {
		for _, kalshi := range kalshis {
			linked, conf, reason := linkMarkets(poly, kalshi)
			if !linked {
				continue
			}
			spread := poly.YesPrice - kalshi.YesPrice
			if spread < 0 {
				spread = -spread
			}
			if spread < d.minSpread {
				continue
			}
			direction := domain.ArbBuyPolySellKalshi
			if poly.YesPrice > kalshi.YesPrice {
				direction = domain.ArbBuyKalshiSellPoly
			}
			opps = append(opps, domain.ArbitrageOpportunity{
				Polymarket:      poly,
				Kalshi:          kalshi,
				Spread:          spread,
				ProfitPotential: spread,
				Direction:       direction,
				Confidence:      conf,
				MatchReason:     reason,
			})
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Spread > opps[j].Spread
	})
	return opps
}

// Top filters an already-detected list by spread, confidence and category
// and truncates to the limit. Detection runs with a loose floor and callers
// refilter, so repeated API requests reuse one corpus scan.
func Top(opps []domain.ArbitrageOpportunity, opts TopOptions) []domain.ArbitrageOpportunity {
	minSpread := opts.MinSpread
	if minSpread == 0 {
		minSpread = DefaultMinSpread
	}
	minConf := opts.MinConfidence
	if minConf == 0 {
		minConf = 0.5
	}
	limit := opts.Limit
	if limit == 0 {
		limit = 20
	}

	out := make([]domain.ArbitrageOpportunity, 0, len(opps))
	for _, op := range opps {
		if op.Spread < minSpread || op.Confidence < minConf {
			continue
		}
		if opts.Category != "" &&
			op.Polymarket.Category != opts.Category && op.Kalshi.Category != opts.Category {
			continue
		}
		out = append(out, op)
		if len(out) == limit {
			break
		}
	}
	return out
}

// linkMarkets decides whether two markets describe the same event. Checks in
// priority order: category compatibility gate, title similarity, keyword
// overlap, shared entities with moderate similarity.
func linkMarkets(poly, kalshi domain.Market) (bool, float64, string) {
	categoryMatch := poly.Category == kalshi.Category ||
		poly.Category == "other" || kalshi.Category == "other"
	if !categoryMatch {
		return false, 0, "different categories"
	}

	polyEnts := titleEntities(poly.Title)
	kalshiEnts := titleEntities(kalshi.Title)
	sim := jaccard(polyEnts, kalshiEnts)

	if sim > 0.5 {
		return true, sim, fmt.Sprintf("high title similarity (%.0f%%)", sim*100)
	}

	overlap := keywordOverlap(poly.Keywords, kalshi.Keywords)
	if overlap >= 3 {
		conf := float64(overlap) / 10
		if conf > 0.9 {
			conf = 0.9
		}
		return true, conf, fmt.Sprintf("%d shared keywords", overlap)
	}

	var shared []string
	for e := range polyEnts {
		if _, ok := kalshiEnts[e]; ok {
			shared = append(shared, e)
		}
	}
	if len(shared) >= 2 && sim > 0.3 {
		sort.Strings(shared)
		if len(shared) > 3 {
			shared = shared[:3]
		}
		return true, 0.7, "shared entities: " + strings.Join(shared, ", ")
	}

	return false, 0, "insufficient similarity"
}

// normalizeTitle lowercases and strips question marks, filler words, bare
// years and punctuation, then collapses whitespace.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, "?", "")
	t = fillerRe.ReplaceAllString(t, "")
	t = yearFillRe.ReplaceAllString(t, "")
	t = titlePunctRe.ReplaceAllString(t, " ")
	t = wsRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// titleEntities extracts the significant words of a normalized title.
func titleEntities(title string) map[string]struct{} {
	ents := make(map[string]struct{})
	for _, w := range strings.Fields(normalizeTitle(title)) {
		if len(w) < 3 {
			continue
		}
		if _, stop := entityStops[w]; stop {
			continue
		}
		ents[w] = struct{}{}
	}
	return ents
}

// jaccard is intersection over union of the two entity sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for e := range a {
		if _, ok := b[e]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func keywordOverlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, kw := range a {
		set[kw] = struct{}{}
	}
	overlap := 0
	seen := make(map[string]struct{}, len(b))
	for _, kw := range b {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		if _, ok := set[kw]; ok {
			overlap++
		}
	}
	return overlap
}

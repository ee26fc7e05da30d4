// Package match scores free text against market keyword lists and returns a
// ranked, thresholded match list. Two scoring strategies are registered: a
// basic exact/partial scorer and an enhanced scorer with synonym awareness,
// category coherence and recency boosts. Callers select one by name.
package match

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// Strategy names understood by the default registry.
const (
	StrategyBasic    = "basic"
	StrategyEnhanced = "enhanced"
)

// Query is the pre-computed view of one piece of input text, shared across
// every market scored in a single Match call.
type Query struct {
	Text     string
	Tokens   []string
	TokenSet map[string]struct{}
	// Expanded is TokenSet plus one-hop synonym aliases.
	Expanded map[string]struct{}
}

// Scorer scores a single market against a query. It returns a confidence in
// [0,1] and the matched keyword evidence.
type Scorer interface {
	Name() string
	Score(q Query, m domain.Market) (float64, []string)
}

// Registry manages named scorers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	scorers map[string]Scorer
}

func NewRegistry() *Registry {
	return &Registry{scorers: make(map[string]Scorer)}
}

// Register adds a scorer under the given name, replacing any existing one.
func (r *Registry) Register(name string, s Scorer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scorers[name] = s
}

// Get retrieves a scorer by name.
func (r *Registry) Get(name string) (Scorer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scorers[name]
	if !ok {
		return nil, fmt.Errorf("match: strategy %q: not registered", name)
	}
	return s, nil
}

// List returns the registered strategy names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.scorers))
	for n := range r.scorers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

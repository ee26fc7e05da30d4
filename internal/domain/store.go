package domain

import "context"

// HistoryStore persists per-market price snapshot lists. Implementations are
// dumb key-value stores: the tracker owns pruning and change math. Keys are
// market IDs; values are the market's ordered snapshot list.
type HistoryStore interface {
	// List returns the stored snapshots for a market, oldest first.
	// It returns ErrNoHistory when the market has no stored snapshots.
	List(ctx context.Context, marketID string) ([]PriceSnapshot, error)
	// Replace overwrites a market's snapshot list wholesale.
	Replace(ctx context.Context, marketID string, snaps []PriceSnapshot) error
	// Append adds one snapshot to the end of a market's list.
	Append(ctx context.Context, snap PriceSnapshot) error
}

// MarketSource fetches and normalizes listings from one platform.
type MarketSource interface {
	// Name identifies the platform for logging and metadata counts.
	Name() string
	// FetchMarkets pages through active listings and returns them in the
	// common Market shape, up to the source's configured target count.
	FetchMarkets(ctx context.Context) ([]Market, error)
}

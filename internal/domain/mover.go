package domain

import "time"

// PriceSnapshot is one observation of a market's YES price. Snapshots for a
// market are append-only with non-decreasing timestamps and are pruned to a
// rolling retention window.
type PriceSnapshot struct {
	MarketID  string    `json:"marketId"`
	Platform  Platform  `json:"platform"`
	YesPrice  float64   `json:"yesPrice"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveDirection is the sign of a mover's recent price change.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MarketMover bundles a market with the size and direction of its recent
// price movement.
type MarketMover struct {
	Market         Market        `json:"market"`
	PriceChange1h  float64       `json:"priceChange1h"`
	PriceChange24h float64       `json:"priceChange24h"`
	PreviousPrice  float64       `json:"previousPrice"`
	CurrentPrice   float64       `json:"currentPrice"`
	Direction      MoveDirection `json:"direction"`
	Timestamp      time.Time     `json:"timestamp"`
}

package domain

import "time"

// Clock abstracts wall-clock reads so temporal logic (recency boosts, expiry
// windows, snapshot pruning, TTL expiry) is deterministically testable.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current UTC time.
func (RealClock) Now() time.Time { return time.Now().UTC() }

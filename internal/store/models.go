package store

import "time"

// Position is one accumulated holding: every lot added for a symbol folds
// into a single row keeping the latest price.
type Position struct {
	Symbol    string
	Quantity  int64
	Price     float64
	UpdatedAt time.Time
}

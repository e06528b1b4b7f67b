package store

import (
	"time"

	"SpotFetch/internal/model"
)

// Store persists normalized price series for querying and incremental
// fetching.
type Store interface {
	InsertPrices(series *model.PriceSeries) error
	// LatestTimestamp returns the newest stored point for the indicator;
	// ok is false when nothing is stored yet.
	LatestTimestamp(indicatorID int) (ts time.Time, ok bool, err error)
	Close() error
}

// Noop is a no-op implementation used when SQLite is not configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) InsertPrices(_ *model.PriceSeries) error { return nil }
func (n *Noop) LatestTimestamp(_ int) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (n *Noop) Close() error { return nil }

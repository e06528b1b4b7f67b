package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is a single spot-price point. Price is EUR/MWh, kept as a
// decimal so the precision of the API response survives into the CSV.
type PriceRecord struct {
	Time  time.Time
	Price decimal.Decimal
}

// PriceSeries holds the normalized result of one indicator fetch.
// Invariant: Records have unique, ascending timestamps.
type PriceSeries struct {
	IndicatorID int
	Records     []PriceRecord
	FetchedAt   time.Time
}

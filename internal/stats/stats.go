// Package stats computes summary figures over a price series for reports.
package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"SpotFetch/internal/model"
)

// Summary describes a fetched series at a glance.
type Summary struct {
	Count int
	First time.Time
	Last  time.Time
	Min   decimal.Decimal
	MinAt time.Time
	Max   decimal.Decimal
	MaxAt time.Time
	Avg   decimal.Decimal
}

// Summarize scans the series once for extremes and the mean.
func Summarize(series *model.PriceSeries) (*Summary, error) {
	if series == nil || len(series.Records) == 0 {
		return nil, fmt.Errorf("empty series")
	}

	recs := series.Records
	sum := &Summary{
		Count: len(recs),
		First: recs[0].Time,
		Last:  recs[len(recs)-1].Time,
		Min:   recs[0].Price,
		MinAt: recs[0].Time,
		Max:   recs[0].Price,
		MaxAt: recs[0].Time,
	}

	total := decimal.Zero
	for _, r := range recs {
		if r.Price.LessThan(sum.Min) {
			sum.Min = r.Price
			sum.MinAt = r.Time
		}
		if r.Price.GreaterThan(sum.Max) {
			sum.Max = r.Price
			sum.MaxAt = r.Time
		}
		total = total.Add(r.Price)
	}
	sum.Avg = total.Div(decimal.NewFromInt(int64(len(recs))))

	return sum, nil
}

package esios

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"SpotFetch/internal/errs"
	"SpotFetch/internal/model"
)

// peninsulaGeoID is ESIOS's geo id for mainland Spain.
const peninsulaGeoID = 3

// Normalize flattens an indicator response into an ordered price series.
//
// Rows are filtered to mainland Spain when the response carries geo
// fields, sorted ascending by timestamp, and de-duplicated keeping the
// first occurrence in API response order. Keep-first is a policy choice on
// our side, not an API guarantee: around DST transitions ESIOS has
// returned overlapping hours.
func Normalize(resp *IndicatorResponse, indicatorID int, fetchedAt time.Time) (*model.PriceSeries, error) {
	if resp == nil || resp.Indicator == nil || resp.Indicator.Values == nil {
		return nil, errs.New(errs.KindFormat, "response has no indicator.values array")
	}

	records := make([]model.PriceRecord, 0, len(resp.Indicator.Values))
	for i, v := range resp.Indicator.Values {
		if !keepGeo(v) {
			continue
		}
		ts, err := parseTimestamp(v)
		if err != nil {
			return nil, errs.Wrapf(errs.KindFormat, err, "values[%d]", i)
		}
		if v.Value == "" {
			return nil, errs.Newf(errs.KindFormat, "values[%d]: missing value field", i)
		}
		price, err := decimal.NewFromString(v.Value.String())
		if err != nil {
			return nil, errs.Wrapf(errs.KindFormat, err, "values[%d]: bad value %q", i, v.Value.String())
		}
		records = append(records, model.PriceRecord{Time: ts, Price: price})
	}

	// Stable sort keeps response order among equal timestamps, so the
	// keep-first pass below sees duplicates in their original order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.Before(records[j].Time)
	})

	deduped := records[:0]
	for _, r := range records {
		if len(deduped) > 0 && r.Time.Equal(deduped[len(deduped)-1].Time) {
			continue
		}
		deduped = append(deduped, r)
	}

	return &model.PriceSeries{
		IndicatorID: indicatorID,
		Records:     deduped,
		FetchedAt:   fetchedAt,
	}, nil
}

// keepGeo filters for mainland Spain. Responses without geo fields pass
// through untouched.
func keepGeo(v Value) bool {
	if v.GeoID != nil {
		return *v.GeoID == peninsulaGeoID
	}
	if v.GeoName != "" {
		return v.GeoName == "España" || v.GeoName == "Península"
	}
	return true
}

// parseTimestamp prefers the zone-qualified datetime field and falls back
// to datetime_utc. Both "Z" and numeric offsets are accepted, with or
// without fractional seconds.
func parseTimestamp(v Value) (time.Time, error) {
	raw := v.Datetime
	if raw == "" {
		raw = v.DatetimeUTC
	}
	if raw == "" {
		return time.Time{}, fmt.Errorf("no datetime field")
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable datetime %q", raw)
	}
	return ts, nil
}

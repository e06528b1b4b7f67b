package esios

import "encoding/json"

// IndicatorResponse mirrors the JSON body of GET /indicators/{id}.
type IndicatorResponse struct {
	Indicator *Indicator `json:"indicator"`
}

// Indicator carries the time series metadata and raw values.
type Indicator struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Value is one raw time/price point. The price stays a json.Number so the
// source precision survives into the decimal conversion. Depending on the
// indicator, the response carries geo_name, geo_id, both, or neither.
type Value struct {
	Datetime    string      `json:"datetime"`
	DatetimeUTC string      `json:"datetime_utc"`
	Value       json.Number `json:"value"`
	GeoID       *int        `json:"geo_id"`
	GeoName     string      `json:"geo_name"`
}

package esios

import (
	"encoding/json"
	"testing"
	"time"

	"SpotFetch/internal/errs"
)

func valuesResponse(values ...Value) *IndicatorResponse {
	return &IndicatorResponse{Indicator: &Indicator{ID: 600, Name: "PVPC", Values: values}}
}

func TestNormalize_SortsAscending(t *testing.T) {
	resp := valuesResponse(
		Value{Datetime: "2025-01-01T02:00:00+01:00", Value: json.Number("50.10")},
		Value{Datetime: "2025-01-01T00:00:00+01:00", Value: json.Number("42.00")},
		Value{Datetime: "2025-01-01T01:00:00+01:00", Value: json.Number("45.55")},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(series.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(series.Records))
	}
	for i := 1; i < len(series.Records); i++ {
		if !series.Records[i-1].Time.Before(series.Records[i].Time) {
			t.Errorf("records not strictly ascending at %d: %v >= %v",
				i, series.Records[i-1].Time, series.Records[i].Time)
		}
	}
	if got := series.Records[0].Price.String(); got != "42" {
		t.Errorf("first price = %s, want 42", got)
	}
}

// Duplicate timestamps keep the first occurrence in API response order.
// That is our policy for DST-overlap hours, not an API guarantee.
func TestNormalize_DuplicateKeepsFirstInResponseOrder(t *testing.T) {
	resp := valuesResponse(
		Value{Datetime: "2025-10-26T02:00:00+01:00", Value: json.Number("10.5")},
		Value{Datetime: "2025-10-26T01:00:00+01:00", Value: json.Number("8.0")},
		Value{Datetime: "2025-10-26T02:00:00+01:00", Value: json.Number("20.5")},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(series.Records) != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", len(series.Records))
	}
	last := series.Records[1]
	if got := last.Price.String(); got != "10.5" {
		t.Errorf("duplicate resolved to %s, want first occurrence 10.5", got)
	}
}

func TestNormalize_GeoIDFilter(t *testing.T) {
	spain, canary := 3, 8742
	resp := valuesResponse(
		Value{Datetime: "2025-01-01T00:00:00+01:00", Value: json.Number("42.0"), GeoID: &spain},
		Value{Datetime: "2025-01-01T00:00:00+01:00", Value: json.Number("99.0"), GeoID: &canary},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(series.Records) != 1 {
		t.Fatalf("expected 1 record after geo filter, got %d", len(series.Records))
	}
	if got := series.Records[0].Price.String(); got != "42" {
		t.Errorf("kept price = %s, want the mainland row 42", got)
	}
}

func TestNormalize_GeoNameFilter(t *testing.T) {
	resp := valuesResponse(
		Value{Datetime: "2025-01-01T00:00:00+01:00", Value: json.Number("42.0"), GeoName: "Península"},
		Value{Datetime: "2025-01-01T01:00:00+01:00", Value: json.Number("43.0"), GeoName: "España"},
		Value{Datetime: "2025-01-01T00:00:00+01:00", Value: json.Number("99.0"), GeoName: "Canarias"},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(series.Records) != 2 {
		t.Fatalf("expected 2 records after geo filter, got %d", len(series.Records))
	}
}

func TestNormalize_NoGeoFieldsKeepsAll(t *testing.T) {
	resp := valuesResponse(
		Value{Datetime: "2025-01-01T00:00:00Z", Value: json.Number("42.0")},
		Value{Datetime: "2025-01-01T01:00:00Z", Value: json.Number("43.0")},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(series.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(series.Records))
	}
}

func TestNormalize_FallsBackToDatetimeUTC(t *testing.T) {
	resp := valuesResponse(
		Value{DatetimeUTC: "2025-01-01T00:00:00Z", Value: json.Number("42.0")},
	)

	series, err := Normalize(resp, 600, time.Now())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !series.Records[0].Time.Equal(want) {
		t.Errorf("time = %v, want %v", series.Records[0].Time, want)
	}
}

func TestNormalize_MissingValuesArray(t *testing.T) {
	cases := map[string]*IndicatorResponse{
		"nil response":  nil,
		"nil indicator": {},
		"nil values":    {Indicator: &Indicator{ID: 600}},
	}
	for name, resp := range cases {
		if _, err := Normalize(resp, 600, time.Now()); !errs.HasKind(err, errs.KindFormat) {
			t.Errorf("%s: expected format error, got %v", name, err)
		}
	}
}

func TestNormalize_BadElement(t *testing.T) {
	cases := map[string]Value{
		"no datetime":   {Value: json.Number("42.0")},
		"bad datetime":  {Datetime: "01/01/2025", Value: json.Number("42.0")},
		"missing value": {Datetime: "2025-01-01T00:00:00Z"},
		"bad value":     {Datetime: "2025-01-01T00:00:00Z", Value: json.Number("n/a")},
	}
	for name, v := range cases {
		_, err := Normalize(valuesResponse(v), 600, time.Now())
		if !errs.HasKind(err, errs.KindFormat) {
			t.Errorf("%s: expected format error, got %v", name, err)
		}
	}
}

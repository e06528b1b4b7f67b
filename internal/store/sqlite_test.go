package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"SpotFetch/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func series(indicatorID int, times ...time.Time) *model.PriceSeries {
	records := make([]model.PriceRecord, len(times))
	for i, ts := range times {
		records[i] = model.PriceRecord{Time: ts, Price: decimal.NewFromFloat(40 + float64(i))}
	}
	return &model.PriceSeries{IndicatorID: indicatorID, Records: records, FetchedAt: time.Now()}
}

func TestTableName(t *testing.T) {
	if got := TableName(600); got != "historical_prices" {
		t.Errorf("TableName(600) = %q", got)
	}
	if got := TableName(613); got != "spot_prices_613" {
		t.Errorf("TableName(613) = %q", got)
	}
}

func TestLatestTimestamp_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.LatestTimestamp(600)
	if err != nil {
		t.Fatalf("LatestTimestamp: %v", err)
	}
	if ok {
		t.Error("expected ok=false on empty database")
	}
}

func TestInsertPrices_ThenLatest(t *testing.T) {
	s := openTestStore(t)

	t0 := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)
	if err := s.InsertPrices(series(600, t0, t2, t1)); err != nil {
		t.Fatalf("InsertPrices: %v", err)
	}

	latest, ok, err := s.LatestTimestamp(600)
	if err != nil {
		t.Fatalf("LatestTimestamp: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after insert")
	}
	if !latest.Equal(t2) {
		t.Errorf("latest = %v, want %v", latest, t2)
	}
}

func TestInsertPrices_UpsertReplacesExistingRow(t *testing.T) {
	s := openTestStore(t)

	ts := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	first := &model.PriceSeries{IndicatorID: 600, Records: []model.PriceRecord{
		{Time: ts, Price: decimal.RequireFromString("10.0")},
	}}
	second := &model.PriceSeries{IndicatorID: 600, Records: []model.PriceRecord{
		{Time: ts, Price: decimal.RequireFromString("99.9")},
	}}
	if err := s.InsertPrices(first); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := s.InsertPrices(second); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	var count int
	var price float64
	row := s.db.QueryRow("SELECT COUNT(*), MAX(price_eur_per_mwh) FROM historical_prices")
	if err := row.Scan(&count, &price); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after upsert, got %d", count)
	}
	if price != 99.9 {
		t.Errorf("price = %v, want 99.9", price)
	}
}

func TestInsertPrices_TablePerIndicator(t *testing.T) {
	s := openTestStore(t)

	ts := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := s.InsertPrices(series(600, ts)); err != nil {
		t.Fatalf("insert 600: %v", err)
	}
	if err := s.InsertPrices(series(613, ts.Add(time.Hour))); err != nil {
		t.Fatalf("insert 613: %v", err)
	}

	latest600, ok, err := s.LatestTimestamp(600)
	if err != nil || !ok {
		t.Fatalf("LatestTimestamp(600): ok=%v err=%v", ok, err)
	}
	latest613, ok, err := s.LatestTimestamp(613)
	if err != nil || !ok {
		t.Fatalf("LatestTimestamp(613): ok=%v err=%v", ok, err)
	}
	if !latest600.Equal(ts) || !latest613.Equal(ts.Add(time.Hour)) {
		t.Errorf("latest per indicator mixed up: %v / %v", latest600, latest613)
	}
}

func TestNoop(t *testing.T) {
	n := NewNoop()
	if err := n.InsertPrices(series(600, time.Now())); err != nil {
		t.Errorf("InsertPrices: %v", err)
	}
	if _, ok, err := n.LatestTimestamp(600); ok || err != nil {
		t.Errorf("LatestTimestamp: ok=%v err=%v", ok, err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

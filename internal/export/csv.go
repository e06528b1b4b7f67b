// Package export serializes price series to CSV.
package export

import (
	"encoding/csv"
	"os"
	"time"

	"SpotFetch/internal/errs"
	"SpotFetch/internal/model"
)

// WriteCSV writes the series to path as UTF-8 CSV with a timestamp,price
// header, one row per record. An existing file is overwritten. Nothing is
// created until the series has been fully normalized, so upstream failures
// never leave a partial file behind.
func WriteCSV(series *model.PriceSeries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(errs.KindIO, err, "create %s", path)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "price"}); err != nil {
		f.Close()
		return errs.Wrap(errs.KindIO, "write header", err)
	}
	for _, r := range series.Records {
		ts := r.Time.Format(time.RFC3339)
		if err := w.Write([]string{ts, r.Price.String()}); err != nil {
			f.Close()
			return errs.Wrapf(errs.KindIO, err, "write row %s", ts)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errs.Wrapf(errs.KindIO, err, "flush %s", path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrapf(errs.KindIO, err, "close %s", path)
	}
	return nil
}

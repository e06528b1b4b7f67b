package notifier

import (
	"fmt"
	"strings"
	"time"

	"SpotFetch/internal/model"
	"SpotFetch/internal/stats"
)

// FormatFetchSummary formats the result of a scheduled fetch into a
// Telegram message.
func FormatFetchSummary(series *model.PriceSeries, sum *stats.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚡ <b>ESIOS spot prices</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Indicator: %d (%s)\n", series.IndicatorID, model.Indicators[series.IndicatorID]))
	b.WriteString(fmt.Sprintf("Rows: %d (%s → %s)\n\n",
		sum.Count,
		sum.First.Format("2006-01-02 15:04"),
		sum.Last.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Avg: %s €/MWh\n", sum.Avg.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Min: %s €/MWh at %s\n", sum.Min.StringFixed(2), sum.MinAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Max: %s €/MWh at %s\n", sum.Max.StringFixed(2), sum.MaxAt.Format("2006-01-02 15:04")))

	return b.String()
}

// FormatFetchFailure formats a failed scheduled fetch.
func FormatFetchFailure(indicatorID int, err error) string {
	return fmt.Sprintf("❌ <b>ESIOS fetch failed</b> | indicator %d\n\n%v", indicatorID, err)
}

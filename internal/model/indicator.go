package model

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultIndicator is the ESIOS day-ahead spot price indicator.
const DefaultIndicator = 600

// Indicators maps the supported ESIOS indicator ids to their names.
var Indicators = map[int]string{
	600: "Day-ahead spot price",
	612: "Marginal price intraday market session 1",
	613: "Marginal price intraday market session 2",
	614: "Marginal price intraday market session 3",
}

// IndicatorList renders the supported indicators for usage text.
func IndicatorList() string {
	ids := make([]int, 0, len(Indicators))
	for id := range Indicators {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d (%s)", id, Indicators[id]))
	}
	return strings.Join(parts, ", ")
}

package esios

import (
	"context"
	"time"
)

// Fetcher defines the interface for retrieving indicator data. Satisfied
// by Client.
type Fetcher interface {
	FetchIndicator(ctx context.Context, indicatorID int, start, end time.Time, timeTrunc string) (*IndicatorResponse, error)
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Response *IndicatorResponse
	Err      error
	Calls    []MockCall
}

// MockCall records the arguments of one FetchIndicator invocation.
type MockCall struct {
	IndicatorID int
	Start       time.Time
	End         time.Time
	TimeTrunc   string
}

func (m *MockFetcher) FetchIndicator(_ context.Context, indicatorID int, start, end time.Time, timeTrunc string) (*IndicatorResponse, error) {
	m.Calls = append(m.Calls, MockCall{IndicatorID: indicatorID, Start: start, End: end, TimeTrunc: timeTrunc})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

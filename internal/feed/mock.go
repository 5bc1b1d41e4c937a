package feed

import (
	"context"
	"time"

	"SpotWatch/internal/zone"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Response  []byte
	Err       error
	ByZone    map[string][]byte
	LastStart time.Time
	LastEnd   time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDayAheadPrices(_ context.Context, z zone.Zone, start, end time.Time) ([]byte, error) {
	m.LastStart = start
	m.LastEnd = end
	if m.Err != nil {
		return nil, m.Err
	}
	if body, ok := m.ByZone[z.Code]; ok {
		return body, nil
	}
	return m.Response, nil
}

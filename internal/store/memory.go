package store

import (
	"sort"
	"sync"
	"time"

	"SpotWatch/internal/model"
)

// MemoryStore keeps the timeline in a map. It implements the same contract as
// SQLiteStore and serves as both the test double and a no-database mode.
type MemoryStore struct {
	mu     sync.Mutex
	points map[string]map[int64]TimelinePoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{points: make(map[string]map[int64]TimelinePoint)}
}

func (m *MemoryStore) Upsert(points []model.PricePoint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		byTS, ok := m.points[p.Zone]
		if !ok {
			byTS = make(map[int64]TimelinePoint)
			m.points[p.Zone] = byTS
		}
		byTS[p.Timestamp.Unix()] = TimelinePoint{
			Zone:       p.Zone,
			Timestamp:  p.Timestamp.UTC(),
			Value:      p.Value,
			Currency:   p.Currency,
			Resolution: p.Resolution,
		}
	}
	return len(points), nil
}

func (m *MemoryStore) Range(zone string, start, end time.Time) ([]TimelinePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []TimelinePoint
	for ts, p := range m.points[zone] {
		if ts >= start.Unix() && ts < end.Unix() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

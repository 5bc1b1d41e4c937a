package store

import (
	"time"

	"SpotWatch/internal/model"
)

// TimelinePoint is the persisted form of a decoded price point, keyed
// uniquely by (zone, timestamp).
type TimelinePoint struct {
	Zone       string
	Timestamp  time.Time
	Value      float64
	Currency   string
	Resolution model.Resolution
}

// TimelineStore owns all persisted price rows. Upsert is idempotent and
// all-or-nothing: the batch either commits as a whole or leaves the store
// untouched. For a key that already exists the incoming value overwrites the
// stored one; revision conflicts are resolved by the decoder before points
// reach the store, so "most recently upserted wins" matches the feed's
// re-publication behavior.
//
// Range returns points ascending by timestamp over [start, end). It never
// fabricates rows for missing timestamps and makes no uniform-resolution
// assumption.
type TimelineStore interface {
	Upsert(points []model.PricePoint) (int, error)
	Range(zone string, start, end time.Time) ([]TimelinePoint, error)
	Close() error
}

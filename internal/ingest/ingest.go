package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"SpotWatch/internal/decoder"
	"SpotWatch/internal/feed"
	"SpotWatch/internal/store"
	"SpotWatch/internal/zone"
)

// Ingestor runs the fetch-classify-decode-upsert pipeline. The store handle
// is injected so tests (and no-database callers) can substitute an in-memory
// one.
type Ingestor struct {
	Fetcher feed.Fetcher
	Store   store.TimelineStore
}

// Summary reports one ingest run across zones.
type Summary struct {
	ZonesFetched int
	ZonesFailed  int
	ZonesEmpty   int
	PointsStored int
}

// NewIngestor creates a new Ingestor.
func NewIngestor(fetcher feed.Fetcher, st store.TimelineStore) *Ingestor {
	return &Ingestor{Fetcher: fetcher, Store: st}
}

// Run ingests day-ahead prices for every given zone over [start, end).
// A zone the feed has no data for is an expected empty outcome, not a
// failure. Zones fail independently; an error is returned only when no zone
// succeeded at all.
func (in *Ingestor) Run(ctx context.Context, zones []zone.Zone, start, end time.Time) (*Summary, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zones to ingest")
	}

	sum := &Summary{}
	for _, z := range zones {
		count, err := in.ingestZone(ctx, z, start, end)
		switch {
		case errors.Is(err, decoder.ErrNoData):
			log.Printf("[INFO] zone %s: no published prices for the requested period", z)
			sum.ZonesEmpty++
		case err != nil:
			log.Printf("[WARN] zone %s: %v", z, err)
			sum.ZonesFailed++
		default:
			log.Printf("[INFO] zone %s: stored %d points", z, count)
			sum.ZonesFetched++
			sum.PointsStored += count
		}
	}

	if sum.ZonesFetched == 0 && sum.ZonesEmpty == 0 {
		return sum, fmt.Errorf("all %d zones failed", sum.ZonesFailed)
	}
	return sum, nil
}

// ingestZone handles one zone. Nothing is written unless the whole document
// decodes cleanly.
func (in *Ingestor) ingestZone(ctx context.Context, z zone.Zone, start, end time.Time) (int, error) {
	raw, err := in.Fetcher.FetchDayAheadPrices(ctx, z, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	doc, err := decoder.Classify(raw)
	if err != nil {
		return 0, fmt.Errorf("classify: %w", err)
	}

	switch d := doc.(type) {
	case *decoder.Acknowledgement:
		return 0, decoder.ReasonToError(d)
	case *decoder.Publication:
		points, err := decoder.DecodePublication(z.Code, d)
		if err != nil {
			return 0, fmt.Errorf("decode: %w", err)
		}
		if len(points) == 0 {
			return 0, decoder.ErrNoData
		}
		count, err := in.Store.Upsert(points)
		if err != nil {
			return 0, fmt.Errorf("upsert: %w", err)
		}
		return count, nil
	default:
		return 0, fmt.Errorf("classify: %w", decoder.ErrUnrecognizedDocument)
	}
}

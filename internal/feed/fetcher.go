package feed

import (
	"context"
	"time"

	"SpotWatch/internal/zone"
)

// Fetcher obtains raw day-ahead price documents for a zone over a UTC
// half-open time range. Implementations return document bytes or a transport
// error; interpreting the bytes is the decoder's job.
type Fetcher interface {
	FetchDayAheadPrices(ctx context.Context, z zone.Zone, start, end time.Time) ([]byte, error)
	Name() string
}

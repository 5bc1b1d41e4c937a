package decoder

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"SpotWatch/internal/model"
)

// candidate is one reconstructed point plus the revision of its enclosing
// document, kept until duplicate timestamps are resolved.
type candidate struct {
	point    model.PricePoint
	revision int
}

// DecodePublication turns one classified publication into an ordered,
// duplicate-free sequence of price points for the given zone.
func DecodePublication(zoneCode string, pub *Publication) ([]model.PricePoint, error) {
	return DecodePublications(zoneCode, pub)
}

// DecodePublications decodes one or more publications covering the same zone
// and merges their points. When two points share a timestamp the one from the
// document with the higher revision number wins; on equal revisions the
// later-encountered point wins. Re-published overlapping series are how the
// feed issues corrections, so this is policy, not an error.
func DecodePublications(zoneCode string, pubs ...*Publication) ([]model.PricePoint, error) {
	best := make(map[int64]candidate)

	for _, pub := range pubs {
		for _, series := range pub.Series {
			if len(series.Periods) == 0 {
				// Empty series are how the feed says "zone exists, nothing
				// published"; skip without complaint.
				continue
			}
			currency, err := validCurrency(series.Currency)
			if err != nil {
				return nil, err
			}
			for _, period := range series.Periods {
				res, ok := model.ParseResolution(period.Resolution)
				if !ok {
					return nil, fmt.Errorf("%w: %q", ErrUnsupportedResolution, period.Resolution)
				}
				start, err := parseInstant(period.Start)
				if err != nil {
					return nil, fmt.Errorf("%w: period start %q", ErrMalformedInterval, period.Start)
				}

				prevPos := 0
				for _, raw := range period.Points {
					pos, err := strconv.Atoi(strings.TrimSpace(raw.Position))
					if err != nil || pos < 1 {
						return nil, fmt.Errorf("%w: %q", ErrMalformedPosition, raw.Position)
					}
					if pos <= prevPos {
						return nil, fmt.Errorf("%w: position %d after %d", ErrMalformedPosition, pos, prevPos)
					}
					prevPos = pos

					value, err := strconv.ParseFloat(strings.TrimSpace(raw.Amount), 64)
					if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
						return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, raw.Amount)
					}

					ts := start.Add(time.Duration(pos-1) * res.Duration())
					cand := candidate{
						point: model.PricePoint{
							Zone:       zoneCode,
							Timestamp:  ts,
							Value:      value,
							Currency:   currency,
							Resolution: res,
						},
						revision: pub.Revision,
					}

					// Points are visited in document order, so on equal
					// revisions the later-encountered one replaces the earlier.
					key := ts.Unix()
					if prev, exists := best[key]; !exists || cand.revision >= prev.revision {
						best[key] = cand
					}
				}
			}
		}
	}

	points := make([]model.PricePoint, 0, len(best))
	for _, c := range best {
		points = append(points, c.point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, nil
}

// validCurrency checks for a 3-letter uppercase code. The engine does not
// validate against a live currency list.
func validCurrency(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return code, nil
}

// parseInstant handles the feed's minute-precision timestamps
// (2024-01-15T00:00Z) as well as full RFC3339.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02T15:04Z07:00", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

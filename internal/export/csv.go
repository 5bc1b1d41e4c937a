package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"SpotWatch/internal/store"
)

// WriteCSV streams timeline points as CSV. Points are written in the order
// given; callers hand over the store's range output, which is already sorted.
func WriteCSV(w io.Writer, points []store.TimelinePoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"timestamp", "price", "currency", "zone"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range points {
		row := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Value, 'f', 2, 64),
			p.Currency,
			p.Zone,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

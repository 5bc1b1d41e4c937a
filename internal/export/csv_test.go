package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpotWatch/internal/model"
	"SpotWatch/internal/store"
)

func testPoints() []store.TimelinePoint {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []store.TimelinePoint{
		{Zone: "FI", Timestamp: start, Value: 50.07, Currency: "EUR", Resolution: model.ResolutionHour},
		{Zone: "FI", Timestamp: start.Add(time.Hour), Value: -2.5, Currency: "EUR", Resolution: model.ResolutionHour},
	}
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, testPoints()))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,price,currency,zone", lines[0])
	assert.Equal(t, "2024-01-15T00:00:00Z,50.07,EUR,FI", lines[1])
	assert.Equal(t, "2024-01-15T01:00:00Z,-2.50,EUR,FI", lines[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, nil))
	assert.Equal(t, "timestamp,price,currency,zone\n", sb.String())
}

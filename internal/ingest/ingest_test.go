package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpotWatch/internal/feed"
	"SpotWatch/internal/store"
	"SpotWatch/internal/zone"
)

const publicationXML = `<?xml version="1.0" encoding="UTF-8"?>
<Publication_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-3:publicationdocument:7:0">
	<revisionNumber>1</revisionNumber>
	<TimeSeries>
		<currency_Unit.name>EUR</currency_Unit.name>
		<price_Measure_Unit.name>MWH</price_Measure_Unit.name>
		<Period>
			<timeInterval>
				<start>2024-01-15T00:00Z</start>
				<end>2024-01-15T02:00Z</end>
			</timeInterval>
			<resolution>PT60M</resolution>
			<Point><position>1</position><price.amount>50.0</price.amount></Point>
			<Point><position>2</position><price.amount>45.5</price.amount></Point>
		</Period>
	</TimeSeries>
</Publication_MarketDocument>`

const noDataXML = `<?xml version="1.0" encoding="UTF-8"?>
<Acknowledgement_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-1:acknowledgementdocument:8:1">
	<Reason>
		<code>999</code>
		<text>No matching data found</text>
	</Reason>
</Acknowledgement_MarketDocument>`

const deniedXML = `<?xml version="1.0" encoding="UTF-8"?>
<Acknowledgement_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-1:acknowledgementdocument:8:1">
	<Reason>
		<code>429</code>
		<text>Too many requests</text>
	</Reason>
</Acknowledgement_MarketDocument>`

var (
	runStart = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	runEnd   = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
)

func mustZone(t *testing.T, code string) zone.Zone {
	t.Helper()
	z, ok := zone.FromCode(code)
	require.True(t, ok)
	return z
}

func TestRun_StoresDecodedPoints(t *testing.T) {
	st := store.NewMemoryStore()
	in := NewIngestor(&feed.MockFetcher{Response: []byte(publicationXML)}, st)

	sum, err := in.Run(context.Background(), []zone.Zone{mustZone(t, "FI")}, runStart, runEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ZonesFetched)
	assert.Equal(t, 2, sum.PointsStored)

	got, err := st.Range("FI", runStart, runEnd)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 50.0, got[0].Value)
	assert.Equal(t, 45.5, got[1].Value)
}

func TestRun_NoDataIsNotAFailure(t *testing.T) {
	st := store.NewMemoryStore()
	in := NewIngestor(&feed.MockFetcher{Response: []byte(noDataXML)}, st)

	sum, err := in.Run(context.Background(), []zone.Zone{mustZone(t, "FI")}, runStart, runEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ZonesEmpty)
	assert.Zero(t, sum.PointsStored)

	got, err := st.Range("FI", runStart, runEnd)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_UpstreamFailureCountsAsFailed(t *testing.T) {
	st := store.NewMemoryStore()
	in := NewIngestor(&feed.MockFetcher{Response: []byte(deniedXML)}, st)

	_, err := in.Run(context.Background(), []zone.Zone{mustZone(t, "FI")}, runStart, runEnd)
	assert.Error(t, err, "a single zone failing upstream fails the run")
}

func TestRun_MalformedDocumentWritesNothing(t *testing.T) {
	st := store.NewMemoryStore()
	in := NewIngestor(&feed.MockFetcher{Response: []byte(`<Unknown_Document/>`)}, st)

	_, err := in.Run(context.Background(), []zone.Zone{mustZone(t, "FI")}, runStart, runEnd)
	assert.Error(t, err)

	got, err := st.Range("FI", runStart, runEnd)
	require.NoError(t, err)
	assert.Empty(t, got, "nothing reaches the store on a failed classify")
}

func TestRun_ZonesFailIndependently(t *testing.T) {
	st := store.NewMemoryStore()
	in := NewIngestor(&feed.MockFetcher{
		Response: []byte(`garbage`),
		ByZone:   map[string][]byte{"FI": []byte(publicationXML)},
	}, st)

	sum, err := in.Run(context.Background(), []zone.Zone{mustZone(t, "FI"), mustZone(t, "SE3")}, runStart, runEnd)
	require.NoError(t, err, "one healthy zone keeps the run alive")
	assert.Equal(t, 1, sum.ZonesFetched)
	assert.Equal(t, 1, sum.ZonesFailed)

	got, err := st.Range("FI", runStart, runEnd)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRun_NoZones(t *testing.T) {
	in := NewIngestor(&feed.MockFetcher{}, store.NewMemoryStore())
	_, err := in.Run(context.Background(), nil, runStart, runEnd)
	assert.Error(t, err)
}

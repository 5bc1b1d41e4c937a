package decoder

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpotWatch/internal/model"
)

const publicationFixture = `<?xml version="1.0" encoding="UTF-8"?>
<Publication_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-3:publicationdocument:7:0">
	<mRID>doc-1</mRID>
	<revisionNumber>1</revisionNumber>
	<TimeSeries>
		<currency_Unit.name>EUR</currency_Unit.name>
		<price_Measure_Unit.name>MWH</price_Measure_Unit.name>
		<Period>
			<timeInterval>
				<start>2024-01-15T00:00Z</start>
				<end>2024-01-15T04:00Z</end>
			</timeInterval>
			<resolution>PT60M</resolution>
			<Point><position>1</position><price.amount>50.07</price.amount></Point>
			<Point><position>2</position><price.amount>48.10</price.amount></Point>
			<Point><position>3</position><price.amount>45.00</price.amount></Point>
			<Point><position>4</position><price.amount>-2.55</price.amount></Point>
		</Period>
	</TimeSeries>
</Publication_MarketDocument>`

// buildPublication assembles a raw publication without going through XML.
func buildPublication(revision int, periods ...Period) *Publication {
	return &Publication{
		Revision: revision,
		Series: []TimeSeries{{
			Currency: "EUR",
			Unit:     "MWH",
			Periods:  periods,
		}},
	}
}

func hourlyPeriod(start string, amounts ...string) Period {
	p := Period{Start: start, Resolution: "PT60M"}
	for i, a := range amounts {
		p.Points = append(p.Points, RawPoint{Position: fmt.Sprintf("%d", i+1), Amount: a})
	}
	return p
}

func TestDecodePublication_Ordering(t *testing.T) {
	doc, err := Classify([]byte(publicationFixture))
	require.NoError(t, err)
	pub := doc.(*Publication)

	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	require.Len(t, points, 4)

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Timestamp.Before(points[i].Timestamp),
			"points must be strictly ascending")
	}
	assert.Equal(t, "FI", points[0].Zone)
	assert.Equal(t, "EUR", points[0].Currency)
	assert.Equal(t, model.ResolutionHour, points[0].Resolution)
	assert.Equal(t, 50.07, points[0].Value)
	assert.Equal(t, -2.55, points[3].Value)
}

func TestDecodePublication_PositionReconstruction(t *testing.T) {
	pub := buildPublication(1, hourlyPeriod("2024-01-15T00:00Z", "10", "20", "30"))

	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	require.Len(t, points, 3)

	want := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
	assert.True(t, points[2].Timestamp.Equal(want),
		"position 3 at PT60M from 00:00 should be 02:00, got %v", points[2].Timestamp)
}

func TestDecodePublication_QuarterHourReconstruction(t *testing.T) {
	p := Period{Start: "2024-01-15T00:00Z", Resolution: "PT15M", Points: []RawPoint{
		{Position: "1", Amount: "10"},
		{Position: "5", Amount: "20"},
	}}
	pub := buildPublication(1, p)

	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[1].Timestamp.Equal(time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.ResolutionQuarterHour, points[1].Resolution)
}

func TestDecodePublications_RevisionConflict(t *testing.T) {
	older := buildPublication(1, hourlyPeriod("2024-01-15T00:00Z", "10.0"))
	newer := buildPublication(2, hourlyPeriod("2024-01-15T00:00Z", "12.5"))

	// Revision wins regardless of argument order.
	points, err := DecodePublications("FI", newer, older)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 12.5, points[0].Value)

	points, err = DecodePublications("FI", older, newer)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 12.5, points[0].Value)
}

func TestDecodePublications_EqualRevisionLaterWins(t *testing.T) {
	pub := &Publication{
		Revision: 1,
		Series: []TimeSeries{
			{Currency: "EUR", Unit: "MWH", Periods: []Period{hourlyPeriod("2024-01-15T00:00Z", "10.0")}},
			{Currency: "EUR", Unit: "MWH", Periods: []Period{hourlyPeriod("2024-01-15T00:00Z", "11.0")}},
		},
	}

	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 11.0, points[0].Value, "later point in document order wins on equal revision")
}

func TestDecodePublication_GapsStayGaps(t *testing.T) {
	p := Period{Start: "2024-01-15T00:00Z", Resolution: "PT60M", Points: []RawPoint{
		{Position: "1", Amount: "10"},
		{Position: "2", Amount: "20"},
		{Position: "4", Amount: "40"},
	}}
	pub := buildPublication(1, p)

	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	require.Len(t, points, 3, "skipped position must not be flat-filled")
	assert.True(t, points[2].Timestamp.Equal(time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)))
}

func TestDecodePublication_EmptySeriesList(t *testing.T) {
	points, err := DecodePublication("FI", &Publication{Revision: 1})
	require.NoError(t, err, "valid request with no data is not a malformed document")
	assert.Empty(t, points)
}

func TestDecodePublication_SeriesWithoutPeriodsSkipped(t *testing.T) {
	pub := &Publication{
		Revision: 1,
		Series: []TimeSeries{
			{Currency: "EUR", Unit: "MWH"},
			{Currency: "EUR", Unit: "MWH", Periods: []Period{hourlyPeriod("2024-01-15T00:00Z", "10")}},
		},
	}
	points, err := DecodePublication("FI", pub)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestDecodePublication_UnsupportedResolution(t *testing.T) {
	p := hourlyPeriod("2024-01-15T00:00Z", "10")
	p.Resolution = "P1D"
	_, err := DecodePublication("FI", buildPublication(1, p))
	assert.ErrorIs(t, err, ErrUnsupportedResolution)
}

func TestDecodePublication_MalformedPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []string
	}{
		{"zero", []string{"0"}},
		{"negative", []string{"-1"}},
		{"not a number", []string{"abc"}},
		{"non-increasing", []string{"2", "2"}},
		{"decreasing", []string{"3", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Period{Start: "2024-01-15T00:00Z", Resolution: "PT60M"}
			for _, pos := range tt.positions {
				p.Points = append(p.Points, RawPoint{Position: pos, Amount: "10"})
			}
			_, err := DecodePublication("FI", buildPublication(1, p))
			assert.ErrorIs(t, err, ErrMalformedPosition)
		})
	}
}

func TestDecodePublication_InvalidPrice(t *testing.T) {
	for _, amount := range []string{"", "abc", "NaN", "+Inf"} {
		p := Period{Start: "2024-01-15T00:00Z", Resolution: "PT60M", Points: []RawPoint{
			{Position: "1", Amount: amount},
		}}
		_, err := DecodePublication("FI", buildPublication(1, p))
		assert.ErrorIs(t, err, ErrInvalidPrice, "amount %q", amount)
	}
}

func TestDecodePublication_InvalidCurrency(t *testing.T) {
	for _, cur := range []string{"", "EU", "EURO", "eur", "E1R"} {
		pub := &Publication{
			Revision: 1,
			Series: []TimeSeries{{
				Currency: cur,
				Unit:     "MWH",
				Periods:  []Period{hourlyPeriod("2024-01-15T00:00Z", "10")},
			}},
		}
		_, err := DecodePublication("FI", pub)
		assert.ErrorIs(t, err, ErrInvalidCurrency, "currency %q", cur)
	}
}

func TestDecodePublication_MalformedInterval(t *testing.T) {
	p := hourlyPeriod("15-01-2024", "10")
	_, err := DecodePublication("FI", buildPublication(1, p))
	assert.ErrorIs(t, err, ErrMalformedInterval)
}

func TestParseInstant(t *testing.T) {
	got, err := parseInstant("2024-01-15T23:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)))

	got, err = parseInstant("2024-01-15T23:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)))

	got, err = parseInstant("2024-01-15T23:00+01:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)))
}

package decoder

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Document is the closed set of feed document kinds this engine understands.
// Classification happens once, by root element identity; nothing downstream
// probes raw XML.
type Document interface {
	isDocument()
}

// Publication is a classified day-ahead price publication.
type Publication struct {
	Revision int
	Series   []TimeSeries
}

// TimeSeries is one raw series inside a publication. Currency and unit apply
// to every point in every period of the series.
type TimeSeries struct {
	Currency string
	Unit     string
	Periods  []Period
}

// Period is one delivery interval with its resolution and raw points.
// Start and End are the feed's ISO-8601 strings, parsed by the decoder.
type Period struct {
	Start      string
	End        string
	Resolution string
	Points     []RawPoint
}

// RawPoint keeps position and amount as published text so that validation
// failures can report exactly what the feed sent.
type RawPoint struct {
	Position string
	Amount   string
}

// Acknowledgement is the feed's own failure report for a request.
type Acknowledgement struct {
	Code string
	Text string
}

func (*Publication) isDocument()     {}
func (*Acknowledgement) isDocument() {}

const (
	publicationRoot     = "Publication_MarketDocument"
	acknowledgementRoot = "Acknowledgement_MarketDocument"
)

type publicationXML struct {
	RevisionNumber int `xml:"revisionNumber"`
	TimeSeries     []struct {
		Currency string `xml:"currency_Unit.name"`
		Unit     string `xml:"price_Measure_Unit.name"`
		Periods  []struct {
			TimeInterval struct {
				Start string `xml:"start"`
				End   string `xml:"end"`
			} `xml:"timeInterval"`
			Resolution string `xml:"resolution"`
			Points     []struct {
				Position string `xml:"position"`
				Amount   string `xml:"price.amount"`
			} `xml:"Point"`
		} `xml:"Period"`
	} `xml:"TimeSeries"`
}

type acknowledgementXML struct {
	Reason struct {
		Code string `xml:"code"`
		Text string `xml:"text"`
	} `xml:"Reason"`
}

// Classify inspects the root element of a raw feed document and returns the
// matching typed form. A root that is neither known kind is
// ErrUnrecognizedDocument.
func Classify(data []byte) (Document, error) {
	root, err := rootName(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedDocument, err)
	}

	switch root {
	case publicationRoot:
		var raw publicationXML
		if err := xml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse publication document: %w", err)
		}
		return convertPublication(&raw), nil
	case acknowledgementRoot:
		var raw acknowledgementXML
		if err := xml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse acknowledgement document: %w", err)
		}
		return &Acknowledgement{Code: raw.Reason.Code, Text: raw.Reason.Text}, nil
	default:
		return nil, fmt.Errorf("%w: root element %q", ErrUnrecognizedDocument, root)
	}
}

// rootName returns the local name of the document's root element.
func rootName(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", fmt.Errorf("document has no root element")
		}
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func convertPublication(raw *publicationXML) *Publication {
	pub := &Publication{Revision: raw.RevisionNumber}
	for _, ts := range raw.TimeSeries {
		series := TimeSeries{Currency: ts.Currency, Unit: ts.Unit}
		for _, p := range ts.Periods {
			period := Period{
				Start:      p.TimeInterval.Start,
				End:        p.TimeInterval.End,
				Resolution: p.Resolution,
			}
			for _, pt := range p.Points {
				period.Points = append(period.Points, RawPoint{Position: pt.Position, Amount: pt.Amount})
			}
			series.Periods = append(series.Periods, period)
		}
		pub.Series = append(pub.Series, series)
	}
	return pub
}

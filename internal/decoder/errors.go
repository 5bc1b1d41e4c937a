package decoder

import (
	"errors"
	"fmt"
)

// Decode errors. All are local to this package and recoverable by the caller;
// nothing reaches the store until a whole document decodes cleanly.
var (
	ErrUnrecognizedDocument  = errors.New("unrecognized document kind")
	ErrUnsupportedResolution = errors.New("unsupported resolution")
	ErrMalformedPosition     = errors.New("malformed position")
	ErrInvalidPrice          = errors.New("invalid price value")
	ErrInvalidCurrency       = errors.New("invalid currency")
	ErrMalformedInterval     = errors.New("malformed time interval")
)

// ErrNoData is the upstream's "valid request, no published prices" answer.
// Callers commonly treat it as an empty result, not a failure.
var ErrNoData = errors.New("no matching data for the requested zone and period")

// UpstreamError carries a feed acknowledgement failure this engine does not
// interpret beyond forwarding code and text for diagnostics.
type UpstreamError struct {
	Code string
	Text string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream reported failure (code %s): %s", e.Code, e.Text)
}

// noMatchingDataCode is the documented acknowledgement reason for an empty result.
const noMatchingDataCode = "999"

// ReasonToError maps an acknowledgement onto the error taxonomy. Code 999 is
// the expected "no data" outcome; every other code surfaces verbatim.
func ReasonToError(ack *Acknowledgement) error {
	if ack.Code == noMatchingDataCode {
		return ErrNoData
	}
	return &UpstreamError{Code: ack.Code, Text: ack.Text}
}

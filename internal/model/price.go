package model

import "time"

// Resolution is the duration each published price point represents.
type Resolution int

const (
	ResolutionQuarterHour Resolution = 15
	ResolutionHalfHour    Resolution = 30
	ResolutionHour        Resolution = 60
)

// ParseResolution maps a feed resolution code to a Resolution.
// Returns false for codes the feed does not document.
func ParseResolution(code string) (Resolution, bool) {
	switch code {
	case "PT15M":
		return ResolutionQuarterHour, true
	case "PT30M":
		return ResolutionHalfHour, true
	case "PT60M":
		return ResolutionHour, true
	default:
		return 0, false
	}
}

// Minutes returns the resolution length in minutes.
func (r Resolution) Minutes() int { return int(r) }

// Duration returns the resolution as a time.Duration.
func (r Resolution) Duration() time.Duration { return time.Duration(r) * time.Minute }

// String returns the feed's code for the resolution.
func (r Resolution) String() string {
	switch r {
	case ResolutionQuarterHour:
		return "PT15M"
	case ResolutionHalfHour:
		return "PT30M"
	case ResolutionHour:
		return "PT60M"
	default:
		return "UNKNOWN"
	}
}

// PricePoint is one published price for one time slot in one bidding zone.
// Timestamp is the absolute UTC start of the slot, never a local wall-clock time.
type PricePoint struct {
	Zone       string
	Timestamp  time.Time
	Value      float64
	Currency   string
	Resolution Resolution
}

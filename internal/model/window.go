package model

import "time"

// WindowKind tells which extreme a WindowResult represents.
type WindowKind string

const (
	WindowCheapest      WindowKind = "cheapest"
	WindowMostExpensive WindowKind = "most-expensive"
)

// WindowResult describes one optimal contiguous window over a price timeline.
// End is exclusive. Total and Average carry the timeline's currency per slot.
type WindowResult struct {
	Start     time.Time
	End       time.Time
	HourCount int
	Total     float64
	Average   float64
	Kind      WindowKind
}

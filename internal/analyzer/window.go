package analyzer

import (
	"errors"
	"fmt"
	"time"

	"SpotWatch/internal/model"
	"SpotWatch/internal/store"
)

var (
	// ErrInsufficientData means the timeline holds fewer points than one window.
	ErrInsufficientData = errors.New("not enough points for the requested window")

	// ErrDiscontinuousTimeline means the analyzed range has a gap. The
	// analyzer never skips or interpolates missing slots: a "cheapest window"
	// spanning an outage in data would be a lie.
	ErrDiscontinuousTimeline = errors.New("timeline has a gap inside the analyzed range")
)

// ExtremeWindows holds the minimum-sum and maximum-sum contiguous windows of
// one analysis pass.
type ExtremeWindows struct {
	Cheapest      model.WindowResult
	MostExpensive model.WindowResult
}

// FindExtremeWindows scans an ordered timeline for the cheapest and most
// expensive contiguous windows of the given hour count. The timeline must be
// gap-free at its own resolution: every point's timestamp must be exactly one
// resolution step after the previous one. Equal-sum ties go to the earliest
// start.
func FindExtremeWindows(points []store.TimelinePoint, hours int) (*ExtremeWindows, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", hours)
	}
	if len(points) == 0 {
		return nil, ErrInsufficientData
	}

	res := points[0].Resolution
	for i := 1; i < len(points); i++ {
		if points[i].Resolution != res {
			return nil, fmt.Errorf("%w: resolution changes from %s to %s at %s",
				ErrDiscontinuousTimeline, res, points[i].Resolution,
				points[i].Timestamp.Format(time.RFC3339))
		}
		expected := points[i-1].Timestamp.Add(res.Duration())
		if !points[i].Timestamp.Equal(expected) {
			return nil, fmt.Errorf("%w: expected point at %s, got %s",
				ErrDiscontinuousTimeline,
				expected.Format(time.RFC3339),
				points[i].Timestamp.Format(time.RFC3339))
		}
	}

	slots := hours * 60 / res.Minutes()
	if len(points) < slots {
		return nil, ErrInsufficientData
	}

	sum := 0.0
	for i := 0; i < slots; i++ {
		sum += points[i].Value
	}
	minSum, maxSum := sum, sum
	minIdx, maxIdx := 0, 0

	for i := slots; i < len(points); i++ {
		sum += points[i].Value - points[i-slots].Value
		if sum < minSum {
			minSum = sum
			minIdx = i + 1 - slots
		}
		if sum > maxSum {
			maxSum = sum
			maxIdx = i + 1 - slots
		}
	}

	return &ExtremeWindows{
		Cheapest:      windowResult(points, minIdx, slots, hours, minSum, model.WindowCheapest),
		MostExpensive: windowResult(points, maxIdx, slots, hours, maxSum, model.WindowMostExpensive),
	}, nil
}

func windowResult(points []store.TimelinePoint, idx, slots, hours int, total float64, kind model.WindowKind) model.WindowResult {
	start := points[idx].Timestamp
	return model.WindowResult{
		Start:     start,
		End:       start.Add(time.Duration(hours) * time.Hour),
		HourCount: hours,
		Total:     total,
		Average:   total / float64(slots),
		Kind:      kind,
	}
}

package export

import (
	"fmt"
	"io"
	"time"

	"github.com/guptarohit/asciigraph"

	"SpotWatch/internal/analyzer"
	"SpotWatch/internal/model"
	"SpotWatch/internal/store"
)

// DefaultWindowHours are the window lengths shown in the summary tables.
var DefaultWindowHours = []int{1, 2, 3, 5, 8, 13}

// RenderOptions controls the terminal summary.
type RenderOptions struct {
	Location    *time.Location
	WindowHours []int
	Now         time.Time
}

const displayTimeFormat = "Mon 15:04"

// RenderSummary prints window tables, a spot graph, and the per-hour price
// table for one zone's timeline.
func RenderSummary(w io.Writer, zoneCode string, points []store.TimelinePoint, opts RenderOptions) error {
	if len(points) == 0 {
		return fmt.Errorf("no price data to render for %s", zoneCode)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	hours := opts.WindowHours
	if len(hours) == 0 {
		hours = DefaultWindowHours
	}

	fmt.Fprintf(w, "%s %s\n\n", zoneCode, now.In(loc).Format("2006-01-02T15:04:05 MST"))

	cheapest, priciest := collectWindows(points, hours)
	renderHeader(w, "Cheapest consecutive hours")
	renderWindowTable(w, cheapest, loc)
	fmt.Fprintln(w)

	renderHeader(w, "Priciest consecutive hours")
	renderWindowTable(w, priciest, loc)
	fmt.Fprintln(w)

	renderHeader(w, "Spot graph")
	renderGraph(w, points, loc)
	fmt.Fprintln(w)

	renderHeader(w, "All prices")
	renderPriceTable(w, points, loc)
	return nil
}

// collectWindows runs the analyzer for each requested length, skipping the
// lengths the timeline cannot answer.
func collectWindows(points []store.TimelinePoint, hours []int) (cheapest, priciest []model.WindowResult) {
	for _, n := range hours {
		windows, err := analyzer.FindExtremeWindows(points, n)
		if err != nil {
			// Too short or gapped for this length; shorter lengths may still work.
			continue
		}
		cheapest = append(cheapest, windows.Cheapest)
		priciest = append(priciest, windows.MostExpensive)
	}
	return cheapest, priciest
}

func renderHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	for range title {
		fmt.Fprint(w, "━")
	}
	fmt.Fprint(w, "\n\n")
}

func renderWindowTable(w io.Writer, windows []model.WindowResult, loc *time.Location) {
	if len(windows) == 0 {
		fmt.Fprintln(w, "(no contiguous window available)")
		return
	}
	fmt.Fprintf(w, "%3s  %-10s  %-10s  %10s\n", "n", "start", "end", "avg")
	for _, win := range windows {
		fmt.Fprintf(w, "%3d  %-10s  %-10s  %10.2f\n",
			win.HourCount,
			win.Start.In(loc).Format(displayTimeFormat),
			win.End.In(loc).Format(displayTimeFormat),
			win.Average)
	}
}

func renderGraph(w io.Writer, points []store.TimelinePoint, loc *time.Location) {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	caption := fmt.Sprintf("%s (%s - %s)",
		points[0].Currency,
		points[0].Timestamp.In(loc).Format(displayTimeFormat),
		points[len(points)-1].Timestamp.In(loc).Format(displayTimeFormat))

	fmt.Fprintln(w, asciigraph.Plot(values,
		asciigraph.Height(7),
		asciigraph.Width(38),
		asciigraph.Caption(caption)))
}

// renderPriceTable prints one row per local hour with a column per quarter.
// Hourly data fills only the :00 column; missing slots show a dash.
func renderPriceTable(w io.Writer, points []store.TimelinePoint, loc *time.Location) {
	fmt.Fprintln(w, "Time         :00    :15    :30    :45")

	var (
		currentHour time.Time
		quarters    [4]*float64
		started     bool
	)

	flush := func() {
		fmt.Fprintf(w, "%-10s", currentHour.Format(displayTimeFormat))
		for _, q := range quarters {
			if q != nil {
				fmt.Fprintf(w, " %6.2f", *q)
			} else {
				fmt.Fprintf(w, " %6s", "-")
			}
		}
		fmt.Fprintln(w)
	}

	for _, p := range points {
		local := p.Timestamp.In(loc)
		hourStart := local.Truncate(time.Hour)
		if started && !hourStart.Equal(currentHour) {
			flush()
			quarters = [4]*float64{}
		}
		currentHour = hourStart
		started = true

		v := p.Value
		quarters[local.Minute()/15] = &v
	}
	if started {
		flush()
	}
}

// Package view derives what a page displays from a loaded snapshot: the
// event list for a filter key, the timeline and the per-type counts.
package view

import (
	"sort"
	"time"

	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/model"
)

// All selects the primary record of every event.
const All = "all"

const dateLayout = "2006-01-02"

// Select returns the events to display for filterKey: the unique events for
// All, otherwise every record whose catalog equals filterKey exactly.
func Select(snap *catalog.Snapshot, filterKey string) []model.Event {
	if filterKey == All {
		return snap.Unique()
	}
	out := []model.Event{}
	for _, e := range snap.All() {
		if e.Catalog == filterKey {
			out = append(out, e)
		}
	}
	return out
}

// TimelinePoint is one event placed on the cumulative detection timeline.
type TimelinePoint struct {
	Event      model.Event
	Date       time.Time
	Cumulative int
}

// Timeline orders events by detection date (stable, so ties keep input
// order) and numbers them 1..n. Events with an Unknown or unparsable date
// are left out.
func Timeline(events []model.Event) []TimelinePoint {
	pts := make([]TimelinePoint, 0, len(events))
	for _, e := range events {
		if e.DetectionDate == model.UnknownDate {
			continue
		}
		d, err := time.Parse(dateLayout, e.DetectionDate)
		if err != nil {
			continue
		}
		pts = append(pts, TimelinePoint{Event: e, Date: d})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })
	for i := range pts {
		pts[i].Cumulative = i + 1
	}
	return pts
}

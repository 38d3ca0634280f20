package plot

import (
	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/view"
)

// Panel is one chart of a view.
type Panel struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	XTitle string   `json:"x_title"`
	YTitle string   `json:"y_title,omitempty"`
	Series []Series `json:"series"`
}

// View is everything the page shows for one filter key.
type View struct {
	Key          string     `json:"key"`
	Label        string     `json:"label"`
	Stats        view.Stats `json:"stats"`
	Unclassified int        `json:"unclassified"`
	Panels       []Panel    `json:"panels"`
}

// BuildView selects the events for key and derives every panel from them.
func BuildView(snap *catalog.Snapshot, key string) View {
	events := view.Select(snap, key)
	stats := view.Aggregate(events)
	label := key
	if key == view.All {
		label = "All events"
	}
	return View{
		Key:          key,
		Label:        label,
		Stats:        stats,
		Unclassified: stats.Unclassified(),
		Panels: []Panel{
			{ID: "mass", Title: "Component masses", XTitle: "m1 (M☉)", YTitle: "m2 (M☉)", Series: MassScatter(events)},
			{ID: "total_mass", Title: "Total mass distribution", XTitle: FieldTotalMass.Title(), YTitle: "Events", Series: Histogram(events, FieldTotalMass)},
			{ID: "distance", Title: "Distance distribution", XTitle: FieldDistance.Title(), YTitle: "Events", Series: Histogram(events, FieldDistance)},
			{ID: "timeline", Title: "Detections over time", XTitle: "Detection date", YTitle: "Cumulative count", Series: Timeline(view.Timeline(events))},
		},
	}
}

// BuildAll returns the "all" view followed by one view per catalog tag. A
// tag spelled like the sentinel gets no view of its own; its records still
// show under "all".
func BuildAll(snap *catalog.Snapshot) []View {
	tags := snap.Catalogs()
	out := make([]View, 0, len(tags)+1)
	out = append(out, BuildView(snap, view.All))
	for _, tag := range tags {
		if tag == view.All {
			continue
		}
		out = append(out, BuildView(snap, tag))
	}
	return out
}

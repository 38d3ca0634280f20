// Package reconcile groups catalog-version records that describe the same
// merger and picks the primary record of each name.
package reconcile

import "github.com/jperret21/GW-event-viz/internal/model"

// Group holds every version of one named event, in input order.
type Group struct {
	Name     string
	Versions []model.Event
}

// Primary is the last-listed version.
func (g Group) Primary() model.Event {
	return g.Versions[len(g.Versions)-1]
}

// GroupByName buckets events by name. Groups come out in first-seen order.
func GroupByName(events []model.Event) []Group {
	idx := make(map[string]int, len(events))
	var out []Group
	for _, e := range events {
		i, ok := idx[e.Name]
		if !ok {
			i = len(out)
			idx[e.Name] = i
			out = append(out, Group{Name: e.Name})
		}
		out[i].Versions = append(out[i].Versions, e)
	}
	return out
}

// LastListed keeps one record per name: the last one listed. Winners keep
// their relative input order.
func LastListed(events []model.Event) []model.Event {
	last := make(map[string]int, len(events))
	for i, e := range events {
		last[e.Name] = i
	}
	return pick(events, last)
}

// HighestVersion keeps, per name, the record with the highest Version. Ties
// go to the later-listed record.
func HighestVersion(events []model.Event) []model.Event {
	best := make(map[string]int, len(events))
	for i, e := range events {
		j, ok := best[e.Name]
		if !ok || e.Version >= events[j].Version {
			best[e.Name] = i
		}
	}
	return pick(events, best)
}

// NewNames returns the names of cur that prev does not contain, in cur order.
func NewNames(prev, cur []model.Event) []string {
	known := make(map[string]struct{}, len(prev))
	for _, e := range prev {
		known[e.Name] = struct{}{}
	}
	var out []string
	for _, e := range cur {
		if _, ok := known[e.Name]; ok {
			continue
		}
		known[e.Name] = struct{}{}
		out = append(out, e.Name)
	}
	return out
}

// DistinctNames counts the distinct names in events.
func DistinctNames(events []model.Event) int {
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		seen[e.Name] = struct{}{}
	}
	return len(seen)
}

func pick(events []model.Event, winner map[string]int) []model.Event {
	out := make([]model.Event, 0, len(winner))
	for i, e := range events {
		if winner[e.Name] == i {
			out = append(out, e)
		}
	}
	return out
}

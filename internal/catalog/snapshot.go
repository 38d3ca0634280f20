// Package catalog loads the JSON catalog snapshot and exposes it as an
// immutable value: the flat list of every catalog version and the list of
// primary records, one per event name.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/reconcile"
)

var (
	// ErrFetchFailure covers transport problems: unreadable file, network
	// error, non-success status, missing object.
	ErrFetchFailure = errors.New("catalog fetch failed")
	// ErrMalformedCatalog is returned for documents that parse but do not
	// have the expected shape.
	ErrMalformedCatalog = errors.New("malformed catalog")
)

// Snapshot is a loaded catalog. It is never mutated after Parse; accessors
// return copies.
type Snapshot struct {
	updated        string
	eventCount     int
	declaredUnique *int
	events         []model.Event
	all            []model.Event
	unique         func() []model.Event
}

// Parse validates and decodes a catalog document.
func Parse(b []byte) (*Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil || top == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedCatalog)
	}

	events, err := decodeEvents(top, "events", true)
	if err != nil {
		return nil, err
	}
	all, err := decodeEvents(top, "all_events", false)
	if err != nil {
		return nil, err
	}

	var meta struct {
		Updated      string `json:"updated"`
		EventCount   *int   `json:"event_count"`
		UniqueEvents *int   `json:"unique_events"`
	}
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	s := &Snapshot{
		updated:        meta.Updated,
		eventCount:     len(events),
		declaredUnique: meta.UniqueEvents,
		events:         events,
		all:            all,
	}
	if meta.EventCount != nil {
		s.eventCount = *meta.EventCount
	}
	if s.all == nil {
		s.all = events
	}
	s.unique = sync.OnceValue(func() []model.Event {
		return reconcile.LastListed(s.events)
	})
	return s, nil
}

func decodeEvents(top map[string]json.RawMessage, field string, required bool) ([]model.Event, error) {
	raw, ok := top[field]
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: missing %q array", ErrMalformedCatalog, field)
		}
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedCatalog, field)
	}
	out := []model.Event{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedCatalog, field, err)
	}
	return out, nil
}

// Updated is the timestamp written by the fetch job.
func (s *Snapshot) Updated() string { return s.updated }

// EventCount is the declared event_count, or len(events) when absent.
func (s *Snapshot) EventCount() int { return s.eventCount }

// DeclaredUnique returns the unique_events value when the document has one.
func (s *Snapshot) DeclaredUnique() (int, bool) {
	if s.declaredUnique == nil {
		return 0, false
	}
	return *s.declaredUnique, true
}

// All returns every catalog-version record: all_events when present,
// events otherwise. Names may repeat.
func (s *Snapshot) All() []model.Event { return slices.Clone(s.all) }

// Unique returns one primary record per name, the last listed in events.
// Computed on first use.
func (s *Snapshot) Unique() []model.Event { return slices.Clone(s.unique()) }

// Catalogs lists the distinct catalog tags of All in first-seen order.
func (s *Snapshot) Catalogs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.all {
		if _, ok := seen[e.Catalog]; ok {
			continue
		}
		seen[e.Catalog] = struct{}{}
		out = append(out, e.Catalog)
	}
	return out
}

// Versions returns every record named name, in input order.
func (s *Snapshot) Versions(name string) []model.Event {
	var out []model.Event
	for _, e := range s.all {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

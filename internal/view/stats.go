package view

import "github.com/jperret21/GW-event-viz/internal/model"

// Stats counts a displayed sequence. Per-type counts match source_type
// exactly (case-sensitive); other values only count towards Total.
type Stats struct {
	Total int `json:"total"`
	BBH   int `json:"bbh"`
	NSBH  int `json:"nsbh"`
	BNS   int `json:"bns"`
}

// Aggregate counts events in total and per known source type.
func Aggregate(events []model.Event) Stats {
	s := Stats{Total: len(events)}
	for _, e := range events {
		switch e.SourceType {
		case model.BBH:
			s.BBH++
		case model.NSBH:
			s.NSBH++
		case model.BNS:
			s.BNS++
		}
	}
	return s
}

// Unclassified is the number of records whose type matched none of the three.
func (s Stats) Unclassified() int {
	return s.Total - s.BBH - s.NSBH - s.BNS
}

// Count returns the per-type count for t.
func (s Stats) Count(t model.SourceType) int {
	switch t {
	case model.BBH:
		return s.BBH
	case model.NSBH:
		return s.NSBH
	case model.BNS:
		return s.BNS
	}
	return 0
}

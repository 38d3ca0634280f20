// Package plot turns displayed events into named data series for the
// browser-side charting library. It knows nothing about the library itself:
// a Series is plain numbers, labels and hover text.
package plot

import (
	"fmt"
	"strings"

	"github.com/jperret21/GW-event-viz/internal/classify"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/view"
)

type Kind string

const (
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindLine      Kind = "line"
)

// DefaultSNR sizes markers of events without a recorded SNR.
const DefaultSNR = 10.0

type Series struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Color    string    `json:"color"`
	Kind     Kind      `json:"kind"`
	X        []float64 `json:"x,omitempty"`
	Y        []float64 `json:"y,omitempty"`
	XLabels  []string  `json:"x_labels,omitempty"`
	Text     []string  `json:"text,omitempty"`
	Size     []float64 `json:"size,omitempty"`
}

// Len is the number of points.
func (s Series) Len() int {
	if len(s.XLabels) > len(s.X) {
		return len(s.XLabels)
	}
	return len(s.X)
}

// Field is a numeric event attribute that can be histogrammed.
type Field string

const (
	FieldTotalMass Field = "total_mass"
	FieldChirpMass Field = "chirp_mass"
	FieldDistance  Field = "distance"
)

// Value extracts f from e. ok is false when the event has no value.
func (f Field) Value(e model.Event) (v float64, ok bool) {
	switch f {
	case FieldTotalMass:
		if e.TotalMassSource != nil {
			return *e.TotalMassSource, true
		}
		return e.M1 + e.M2, true
	case FieldChirpMass:
		return deref(e.ChirpMassSource)
	case FieldDistance:
		return deref(e.LuminosityDistance)
	}
	return 0, false
}

func (f Field) Title() string {
	switch f {
	case FieldTotalMass:
		return "Total mass (M☉)"
	case FieldChirpMass:
		return "Chirp mass (M☉)"
	case FieldDistance:
		return "Luminosity distance (Mpc)"
	}
	return string(f)
}

// MassScatter plots m1 against m2, one series per source type. Types with no
// events are omitted; the result is never nil.
func MassScatter(events []model.Event) []Series {
	out := []Series{}
	for _, t := range model.SourceTypes {
		s := Series{Name: typeLabel(t), Category: string(t), Kind: KindScatter}
		for _, e := range events {
			if e.SourceType != t {
				continue
			}
			if s.Color == "" {
				s.Color = eventColor(e)
			}
			s.X = append(s.X, e.M1)
			s.Y = append(s.Y, e.M2)
			s.Size = append(s.Size, markerSize(e.SNR))
			s.Text = append(s.Text, HoverText(e))
		}
		if s.Len() > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Histogram collects field values per source type; events without a value
// are skipped.
func Histogram(events []model.Event, field Field) []Series {
	out := []Series{}
	for _, t := range model.SourceTypes {
		s := Series{Name: typeLabel(t), Category: string(t), Kind: KindHistogram}
		for _, e := range events {
			if e.SourceType != t {
				continue
			}
			v, ok := field.Value(e)
			if !ok {
				continue
			}
			if s.Color == "" {
				s.Color = eventColor(e)
			}
			s.X = append(s.X, v)
			s.Text = append(s.Text, e.Name)
		}
		if s.Len() > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Timeline is the cumulative detection count against detection date.
func Timeline(points []view.TimelinePoint) []Series {
	if len(points) == 0 {
		return []Series{}
	}
	s := Series{Name: "Cumulative detections", Category: "cumulative", Color: "#2c3e50", Kind: KindLine}
	for _, p := range points {
		s.XLabels = append(s.XLabels, p.Event.DetectionDate)
		s.Y = append(s.Y, float64(p.Cumulative))
		s.Text = append(s.Text, fmt.Sprintf("%s (#%d)", p.Event.Name, p.Cumulative))
	}
	return []Series{s}
}

// HoverText is the per-point tooltip.
func HoverText(e model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>m1 = %.2f M☉, m2 = %.2f M☉", e.Name, e.M1, e.M2)
	if e.SNR != nil {
		fmt.Fprintf(&b, "<br>SNR = %.1f", *e.SNR)
	}
	if e.LuminosityDistance != nil {
		fmt.Fprintf(&b, "<br>distance = %.0f Mpc", *e.LuminosityDistance)
	}
	fmt.Fprintf(&b, "<br>%s · %s", e.Catalog, e.DetectionDate)
	return b.String()
}

func markerSize(snr *float64) float64 {
	v := DefaultSNR
	if snr != nil {
		v = *snr
	}
	if v > 40 {
		v = 40
	}
	if v < 0 {
		v = 0
	}
	return 6 + v/2.5
}

func eventColor(e model.Event) string {
	if e.Color != "" {
		return e.Color
	}
	return classify.Color(e.SourceType)
}

func typeLabel(t model.SourceType) string {
	switch t {
	case model.BBH:
		return "Binary black hole"
	case model.NSBH:
		return "Neutron star - black hole"
	case model.BNS:
		return "Binary neutron star"
	}
	return string(t)
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

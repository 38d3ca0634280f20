// Package classify assigns a source type to a binary merger from its
// component masses.
package classify

import (
	"errors"
	"math"

	"github.com/jperret21/GW-event-viz/internal/model"
)

// NSThreshold is the maximum neutron star mass, in solar masses. A component
// at or above it is treated as a black hole.
const NSThreshold = 3.0

// ErrInvalidMass is returned for negative, NaN or infinite masses.
var ErrInvalidMass = errors.New("invalid component mass")

// Default palette, one colour per source type.
const (
	ColorBBH   = "#9b59b6"
	ColorNSBH  = "#e67e22"
	ColorBNS   = "#3498db"
	ColorOther = "#95a5a6"
)

// Classify returns BBH when both components reach NSThreshold, BNS when both
// are below it, NSBH otherwise. The order of m1 and m2 does not matter.
func Classify(m1, m2 float64) (model.SourceType, error) {
	if !valid(m1) || !valid(m2) {
		return "", ErrInvalidMass
	}
	heavy1 := m1 >= NSThreshold
	heavy2 := m2 >= NSThreshold
	switch {
	case heavy1 && heavy2:
		return model.BBH, nil
	case !heavy1 && !heavy2:
		return model.BNS, nil
	default:
		return model.NSBH, nil
	}
}

// Color returns the default palette colour for t.
func Color(t model.SourceType) string {
	switch t {
	case model.BBH:
		return ColorBBH
	case model.NSBH:
		return ColorNSBH
	case model.BNS:
		return ColorBNS
	default:
		return ColorOther
	}
}

func valid(m float64) bool {
	return m >= 0 && !math.IsNaN(m) && !math.IsInf(m, 0)
}

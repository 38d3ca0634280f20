package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jperret21/GW-event-viz/internal/model"
)

func TestClassify_KnownEvents(t *testing.T) {
	tests := []struct {
		name   string
		m1, m2 float64
		want   model.SourceType
	}{
		{"GW150914", 36.2, 29.1, model.BBH},
		{"GW170817", 1.4, 1.3, model.BNS},
		{"neutron star and black hole", 5.0, 1.4, model.NSBH},
		{"both at threshold", 3.0, 3.0, model.BBH},
		{"heavy at threshold, light below", 3.0, 2.99, model.NSBH},
		{"both just below", 2.99, 2.99, model.BNS},
		{"zero masses", 0, 0, model.BNS},
		{"swapped order", 1.4, 5.0, model.NSBH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.m1, tt.m2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Stable(t *testing.T) {
	for m1 := 0.0; m1 <= 60; m1 += 0.7 {
		for m2 := 0.0; m2 <= m1; m2 += 0.9 {
			first, err := Classify(m1, m2)
			require.NoError(t, err)
			require.True(t, first.Known(), "m1=%v m2=%v gave %q", m1, m2, first)

			again, err := Classify(m1, m2)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	}
}

func TestClassify_RejectsInvalidMass(t *testing.T) {
	bad := []struct {
		name   string
		m1, m2 float64
	}{
		{"negative m1", -1, 1},
		{"negative m2", 10, -0.5},
		{"NaN", math.NaN(), 1},
		{"+Inf", math.Inf(1), 1},
		{"-Inf", 2, math.Inf(-1)},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.m1, tt.m2)
			assert.ErrorIs(t, err, ErrInvalidMass)
			assert.Empty(t, got)
		})
	}
}

func TestColor(t *testing.T) {
	assert.Equal(t, ColorBBH, Color(model.BBH))
	assert.Equal(t, ColorNSBH, Color(model.NSBH))
	assert.Equal(t, ColorBNS, Color(model.BNS))
	assert.Equal(t, ColorOther, Color("bbh"))
}

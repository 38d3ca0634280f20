package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jperret21/GW-event-viz/internal/model"
)

func ev(name, catalog string, version int) model.Event {
	return model.Event{Name: name, Catalog: catalog, Version: version, M1: 30, M2: 20}
}

func names(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name+"@"+e.Catalog)
	}
	return out
}

func TestGroupByName(t *testing.T) {
	in := []model.Event{
		ev("GW150914", "GWTC-1-confident", 3),
		ev("GW190521", "GWTC-2", 1),
		ev("GW150914", "GWTC-2.1-confident", 4),
		ev("GW170817", "GWTC-1-confident", 3),
		ev("GW190521", "GWTC-2.1-confident", 3),
	}

	groups := GroupByName(in)
	require.Len(t, groups, 3)

	assert.Equal(t, "GW150914", groups[0].Name)
	assert.Equal(t, "GW190521", groups[1].Name)
	assert.Equal(t, "GW170817", groups[2].Name)

	assert.Equal(t, []string{"GW150914@GWTC-1-confident", "GW150914@GWTC-2.1-confident"}, names(groups[0].Versions))
	assert.Equal(t, "GWTC-2.1-confident", groups[0].Primary().Catalog)
	assert.Equal(t, "GWTC-2.1-confident", groups[1].Primary().Catalog)
	assert.Equal(t, "GWTC-1-confident", groups[2].Primary().Catalog)
}

func TestLastListed(t *testing.T) {
	in := []model.Event{
		ev("A", "c1", 1),
		ev("B", "c1", 1),
		ev("A", "c2", 1),
		ev("C", "c1", 1),
		ev("B", "c3", 1),
	}
	got := LastListed(in)
	assert.Equal(t, []string{"A@c2", "C@c1", "B@c3"}, names(got))
	assert.Equal(t, DistinctNames(in), len(got))
}

func TestLastListed_Empty(t *testing.T) {
	assert.Empty(t, LastListed(nil))
	assert.Empty(t, GroupByName(nil))
}

func TestHighestVersion(t *testing.T) {
	in := []model.Event{
		ev("A", "c1", 2),
		ev("A", "c2", 1),
		ev("B", "c1", 1),
		ev("B", "c2", 1),
		ev("C", "c1", 1),
		ev("C", "c2", 3),
	}
	got := HighestVersion(in)
	assert.Equal(t, []string{"A@c1", "B@c2", "C@c2"}, names(got))
}

func TestNewNames(t *testing.T) {
	prev := []model.Event{ev("A", "c1", 1), ev("B", "c1", 1)}
	cur := []model.Event{ev("C", "c2", 1), ev("A", "c2", 1), ev("D", "c2", 1), ev("C", "c3", 1)}

	assert.Equal(t, []string{"C", "D"}, NewNames(prev, cur))
	assert.Equal(t, []string{"A", "B"}, NewNames(nil, prev))
	assert.Empty(t, NewNames(cur, cur))
}

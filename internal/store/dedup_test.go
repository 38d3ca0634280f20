package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnnounced_Filter(t *testing.T) {
	a := NewAnnounced(10, time.Hour)
	assert.Equal(t, []string{"GW1", "GW2"}, a.Filter([]string{"GW1", "GW2"}))
	assert.Equal(t, []string{"GW3"}, a.Filter([]string{"GW2", "GW3"}))
	assert.Empty(t, a.Filter([]string{"GW1"}))
	assert.Equal(t, 3, a.Len())
}

func TestAnnounced_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAnnounced(10, time.Hour)
	a.now = func() time.Time { return now }

	a.Filter([]string{"GW1"})
	now = now.Add(2 * time.Hour)
	assert.Equal(t, []string{"GW1"}, a.Filter([]string{"GW1"}))
}

func TestAnnounced_Capacity(t *testing.T) {
	a := NewAnnounced(2, time.Hour)
	a.Filter([]string{"GW1", "GW2", "GW3"})
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"GW1"}, a.Filter([]string{"GW1"}), "oldest evicted")
}

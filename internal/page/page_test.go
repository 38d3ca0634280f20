package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/classify"
	"github.com/jperret21/GW-event-viz/internal/plot"
	"github.com/jperret21/GW-event-viz/internal/util"
)

const sample = `{
  "updated": "2025-03-01T00:00:00Z",
  "event_count": 2,
  "unique_events": 2,
  "events": [
    {"name": "GW150914", "m1": 35.6, "m2": 30.6, "snr": 24.4, "source_type": "BBH", "catalog": "GWTC-1-confident", "detection_date": "2015-09-14"},
    {"name": "GW170817", "m1": 1.46, "m2": 1.27, "source_type": "BNS", "catalog": "GWTC-1-confident", "detection_date": "2017-08-17"}
  ]
}`

var opts = Options{Title: "GW <Events>", ChartLibURL: "https://cdn.example/chart.js"}

func snapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	s, err := catalog.Parse([]byte(sample))
	require.NoError(t, err)
	return s
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewPageData(snapshot(t), opts)))
	html := buf.String()

	assert.Contains(t, html, "GW &lt;Events&gt;")
	assert.Contains(t, html, `<script src="https://cdn.example/chart.js">`)
	assert.Contains(t, html, `<option value="all">All events</option>`)
	assert.Contains(t, html, `<option value="GWTC-1-confident">GWTC-1-confident</option>`)
	assert.Contains(t, html, `data-stat="bbh">1<`)
	assert.Contains(t, html, `data-stat="bns">1<`)
	assert.Contains(t, html, classify.ColorBBH)
	assert.Contains(t, html, `id="panel-mass"`)
	assert.Contains(t, html, `"key":"all"`)
	assert.Contains(t, html, "2 unique detections")
}

func TestRender_NoViews(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, PageData{Title: "x"}))
}

func TestRenderFailure_HasNoScripts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFailure(&buf, "GW Events"))
	html := buf.String()

	assert.Contains(t, html, "Event data unavailable")
	assert.Contains(t, html, "<title>GW Events</title>")
	assert.NotContains(t, strings.ToLower(html), "<script")
}

func TestWriteSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	require.NoError(t, WriteSite(dir, snapshot(t), opts))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "const VIEWS")

	raw, err := os.ReadFile(filepath.Join(dir, ViewsFile))
	require.NoError(t, err)
	var views []plot.View
	require.NoError(t, json.Unmarshal(raw, &views))
	require.Len(t, views, 2)
	assert.Equal(t, "all", views[0].Key)
	assert.Equal(t, 2, views[0].Stats.Total)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWriteFailure_ReplacesIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSite(dir, snapshot(t), opts))
	require.NoError(t, WriteFailure(dir, opts))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Event data unavailable")
	assert.NotContains(t, string(index), "<script")
	assert.NoFileExists(t, filepath.Join(dir, ViewsFile), "stale views removed")
}

func TestWriteFailure_EmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	require.NoError(t, WriteFailure(dir, opts))
	assert.FileExists(t, filepath.Join(dir, IndexFile))
}

func TestRender_EmptyPanelsAreArrays(t *testing.T) {
	// no event in the fixture carries a distance, so that panel is empty
	data := NewPageData(snapshot(t), opts)
	var distance *plot.Panel
	for i, p := range data.Views[0].Panels {
		if p.ID == "distance" {
			distance = &data.Views[0].Panels[i]
		}
	}
	require.NotNil(t, distance)
	require.Empty(t, distance.Series)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))
	html := buf.String()
	assert.NotContains(t, html, `"series":null`)
	assert.Contains(t, html, `"series":[]`)
	assert.Contains(t, html, "(panel.series || [])")
}

func TestWriteSite_IndexFailureRemovesViews(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile
	t.Cleanup(func() { writeFile = orig })
	writeFile = func(path string, data []byte, perm os.FileMode) error {
		if filepath.Base(path) == IndexFile {
			return errors.New("disk full")
		}
		return util.WriteFileAtomic(path, data, perm)
	}

	err := WriteSite(dir, snapshot(t), opts)
	require.ErrorContains(t, err, "disk full")
	assert.NoFileExists(t, filepath.Join(dir, ViewsFile))
	assert.NoFileExists(t, filepath.Join(dir, IndexFile))
}

func TestFmtCount(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4200: "-4,200"}
	for in, want := range cases {
		assert.Equal(t, want, fmtCount(in), "fmtCount(%d)", in)
	}
}

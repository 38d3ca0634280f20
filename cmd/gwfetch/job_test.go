package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/logging"
	"github.com/jperret21/GW-event-viz/internal/metrics"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/postprocess"
	"github.com/jperret21/GW-event-viz/internal/sink"
	"github.com/jperret21/GW-event-viz/internal/store"
)

type stubSource struct {
	events []model.Event
	err    error
}

func (s *stubSource) Name() string { return "stub" }
func (s *stubSource) Fetch(context.Context) ([]model.Event, error) {
	return s.events, s.err
}
func (s *stubSource) Skipped() int { return 1 }

type brokenSink struct{}

func (brokenSink) Name() string                               { return "broken" }
func (brokenSink) Push(context.Context, model.Document) error { return errors.New("down") }

func newJob(t *testing.T, src *stubSource, out string, buf *bytes.Buffer, extra ...sink.Sink) *job {
	t.Helper()
	post, err := postprocess.New(config.PostProcessConfig{ExcludeCatalogs: []string{"marginal"}})
	require.NoError(t, err)
	return &job{
		src:       src,
		post:      post,
		sinks:     append([]sink.Sink{sink.NewFile(out)}, extra...),
		rec:       metrics.NewRecorder(),
		announced: store.NewAnnounced(0, 0),
		prevPath:  out,
		textfile:  filepath.Join(filepath.Dir(out), "gw.prom"),
		log:       logging.New(buf, "debug", "json"),
		now:       func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func records() []model.Event {
	return []model.Event{
		{Name: "GW150914", Version: 3, M1: 35.6, M2: 30.6, Catalog: "GWTC-1-confident"},
		{Name: "GW170817", Version: 3, M1: 1.46, M2: 1.27, Catalog: "GWTC-1-confident"},
		{Name: "GW150914", Version: 4, M1: 35.6, M2: 30.6, Catalog: "GWTC-2.1-confident"},
		{Name: "GW151205", Version: 1, M1: 67, M2: 42, Catalog: "GWTC-2.1-marginal"},
		{Name: "broken", Version: 1, M1: -1, M2: 1, Catalog: "GWTC-3-confident"},
	}
}

func TestCycle_WritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "data", "gw_events.json")
	var logs bytes.Buffer
	j := newJob(t, &stubSource{events: records()}, out, &logs)

	require.NoError(t, j.cycle(context.Background()))

	doc, err := store.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T00:00:00Z", doc.Updated)
	assert.Equal(t, 2, doc.EventCount)
	assert.Len(t, doc.AllEvents, 3)
	for _, e := range doc.Events {
		if e.Name == "GW150914" {
			assert.Equal(t, 4, e.Version)
			assert.Equal(t, model.BBH, e.SourceType)
		}
	}

	assert.Contains(t, logs.String(), `"run_id"`)
	assert.Contains(t, logs.String(), "no previous snapshot")

	prom, err := os.ReadFile(j.textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `gw_events_excluded_total 1`)
	assert.Contains(t, string(prom), `gw_events_rejected_total 1`)
	assert.Contains(t, string(prom), `gw_events_skipped_total{source="stub"} 1`)
	assert.Contains(t, string(prom), `gw_catalog_events{source_type="BBH"} 1`)
	assert.Contains(t, string(prom), `gw_fetch_last_success_timestamp_seconds 1.7407872e+09`)
}

func TestCycle_AnnouncesNewDetections(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gw_events.json")
	var logs bytes.Buffer
	src := &stubSource{events: records()[:2]}
	j := newJob(t, src, out, &logs)
	require.NoError(t, j.cycle(context.Background()))

	logs.Reset()
	src.events = append(records()[:2], model.Event{Name: "GW250114", Version: 1, M1: 33.6, M2: 32.2, Catalog: "O4"})
	require.NoError(t, j.cycle(context.Background()))
	assert.Equal(t, 1, strings.Count(logs.String(), `"new detection"`))
	assert.Contains(t, logs.String(), `"name":"GW250114"`)

	logs.Reset()
	require.NoError(t, j.cycle(context.Background()))
	assert.NotContains(t, logs.String(), "new detection")
}

func TestCycle_FetchError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gw_events.json")
	j := newJob(t, &stubSource{err: errors.New("timeout")}, out, &bytes.Buffer{})

	err := j.cycle(context.Background())
	require.ErrorContains(t, err, "fetch stub: timeout")
	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestCycle_NoUsableEventsKeepsSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gw_events.json")
	src := &stubSource{events: records()}
	j := newJob(t, src, out, &bytes.Buffer{})
	require.NoError(t, j.cycle(context.Background()))

	src.events = records()[3:]
	assert.ErrorIs(t, j.cycle(context.Background()), errNoEvents)

	doc, err := store.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.EventCount)
}

func TestCycle_SinkFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gw_events.json")
	var logs bytes.Buffer
	j := newJob(t, &stubSource{events: records()}, out, &logs, brokenSink{})

	err := j.cycle(context.Background())
	require.ErrorContains(t, err, "1 of 2 sink(s) failed")
	assert.Contains(t, logs.String(), "sink push failed")

	_, err = store.Load(out)
	assert.NoError(t, err, "healthy sinks still receive the snapshot")

	prom, err := os.ReadFile(j.textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `gw_fetch_sink_push_total{sink="broken",status="error"} 1`)
	assert.Contains(t, string(prom), `gw_fetch_last_success_timestamp_seconds 0`)
}

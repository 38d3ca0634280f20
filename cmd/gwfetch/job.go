package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/jperret21/GW-event-viz/internal/logging"
	"github.com/jperret21/GW-event-viz/internal/metrics"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/postprocess"
	"github.com/jperret21/GW-event-viz/internal/reconcile"
	"github.com/jperret21/GW-event-viz/internal/sink"
	"github.com/jperret21/GW-event-viz/internal/source"
	"github.com/jperret21/GW-event-viz/internal/store"
	"github.com/jperret21/GW-event-viz/internal/view"
)

var errNoEvents = errors.New("no events with valid mass data")

// job is one fetch-and-publish pipeline. It is not safe for concurrent
// cycles.
type job struct {
	src       source.Source
	post      *postprocess.Engine
	sinks     []sink.Sink
	rec       *metrics.Recorder
	announced *store.Announced
	prevPath  string // last written snapshot, empty when there is no file sink
	textfile  string
	log       logging.Logger
	now       func() time.Time
}

// cycle runs fetch -> postprocess -> build -> diff -> push -> metrics.
func (j *job) cycle(ctx context.Context) error {
	start := j.now()
	log := j.log.With("run_id", uuid.NewString())
	ok := false
	defer func() {
		j.rec.ObserveCycle(j.now().Sub(start), ok, j.now())
		j.flushMetrics(ctx, log)
	}()

	evs, err := j.src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", j.src.Name(), err)
	}
	skipped := 0
	if sr, isReporter := j.src.(source.SkipReporter); isReporter {
		skipped = sr.Skipped()
	}
	j.rec.ObserveFetch(j.src.Name(), len(evs), skipped)
	log.Info(ctx, "fetched", "source", j.src.Name(), "events", len(evs), "skipped", skipped)

	res := j.post.Apply(evs)
	j.rec.ObservePostprocess(res.Excluded, res.Rejected)
	if res.Excluded > 0 || res.Rejected > 0 {
		log.Info(ctx, "postprocess", "excluded", res.Excluded, "rejected", res.Rejected)
	}
	if len(res.Events) == 0 {
		// keep the last published snapshot rather than an empty one
		return errNoEvents
	}

	doc := store.Build(res.Events, j.now())
	stats := view.Aggregate(doc.Events)
	log.Info(ctx, "snapshot built",
		"events", doc.EventCount, "records", len(doc.AllEvents),
		"bbh", stats.BBH, "nsbh", stats.NSBH, "bns", stats.BNS)

	j.announce(ctx, log, doc)

	failed := 0
	for _, r := range sink.PushAll(ctx, j.sinks, doc) {
		j.rec.ObservePush(r.Sink, r.Err)
		if r.Err != nil {
			failed++
			log.Error(ctx, "sink push failed", "sink", r.Sink, "err", r.Err)
			continue
		}
		log.Debug(ctx, "sink push ok", "sink", r.Sink)
	}
	j.rec.ObserveSnapshot(doc)
	if failed > 0 {
		return fmt.Errorf("%d of %d sink(s) failed", failed, len(j.sinks))
	}
	ok = true
	log.Info(ctx, "cycle finished", "took", j.now().Sub(start).Truncate(time.Millisecond).String())
	return nil
}

// announce logs detections absent from the previous snapshot. Without a
// previous snapshot every name is only remembered.
func (j *job) announce(ctx context.Context, log logging.Logger, doc model.Document) {
	var prev []model.Event
	if j.prevPath != "" {
		old, err := store.Load(j.prevPath)
		switch {
		case err == nil:
			prev = old.Events
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Warn(ctx, "read previous snapshot", "path", j.prevPath, "err", err)
		}
	}
	names := reconcile.NewNames(prev, doc.Events)
	fresh := j.announced.Filter(names)
	if prev == nil {
		log.Info(ctx, "no previous snapshot", "known", len(fresh))
		return
	}
	for _, name := range fresh {
		log.Info(ctx, "new detection", "name", name)
	}
}

func (j *job) flushMetrics(ctx context.Context, log logging.Logger) {
	if j.textfile != "" {
		if err := j.rec.WriteTextfile(j.textfile); err != nil {
			log.Warn(ctx, "write metrics textfile", "path", j.textfile, "err", err)
		}
	}
	if dump, err := j.rec.Dump(); err == nil && dump != "" {
		log.Debug(ctx, "metrics snapshot", "metrics", dump)
	}
}

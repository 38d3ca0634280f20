package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/view"
)

// Recorder holds the fetch job metrics on a private registry. The job has no
// listener; metrics leave the process through WriteTextfile and Dump.
type Recorder struct {
	reg *prometheus.Registry

	fetched       *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	excluded      prometheus.Counter
	rejected      prometheus.Counter
	events        *prometheus.GaugeVec
	catalogs      prometheus.Gauge
	cycleDur      prometheus.Summary
	pushTotal     *prometheus.CounterVec
	lastSuccessTS prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{reg: prometheus.NewRegistry()}
	r.fetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gw",
		Name:      "events_fetched_total",
		Help:      "Upstream records turned into catalog events",
	}, []string{"source"})
	r.skipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gw",
		Name:      "events_skipped_total",
		Help:      "Upstream records dropped for lack of mass data",
	}, []string{"source"})
	r.excluded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gw",
		Name:      "events_excluded_total",
		Help:      "Events dropped by an exclude_catalogs rule",
	})
	r.rejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gw",
		Name:      "events_rejected_total",
		Help:      "Events whose masses could not be classified",
	})
	r.events = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gw",
		Name:      "catalog_events",
		Help:      "Distinct events in the last published snapshot by source type",
	}, []string{"source_type"})
	r.catalogs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gw",
		Name:      "catalog_versions",
		Help:      "Distinct catalog release tags in the last published snapshot",
	})
	r.cycleDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "gw_fetch",
		Name:      "cycle_duration_seconds",
		Help:      "Time spent in one fetch cycle",
	})
	r.pushTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gw_fetch",
		Name:      "sink_push_total",
		Help:      "Snapshot pushes by sink and status",
	}, []string{"sink", "status"})
	r.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gw_fetch",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last cycle that reached every sink",
	})

	r.reg.MustRegister(
		r.fetched, r.skipped, r.excluded, r.rejected,
		r.events, r.catalogs, r.cycleDur, r.pushTotal, r.lastSuccessTS,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) ObserveFetch(source string, fetched, skipped int) {
	r.fetched.WithLabelValues(source).Add(float64(fetched))
	r.skipped.WithLabelValues(source).Add(float64(skipped))
}

func (r *Recorder) ObservePostprocess(excluded, rejected int) {
	r.excluded.Add(float64(excluded))
	r.rejected.Add(float64(rejected))
}

// ObserveSnapshot sets the gauges describing doc.
func (r *Recorder) ObserveSnapshot(doc model.Document) {
	stats := view.Aggregate(doc.Events)
	for _, t := range model.SourceTypes {
		r.events.WithLabelValues(string(t)).Set(float64(stats.Count(t)))
	}
	all := doc.AllEvents
	if all == nil {
		all = doc.Events
	}
	tags := make(map[string]struct{})
	for _, e := range all {
		tags[e.Catalog] = struct{}{}
	}
	r.catalogs.Set(float64(len(tags)))
}

func (r *Recorder) ObservePush(sink string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.pushTotal.WithLabelValues(sink, status).Inc()
}

// ObserveCycle records a finished cycle; ok marks it as a full success.
func (r *Recorder) ObserveCycle(d time.Duration, ok bool, now time.Time) {
	r.cycleDur.Observe(d.Seconds())
	if ok {
		r.lastSuccessTS.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes every metric in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Dump returns a one-line snapshot of counters and gauges, for logging.
func (r *Recorder) Dump() (string, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return "", err
	}
	var out []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			out = append(out, fmt.Sprintf("%s{%s} %g", mf.GetName(), labelString(m.GetLabel()), v))
		}
	}
	sort.Strings(out)
	return strings.Join(out, " "), nil
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

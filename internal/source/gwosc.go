package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/util"
)

const (
	allEventsPath   = "/eventapi/jsonfull/allevents/"
	maxResponseSize = 64 << 20
)

type gwoscSource struct {
	cfg     config.GWOSCConfig
	client  *http.Client
	skipped int
}

func NewGWOSCSource(cfg config.GWOSCConfig) *gwoscSource {
	to := cfg.HTTP.Timeout
	if to == 0 {
		to = 30 * time.Second
	}
	return &gwoscSource{cfg: cfg, client: util.NewHTTPClient(to, cfg.HTTP.UserAgent)}
}

func (g *gwoscSource) Name() string { return "gwosc" }

func (g *gwoscSource) Skipped() int { return g.skipped }

// Fetch downloads every catalog version of every event from the jsonfull
// endpoint.
func (g *gwoscSource) Fetch(ctx context.Context) ([]model.Event, error) {
	base := strings.TrimRight(g.cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultGWOSCURL
	}
	endpoint := base + allEventsPath

	var body []byte
	err := util.Retry(ctx, max(1, g.cfg.MaxRetries), defaultDur(g.cfg.Backoff, time.Second), defaultDur(g.cfg.MaxBackoff, 10*time.Second), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return util.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode/100 != 2 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("gwosc %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
			if resp.StatusCode/100 == 4 && resp.StatusCode != http.StatusTooManyRequests {
				return util.Permanent(err)
			}
			return err
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return err
	})
	if err != nil {
		return nil, err
	}

	events, skipped, err := decodeAllEvents(body)
	g.skipped = skipped
	return events, err
}

// decodeAllEvents maps a jsonfull payload to records, most recent first.
// Records with no usable masses are dropped and counted.
func decodeAllEvents(b []byte) ([]model.Event, int, error) {
	var payload struct {
		Events map[string]map[string]any `json:"events"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, 0, fmt.Errorf("gwosc: decode: %w", err)
	}
	if payload.Events == nil {
		return nil, 0, errors.New("gwosc: response has no events object")
	}

	// map order is random; fix it so ties in GPS time stay deterministic
	keys := make([]string, 0, len(payload.Events))
	for k := range payload.Events {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.Event, 0, len(keys))
	skipped := 0
	for _, k := range keys {
		e, ok := extract(k, payload.Events[k])
		if !ok {
			skipped++
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GPSTime > out[j].GPSTime })
	return out, skipped, nil
}

func extract(key string, m map[string]any) (model.Event, bool) {
	if m == nil {
		return model.Event{}, false
	}
	m1, ok1 := pickFloat(m, "mass_1_source", "mass_1")
	m2, ok2 := pickFloat(m, "mass_2_source", "mass_2")
	if !ok1 || !ok2 {
		mc, okc := pickFloat(m, "chirp_mass_source", "chirp_mass")
		q, okq := pickFloat(m, "mass_ratio")
		if !okc || !okq || mc <= 0 || q <= 0 || q > 1 {
			return model.Event{}, false
		}
		m1, m2 = massesFromChirp(mc, q)
	}
	if m1 < m2 {
		m1, m2 = m2, m1
	}

	e := model.Event{
		Name:               pickStr(m, "commonName"),
		FullName:           key,
		M1:                 round(m1, 2),
		M2:                 round(m2, 2),
		SNR:                optional(m, "network_matched_filter_snr", 1),
		DetectionDate:      model.UnknownDate,
		Catalog:            pickStr(m, "catalog.shortName"),
		Version:            1,
		LuminosityDistance: optional(m, "luminosity_distance", 1),
		ChiEff:             optional(m, "chi_eff", 3),
		TotalMassSource:    optional(m, "total_mass_source", 2),
		ChirpMassSource:    optional(m, "chirp_mass_source", 2),
		Redshift:           optional(m, "redshift", 3),
		FinalMassSource:    optional(m, "final_mass_source", 2),
		FinalSpin:          optional(m, "final_spin", 3),
		FAR:                optional(m, "far", -1),
		PAstro:             optional(m, "p_astro", 3),
	}
	if e.Name == "" {
		e.Name = key
	}
	if e.Catalog == "" {
		e.Catalog = model.UnknownCatalog
	}
	if v, ok := pickFloat(m, "version"); ok && v >= 1 {
		e.Version = int(v)
	}
	if gps, ok := pickFloat(m, "GPS"); ok && gps > 0 {
		e.GPSTime = gps
		e.DetectionDate = gpsDate(gps)
	}
	return e, true
}

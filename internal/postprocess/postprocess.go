package postprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jperret21/GW-event-viz/internal/classify"
	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/model"
)

type Engine struct {
	exclude []*regexp.Regexp
	colors  map[model.SourceType]string
}

// Result is the outcome of one Apply pass.
type Result struct {
	Events   []model.Event
	Excluded int // dropped by an exclude_catalogs rule
	Rejected int // masses that cannot be classified
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func New(cfg config.PostProcessConfig) (*Engine, error) {
	eng := &Engine{colors: make(map[model.SourceType]string, len(model.SourceTypes))}
	for _, expr := range cfg.ExcludeCatalogs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("exclude_catalogs %q: %w", expr, err)
		}
		eng.exclude = append(eng.exclude, re)
	}
	for _, t := range model.SourceTypes {
		eng.colors[t] = classify.Color(t)
	}
	for k, c := range cfg.Colors {
		t := model.SourceType(strings.ToUpper(strings.TrimSpace(k)))
		if !t.Known() {
			return nil, fmt.Errorf("colors: unknown source type %q", k)
		}
		if !hexColor.MatchString(c) {
			return nil, fmt.Errorf("colors: %s: %q is not a #rrggbb colour", t, c)
		}
		eng.colors[t] = c
	}
	return eng, nil
}

// Apply filters, classifies and colours events. The input slice is not
// modified.
func (e *Engine) Apply(events []model.Event) Result {
	res := Result{Events: make([]model.Event, 0, len(events))}
	for _, ev := range events {
		if e.excluded(ev.Catalog) {
			res.Excluded++
			continue
		}
		t, err := classify.Classify(ev.M1, ev.M2)
		if err != nil {
			res.Rejected++
			continue
		}
		ev.SourceType = t
		ev.Color = e.colors[t]
		res.Events = append(res.Events, ev)
	}
	return res
}

func (e *Engine) excluded(catalog string) bool {
	for _, re := range e.exclude {
		if re.MatchString(catalog) {
			return true
		}
	}
	return false
}

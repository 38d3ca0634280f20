package source

import (
	"context"
	"fmt"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/model"
)

// Source yields one record per upstream catalog entry, masses filled in and
// not yet classified.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Event, error)
}

// SkipReporter is implemented by sources that drop upstream records they
// cannot use.
type SkipReporter interface {
	Skipped() int
}

func NewFromConfig(c config.SourceConfig) (Source, error) {
	switch c.Type {
	case "gwosc":
		return NewGWOSCSource(c.GWOSC), nil
	case "file":
		return NewFileSource(c.File), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/model"
)

// fileSource replays a saved jsonfull dump, for offline runs and fixtures.
type fileSource struct {
	cfg     config.FileSourceConfig
	skipped int
}

func NewFileSource(cfg config.FileSourceConfig) *fileSource {
	return &fileSource{cfg: cfg}
}

func (f *fileSource) Name() string { return "file" }

func (f *fileSource) Skipped() int { return f.skipped }

func (f *fileSource) Fetch(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	events, skipped, err := decodeAllEvents(b)
	f.skipped = skipped
	return events, err
}

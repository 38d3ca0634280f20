package sink

import (
	"context"

	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/store"
)

type fileSink struct {
	path string
}

// NewFile writes the snapshot to path, where the static site serves it.
func NewFile(path string) Sink {
	return &fileSink{path: path}
}

func (f *fileSink) Name() string { return "file" }

func (f *fileSink) Push(ctx context.Context, doc model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return store.Save(f.path, doc)
}

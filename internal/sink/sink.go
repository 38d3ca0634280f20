package sink

import (
	"context"
	"fmt"
	"sync"

	"github.com/jperret21/GW-event-viz/internal/model"
)

// Sink is the minimal interface all sinks must implement.
type Sink interface {
	Name() string
	Push(ctx context.Context, doc model.Document) error
}

// Report is the outcome of one push.
type Report struct {
	Sink string
	Err  error
}

// PushAll pushes doc to every sink concurrently and returns one report per
// sink, in sink order.
func PushAll(ctx context.Context, sinks []Sink, doc model.Document) []Report {
	reports := make([]Report, len(sinks))
	var wg sync.WaitGroup
	for i, sk := range sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reports[i] = Report{Sink: sk.Name()}
			if err := sk.Push(ctx, doc); err != nil {
				reports[i].Err = fmt.Errorf("push -> %s: %w", sk.Name(), err)
			}
		}()
	}
	wg.Wait()
	return reports
}

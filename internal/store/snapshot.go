package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/reconcile"
	"github.com/jperret21/GW-event-viz/internal/util"
)

// Build assembles the snapshot document. events carries the highest version
// of each name and all_events every record as fetched.
func Build(all []model.Event, now time.Time) model.Document {
	primary := reconcile.HighestVersion(all)
	unique := len(primary)
	return model.Document{
		Updated:      now.UTC().Format(time.RFC3339),
		EventCount:   len(primary),
		Events:       primary,
		AllEvents:    all,
		UniqueEvents: &unique,
	}
}

func Load(path string) (model.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, err
	}
	var d model.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return model.Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return d, nil
}

// Save writes doc as indented JSON, replacing path atomically.
func Save(path string, doc model.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, append(b, '\n'), 0o644)
}

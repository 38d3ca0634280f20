package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/logging"
	"github.com/jperret21/GW-event-viz/internal/page"
)

type loader interface {
	Load(ctx context.Context, location string) (*catalog.Snapshot, error)
}

// build loads the snapshot and writes the site. When loading fails the
// failure notice replaces the page and the load error is returned.
func build(ctx context.Context, l loader, location, outDir string, opts page.Options, log logging.Logger) error {
	snap, err := l.Load(ctx, location)
	if err != nil {
		kind := "fetch_failure"
		if errors.Is(err, catalog.ErrMalformedCatalog) {
			kind = "malformed_catalog"
		}
		log.Error(ctx, "load catalog", "location", location, "kind", kind, "err", err)
		if ferr := page.WriteFailure(outDir, opts); ferr != nil {
			return errors.Join(err, fmt.Errorf("write failure page: %w", ferr))
		}
		log.Warn(ctx, "failure notice written", "dir", outDir)
		return err
	}

	if err := page.WriteSite(outDir, snap, opts); err != nil {
		return fmt.Errorf("write site: %w", err)
	}
	unique := len(snap.Unique())
	log.Info(ctx, "site written", "dir", outDir, "updated", snap.Updated(),
		"events", snap.EventCount(), "unique", unique, "catalogs", len(snap.Catalogs()))
	return nil
}

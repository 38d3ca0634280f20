package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/logging"
	"github.com/jperret21/GW-event-viz/internal/objstore"
	"github.com/jperret21/GW-event-viz/internal/page"
	"github.com/jperret21/GW-event-viz/internal/util"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	cfgPath := flag.String("config", "config.yml", "Path to YAML config file")
	location := flag.String("catalog", "", "Snapshot location (file, http(s) URL or s3://bucket/key); overrides page.catalog")
	outDir := flag.String("out", "", "Output directory; overrides page.out_dir")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *location != "" {
		cfg.Page.Catalog = *location
	}
	if *outDir != "" {
		cfg.Page.OutDir = *outDir
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format).With("app", "gwpage", "version", Version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	l := catalog.Loader{HTTP: util.NewHTTPClient(cfg.Page.Timeout, cfg.Page.UserAgent)}
	if strings.HasPrefix(cfg.Page.Catalog, "s3://") {
		client, err := objstore.NewClient(ctx, cfg.Page.S3)
		if err != nil {
			log.Fatalf("init s3 client: %v", err)
		}
		l.S3 = client
	}

	opts := page.Options{Title: cfg.Page.Title, ChartLibURL: cfg.Page.ChartLibURL}
	if err := build(ctx, l, cfg.Page.Catalog, cfg.Page.OutDir, opts, logger); err != nil {
		logger.Error(ctx, "gwpage failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

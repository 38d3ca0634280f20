package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/logging"
	"github.com/jperret21/GW-event-viz/internal/metrics"
	"github.com/jperret21/GW-event-viz/internal/objstore"
	"github.com/jperret21/GW-event-viz/internal/postprocess"
	"github.com/jperret21/GW-event-viz/internal/sink"
	"github.com/jperret21/GW-event-viz/internal/source"
	"github.com/jperret21/GW-event-viz/internal/store"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	var (
		cfgPath  = flag.String("config", "config.yml", "path to YAML config")
		interval = flag.Duration("interval", 24*time.Hour, "run interval")
		once     = flag.Bool("once", false, "run a single cycle then exit")
		verbose  = flag.Bool("verbose", false, "log at debug level")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format).With("app", "gwfetch", "version", Version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := source.NewFromConfig(cfg.Source)
	if err != nil {
		log.Fatalf("build source %q: %v", cfg.Source.Type, err)
	}
	post, err := postprocess.New(cfg.Post)
	if err != nil {
		log.Fatalf("postprocess rules: %v", err)
	}

	// Build sinks
	var sinks []sink.Sink
	if strings.TrimSpace(cfg.Output.Path) != "" {
		sinks = append(sinks, sink.NewFile(cfg.Output.Path))
	}
	if cfg.Output.S3.Enabled() {
		client, err := objstore.NewClient(ctx, cfg.Output.S3)
		if err != nil {
			log.Fatalf("init s3 sink: %v", err)
		}
		sinks = append(sinks, sink.NewS3(cfg.Output.S3, client))
	}
	if len(sinks) == 0 {
		log.Fatal("no sinks configured (need output.path and/or output.s3.bucket)")
	}

	j := &job{
		src:       src,
		post:      post,
		sinks:     sinks,
		rec:       metrics.NewRecorder(),
		announced: store.NewAnnounced(0, 0),
		prevPath:  cfg.Output.Path,
		log:       logger,
		now:       time.Now,
	}
	if cfg.Metrics.Enable {
		j.textfile = cfg.Metrics.Textfile
	}

	runOnce := func() {
		if err := j.cycle(ctx); err != nil {
			logger.Error(ctx, "cycle failed", "err", err)
		}
	}

	logger.Info(ctx, "gwfetch started", "source", src.Name(), "sinks", len(sinks), "interval", interval.String())
	if *once {
		if err := j.cycle(ctx); err != nil {
			logger.Error(ctx, "cycle failed", "err", err)
			os.Exit(1)
		}
		return
	}
	runOnce()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

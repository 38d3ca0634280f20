package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jperret21/GW-event-viz/internal/config"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/objstore"
)

const defaultCacheControl = "public, max-age=3600"

type s3Sink struct {
	cfg    config.S3Config
	client objstore.API
}

// NewS3 publishes the snapshot as a single object for static hosting.
func NewS3(cfg config.S3Config, client objstore.API) Sink {
	if strings.TrimSpace(cfg.Key) == "" {
		cfg.Key = "data/gw_events.json"
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = defaultCacheControl
	}
	return &s3Sink{cfg: cfg, client: client}
}

func (s *s3Sink) Name() string { return "s3" }

func (s *s3Sink) Push(ctx context.Context, doc model.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(s.cfg.Key),
		Body:          bytes.NewReader(b),
		ContentLength: aws.Int64(int64(len(b))),
		ContentType:   aws.String("application/json"),
		CacheControl:  aws.String(s.cfg.CacheControl),
	})
	return err
}

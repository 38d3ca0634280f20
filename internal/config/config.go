package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type CommonHTTP struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type GWOSCConfig struct {
	BaseURL string     `yaml:"base_url"` // https://gwosc.org
	HTTP    CommonHTTP `yaml:"http"`
	// Resilience
	MaxRetries int           `yaml:"max_retries"`
	Backoff    time.Duration `yaml:"backoff"`     // initial backoff
	MaxBackoff time.Duration `yaml:"max_backoff"` // cap
}

// FileSourceConfig replays a saved jsonfull dump instead of calling GWOSC.
type FileSourceConfig struct {
	Path string `yaml:"path"`
}

type SourceConfig struct {
	Type  string           `yaml:"type"` // gwosc | file
	GWOSC GWOSCConfig      `yaml:"gwosc"`
	File  FileSourceConfig `yaml:"file"`
}

type PostProcessConfig struct {
	ExcludeCatalogs []string          `yaml:"exclude_catalogs"` // regexes matched against the catalog tag
	Colors          map[string]string `yaml:"colors"`           // source type -> hex colour
}

type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Key          string `yaml:"key"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"` // S3-compatible endpoint (minio), empty for AWS
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	CacheControl string `yaml:"cache_control"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool { return strings.TrimSpace(c.Bucket) != "" }

type OutputConfig struct {
	Path string   `yaml:"path"` // snapshot file, empty disables the file sink
	S3   S3Config `yaml:"s3"`
}

type MetricsConfig struct {
	Enable   bool   `yaml:"enable"`
	Textfile string `yaml:"textfile"` // node-exporter textfile collector target
}

type PageConfig struct {
	Catalog     string        `yaml:"catalog"` // path, http(s) URL or s3://bucket/key
	OutDir      string        `yaml:"out_dir"`
	Title       string        `yaml:"title"`
	ChartLibURL string        `yaml:"chart_lib_url"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	S3          S3Config      `yaml:"s3"` // credentials for s3:// catalog locations
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
}

type Config struct {
	Source  SourceConfig      `yaml:"source"`
	Post    PostProcessConfig `yaml:"postprocess"`
	Output  OutputConfig      `yaml:"output"`
	Metrics MetricsConfig     `yaml:"metrics"`
	Page    PageConfig        `yaml:"page"`
	Log     LogConfig         `yaml:"log"`
}

const (
	DefaultGWOSCURL    = "https://gwosc.org"
	DefaultOutputPath  = "docs/data/gw_events.json"
	DefaultOutDir      = "docs"
	DefaultTitle       = "Gravitational Wave Events"
	DefaultChartLibURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultUserAgent   = "gw-event-viz"
)

// Load reads path, applies defaults and validates the result. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) ApplyDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = "gwosc"
	}
	g := &c.Source.GWOSC
	if g.BaseURL == "" {
		g.BaseURL = DefaultGWOSCURL
	}
	if g.HTTP.Timeout == 0 {
		g.HTTP.Timeout = 30 * time.Second
	}
	if g.HTTP.UserAgent == "" {
		g.HTTP.UserAgent = DefaultUserAgent
	}
	if g.MaxRetries == 0 {
		g.MaxRetries = 3
	}
	if g.Backoff == 0 {
		g.Backoff = time.Second
	}
	if g.MaxBackoff == 0 {
		g.MaxBackoff = 10 * time.Second
	}
	if c.Output.Path == "" && !c.Output.S3.Enabled() {
		c.Output.Path = DefaultOutputPath
	}
	if c.Output.S3.Enabled() {
		if c.Output.S3.Key == "" {
			c.Output.S3.Key = "data/gw_events.json"
		}
		if c.Output.S3.Region == "" {
			c.Output.S3.Region = "us-east-1"
		}
		if c.Output.S3.CacheControl == "" {
			c.Output.S3.CacheControl = "public, max-age=3600"
		}
	}
	if c.Page.Catalog == "" {
		c.Page.Catalog = c.Output.Path
		if c.Page.Catalog == "" {
			c.Page.Catalog = DefaultOutputPath
		}
	}
	if c.Page.OutDir == "" {
		c.Page.OutDir = DefaultOutDir
	}
	if c.Page.Title == "" {
		c.Page.Title = DefaultTitle
	}
	if c.Page.ChartLibURL == "" {
		c.Page.ChartLibURL = DefaultChartLibURL
	}
	if c.Page.Timeout == 0 {
		c.Page.Timeout = 15 * time.Second
	}
	if c.Page.UserAgent == "" {
		c.Page.UserAgent = DefaultUserAgent
	}
	if c.Page.S3.Region == "" {
		c.Page.S3.Region = "us-east-1"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

func (c *Config) Validate() error {
	switch c.Source.Type {
	case "gwosc":
		if !strings.HasPrefix(c.Source.GWOSC.BaseURL, "http") {
			return fmt.Errorf("source.gwosc.base_url must be an http(s) URL: %q", c.Source.GWOSC.BaseURL)
		}
	case "file":
		if strings.TrimSpace(c.Source.File.Path) == "" {
			return errors.New("source.file.path is required for type file")
		}
	default:
		return fmt.Errorf("unknown source type: %s", c.Source.Type)
	}
	if c.Metrics.Enable && c.Metrics.Textfile != "" && !strings.HasSuffix(c.Metrics.Textfile, ".prom") {
		return fmt.Errorf("metrics.textfile must end in .prom: %q", c.Metrics.Textfile)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	return nil
}

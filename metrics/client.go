package metrics

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/shadowofcards/go-formvalidator/contexts"
)

type Recorder interface {
	IncWithTags(ctx context.Context, name string, delta int64, tags map[string]string) error
	GaugeWithTags(ctx context.Context, name string, value float64, tags map[string]string) error
}

type Option func(*Config)

type Config struct {
	InfluxURL   string
	Token       string
	Org         string
	Bucket      string
	DefaultTags map[string]string
	ExtraTags   map[string]string
}

type Client struct {
	writeAPI api.WriteAPIBlocking
	cfg      Config
	now      func() time.Time
}

func New(opts ...Option) (*Client, error) {
	cfg := newConfig(opts)
	cli := influxdb2.NewClient(cfg.InfluxURL, cfg.Token)
	return &Client{writeAPI: cli.WriteAPIBlocking(cfg.Org, cfg.Bucket), cfg: cfg, now: time.Now}, nil
}

// NewWithWriter builds a Client on an existing blocking write API.
func NewWithWriter(w api.WriteAPIBlocking, opts ...Option) *Client {
	return &Client{writeAPI: w, cfg: newConfig(opts), now: time.Now}
}

func newConfig(opts []Option) Config {
	cfg := Config{
		DefaultTags: map[string]string{},
		ExtraTags:   map[string]string{},
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

var _ Recorder = (*Client)(nil)

func WithURL(u string) Option    { return func(c *Config) { c.InfluxURL = u } }
func WithToken(t string) Option  { return func(c *Config) { c.Token = t } }
func WithOrg(o string) Option    { return func(c *Config) { c.Org = o } }
func WithBucket(b string) Option { return func(c *Config) { c.Bucket = b } }
func WithDefaultTags(tags map[string]string) Option {
	return func(c *Config) {
		for k, v := range tags {
			c.DefaultTags[k] = v
		}
	}
}
func WithExtraTags(tags map[string]string) Option {
	return func(c *Config) {
		for k, v := range tags {
			c.ExtraTags[k] = v
		}
	}
}

func (c *Client) IncWithTags(ctx context.Context, name string, delta int64, extra map[string]string) error {
	return c.write(ctx, name, map[string]interface{}{"count": delta}, extra)
}

func (c *Client) GaugeWithTags(ctx context.Context, name string, value float64, extra map[string]string) error {
	return c.write(ctx, name, map[string]interface{}{"value": value}, extra)
}

func (c *Client) write(ctx context.Context, measurement string, fields map[string]interface{}, extra map[string]string) error {
	tags := make(map[string]string, len(c.cfg.DefaultTags)+len(c.cfg.ExtraTags)+len(extra)+1)
	for k, v := range c.cfg.DefaultTags {
		tags[k] = v
	}
	for k, v := range c.cfg.ExtraTags {
		tags[k] = v
	}
	for k, v := range extra {
		tags[k] = v
	}

	if _, ok := tags["form"]; !ok {
		if s, ok := ctx.Value(contexts.KeyForm).(string); ok && s != "" {
			tags["form"] = s
		}
	}

	point := influxdb2.NewPoint(measurement, tags, fields, c.now().UTC())
	return c.writeAPI.WritePoint(ctx, point)
}

// Nop is a Recorder that records nothing.
type Nop struct{}

func (Nop) IncWithTags(context.Context, string, int64, map[string]string) error { return nil }
func (Nop) GaugeWithTags(context.Context, string, float64, map[string]string) error {
	return nil
}

// Package promptflow provides a top-level convenience entry point for
// fetching, caching and compiling stored prompt templates.
//
// Usage:
//
//	import "github.com/BaSui01/promptflow"
//
//	mgr, err := promptflow.New(promptflow.WithEndpoint("https://prompts.example.com"))
//	rec, err := mgr.Get(ctx, "greeting", prompt.GetOptions{Label: "production"})
//	tpl, err := rec.Compile(map[string]any{"name": "World"})
//
// This is a thin wrapper around [prompt.NewManager] and [prompt.NewClient];
// use the subpackages directly when you need a custom Fetcher or cache.
package promptflow

import (
	"go.uber.org/zap"

	"github.com/BaSui01/promptflow/cache"
	"github.com/BaSui01/promptflow/config"
	"github.com/BaSui01/promptflow/prompt"
)

// Option configures the manager created by [New].
type Option func(*options)

type options struct {
	cfg     *config.Config
	fetcher prompt.Fetcher
	logger  *zap.Logger
}

// WithConfig replaces the whole configuration (defaults otherwise).
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithEndpoint sets the prompt-store base URL.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.cfg.Store.Endpoint = endpoint }
}

// WithAPIKey sets the prompt-store API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.cfg.Store.APIKey = key }
}

// WithFetcher sets a pre-built prompt fetcher, bypassing the HTTP client.
func WithFetcher(f prompt.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a [prompt.Manager] with minimal configuration. At minimum, an
// endpoint or a custom fetcher must be supplied.
func New(opts ...Option) (*prompt.Manager, error) {
	o := &options{cfg: config.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = prompt.NewClient(prompt.ClientConfig{
			BaseURL: o.cfg.Store.Endpoint,
			APIKey:  o.cfg.Store.APIKey,
			Timeout: o.cfg.Store.Timeout,
		}, o.logger)
	}

	managerCfg := prompt.ManagerConfig{
		Cache: cache.Config{
			Capacity:         o.cfg.Cache.Capacity,
			DefaultTTL:       o.cfg.Cache.TTL,
			StaleGracePeriod: o.cfg.Cache.StaleGracePeriod,
		},
		RefreshTimeout: o.cfg.Cache.RefreshTimeout,
	}
	return prompt.NewManager(fetcher, managerCfg, o.logger), nil
}

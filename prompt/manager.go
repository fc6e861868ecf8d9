package prompt

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BaSui01/promptflow/cache"
	"github.com/BaSui01/promptflow/types"
)

const instrumentationName = "github.com/BaSui01/promptflow/prompt"

// ManagerConfig configures the prompt manager.
type ManagerConfig struct {
	// Cache configuration for fetched prompt records.
	Cache cache.Config
	// RefreshTimeout bounds one background revalidation fetch.
	RefreshTimeout time.Duration
}

// DefaultManagerConfig returns the default manager configuration.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Cache:          cache.DefaultConfig(),
		RefreshTimeout: 10 * time.Second,
	}
}

// Manager composes the cache, the compiler and a Fetcher into the prompt
// retrieval path: serve fresh hits, serve stale hits while revalidating in
// the background, fetch on miss, fall back when everything fails.
type Manager struct {
	cache          *cache.Cache[*Record]
	fetcher        Fetcher
	logger         *zap.Logger
	tracer         trace.Tracer
	flight         singleflight.Group
	refreshTimeout time.Duration
}

// NewManager creates a prompt manager around the given fetcher.
func NewManager(fetcher Fetcher, config ManagerConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.RefreshTimeout <= 0 {
		config.RefreshTimeout = 10 * time.Second
	}
	return &Manager{
		cache:          cache.New[*Record](config.Cache, logger),
		fetcher:        fetcher,
		logger:         logger,
		tracer:         otel.Tracer(instrumentationName),
		refreshTimeout: config.RefreshTimeout,
	}
}

// Cache exposes the underlying cache, mainly for metrics wiring and tests.
func (m *Manager) Cache() *cache.Cache[*Record] { return m.cache }

// GetOptions selects a prompt revision and tunes retrieval for one call.
type GetOptions struct {
	// Version of the prompt; takes precedence over Label.
	Version int
	// Label of the prompt (e.g. "production").
	Label string
	// CacheTTL overrides the cache's default TTL for this record.
	CacheTTL time.Duration
	// Fallback is used when no cache entry exists and the fetch fails.
	Fallback *Fallback
}

// Get returns the prompt record for name, serving from cache when possible.
//
// A stale-but-usable cache entry is returned immediately and revalidated in
// the background; concurrent callers observing the same stale key share a
// single refresh. On a miss the fetch happens synchronously, again shared
// across concurrent callers of the same key. When the fetch fails the
// fallback is returned if supplied, otherwise a typed *Error.
func (m *Manager) Get(ctx context.Context, name string, opts GetOptions) (*Record, error) {
	ctx, span := m.tracer.Start(ctx, "prompt.get",
		trace.WithAttributes(
			attribute.String("prompt.name", name),
			attribute.Int("prompt.version", opts.Version),
			attribute.String("prompt.label", opts.Label),
		))
	defer span.End()

	key := cache.GenerateKey(name, cache.KeyOptions{Version: opts.Version, Label: opts.Label})

	if record, ok := m.cache.Get(key); ok {
		if m.cache.IsStale(key) {
			span.SetAttributes(attribute.String("prompt.cache", "stale"))
			m.revalidate(name, key, opts)
		} else {
			span.SetAttributes(attribute.String("prompt.cache", "fresh"))
		}
		return record, nil
	}
	span.SetAttributes(attribute.String("prompt.cache", "miss"))

	record, err := m.fetch(ctx, name, key, opts)
	if err != nil {
		if opts.Fallback != nil {
			m.logger.Warn("prompt fetch failed, using fallback",
				zap.String("prompt", name),
				zap.Error(err))
			span.SetAttributes(attribute.Bool("prompt.fallback", true))
			return opts.Fallback.record(name), nil
		}
		return nil, err
	}
	return record, nil
}

// Compile fetches the prompt and renders its template against the variable
// bag in one call.
func (m *Manager) Compile(ctx context.Context, name string, vars types.Variables, opts GetOptions) (types.Template, error) {
	record, err := m.Get(ctx, name, opts)
	if err != nil {
		return types.Template{}, err
	}
	compiled, err := record.Compile(vars)
	if err != nil {
		return types.Template{}, fmt.Errorf("compile prompt %q: %w", name, err)
	}
	return compiled, nil
}

// Invalidate drops every cached version and label of the named prompt.
func (m *Manager) Invalidate(name string) {
	m.cache.DeleteByPrompt(name)
}

// fetch retrieves the record from the store and caches it. Concurrent
// callers of the same key share one in-flight fetch and its result.
func (m *Manager) fetch(ctx context.Context, name, key string, opts GetOptions) (*Record, error) {
	v, err, _ := m.flight.Do(key, func() (any, error) {
		record, err := m.fetcher.Fetch(ctx, name, FetchOptions{Version: opts.Version, Label: opts.Label})
		if err != nil {
			// A failed fetch never touches the cache: subsequent gets
			// keep missing, or keep serving a still-valid stale entry.
			return nil, err
		}
		if opts.CacheTTL > 0 {
			m.cache.SetWithTTL(key, record, opts.CacheTTL)
		} else {
			m.cache.Set(key, record)
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}

// revalidate refreshes a stale key in the background. The cache's refresh
// markers close the window between observing staleness and starting the
// fetch, so N callers hitting the same stale key trigger one refresh.
func (m *Manager) revalidate(name, key string, opts GetOptions) {
	if m.cache.IsRefreshing(key) {
		return
	}
	m.cache.StartRefresh(key)

	go func() {
		defer m.cache.EndRefresh(key)

		ctx, cancel := context.WithTimeout(context.Background(), m.refreshTimeout)
		defer cancel()

		if _, err := m.fetch(ctx, name, key, opts); err != nil {
			m.logger.Warn("background prompt refresh failed",
				zap.String("prompt", name),
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 缓存的 Prometheus 指标。可选：未挂载时所有记录为空操作。
type Metrics struct {
	hits      prometheus.Counter
	staleHits prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// NewMetrics 在给定 Registerer 上注册缓存指标。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "promptflow_cache_hits_total",
			Help: "Fresh prompt cache hits.",
		}),
		staleHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "promptflow_cache_stale_hits_total",
			Help: "Prompt cache hits served within the stale-while-revalidate grace window.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "promptflow_cache_misses_total",
			Help: "Prompt cache misses, including entries dropped past the grace window.",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "promptflow_cache_evictions_total",
			Help: "Prompt cache LRU evictions.",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) staleHit() {
	if m != nil {
		m.staleHits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) eviction() {
	if m != nil {
		m.evictions.Inc()
	}
}

// Package metrics expõe as métricas Prometheus do cache de consultas e do backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implementa os recorders do cache, do gateway e do scheduler.
type Collector struct {
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	cacheCoalesced  *prometheus.CounterVec
	cacheSwept      prometheus.Counter
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	disabledCalls   *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_query_cache_hits_total",
			Help: "Consultas atendidas pelo cache sem ir ao backend",
		}, []string{"resource"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_query_cache_misses_total",
			Help: "Consultas sem dado fresco no cache",
		}, []string{"resource"}),
		cacheCoalesced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_query_cache_coalesced_total",
			Help: "Chamadas que compartilharam uma requisição em andamento",
		}, []string{"resource"}),
		cacheSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insights_query_cache_swept_total",
			Help: "Entradas removidas do cache por inatividade",
		}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_backend_requests_total",
			Help: "Requisições ao backend por tabela e resultado",
		}, []string{"table", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insights_backend_request_duration_seconds",
			Help:    "Latência das requisições ao backend (segundos)",
			Buckets: prometheus.DefBuckets,
		}, []string{"table"}),
		disabledCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_backend_disabled_calls_total",
			Help: "Chamadas ao cliente desabilitado por falta de configuração",
		}, []string{"table"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheCoalesced,
		c.cacheSwept,
		c.backendRequests,
		c.backendLatency,
		c.disabledCalls,
	)

	return c
}

func (c *Collector) RecordCacheHit(tag string) {
	c.cacheHits.WithLabelValues(tag).Inc()
}

func (c *Collector) RecordCacheMiss(tag string) {
	c.cacheMisses.WithLabelValues(tag).Inc()
}

func (c *Collector) RecordCacheCoalesced(tag string) {
	c.cacheCoalesced.WithLabelValues(tag).Inc()
}

func (c *Collector) RecordCacheSweep(removed int) {
	c.cacheSwept.Add(float64(removed))
}

func (c *Collector) RecordBackendRequest(table string, outcome string, duration time.Duration) {
	c.backendRequests.WithLabelValues(table, outcome).Inc()
	c.backendLatency.WithLabelValues(table).Observe(duration.Seconds())
}

func (c *Collector) RecordDisabledCall(table string) {
	c.disabledCalls.WithLabelValues(table).Inc()
}

// Handler devolve o handler de scrape do Prometheus
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

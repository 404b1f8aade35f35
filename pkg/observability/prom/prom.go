// Package prom implements the observability hooks with Prometheus
// collectors.
//
//	reg := prometheus.NewRegistry()
//	prom.New(reg).Install()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/observability"
)

const namespace = "gqlcanvas"

// Hooks records pipeline, cache and HTTP events.
type Hooks struct {
	parseTotal     *prometheus.CounterVec
	parseDuration  prometheus.Histogram
	layoutDuration *prometheus.HistogramVec
	canvasNodes    prometheus.Histogram
	layoutWarnings prometheus.Counter
	renderTotal    *prometheus.CounterVec
	renderDuration prometheus.Histogram

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter

	httpInFlight prometheus.Gauge
	httpTotal    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		parseTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_total",
			Help:      "Request bodies parsed, by result code",
		}, []string{"code"}),
		parseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Request body parse duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		layoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout duration in seconds, by mode",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
		}, []string{"mode"}),
		canvasNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "canvas_nodes",
			Help:      "Nodes per built canvas",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		layoutWarnings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_warnings_total",
			Help:      "Non-fatal findings reported while building canvases",
		}),
		renderTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Render runs, by result",
		}, []string{"result"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache",
		}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "API requests being served",
		}),
		httpTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Install registers h as the global pipeline, cache and HTTP hooks.
func (h *Hooks) Install() {
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Pipeline
// =============================================================================

func (h *Hooks) OnParseStart(context.Context, int) {}

func (h *Hooks) OnParseComplete(_ context.Context, d time.Duration, err error) {
	code := "ok"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	h.parseTotal.WithLabelValues(code).Inc()
	h.parseDuration.Observe(d.Seconds())
}

func (h *Hooks) OnLayoutStart(context.Context, string) {}

func (h *Hooks) OnLayoutComplete(_ context.Context, mode string, nodes, warnings int, d time.Duration) {
	h.layoutDuration.WithLabelValues(mode).Observe(d.Seconds())
	h.canvasNodes.Observe(float64(nodes))
	h.layoutWarnings.Add(float64(warnings))
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.renderTotal.WithLabelValues(result).Inc()
	h.renderDuration.Observe(d.Seconds())
}

// =============================================================================
// Cache
// =============================================================================

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

// =============================================================================
// HTTP
// =============================================================================

func (h *Hooks) OnRequest(context.Context, string, string) {
	h.httpInFlight.Inc()
}

func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpInFlight.Dec()
	h.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Hooks)(nil)
	_ observability.CacheHooks    = (*Hooks)(nil)
	_ observability.HTTPHooks     = (*Hooks)(nil)
)

// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the external generation calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generationCalls *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskforge_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskforge_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		generationCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskforge_generation_calls_total",
			Help: "External text-generation calls by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.generationCalls)
	return m
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}),
	)
}

// Instrument wraps a route handler with request counting and latency timing.
func (m *Metrics) Instrument(route string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		m.requestsTotal.WithLabelValues(
			string(ctx.Method()),
			route,
			strconv.Itoa(ctx.Response.StatusCode()),
		).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveGeneration records the outcome of one external generation call.
func (m *Metrics) ObserveGeneration(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.generationCalls.WithLabelValues(outcome).Inc()
}

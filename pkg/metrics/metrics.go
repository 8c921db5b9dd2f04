// Package metrics exposes Prometheus instruments for the dashboard backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the service records into
// ⭐ SSOT: 메트릭 정의는 여기서만
type Metrics struct {
	registry *prometheus.Registry

	computeDuration *prometheus.HistogramVec
	sourceRequests  *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
	tradesLoaded    *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	wsClients       prometheus.Gauge
	totalPnL        *prometheus.GaugeVec
	winRate         *prometheus.GaugeVec
}

// New creates a Metrics bound to its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		computeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradeboard_compute_duration_seconds",
				Help:    "Time spent computing statistics or equity series",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"kind"},
		),
		sourceRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeboard_source_requests_total",
				Help: "Trade source fetches by source kind and operation",
			},
			[]string{"source", "op"},
		),
		sourceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeboard_source_errors_total",
				Help: "Failed trade source fetches",
			},
			[]string{"source", "op"},
		),
		tradesLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradeboard_trades_loaded",
				Help: "Trades in the most recent snapshot",
			},
			[]string{"set"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeboard_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"route", "status"},
		),
		wsClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradeboard_ws_clients",
				Help: "Connected dashboard websocket clients",
			},
		),
		totalPnL: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradeboard_total_pnl",
				Help: "Total profit and loss of the latest snapshot",
			},
			[]string{"bot"},
		),
		winRate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradeboard_win_rate_percent",
				Help: "Win rate of the latest snapshot",
			},
			[]string{"bot"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCompute records how long a computation of kind took
func (m *Metrics) ObserveCompute(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.computeDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordSourceRequest counts a source fetch and, when err is set, its failure
func (m *Metrics) RecordSourceRequest(source, op string, err error) {
	if m == nil {
		return
	}
	m.sourceRequests.WithLabelValues(source, op).Inc()
	if err != nil {
		m.sourceErrors.WithLabelValues(source, op).Inc()
	}
}

// SetTradesLoaded records the size of a trade set ("filtered" or "universe")
func (m *Metrics) SetTradesLoaded(set string, n int) {
	if m == nil {
		return
	}
	m.tradesLoaded.WithLabelValues(set).Set(float64(n))
}

// RecordHTTP counts a served request
func (m *Metrics) RecordHTTP(route, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
}

// SetWSClients records the current websocket client count
func (m *Metrics) SetWSClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}

// SetPerformance records headline figures for bot ("all" for the pooled set)
func (m *Metrics) SetPerformance(bot string, totalPnL, winRate float64) {
	if m == nil {
		return
	}
	m.totalPnL.WithLabelValues(bot).Set(totalPnL)
	m.winRate.WithLabelValues(bot).Set(winRate)
}

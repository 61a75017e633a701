package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"absa_dashboard/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "absa", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "absa", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "absa", Name: "dataset_loads_total", Help: "Review table loads."},
		[]string{"source", "outcome"}, // outcome: ok|load_failure|missing_column|error
	)
	DatasetLoadLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "absa", Name: "dataset_load_duration_seconds",
			Help:    "Review table load duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	DatasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "absa", Name: "dataset_rows", Help: "Rows in the last loaded table."},
		[]string{"source"},
	)
	Renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "absa", Name: "renders_total", Help: "Image renders."},
		[]string{"kind", "outcome"}, // kind: wordcloud|ranking; outcome: ok|cached|no_data|no_text|error
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "absa", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts a dedicated metrics listener on addr. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, DatasetLoads, DatasetLoadLatency, DatasetRows, Renders, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveLoad records one table load. rows is ignored on error.
func ObserveLoad(source string, rows int, err error, dur time.Duration) {
	DatasetLoads.WithLabelValues(source, LabelErr(err)).Inc()
	DatasetLoadLatency.WithLabelValues(source).Observe(dur.Seconds())
	if err == nil {
		DatasetRows.WithLabelValues(source).Set(float64(rows))
	}
}

func ObserveRender(kind, outcome string) {
	Renders.WithLabelValues(kind, outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// LabelErr maps an error to a low-cardinality outcome label.
func LabelErr(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, domain.ErrLoadFailure):
		return "load_failure"
	case errors.Is(err, domain.ErrNoData):
		return "no_data"
	case errors.Is(err, domain.ErrNoText):
		return "no_text"
	}
	return "error"
}

package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rulebuilder_requests_total",
			Help: "Total HTTP requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rulebuilder_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rulebuilder_in_flight",
		Help: "In-flight HTTP requests",
	})
	CompileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rulebuilder_compile_total",
			Help: "Compiled clauses by kind",
		}, []string{"clause"},
	)
	CompileFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rulebuilder_compile_fallback_total",
			Help: "Compilations that produced fallback text",
		}, []string{"clause"},
	)
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rulebuilder_sessions_active",
		Help: "Live editing sessions",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, CompileTotal, CompileFallbackTotal, SessionsActive)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}

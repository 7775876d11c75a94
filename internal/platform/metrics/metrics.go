package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry contiene los collectors propios del servicio.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	favoriteChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "favorites",
			Name:      "changes_total",
			Help:      "Favorite add/remove operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	applicationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "applications",
			Name:      "events_total",
			Help:      "Adoption applications created and reviewed, by status.",
		},
		[]string{"event", "status"},
	)

	sessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "sessions",
			Name:      "purged_total",
			Help:      "Expired sessions removed by the periodic purge.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		favoriteChanges,
		applicationEvents,
		sessionsPurged,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler expone el registry en formato Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler mide requests usando el patrón de ruta de chi como label,
// así /api/pets/1 y /api/pets/2 caen en la misma serie.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordFavorite(op string, outcome string) {
	favoriteChanges.WithLabelValues(op, outcome).Inc()
}

func RecordApplication(event string, status string) {
	applicationEvents.WithLabelValues(event, status).Inc()
}

func RecordSessionsPurged(n int64) {
	if n <= 0 {
		return
	}
	sessionsPurged.Add(float64(n))
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

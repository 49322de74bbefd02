// Package observability exposes tracing setup and a small set of
// Prometheus-format metrics for the HTTP surface, the validator, and ingestion.
package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/rimas-backend/internal/platform/logger"
)

var latencyBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Metrics is nil-safe: every method on a nil *Metrics is a no-op, so
// callers never branch on whether metrics are enabled.
type Metrics struct {
	apiRequests   *CounterVec
	apiLatency    *HistogramVec
	apiInflight   *Gauge
	validations   *CounterVec
	validationDur *HistogramVec
	semantic      *CounterVec
	ingestDocs    *CounterVec
	redisUp       *Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("rimas_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"rimas_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			latencyBuckets,
		),
		apiInflight:   NewGauge("rimas_api_inflight_requests", "In-flight API requests."),
		validations:   NewCounterVec("rimas_validations_total", "Drill validations by terminal stage and verdict.", []string{"stage", "approved"}),
		validationDur: NewHistogramVec("rimas_validation_duration_seconds", "Drill validation latency by terminal stage.", []string{"stage"}, latencyBuckets),
		semantic:      NewCounterVec("rimas_semantic_requests_total", "Semantic scorer calls by outcome.", []string{"status"}),
		ingestDocs:    NewCounterVec("rimas_ingest_documents_total", "Ingested documents by outcome.", []string{"status"}),
		redisUp:       NewGauge("rimas_redis_up", "1 when the semantic cache answered the last ping."),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.validations, m.validationDur, m.semantic,
		m.ingestDocs, m.redisUp,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	m.apiRequests.Inc(method, route, code)
	m.apiLatency.Observe(dur.Seconds(), method, route, code)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) ObserveValidation(stage string, approved bool, dur time.Duration) {
	if m == nil {
		return
	}
	m.validations.Inc(stage, strconv.FormatBool(approved))
	m.validationDur.Observe(dur.Seconds(), stage)
}

func (m *Metrics) IncSemantic(status string) {
	if m == nil {
		return
	}
	m.semantic.Inc(status)
}

func (m *Metrics) AddIngest(status string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ingestDocs.Add(float64(n), status)
}

// StartRedisCollector pings rdb every interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
			}
		}
	}()
}

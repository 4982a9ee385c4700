package observability

import (
	"strconv"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	crmRequests     *prometheus.CounterVec
	crmDuration     *prometheus.HistogramVec
	actionFailures  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	breakerState    *prometheus.GaugeVec
	mutationResults *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		crmRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citadel_crm_requests_total",
				Help: "Total CRM API calls by method and resulting status.",
			},
			[]string{"method", "status"},
		),
		crmDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "citadel_crm_request_duration_seconds",
				Help:    "Duration of CRM API calls by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		actionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citadel_action_failures_total",
				Help: "Domain actions that produced no result, by action and error kind.",
			},
			[]string{"action", "kind"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citadel_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citadel_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		breakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "citadel_circuit_breaker_open",
				Help: "1 while the named circuit breaker is open.",
			},
			[]string{"breaker"},
		),
		mutationResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citadel_card_mutations_total",
				Help: "Inline card mutations by field and outcome.",
			},
			[]string{"field", "outcome"},
		),
	}
}

// RecordCRMRequest records one CRM call. status 0 is reported as "error".
func (m *Metrics) RecordCRMRequest(method string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.crmRequests.WithLabelValues(method, label).Inc()
	m.crmDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncrActionFailure counts an action that returned an error kind.
func (m *Metrics) IncrActionFailure(action string, kind domain.ErrorKind) {
	m.actionFailures.WithLabelValues(action, string(kind)).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// SetBreakerOpen flags the breaker gauge.
func (m *Metrics) SetBreakerOpen(breaker string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.breakerState.WithLabelValues(breaker).Set(v)
}

// IncrMutation counts a card mutation outcome ("success" or "failure").
func (m *Metrics) IncrMutation(field, outcome string) {
	m.mutationResults.WithLabelValues(field, outcome).Inc()
}

// Snapshot summarizes CRM traffic for GET /v1/metrics/crm.
func (m *Metrics) Snapshot() *domain.CRMMetrics {
	var total, failed float64
	for _, metric := range gather(m.crmRequests) {
		v := metric.GetCounter().GetValue()
		total += v
		if status := labelValue(metric, "status"); !isSuccessStatus(status) {
			failed += v
		}
	}

	hits := sum(gather(m.cacheHits))
	misses := sum(gather(m.cacheMisses))

	snap := &domain.CRMMetrics{
		TotalRequests:  int64(total),
		FailedRequests: int64(failed),
		Period:         "all_time",
	}
	if total > 0 {
		snap.ErrorRate = failed / total
	}
	if hits+misses > 0 {
		snap.CacheHitRate = hits / (hits + misses)
	}
	return snap
}

// gather collects the current samples of a counter vector.
func gather(cv *prometheus.CounterVec) []*dto.Metric {
	ch := make(chan prometheus.Metric, 64)
	go func() {
		cv.Collect(ch)
		close(ch)
	}()

	var out []*dto.Metric
	for pm := range ch {
		m := &dto.Metric{}
		if err := pm.Write(m); err == nil {
			out = append(out, m)
		}
	}
	return out
}

func sum(metrics []*dto.Metric) float64 {
	var total float64
	for _, m := range metrics {
		total += m.GetCounter().GetValue()
	}
	return total
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func isSuccessStatus(status string) bool {
	code, err := strconv.Atoi(status)
	return err == nil && code >= 200 && code < 300
}

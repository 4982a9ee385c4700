package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// CRMMetrics is returned by GET /v1/metrics/crm.
type CRMMetrics struct {
	TotalRequests  int64   `json:"totalRequests"`
	FailedRequests int64   `json:"failedRequests"`
	ErrorRate      float64 `json:"errorRate"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	Period         string  `json:"period"`
}

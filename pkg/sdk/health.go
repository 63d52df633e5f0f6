package shopsearch

import (
	"context"

	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
)

// HealthStatus is the aggregated engine health.
//
// Status is "ok", "degraded" when the suggestion cache is down (searches still
// work, just uncached), or "error" when the catalog store is unreachable.
// Checks maps "database" and, if a cache is configured, "cache" to "ok"/"error".
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Serving reports whether searches can be answered, i.e. the catalog store is up.
func (h HealthStatus) Serving() bool {
	return h.Status != string(healthuc.Unhealthy)
}

// Health pings the catalog store and the suggestion cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	status := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		status.Checks[name] = string(res)
	}
	return status
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

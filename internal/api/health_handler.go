package api

import (
	"net/http"
	"time"
)

const healthVersion = "1.0.0"

// HealthStatus represents the overall health of the service.
type HealthStatus struct {
	Status  string                    `json:"status"` // "healthy", "degraded"
	Version string                    `json:"version"`
	Uptime  string                    `json:"uptime"`
	Checks  map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down"
	Message string `json:"message,omitempty"`
}

// HealthChecker reports service health. The only dependency worth checking
// is the dataset snapshot — there is no database, queue, or remote service.
type HealthChecker struct {
	handlers  *Handlers
	startTime time.Time
}

// NewHealthChecker creates a HealthChecker over the handler set.
func NewHealthChecker(h *Handlers) *HealthChecker {
	return &HealthChecker{handlers: h, startTime: time.Now()}
}

// HandleHealth returns the health status. Always HTTP 200; the status field
// in the body conveys health.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]ComponentCheck{
		"dataset": hc.checkDataset(),
	}

	overall := "healthy"
	for _, c := range checks {
		if c.Status != "up" {
			overall = "degraded"
		}
	}

	respondJSON(w, http.StatusOK, HealthStatus{
		Status:  overall,
		Version: healthVersion,
		Uptime:  formatUptime(time.Since(hc.startTime)),
		Checks:  checks,
	})
}

func (hc *HealthChecker) checkDataset() ComponentCheck {
	if !hc.handlers.store.Ready() {
		return ComponentCheck{Status: "down", Message: "no dataset loaded"}
	}
	return ComponentCheck{Status: "up"}
}

func formatUptime(d time.Duration) string {
	return d.Truncate(time.Second).String()
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/threelines/tradeboard/backend/internal/scheduler"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// SystemHandler serves health and job status
type SystemHandler struct {
	service string
	checks  map[string]HealthCheck
	jobs    *scheduler.Scheduler
}

// NewSystemHandler creates a system handler. jobs may be nil.
func NewSystemHandler(service string, checks map[string]HealthCheck, jobs *scheduler.Scheduler) *SystemHandler {
	return &SystemHandler{service: service, checks: checks, jobs: jobs}
}

// Health runs every dependency check
// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":       overall,
		"service":      h.service,
		"dependencies": deps,
	})
}

// Jobs returns scheduler statistics
// GET /api/jobs
func (h *SystemHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondJSON(w, http.StatusOK, map[string]scheduler.JobStats{})
		return
	}
	respondJSON(w, http.StatusOK, h.jobs.GetJobStats())
}

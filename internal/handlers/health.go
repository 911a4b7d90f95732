package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// PingFunc checks a single backing dependency.
type PingFunc func(ctx context.Context) error

// DependencyStatus is the health of one dependency
type DependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status       string                      `json:"status" example:"ok"`
	UptimeSec    int                         `json:"uptime_sec"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// NewHealthHandler returns a handler that pings every dependency.
// It is served at /healthz, outside the documented /api base path.
func NewHealthHandler(checks map[string]PingFunc, startedAt time.Time) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:       "ok",
			UptimeSec:    int(time.Since(startedAt).Seconds()),
			Dependencies: make(map[string]DependencyStatus, len(checks)),
		}
		status := http.StatusOK

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Dependencies[name] = DependencyStatus{OK: false, Message: err.Error()}
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = DependencyStatus{OK: true}
		}

		writeJSON(w, status, resp)
	}
}

// NewNotFoundHandler answers every unknown route.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	}
}

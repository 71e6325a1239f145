package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoints for readiness and liveness
// probes. Readiness covers the external dependencies a document build needs.
type HealthHandler struct {
	startTime       time.Time
	readinessChecks map[string]func() error
}

// HealthResponse is the probe response body.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Details   map[string]string `json:"details,omitempty"`
}

// NewHealthHandler creates a health handler with the given readiness checks,
// keyed by dependency name.
func NewHealthHandler(readinessChecks map[string]func() error) *HealthHandler {
	return &HealthHandler{
		startTime:       time.Now(),
		readinessChecks: readinessChecks,
	}
}

// HandleReadiness handles readiness probe requests
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	details := make(map[string]string)
	allOk := true

	for name, check := range h.readinessChecks {
		if err := check(); err != nil {
			allOk = false
			details[name] = err.Error()
		} else {
			details[name] = "OK"
		}
	}

	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).String(),
		Details:   details,
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOk {
		response.Status = "DOWN"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// HandleLiveness handles liveness probe requests
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

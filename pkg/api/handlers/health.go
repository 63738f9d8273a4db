package handlers

import (
	"net/http"
	"time"

	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Is the database reachable?
type HealthHandler struct {
	engine   vfs.Engine
	docRoots []config.DocRootConfig
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(engine vfs.Engine, docRoots []config.DocRootConfig) *HealthHandler {
	return &HealthHandler{engine: engine, docRoots: docRoots}
}

// healthResponse is the wire shape of both probes.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func healthy(data any) healthResponse {
	return healthResponse{Status: "healthy", Timestamp: time.Now().UTC(), Data: data}
}

func unhealthy(errMsg string) healthResponse {
	return healthResponse{Status: "unhealthy", Timestamp: time.Now().UTC(), Error: errMsg}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK as long as the HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthy(map[string]string{
		"service": "quanta-docs",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Runs one cheap query against the nodes table through the engine. Returns
// 503 Service Unavailable when the database cannot be reached or no document
// roots are configured.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthy("engine not initialized"))
		return
	}
	if len(h.docRoots) == 0 {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthy("no document roots configured"))
		return
	}

	if _, err := h.engine.MaxOrdinal(r.Context(), "", h.docRoots[0].Key); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthy("database not reachable"))
		return
	}

	WriteJSON(w, http.StatusOK, healthy(map[string]any{
		"doc_roots": len(h.docRoots),
	}))
}

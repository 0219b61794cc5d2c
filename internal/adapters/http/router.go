package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/neuralnexus/assistant/internal/config"
	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/ports"
	"github.com/neuralnexus/assistant/internal/observability/metrics"
)

const (
	serviceName      = "api"
	backpressureWait = 50 * time.Millisecond
)

type Router struct {
	assistant ports.AssistantService
	metrics   *metrics.HTTPServerMetrics
	cfg       config.Config
}

func NewRouter(assistant ports.AssistantService, m *metrics.HTTPServerMetrics, cfg config.Config) *Router {
	return &Router{
		assistant: assistant,
		metrics:   m,
		cfg:       cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/v1/roles", rt.listRoles)
	mux.HandleFunc("/v1/query", rt.processQuery)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": rt.assistant.Roles()})
}

type queryRequest struct {
	Query string `json:"query"`
	Role  string `json:"role"`
}

type queryResponse struct {
	Answer  string               `json:"answer"`
	Role    string               `json:"role"`
	Metrics domain.SearchMetrics `json:"metrics"`
}

func (rt *Router) processQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	answer, searchMetrics, err := rt.assistant.ProcessQuery(r.Context(), req.Query, req.Role)
	if err != nil {
		rt.metrics.RecordQuery(serviceName, req.Role, "error", time.Since(start))
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	rt.metrics.RecordQuery(serviceName, req.Role, "ok", time.Since(start))

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:  answer,
		Role:    req.Role,
		Metrics: searchMetrics,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

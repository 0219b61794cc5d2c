package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neuralnexus/assistant/internal/config"
	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/ports"
	"github.com/neuralnexus/assistant/internal/observability/metrics"
)

type assistantFake struct {
	answer   string
	metrics  domain.SearchMetrics
	err      error
	gotQuery string
	gotRole  string
}

func (f *assistantFake) ProcessQuery(_ context.Context, query, roleKey string) (string, domain.SearchMetrics, error) {
	f.gotQuery, f.gotRole = query, roleKey
	if f.err != nil {
		return "", domain.SearchMetrics{}, f.err
	}
	return f.answer, f.metrics, nil
}

func (f *assistantFake) Roles() []ports.RoleInfo {
	return []ports.RoleInfo{
		{Key: "fact_checker", Name: "Fact Checker", SubmitLabel: "Verify Statement"},
		{Key: "research_assistant", Name: "Research Assistant", SubmitLabel: "Start Research"},
	}
}

func newTestHandler(assistant *assistantFake, cfg config.Config) http.Handler {
	return NewRouter(assistant, metrics.NewHTTPServerMetrics("test"), cfg).Handler()
}

func TestProcessQueryHappyPath(t *testing.T) {
	assistant := &assistantFake{
		answer:  "# Fact Check Results\n\nVERDICT: TRUE",
		metrics: domain.SearchMetrics{TotalTime: 1.5, ResultsCount: 3},
	}
	handler := newTestHandler(assistant, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/v1/query",
		strings.NewReader(`{"query": "is water wet?", "role": "fact_checker"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Errorf("expected request id header")
	}
	if assistant.gotQuery != "is water wet?" || assistant.gotRole != "fact_checker" {
		t.Errorf("assistant call = (%q, %q)", assistant.gotQuery, assistant.gotRole)
	}

	var body queryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(body.Answer, "VERDICT: TRUE") {
		t.Errorf("unexpected answer %q", body.Answer)
	}
	if body.Role != "fact_checker" || body.Metrics.ResultsCount != 3 {
		t.Errorf("unexpected response payload: %+v", body)
	}
}

func TestProcessQueryErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "process query", errEmpty), http.StatusBadRequest},
		{"unknown role", domain.WrapError(domain.ErrUnknownRole, "process query", errEmpty), http.StatusNotFound},
		{"upstream", domain.WrapError(domain.ErrUpstream, "chat completion", errEmpty), http.StatusBadGateway},
		{"temporary", domain.WrapError(domain.ErrTemporary, "search", errEmpty), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(&assistantFake{err: tc.err}, config.Config{})
			req := httptest.NewRequest(http.MethodPost, "/v1/query",
				strings.NewReader(`{"query": "q", "role": "r"}`))
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)
			if res.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.Code)
			}
		})
	}
}

func TestProcessQueryRejectsInvalidJSON(t *testing.T) {
	handler := newTestHandler(&assistantFake{}, config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader("{not json"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestProcessQueryMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&assistantFake{}, config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/v1/query", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestListRoles(t *testing.T) {
	handler := newTestHandler(&assistantFake{}, config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/v1/roles", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body struct {
		Roles []ports.RoleInfo `json:"roles"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Roles) != 2 || body.Roles[0].Key != "fact_checker" {
		t.Fatalf("unexpected roles payload: %+v", body.Roles)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&assistantFake{}, config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

var errEmpty = errEmptyType{}

type errEmptyType struct{}

func (errEmptyType) Error() string { return "boom" }

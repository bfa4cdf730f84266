package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/adapters/observability"
)

func observedRouter(buf *bytes.Buffer) http.Handler {
	m := chi.NewRouter()
	m.Use(chimw.RequestID)
	m.Use(Observe(zerolog.New(buf)))
	m.Post("/v1/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderPlanCurrency, "EUR")
		w.Header().Set(HeaderPlanID, chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("{}"))
	})
	return m
}

func TestObserve_LogsPlanFields(t *testing.T) {
	var buf bytes.Buffer
	rr := httptest.NewRecorder()
	observedRouter(&buf).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/plans/abc", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/v1/plans/{id}", line["route"])
	assert.Equal(t, "abc", line["plan_id"])
	assert.Equal(t, "EUR", line["currency"])
	assert.EqualValues(t, 201, line["status"])
	assert.EqualValues(t, 2, line["bytes"])
	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, "http_request", line["message"])
}

// unmatchedCount reads planner_http_requests_total{route="unmatched",method="GET",status="404"}.
func unmatchedCount(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "planner_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "unmatched" && labels["method"] == "GET" && labels["status"] == "404" {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestObserve_UnmatchedRouteSharesOneLabel(t *testing.T) {
	reg := observability.InitRegistry()
	before := unmatchedCount(t, reg)

	var buf bytes.Buffer
	h := observedRouter(&buf)
	for _, p := range []string{"/wp-login.php", "/.env", "/admin"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	assert.Equal(t, before+3, unmatchedCount(t, reg))
	assert.NotContains(t, buf.String(), "plan_id")
}

func TestTimeout_ProblemBody(t *testing.T) {
	h := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/itineraries", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var p problem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 503, p.Status)
	assert.Equal(t, "Timeout", p.Title)
}

package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "travel_planner/internal/adapters/http_server"
	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/interpreter"
	"travel_planner/internal/itinerary"
)

type stubGen struct {
	doc string
	err error
}

func (g stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Generate a JSON array") {
		return `[{"name":"Louvre","category":"museum","description":"Art","best_for":"Art lovers"}]`, nil
	}
	return g.doc, g.err
}

type stubWeather struct{}

func (stubWeather) Lookup(ctx context.Context, location, date string) domain.Weather {
	if date == "" {
		date = domain.CurrentDate
	}
	return domain.Weather{Location: location, Date: date, Temperature: "20°C", Conditions: "clear sky"}
}

func newTestServer(t *testing.T, gen stubGen) *httptest.Server {
	t.Helper()
	table := currency.Default()
	svc := app.NewPlanService(
		interpreter.New(nil),
		stubWeather{},
		app.NewAttractionService(gen),
		gen,
		itinerary.NewRenderer(itinerary.NewAnnotator(table)),
	).WithClock(func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) })

	s := server.New(5 * time.Second)
	s.MountHandlers(&server.Handlers{P: svc, Table: table, Currency: currency.EUR})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

const doc = "# **Paris**\n## Budget\nTotal: $1,200\n## Tips\nPack light"

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, stubGen{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCurrencies_ETag(t *testing.T) {
	ts := newTestServer(t, stubGen{})

	resp, err := http.Get(ts.URL + "/v1/currencies")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}
	decodeBody(t, resp, &out)
	require.Len(t, out, 7)
	assert.Equal(t, "USD", out[0].Code)
	assert.Equal(t, "EUR (€)", out[1].Label)

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/currencies", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestExtract(t *testing.T) {
	ts := newTestServer(t, stubGen{})
	resp := post(t, ts.URL+"/v1/extract", `{"request":"Plan a 2 week trip to Tokyo"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var facts domain.ExtractedFacts
	decodeBody(t, resp, &facts)
	assert.Contains(t, facts.Destinations, "Tokyo")
	require.NotNil(t, facts.DurationDays)
	assert.Equal(t, 14, *facts.DurationDays)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, stubGen{})
	body, _ := json.Marshal(map[string]any{"document": doc, "currency": "eur"})
	resp := post(t, ts.URL+"/v1/render", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Document  string `json:"document"`
		HasBudget bool   `json:"has_budget"`
	}
	decodeBody(t, resp, &out)
	assert.True(t, out.HasBudget)
	assert.Equal(t, "# Paris\n## Budget\nTotal: $1,200 (€1,092.00)\n## Tips\nPack light", out.Document)
}

func TestRender_BudgetOffAndUnknownCurrency(t *testing.T) {
	ts := newTestServer(t, stubGen{})

	body, _ := json.Marshal(map[string]any{"document": doc, "currency": "JPY", "include_budget": false})
	resp := post(t, ts.URL+"/v1/render", string(body))
	var out struct {
		Document string `json:"document"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "# Paris\n## Budget\nTotal: $1,200\n## Tips\nPack light", out.Document)

	resp = post(t, ts.URL+"/v1/render", `{"document":"x","currency":"XYZ"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}

func TestWeather(t *testing.T) {
	ts := newTestServer(t, stubGen{})

	resp, err := http.Get(ts.URL + "/v1/weather")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/v1/weather?location=Oslo")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var w domain.Weather
	decodeBody(t, resp2, &w)
	assert.Equal(t, "Oslo", w.Location)
	assert.Equal(t, "current", w.Date)
}

func TestCreateItinerary(t *testing.T) {
	ts := newTestServer(t, stubGen{doc: doc})
	resp := post(t, ts.URL+"/v1/itineraries", `{"request":"I want to visit Paris for 5 days"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var p app.Plan
	decodeBody(t, resp, &p)
	assert.Equal(t, currency.EUR, p.Currency, "configured default currency")
	assert.Equal(t, p.ID, resp.Header.Get(server.HeaderPlanID))
	assert.Equal(t, "EUR", resp.Header.Get(server.HeaderPlanCurrency))
	assert.Equal(t, "# Paris\n## Budget\nTotal: $1,200 (€1,092.00)\n## Tips\nPack light", p.Display.String())
	require.NotNil(t, p.Weather)
	require.NotNil(t, p.Attractions)
	assert.Equal(t, "Louvre", p.Attractions.Items[0].Name)
}

func TestCreateItinerary_MarkdownDownload(t *testing.T) {
	ts := newTestServer(t, stubGen{doc: doc})
	resp := post(t, ts.URL+"/v1/itineraries?format=markdown", `{"request":"visit Paris","include_weather":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="travel_itinerary_20261016.md"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/markdown"))

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "# Paris\n## Budget\nTotal: $1,200\n## Tips\nPack light", sb.String())
}

func TestCreateItinerary_Errors(t *testing.T) {
	ts := newTestServer(t, stubGen{err: errors.New("API key not valid")})

	resp := post(t, ts.URL+"/v1/itineraries", `{"request":"visit Paris"}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var pr struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	decodeBody(t, resp, &pr)
	assert.Equal(t, http.StatusBadGateway, pr.Status)
	assert.True(t, strings.HasPrefix(pr.Detail, "An error occurred: "))
	assert.True(t, strings.HasSuffix(pr.Detail, "Please check your API keys and try again."))

	resp = post(t, ts.URL+"/v1/itineraries", `{"request":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/v1/itineraries", `{"prompt":"visit Paris"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

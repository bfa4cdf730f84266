package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_planner/internal/adapters/observability"
	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/itinerary"
)

type Handlers struct {
	P        *app.PlanService
	Table    *currency.Table
	Currency currency.Code // used when a request names none
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const maxBody = 1 << 20

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/currencies", h.listCurrencies)
	s.mux.Get("/v1/weather", h.getWeather)
	s.mux.Post("/v1/extract", h.extract)
	s.mux.Post("/v1/render", h.render)
	s.mux.Post("/v1/itineraries", h.createItinerary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// resolveCurrency maps an optional code to a table entry, falling back to the
// configured default.
func (h *Handlers) resolveCurrency(w http.ResponseWriter, raw string) (currency.Code, bool) {
	if strings.TrimSpace(raw) == "" {
		if h.Currency == "" {
			return currency.Base, true
		}
		return h.Currency, true
	}
	c, err := h.Table.ParseCode(raw)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Unknown currency", err.Error())
		return "", false
	}
	return c, true
}

type currencyView struct {
	Code             currency.Code `json:"code"`
	Symbol           string        `json:"symbol"`
	Rate             float64       `json:"rate"`
	FractionalDigits int           `json:"fractional_digits"`
	Label            string        `json:"label"`
}

func (h *Handlers) listCurrencies(w http.ResponseWriter, r *http.Request) {
	codes := h.Table.Codes()
	out := make([]currencyView, 0, len(codes))
	for _, c := range codes {
		e, _ := h.Table.Lookup(c)
		out = append(out, currencyView{Code: c, Symbol: e.Symbol, Rate: e.Rate, FractionalDigits: e.FractionalDigits, Label: h.Table.Label(c)})
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write currencies body")
	}
}

func (h *Handlers) getWeather(w http.ResponseWriter, r *http.Request) {
	loc := strings.TrimSpace(r.URL.Query().Get("location"))
	if loc == "" {
		writeProblem(w, http.StatusBadRequest, "Missing location", "location query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, h.P.Weather(r.Context(), loc, r.URL.Query().Get("date")))
}

type extractRequest struct {
	Request string `json:"request"`
}

func (h *Handlers) extract(w http.ResponseWriter, r *http.Request) {
	var in extractRequest
	if !decode(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, h.P.Extract(in.Request))
}

type renderRequest struct {
	Document      string `json:"document"`
	Currency      string `json:"currency"`
	IncludeBudget *bool  `json:"include_budget"`
}

type renderResponse struct {
	itinerary.Display
	Document string `json:"document"`
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request) {
	var in renderRequest
	if !decode(w, r, &in) {
		return
	}
	code, ok := h.resolveCurrency(w, in.Currency)
	if !ok {
		return
	}
	if in.IncludeBudget != nil && !*in.IncludeBudget {
		code = currency.Base
	}
	d := h.P.Render(in.Document, code)
	writeJSON(w, http.StatusOK, renderResponse{Display: d, Document: d.String()})
}

type itineraryRequest struct {
	Request            string `json:"request"`
	Currency           string `json:"currency"`
	IncludeWeather     *bool  `json:"include_weather"`
	IncludeAttractions *bool  `json:"include_attractions"`
	IncludeBudget      *bool  `json:"include_budget"`
}

// toggles default to on, as in the interactive form
func on(b *bool) bool { return b == nil || *b }

func (h *Handlers) createItinerary(w http.ResponseWriter, r *http.Request) {
	var in itineraryRequest
	if !decode(w, r, &in) {
		return
	}
	code, ok := h.resolveCurrency(w, in.Currency)
	if !ok {
		return
	}

	plan, err := h.P.Plan(r.Context(), app.PlanRequest{
		Request:            in.Request,
		Currency:           code,
		IncludeWeather:     on(in.IncludeWeather),
		IncludeAttractions: on(in.IncludeAttractions),
		IncludeBudget:      on(in.IncludeBudget),
	})
	observability.ObservePlan(string(code), err)
	w.Header().Set(HeaderPlanCurrency, string(code))

	var pe *app.PipelineError
	switch {
	case errors.Is(err, app.ErrEmptyRequest):
		writeProblem(w, http.StatusBadRequest, "Empty request", "Please enter your travel request.")
		return
	case errors.As(err, &pe):
		log.Error().Err(pe.Err).Msg("itinerary generation failed")
		writeProblem(w, http.StatusBadGateway, "Generation failed", pe.UserMessage())
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}

	w.Header().Set(HeaderPlanID, plan.ID)
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+plan.DownloadName+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(plan.Itinerary)); err != nil {
			log.Error().Err(err).Msg("failed to write itinerary download")
		}
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

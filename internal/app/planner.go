package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/interpreter"
	"travel_planner/internal/itinerary"
)

type PlanRequest struct {
	Request            string
	Currency           currency.Code
	IncludeWeather     bool
	IncludeAttractions bool
	IncludeBudget      bool
}

// Plan is everything the display layer shows for one request.
// Weather and Attractions are nil when not requested or when no destination
// was found.
type Plan struct {
	ID           string                 `json:"id"`
	Request      string                 `json:"request"`
	Facts        domain.ExtractedFacts  `json:"facts"`
	Currency     currency.Code          `json:"currency"`
	Weather      *domain.Weather        `json:"weather,omitempty"`
	Attractions  *domain.AttractionList `json:"attractions,omitempty"`
	Itinerary    string                 `json:"itinerary"`
	Display      itinerary.Display      `json:"display"`
	DownloadName string                 `json:"download_name"`
	CreatedAt    time.Time              `json:"created_at"`
}

type PlanService struct {
	interp      *interpreter.Interpreter
	weather     domain.WeatherService
	attractions domain.AttractionFinder
	gen         domain.GenerativeService
	renderer    *itinerary.Renderer
	now         func() time.Time
}

func NewPlanService(
	i *interpreter.Interpreter,
	w domain.WeatherService,
	a domain.AttractionFinder,
	g domain.GenerativeService,
	r *itinerary.Renderer,
) *PlanService {
	return &PlanService{interp: i, weather: w, attractions: a, gen: g, renderer: r, now: time.Now}
}

// WithClock overrides the clock used for download names and timestamps.
func (s *PlanService) WithClock(now func() time.Time) *PlanService {
	s.now = now
	return s
}

func (s *PlanService) Extract(req string) domain.ExtractedFacts {
	return s.interp.Extract(domain.TravelRequest(req))
}

func (s *PlanService) Render(doc string, code currency.Code) itinerary.Display {
	return s.renderer.Render(doc, code)
}

func (s *PlanService) Weather(ctx context.Context, location, date string) domain.Weather {
	return s.weather.Lookup(ctx, location, date)
}

// Plan runs one request through extraction, lookups, generation and
// rendering. Weather and attraction problems degrade into messages; only a
// generation failure is returned, as *PipelineError.
func (s *PlanService) Plan(ctx context.Context, in PlanRequest) (Plan, error) {
	if strings.TrimSpace(in.Request) == "" {
		return Plan{}, ErrEmptyRequest
	}
	facts := s.Extract(in.Request)
	dest := facts.PrimaryDestination()

	var (
		weather     domain.Weather
		attractions domain.AttractionList
	)
	// Lookups report problems in their results and never fail, so neither
	// can cancel the other; a plain Group only joins them.
	var g errgroup.Group
	g.Go(func() error {
		weather = s.weather.Lookup(ctx, dest, "")
		return nil
	})
	g.Go(func() error {
		attractions = s.attractions.Find(ctx, dest)
		return nil
	})
	_ = g.Wait()

	log.Info().
		Strs("destinations", facts.Destinations).
		Str("duration", facts.DurationText()).
		Int("dates", len(facts.Dates)).
		Bool("weather_available", weather.Available()).
		Int("attractions", len(attractions.Items)).
		Msg("generating itinerary")

	raw, err := s.gen.Generate(ctx, itineraryPrompt(in.Request, facts, weather, attractions))
	if err != nil {
		return Plan{}, &PipelineError{Err: err}
	}

	preferred := in.Currency
	if preferred == "" {
		preferred = currency.Base
	}
	target := preferred
	if !in.IncludeBudget {
		target = currency.Base
	}
	now := s.now()
	p := Plan{
		ID:           uuid.NewString(),
		Request:      in.Request,
		Facts:        facts,
		Currency:     preferred,
		Itinerary:    itinerary.StripEmphasis(raw),
		Display:      s.renderer.Render(raw, target),
		DownloadName: DownloadName(now),
		CreatedAt:    now,
	}
	if len(facts.Destinations) > 0 {
		if in.IncludeWeather {
			p.Weather = &weather
		}
		if in.IncludeAttractions {
			p.Attractions = &attractions
		}
	}
	return p, nil
}

// DownloadName names the downloadable copy after the given day.
func DownloadName(t time.Time) string {
	return "travel_itinerary_" + t.Format("20060102") + ".md"
}

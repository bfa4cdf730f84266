// Package interpreter derives travel facts from free-form request text using
// fixed textual patterns. Extraction is best-effort: a miss yields an empty
// value, never an error.
package interpreter

import (
	"travel_planner/internal/domain"
)

// Observer is told, per fact, whether extraction found anything.
type Observer func(fact string, found bool)

type Interpreter struct {
	observe Observer
}

func New(obs Observer) *Interpreter {
	if obs == nil {
		obs = func(string, bool) {}
	}
	return &Interpreter{observe: obs}
}

// Extract runs the three independent extractors over the same text.
func (i *Interpreter) Extract(req domain.TravelRequest) domain.ExtractedFacts {
	text := string(req)
	f := domain.ExtractedFacts{
		Destinations: ExtractDestinations(text),
		DurationDays: ExtractDuration(text),
		Dates:        ExtractDates(text),
	}
	i.observe("destinations", len(f.Destinations) > 0)
	i.observe("duration", f.DurationDays != nil)
	i.observe("dates", len(f.Dates) > 0)
	return f
}

package itinerary

import (
	"travel_planner/internal/currency"
)

// Display is a rendered itinerary split around its budget section.
// Without a budget section everything is in Before.
type Display struct {
	Before    string `json:"before"`
	Budget    string `json:"budget,omitempty"`
	After     string `json:"after,omitempty"`
	HasBudget bool   `json:"has_budget"`
}

func (d Display) String() string {
	return d.Before + d.Budget + d.After
}

type Renderer struct {
	annotator *Annotator
}

func NewRenderer(a *Annotator) *Renderer {
	return &Renderer{annotator: a}
}

// Render strips emphasis from doc, then annotates the budget section with
// conversions into target. Text outside the budget section is untouched.
func (r *Renderer) Render(doc string, target currency.Code) Display {
	clean := StripEmphasis(doc)
	span, ok := LocateBudgetSpan(clean)
	if !ok {
		return Display{Before: clean}
	}
	budget := span.Text
	if target != currency.Base {
		budget = r.annotator.Annotate(budget, target)
	}
	return Display{
		Before:    clean[:span.Start],
		Budget:    budget,
		After:     clean[span.End:],
		HasBudget: true,
	}
}

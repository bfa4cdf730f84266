package domain

type Attraction struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BestFor     string `json:"best_for"`
}

// AttractionList carries either attractions or, when the generative service
// failed outright, a display message. Fallback marks placeholder items.
type AttractionList struct {
	Items    []Attraction `json:"items,omitempty"`
	Message  string       `json:"message,omitempty"`
	Fallback bool         `json:"fallback,omitempty"`
}

func (l AttractionList) OK() bool { return l.Message == "" }

// PlaceholderAttractions is shown when the service answered with something
// that is not a usable attraction list.
func PlaceholderAttractions(location string) []Attraction {
	return []Attraction{
		{
			Name:        "Top Attraction 1 in " + location,
			Category:    "Popular Landmark",
			Description: "A must-visit destination known for its significance.",
			BestFor:     "History enthusiasts",
		},
		{
			Name:        "Top Attraction 2 in " + location,
			Category:    "Museum",
			Description: "Famous museum housing an impressive collection.",
			BestFor:     "Art and history lovers",
		},
	}
}

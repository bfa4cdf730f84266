package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"travel_planner/internal/domain"
)

func attractionsPrompt(location string) string {
	return fmt.Sprintf(`Generate a JSON array of 5 real, popular tourist attractions in %s.
For each attraction, include these fields:
- name: The full name of the attraction
- category: Type of attraction (museum, landmark, park, etc.)
- description: A brief description
- best_for: What type of travelers would enjoy this most

Format as a clean JSON array with only these fields.`, location)
}

func itineraryPrompt(req string, f domain.ExtractedFacts, w domain.Weather, a domain.AttractionList) string {
	dest := f.PrimaryDestination()

	var b strings.Builder
	b.WriteString("As an expert travel planner, create a detailed itinerary based on this request:\n\n")
	fmt.Fprintf(&b, "%q\n\n", req)
	b.WriteString("Extracted information:\n")
	fmt.Fprintf(&b, "- Destinations: %s\n", f.DestinationsText())
	fmt.Fprintf(&b, "- Duration: %s days\n", f.DurationText())
	fmt.Fprintf(&b, "- Dates: %s\n\n", f.DatesText())
	fmt.Fprintf(&b, "Weather information for %s:\n%s\n\n", dest, weatherJSON(w))
	fmt.Fprintf(&b, "Top attractions in %s:\n%s\n\n", dest, attractionsJSON(a))
	b.WriteString(`Create a comprehensive day-by-day itinerary in Markdown format with:
1. A title and brief introduction
2. Key information (dates, duration, destinations)
3. Day-by-day breakdown with:
   - Morning, afternoon, and evening activities
   - Specific attraction recommendations (use the provided attractions)
   - Meal suggestions
   - Accommodation recommendations
4. Budget estimate, with amounts in US dollars written as $1,234
5. Travel tips considering the weather and local conditions

Format the itinerary as a well-structured Markdown document.

IMPORTANT: Do not use asterisks (**) in the Markdown formatting. Instead, use other formatting options like headers (##) for emphasis.
`)
	return b.String()
}

// weatherJSON renders a record as indented JSON and a message as a JSON string.
func weatherJSON(w domain.Weather) string {
	if !w.Available() {
		return indentJSON(w.Message)
	}
	return indentJSON(w)
}

func attractionsJSON(a domain.AttractionList) string {
	if !a.OK() {
		return indentJSON(a.Message)
	}
	return indentJSON(a.Items)
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

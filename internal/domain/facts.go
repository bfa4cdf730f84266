package domain

import (
	"strconv"
	"strings"
)

// TravelRequest is the raw, human-written request text.
type TravelRequest string

const notSpecified = "Not specified"

type ExtractedFacts struct {
	Destinations []string `json:"destinations"`
	DurationDays *int     `json:"duration_days"`
	Dates        []string `json:"dates"`
}

// PrimaryDestination is the destination weather and attractions are looked up for.
func (f ExtractedFacts) PrimaryDestination() string {
	if len(f.Destinations) == 0 {
		return "Unknown"
	}
	return f.Destinations[0]
}

func (f ExtractedFacts) DestinationsText() string {
	if len(f.Destinations) == 0 {
		return notSpecified
	}
	return strings.Join(f.Destinations, ", ")
}

func (f ExtractedFacts) DurationText() string {
	if f.DurationDays == nil || *f.DurationDays == 0 {
		return notSpecified
	}
	return strconv.Itoa(*f.DurationDays)
}

func (f ExtractedFacts) DatesText() string {
	if len(f.Dates) == 0 {
		return notSpecified
	}
	return strings.Join(f.Dates, ", ")
}

package app

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"travel_planner/internal/domain"
)

const attractionSchemaJSON = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["name", "category", "description", "best_for"],
    "properties": {
      "name":        {"type": "string", "minLength": 1},
      "category":    {"type": "string"},
      "description": {"type": "string"},
      "best_for":    {"type": "string"}
    }
  }
}`

var attractionSchema = mustSchema(attractionSchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return sch
}

// model output is often wrapped in a ```json fence
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// AttractionService asks the generative service for attractions. It implements
// domain.AttractionFinder.
type AttractionService struct {
	gen domain.GenerativeService
}

func NewAttractionService(g domain.GenerativeService) *AttractionService {
	return &AttractionService{gen: g}
}

// Find never fails: a service error becomes Message, an unusable payload
// becomes the placeholder list.
func (s *AttractionService) Find(ctx context.Context, location string) domain.AttractionList {
	text, err := s.gen.Generate(ctx, attractionsPrompt(location))
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("attraction generation failed")
		return domain.AttractionList{Message: "Error generating attractions: " + err.Error()}
	}
	items, err := ParseAttractions(text)
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("attraction payload unusable, using placeholders")
		return domain.AttractionList{Items: domain.PlaceholderAttractions(location), Fallback: true}
	}
	return domain.AttractionList{Items: items}
}

// ParseAttractions extracts and validates the JSON attraction array from
// model output.
func ParseAttractions(text string) ([]domain.Attraction, error) {
	payload := strings.TrimSpace(text)
	if m := fencedBlock.FindStringSubmatch(payload); m != nil {
		payload = strings.TrimSpace(m[1])
	}

	res, err := attractionSchema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, err
	}
	if !res.Valid() {
		return nil, &SchemaError{Errors: res.Errors()}
	}

	var out []domain.Attraction
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type SchemaError struct {
	Errors []gojsonschema.ResultError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, re := range e.Errors {
		msgs = append(msgs, re.String())
	}
	return "attraction payload invalid: " + strings.Join(msgs, "; ")
}

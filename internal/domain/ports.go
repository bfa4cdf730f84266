package domain

import "context"

// GenerativeService drafts free text (itineraries, attraction JSON) from a prompt.
type GenerativeService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// WeatherService never fails: unavailability is reported through Weather.Message.
type WeatherService interface {
	Lookup(ctx context.Context, location, date string) Weather
}

type AttractionFinder interface {
	Find(ctx context.Context, location string) AttractionList
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

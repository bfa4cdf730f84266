package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travel_planner/internal/adapters/gemini"
	"travel_planner/internal/adapters/observability"
	"travel_planner/internal/adapters/openweather"
	redisad "travel_planner/internal/adapters/redis"
	"travel_planner/internal/adapters/remote"
	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/interpreter"
	"travel_planner/internal/itinerary"
)

// newPlanService wires the pipeline from cfg. The returned cleanup closes the
// cache connection.
func newPlanService(ctx context.Context, table *currency.Table) (*app.PlanService, func(), error) {
	gen, err := gemini.New(cfg.GeminiBase, cfg.GoogleKey, cfg.GeminiModel, remote.New("gemini", cfg.OutboundRPS, 60*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("generative service: %w", err)
	}
	var (
		weather     domain.WeatherService  = openweather.New(cfg.WeatherBase, cfg.WeatherKey, remote.New("openweather", cfg.OutboundRPS, 10*time.Second))
		attractions domain.AttractionFinder = app.NewAttractionService(gen)
		cleanup                             = func() {}
	)

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := cache.Ping(pctx); err != nil {
		log.Debug().Err(err).Msg("redis unreachable, running without cache")
		_ = cache.Close()
	} else {
		weather = app.NewCachedWeather(weather, cache, cfg.CacheTTL)
		attractions = app.NewCachedAttractions(attractions, cache, cfg.CacheTTL)
		cleanup = func() { _ = cache.Close() }
	}

	renderer := itinerary.NewRenderer(itinerary.NewAnnotator(table))
	svc := app.NewPlanService(interpreter.New(observability.ObserveExtraction), weather, attractions, gen, renderer)
	return svc, cleanup, nil
}


package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"travel_planner/internal/adapters/gemini"
	server "travel_planner/internal/adapters/http_server"
	"travel_planner/internal/adapters/observability"
	"travel_planner/internal/adapters/openweather"
	redisad "travel_planner/internal/adapters/redis"
	"travel_planner/internal/adapters/remote"
	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/interpreter"
	"travel_planner/internal/itinerary"
	"travel_planner/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	table := currency.Default()
	def, err := table.ParseCode(cfg.DefaultCurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("DEFAULT_CURRENCY")
	}

	// outbound
	gen, err := gemini.New(cfg.GeminiBase, cfg.GoogleKey, cfg.GeminiModel, remote.New("gemini", cfg.OutboundRPS, 60*time.Second))
	if err != nil {
		log.Fatal().Err(err).Msg("generative service unavailable")
	}
	var (
		weather     domain.WeatherService  = openweather.New(cfg.WeatherBase, cfg.WeatherKey, remote.New("openweather", cfg.OutboundRPS, 10*time.Second))
		attractions domain.AttractionFinder = app.NewAttractionService(gen)
	)

	// cache
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, lookups are not cached")
	} else {
		log.Info().Msg("redis connection ok")
		weather = app.NewCachedWeather(weather, cache, cfg.CacheTTL)
		attractions = app.NewCachedAttractions(attractions, cache, cfg.CacheTTL)
	}
	cancel()

	renderer := itinerary.NewRenderer(itinerary.NewAnnotator(table))
	svc := app.NewPlanService(interpreter.New(observability.ObserveExtraction), weather, attractions, gen, renderer)

	// http
	srv := server.New(server.DefaultTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: svc, Table: table, Currency: def})

	log.Info().Str("addr", cfg.HTTPAddr).Str("currency", string(def)).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

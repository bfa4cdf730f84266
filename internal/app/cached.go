package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"travel_planner/internal/domain"
)

// CachedWeather is a read-through cache in front of a WeatherService.
// Unavailability messages are never cached.
type CachedWeather struct {
	next  domain.WeatherService
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedWeather(next domain.WeatherService, c domain.Cache, ttl time.Duration) *CachedWeather {
	return &CachedWeather{next: next, cache: c, ttl: ttl}
}

func (c *CachedWeather) Lookup(ctx context.Context, location, date string) domain.Weather {
	if date == "" {
		date = domain.CurrentDate
	}
	key := fmt.Sprintf("weather:%s:%s", normKey(location), normKey(date))

	var w domain.Weather
	if ok, err := c.cache.Get(ctx, key, &w); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if ok {
		return w
	}

	// detached: the result is shared by every waiter on key
	sctx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(key, func() (any, error) {
		w := c.next.Lookup(sctx, location, date)
		if w.Available() {
			if err := c.cache.Set(sctx, key, w, int(c.ttl.Seconds())); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
		return w, nil
	})
	return v.(domain.Weather)
}

// CachedAttractions caches real attraction lists; placeholders and error
// messages are recomputed on the next request.
type CachedAttractions struct {
	next  domain.AttractionFinder
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedAttractions(next domain.AttractionFinder, c domain.Cache, ttl time.Duration) *CachedAttractions {
	return &CachedAttractions{next: next, cache: c, ttl: ttl}
}

func (c *CachedAttractions) Find(ctx context.Context, location string) domain.AttractionList {
	key := "attractions:" + normKey(location)

	var l domain.AttractionList
	if ok, err := c.cache.Get(ctx, key, &l); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if ok {
		return l
	}

	sctx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(key, func() (any, error) {
		l := c.next.Find(sctx, location)
		if l.OK() && !l.Fallback {
			if err := c.cache.Set(sctx, key, l, int(c.ttl.Seconds())); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
		return l, nil
	})
	return v.(domain.AttractionList)
}

func normKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_planner/internal/adapters/remote"
	"travel_planner/internal/domain"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	forecastLimit  = 5
)

// Client implements domain.WeatherService. It never returns an error; every
// failure becomes a display message on the returned Weather.
type Client struct {
	rc   *remote.Client
	base string
	key  string
}

// New accepts an empty key; lookups then report the missing key.
func New(base, key string, rc *remote.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{rc: rc, base: strings.TrimRight(base, "/"), key: key}
}

type reading struct {
	Main struct {
		// kept as the literal number so "21.5°C" reads as the API sent it
		Temp json.Number `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (r reading) conditions() string {
	if len(r.Weather) == 0 {
		return ""
	}
	return r.Weather[0].Description
}

func (r reading) temperature() string { return r.Main.Temp.String() + "°C" }

type currentResponse struct {
	reading
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type forecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []struct {
		reading
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
}

// Lookup returns current weather when date is empty or "current", otherwise
// the first few forecast entries.
func (c *Client) Lookup(ctx context.Context, location, date string) domain.Weather {
	if c.key == "" {
		return domain.WeatherMessage("Weather data unavailable - missing API key")
	}
	if date == "" || strings.EqualFold(date, domain.CurrentDate) {
		return c.current(ctx, location)
	}
	return c.forecast(ctx, location)
}

func (c *Client) current(ctx context.Context, location string) domain.Weather {
	var out currentResponse
	if err := c.rc.Do(ctx, remote.Request{Endpoint: "weather", URL: c.endpoint("weather", location)}, &out); err != nil {
		return c.failure(err, location, "Weather data unavailable for %s")
	}
	return domain.Weather{
		Location:    fmt.Sprintf("%s, %s", out.Name, out.Sys.Country),
		Date:        domain.CurrentDate,
		Temperature: out.temperature(),
		Conditions:  out.conditions(),
	}
}

func (c *Client) forecast(ctx context.Context, location string) domain.Weather {
	var out forecastResponse
	if err := c.rc.Do(ctx, remote.Request{Endpoint: "forecast", URL: c.endpoint("forecast", location)}, &out); err != nil {
		return c.failure(err, location, "Weather forecast unavailable for %s")
	}
	w := domain.Weather{Location: fmt.Sprintf("%s, %s", out.City.Name, out.City.Country)}
	for i, item := range out.List {
		if i == forecastLimit {
			break
		}
		w.Forecasts = append(w.Forecasts, domain.Forecast{
			Date:        item.DtTxt,
			Temperature: item.temperature(),
			Conditions:  item.conditions(),
		})
	}
	if len(w.Forecasts) == 0 {
		return domain.WeatherMessage(fmt.Sprintf("Weather forecast unavailable for %s", location))
	}
	return w
}

func (c *Client) failure(err error, location, unavailable string) domain.Weather {
	log.Warn().Err(err).Str("location", location).Msg("weather lookup failed")
	if remote.IsStatus(err) {
		return domain.WeatherMessage(fmt.Sprintf(unavailable, location))
	}
	return domain.WeatherMessage("Error fetching weather data: " + err.Error())
}

func (c *Client) endpoint(path, location string) string {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.key)
	q.Set("units", "metric")
	return c.base + "/" + path + "?" + q.Encode()
}

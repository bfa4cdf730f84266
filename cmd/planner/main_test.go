package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/itinerary"
)

func TestInteractive_LoopsUntilQuit(t *testing.T) {
	in := strings.NewReader("visit Paris\n\n  \nvisit Rome\nQUIT\nvisit Oslo\n")
	var out bytes.Buffer
	var got []string

	err := interactive(context.Background(), in, &out, func(_ context.Context, req string) error {
		got = append(got, req)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"visit Paris", "visit Rome"}, got)
	assert.Contains(t, out.String(), "Please enter your travel request.")
	assert.Contains(t, out.String(), "Safe travels!")
}

func TestInteractive_EOF(t *testing.T) {
	var n int
	err := interactive(context.Background(), strings.NewReader("visit Paris"), &bytes.Buffer{}, func(context.Context, string) error {
		n++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPickCurrency(t *testing.T) {
	table := currency.Default()
	cfg.DefaultCurrency = "GBP"
	t.Cleanup(func() { cfg.DefaultCurrency = "" })

	c, err := pickCurrency(table, "")
	require.NoError(t, err)
	assert.Equal(t, currency.GBP, c)

	c, err = pickCurrency(table, "inr")
	require.NoError(t, err)
	assert.Equal(t, currency.INR, c)

	_, err = pickCurrency(table, "BTC")
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
}

func TestWeatherText(t *testing.T) {
	assert.Equal(t, "Paris, FR: 18°C, light rain",
		weatherText(domain.Weather{Location: "Paris, FR", Date: "current", Temperature: "18°C", Conditions: "light rain"}))

	fc := weatherText(domain.Weather{Location: "Oslo, NO", Date: "2026-10-20", Forecasts: []domain.Forecast{
		{Date: "2026-10-20 12:00:00", Temperature: "4°C", Conditions: "snow"},
	}})
	assert.Contains(t, fc, "Forecast for Oslo, NO:")
	assert.Contains(t, fc, "2026-10-20 12:00:00  4°C, snow")

	assert.Contains(t, weatherText(domain.WeatherMessage("Weather data unavailable for Atlantis")), "Weather data unavailable for Atlantis")
}

func TestAttractionsText(t *testing.T) {
	txt := attractionsText(domain.AttractionList{Items: domain.PlaceholderAttractions("Rome")})
	assert.Contains(t, txt, "1. Top Attraction 1 in Rome (Popular Landmark)")
	assert.Contains(t, txt, "2. Top Attraction 2 in Rome (Museum)")

	assert.Contains(t, attractionsText(domain.AttractionList{Message: "Error generating attractions: boom"}), "boom")
}

func TestPrintPlan(t *testing.T) {
	table := currency.Default()
	days := 5
	r := itinerary.NewRenderer(itinerary.NewAnnotator(table))
	p := app.Plan{
		Facts:    domain.ExtractedFacts{Destinations: []string{"Paris"}, DurationDays: &days, Dates: []string{}},
		Currency: currency.EUR,
		Display:  r.Render("## Budget\nTotal: $100", currency.EUR),
	}
	var out bytes.Buffer
	printPlan(&out, table, p)

	s := out.String()
	assert.Contains(t, s, "Paris")
	assert.Contains(t, s, "5 days")
	assert.Contains(t, s, "EUR (€)")
	assert.Contains(t, s, "Total: $100 (€91.00)")
	assert.NotContains(t, s, "Weather")
}

func TestWriteDownload(t *testing.T) {
	dir := t.TempDir()
	p := app.Plan{Itinerary: "# Paris", DownloadName: "travel_itinerary_20261016.md"}

	path, err := writeDownload(dir, p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "travel_itinerary_20261016.md"), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Paris", string(b))

	named := filepath.Join(dir, "mine.md")
	path, err = writeDownload(named, p)
	require.NoError(t, err)
	assert.Equal(t, named, path)
}

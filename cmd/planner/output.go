package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
)

const banner = `AI Travel Planner
Describe your trip in plain words, e.g. "I want to visit Paris for 5 days in June".
Requires GOOGLE_API_KEY; OPENWEATHERMAP_API_KEY enables live weather.
Type "exit" to quit.`

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("63"))
)

func printFacts(w io.Writer, f domain.ExtractedFacts) {
	fmt.Fprintln(w, boxStyle.Render(factLines(f)))
}

func factLines(f domain.ExtractedFacts) string {
	return strings.Join([]string{
		headerStyle.Render("Destinations: ") + f.DestinationsText(),
		headerStyle.Render("Duration:     ") + durationLabel(f),
		headerStyle.Render("Dates:        ") + f.DatesText(),
	}, "\n")
}

func durationLabel(f domain.ExtractedFacts) string {
	if f.DurationDays == nil {
		return f.DurationText()
	}
	return f.DurationText() + " days"
}

func printPlan(w io.Writer, table *currency.Table, p app.Plan) {
	summary := factLines(p.Facts) + "\n" + headerStyle.Render("Currency:     ") + table.Label(p.Currency)
	fmt.Fprintln(w, boxStyle.Render(summary))

	if p.Weather != nil {
		fmt.Fprintln(w, headerStyle.Render("Weather"))
		fmt.Fprintln(w, weatherText(*p.Weather))
		fmt.Fprintln(w)
	}
	if p.Attractions != nil {
		fmt.Fprintln(w, headerStyle.Render("Top attractions"))
		fmt.Fprintln(w, attractionsText(*p.Attractions))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, p.Display.String())
}

func weatherText(wx domain.Weather) string {
	switch {
	case !wx.Available():
		return mutedStyle.Render(wx.Message)
	case wx.IsForecast():
		var b strings.Builder
		fmt.Fprintf(&b, "Forecast for %s:", wx.Location)
		for _, f := range wx.Forecasts {
			fmt.Fprintf(&b, "\n  %s  %s, %s", f.Date, f.Temperature, f.Conditions)
		}
		return b.String()
	default:
		return fmt.Sprintf("%s: %s, %s", wx.Location, wx.Temperature, wx.Conditions)
	}
}

func attractionsText(l domain.AttractionList) string {
	if !l.OK() {
		return mutedStyle.Render(l.Message)
	}
	lines := make([]string, 0, len(l.Items))
	for i, a := range l.Items {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) - %s Best for: %s", i+1, a.Name, a.Category, a.Description, a.BestFor))
	}
	return strings.Join(lines, "\n")
}

func printCurrencies(w io.Writer, table *currency.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\t%s\n", headerStyle.Render("CODE"), headerStyle.Render("SYMBOL"), headerStyle.Render("PER USD"))
	for _, c := range table.Codes() {
		e, _ := table.Lookup(c)
		fmt.Fprintf(tw, "%s\t%s\t%g\n", c, e.Symbol, e.Rate)
	}
}

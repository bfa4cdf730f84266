package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"travel_planner/internal/adapters/observability"
	"travel_planner/internal/app"
	"travel_planner/internal/currency"
	"travel_planner/internal/domain"
	"travel_planner/internal/interpreter"
)

type planFlags struct {
	currency      string
	noWeather     bool
	noAttractions bool
	noBudget      bool
	out           string
}

func planCmd() *cobra.Command {
	var f planFlags
	cmd := &cobra.Command{
		Use:   "plan [request]",
		Short: "Generate an itinerary for a travel request",
		Long: `Generate a day-by-day itinerary for a free-text travel request.

Without arguments planner reads requests interactively until "exit".`,
		Example: `  planner plan "I want to visit Paris for 5 days in June" --currency EUR
  planner plan --out .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := currency.Default()
			code, err := pickCurrency(table, f.currency)
			if err != nil {
				return err
			}

			svc, cleanup, err := newPlanService(cmd.Context(), table)
			if err != nil {
				return err
			}
			defer cleanup()

			run := func(ctx context.Context, request string) error {
				return runPlan(ctx, cmd.OutOrStdout(), svc, table, request, code, f)
			}
			if len(args) > 0 {
				return run(cmd.Context(), strings.Join(args, " "))
			}
			return interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), run)
		},
	}

	cmd.Flags().StringVar(&f.currency, "currency", "", "preferred currency for budget conversions (default $DEFAULT_CURRENCY)")
	cmd.Flags().BoolVar(&f.noWeather, "no-weather", false, "hide weather information")
	cmd.Flags().BoolVar(&f.noAttractions, "no-attractions", false, "hide attraction suggestions")
	cmd.Flags().BoolVar(&f.noBudget, "no-budget", false, "skip budget currency conversion")
	cmd.Flags().StringVar(&f.out, "out", "", "write the itinerary to this file or directory")
	cmd.Flags().Lookup("out").NoOptDefVal = "."

	return cmd
}

func pickCurrency(table *currency.Table, flag string) (currency.Code, error) {
	if flag == "" {
		flag = cfg.DefaultCurrency
	}
	if flag == "" {
		return currency.Base, nil
	}
	return table.ParseCode(flag)
}

func runPlan(ctx context.Context, w io.Writer, svc *app.PlanService, table *currency.Table, request string, code currency.Code, f planFlags) error {
	p, err := svc.Plan(ctx, app.PlanRequest{
		Request:            request,
		Currency:           code,
		IncludeWeather:     !f.noWeather,
		IncludeAttractions: !f.noAttractions,
		IncludeBudget:      !f.noBudget,
	})
	observability.ObservePlan(string(code), err)

	var pe *app.PipelineError
	if errors.As(err, &pe) {
		fmt.Fprintln(w, errorStyle.Render(pe.UserMessage()))
		return nil
	}
	if err != nil {
		return err
	}

	printPlan(w, table, p)
	if f.out != "" {
		path, err := writeDownload(f.out, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, mutedStyle.Render("Saved "+path))
	}
	return nil
}

// writeDownload writes the itinerary to out, or into out under the dated
// name when out is a directory.
func writeDownload(out string, p app.Plan) (string, error) {
	path := out
	if st, err := os.Stat(out); err == nil && st.IsDir() {
		path = filepath.Join(out, p.DownloadName)
	}
	if err := os.WriteFile(path, []byte(p.Itinerary), 0o644); err != nil {
		return "", fmt.Errorf("write itinerary: %w", err)
	}
	return path, nil
}

var quitWords = map[string]struct{}{"exit": {}, "quit": {}, "q": {}}

func interactive(ctx context.Context, in io.Reader, w io.Writer, run func(context.Context, string) error) error {
	fmt.Fprintln(w, bannerStyle.Render(banner))
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(w, promptStyle.Render("Where would you like to go? "))
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if _, ok := quitWords[strings.ToLower(line)]; ok {
			fmt.Fprintln(w, "Safe travels!")
			return nil
		}
		if line == "" {
			fmt.Fprintln(w, mutedStyle.Render("Please enter your travel request."))
			continue
		}
		if err := run(ctx, line); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [request]",
		Short: "Show the destinations, duration and dates found in a request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facts := interpreter.New(observability.ObserveExtraction).Extract(domain.TravelRequest(strings.Join(args, " ")))
			printFacts(cmd.OutOrStdout(), facts)
			return nil
		},
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List supported currencies and their rates against USD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printCurrencies(cmd.OutOrStdout(), currency.Default())
			return nil
		},
	}
}

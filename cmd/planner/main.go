package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"travel_planner/internal/adapters/observability"
	"travel_planner/internal/shared"
)

var (
	cfg     shared.Config
	rootCmd = &cobra.Command{
		Use:   "planner",
		Short: "AI travel itinerary planner",
		Long: `planner turns a free-text travel request into a day-by-day itinerary,
enriched with current weather, popular attractions and a budget shown in
your preferred currency.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(currenciesCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads configuration and sends logs to stderr so stdout carries
// only planner output.
func initConfig(cmd *cobra.Command, _ []string) error {
	log.Logger = observability.NewLoggerTo(os.Stderr, "dev")
	cfg = shared.Load()
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)
	return nil
}

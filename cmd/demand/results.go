package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/forecast"
)

func resultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Fetch prediction results",
		Long: `Fetch the forecast results of a completed prediction job.

Shows safety stock, reorder point, and replenishment suggestions per
dataset and supplier, plus the forecast series length.`,
		RunE: runResults,
	}

	// Flags
	cmd.Flags().StringP("job", "j", "", "Prediction job id (required)")

	// Bind to viper
	_ = viper.BindPFlag("results.job", cmd.Flags().Lookup("job"))

	return cmd
}

func runResults(cmd *cobra.Command, _ []string) error {
	jobID := viper.GetString("results.job")
	if jobID == "" {
		return fmt.Errorf("--job is required")
	}

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	results, err := client.GetResults(cmd.Context(), cfg.TenantID, jobID)
	if err != nil {
		slog.Error(cli.FormatError("Failed to fetch results"))
		return err
	}

	displayResults(jobID, results)
	return nil
}

// displayResults renders one box per forecast result.
func displayResults(jobID string, results *forecast.Results) {
	slog.Info(cli.FormatSuccess(results.Message), "job_id", jobID, "results", len(results.Results))

	for _, r := range results.Results {
		var b strings.Builder
		fmt.Fprintf(&b, "Supplier: %s\n", r.SupplierID)
		fmt.Fprintf(&b, "Safety stock: %.1f (valid %s to %s)\n",
			r.SafetyStockSuggestion.Quantity,
			r.SafetyStockSuggestion.ValidDateInterval.StartDate,
			r.SafetyStockSuggestion.ValidDateInterval.EndDate)
		fmt.Fprintf(&b, "Reorder point: %.1f\n", r.ReorderPointSuggestion.Quantity)
		fmt.Fprintf(&b, "Replenishment: %.1f\n", r.ReplenishmentSuggestion.Quantity)
		fmt.Fprintf(&b, "Forecast periods: %d, historical points: %d",
			len(r.Forecast), len(r.HistoricalData))

		slog.Info("\n" + cli.RenderBox(fmt.Sprintf("%s %s", cli.ChartIcon, r.DatasetID), b.String()))
	}
}

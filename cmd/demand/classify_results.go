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

func classifyResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify-results",
		Short: "Fetch inventory classification results",
		RunE:  runClassifyResults,
	}

	// Flags
	cmd.Flags().StringP("job", "j", "", "Classification job id (required)")

	// Bind to viper
	_ = viper.BindPFlag("classify_results.job", cmd.Flags().Lookup("job"))

	return cmd
}

func runClassifyResults(cmd *cobra.Command, _ []string) error {
	jobID := viper.GetString("classify_results.job")
	if jobID == "" {
		return fmt.Errorf("--job is required")
	}

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	results, err := client.GetClassificationResults(cmd.Context(), cfg.TenantID, jobID)
	if err != nil {
		slog.Error(cli.FormatError("Failed to fetch classification results"))
		return err
	}

	displayClassificationResults(jobID, results)
	return nil
}

// displayClassificationResults renders one line per classified dataset.
func displayClassificationResults(jobID string, results *forecast.ClassificationResults) {
	slog.Info(cli.FormatSuccess(results.Message), "job_id", jobID, "results", len(results.Results))

	var b strings.Builder
	for _, r := range results.Results {
		seasonal := "non-seasonal"
		if r.IsSeasonal {
			seasonal = "seasonal: " + strings.Join(r.Seasonalities, ", ")
		}
		fmt.Fprintf(&b, "%-20s  ABC %-2s  %-12s  %-10s  %s\n",
			r.DatasetID, r.ABCCategory, r.DemandType, r.Trend, seasonal)
	}

	slog.Info("\n" + cli.RenderBox(fmt.Sprintf("%s Inventory classification", cli.CrateIcon),
		strings.TrimRight(b.String(), "\n")))
}

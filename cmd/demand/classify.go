package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/model"
)

// defaultABCDriver ranks datasets by revenue when no driver is given.
const defaultABCDriver = "revenue"

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify inventory datasets",
		Long: `Start an inventory classification job and wait for it to finish.

Classification assigns each dataset an ABC category, demand type, trend,
and seasonality. The returned job id retrieves the results with
'demand classify-results'.`,
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("datasets", "d", "", "Comma-separated dataset ids (required)")
	cmd.Flags().String("driver", defaultABCDriver, "ABC analysis driver (revenue, profit, quantity)")

	// Bind to viper
	_ = viper.BindPFlag("classify.datasets", cmd.Flags().Lookup("datasets"))
	_ = viper.BindPFlag("classify.driver", cmd.Flags().Lookup("driver"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	datasetIDs, err := splitDatasetIDs(viper.GetString("classify.datasets"))
	if err != nil {
		return err
	}
	driver := viper.GetString("classify.driver")

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Classifying inventory..."))

	request := &model.ClassificationRequest{DatasetIDs: datasetIDs, ABCDriver: driver}
	result, err := client.StartClassification(cmd.Context(), cfg.TenantID, request)
	if err != nil {
		slog.Error(cli.FormatError("Classification failed"))
		return err
	}

	slog.Info(cli.FormatSuccess("Classification complete"),
		"job_id", result.JobID,
		"message", result.Message)
	return nil
}

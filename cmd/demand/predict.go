package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/generate"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Create predictions from trained models",
		Long: `Start a prediction job for the given datasets and wait for it to finish.

Predictions use default inventory and service levels with a single supplier;
the returned job id retrieves the results with 'demand results'.`,
		RunE: runPredict,
	}

	// Flags
	cmd.Flags().StringP("datasets", "d", "", "Comma-separated dataset ids (required)")

	// Bind to viper
	_ = viper.BindPFlag("predict.datasets", cmd.Flags().Lookup("datasets"))

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	datasetIDs, err := splitDatasetIDs(viper.GetString("predict.datasets"))
	if err != nil {
		return err
	}

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Creating predictions..."))

	result, err := client.CreatePrediction(cmd.Context(), cfg.TenantID, generate.PredictionRequest(datasetIDs))
	if err != nil {
		slog.Error(cli.FormatError("Prediction failed"))
		return err
	}

	slog.Info(cli.FormatSuccess("Prediction complete"),
		"job_id", result.JobID,
		"message", result.Message)
	return nil
}

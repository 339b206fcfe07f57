package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/generate"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train forecasting models on uploaded datasets",
		Long: `Start a training job for the given datasets and wait for it to finish.

All datasets share the same frequency and horizon; run the command again
for datasets that need different settings.`,
		RunE: runTrain,
	}

	// Flags
	cmd.Flags().StringP("datasets", "d", "", "Comma-separated dataset ids (required)")
	cmd.Flags().String("frequency", "M", "Forecast frequency (D, W, M)")
	cmd.Flags().Int("horizon", 4, "Number of periods to forecast")

	// Bind to viper
	_ = viper.BindPFlag("train.datasets", cmd.Flags().Lookup("datasets"))
	_ = viper.BindPFlag("train.frequency", cmd.Flags().Lookup("frequency"))
	_ = viper.BindPFlag("train.horizon", cmd.Flags().Lookup("horizon"))

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	datasetIDs, err := splitDatasetIDs(viper.GetString("train.datasets"))
	if err != nil {
		return err
	}
	frequency := viper.GetString("train.frequency")
	horizon := viper.GetInt("train.horizon")

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Training forecasting models..."))

	params := generate.TrainingParameters(datasetIDs, frequency, horizon)
	result, err := client.StartTraining(cmd.Context(), cfg.TenantID, params)
	if err != nil {
		slog.Error(cli.FormatError("Training failed"))
		return err
	}

	slog.Info(cli.FormatSuccess("Training complete"),
		"job_id", result.JobID,
		"message", result.Message)
	return nil
}

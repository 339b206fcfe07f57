package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/generate"
)

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Run the full forecasting flow end to end",
		Long: `Run the full forecasting flow: generate dummy datasets, upload them,
train models, create predictions, fetch the results, and delete the data
again.

Useful for verifying connectivity and credentials against a fresh tenant.`,
		RunE: runFullFlow,
	}

	// Flags
	cmd.Flags().Int("datasets", 1, "Number of dummy datasets to generate")
	cmd.Flags().String("frequency", "M", "Forecast frequency (D, W, M)")
	cmd.Flags().Int("horizon", 4, "Number of periods to forecast")
	cmd.Flags().Bool("keep-data", false, "Skip dataset deletion at the end")

	// Bind to viper
	_ = viper.BindPFlag("flow.datasets", cmd.Flags().Lookup("datasets"))
	_ = viper.BindPFlag("flow.frequency", cmd.Flags().Lookup("frequency"))
	_ = viper.BindPFlag("flow.horizon", cmd.Flags().Lookup("horizon"))
	_ = viper.BindPFlag("flow.keep_data", cmd.Flags().Lookup("keep-data"))

	return cmd
}

func runFullFlow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	count := viper.GetInt("flow.datasets")
	frequency := viper.GetString("flow.frequency")
	horizon := viper.GetInt("flow.horizon")
	keepData := viper.GetBool("flow.keep_data")

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Running the full forecasting flow..."))

	datasetIDs, err := client.UploadData(ctx, cfg.TenantID, generate.UploadPayload(count))
	if err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess("Datasets uploaded"), "count", len(datasetIDs))

	if !keepData {
		defer func() {
			for _, id := range datasetIDs {
				if _, err := client.DeleteData(ctx, cfg.TenantID, id, "", ""); err != nil {
					slog.Warn(cli.FormatWarning("Failed to clean up dataset"),
						"dataset_id", id, "error", err)
				}
			}
		}()
	}

	params := generate.TrainingParameters(datasetIDs, frequency, horizon)
	if _, err := client.StartTraining(ctx, cfg.TenantID, params); err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess("Training complete"))

	prediction, err := client.CreatePrediction(ctx, cfg.TenantID, generate.PredictionRequest(datasetIDs))
	if err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess("Prediction complete"), "job_id", prediction.JobID)

	results, err := client.GetResults(ctx, cfg.TenantID, prediction.JobID)
	if err != nil {
		return err
	}

	displayResults(prediction.JobID, results)
	return nil
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/generate"
	"github.com/Veraticus/demand-flow/internal/model"
)

func classifyFlowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify-flow",
		Short: "Run the full classification flow end to end",
		Long: `Run the full classification flow: generate dummy datasets, upload them,
classify the inventory, fetch the results, and delete the data again.`,
		RunE: runClassifyFlow,
	}

	// Flags
	cmd.Flags().Int("datasets", 1, "Number of dummy datasets to generate")
	cmd.Flags().String("driver", defaultABCDriver, "ABC analysis driver (revenue, profit, quantity)")
	cmd.Flags().Bool("keep-data", false, "Skip dataset deletion at the end")

	// Bind to viper
	_ = viper.BindPFlag("classify_flow.datasets", cmd.Flags().Lookup("datasets"))
	_ = viper.BindPFlag("classify_flow.driver", cmd.Flags().Lookup("driver"))
	_ = viper.BindPFlag("classify_flow.keep_data", cmd.Flags().Lookup("keep-data"))

	return cmd
}

func runClassifyFlow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	count := viper.GetInt("classify_flow.datasets")
	driver := viper.GetString("classify_flow.driver")
	keepData := viper.GetBool("classify_flow.keep_data")

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Running the full classification flow..."))

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

	request := &model.ClassificationRequest{DatasetIDs: datasetIDs, ABCDriver: driver}
	classification, err := client.StartClassification(ctx, cfg.TenantID, request)
	if err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess("Classification complete"), "job_id", classification.JobID)

	results, err := client.GetClassificationResults(ctx, cfg.TenantID, classification.JobID)
	if err != nil {
		return err
	}

	displayClassificationResults(classification.JobID, results)
	return nil
}

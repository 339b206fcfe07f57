package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/scenario"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run batch scenarios from a CSV file",
		Long: `Run a batch of forecasting scenarios defined in a CSV file.

Each row describes one dataset to generate, upload, train, and predict.
Scenarios run concurrently on a worker pool, each under its own tenant
scope, and clean up their datasets when done.`,
		RunE: runBatch,
	}

	// Flags
	cmd.Flags().StringP("scenarios", "s", "", "Scenario CSV file (required)")
	cmd.Flags().IntP("workers", "w", 0, "Worker pool size (default from config)")
	cmd.Flags().Bool("keep-data", false, "Skip dataset cleanup after each scenario")

	// Bind to viper
	_ = viper.BindPFlag("batch.scenarios", cmd.Flags().Lookup("scenarios"))
	_ = viper.BindPFlag("batch.keep_data", cmd.Flags().Lookup("keep-data"))

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	file := viper.GetString("batch.scenarios")
	if file == "" {
		return fmt.Errorf("--scenarios is required")
	}

	scenarios, err := scenario.Load(file)
	if err != nil {
		return err
	}

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if flagWorkers, _ := cmd.Flags().GetInt("workers"); flagWorkers > 0 {
		workers = flagWorkers
	}

	slog.Info(cli.FormatTitle(fmt.Sprintf("Running %d scenario(s)...", len(scenarios))))

	var opts []scenario.RunnerOption
	if viper.GetBool("batch.keep_data") {
		opts = append(opts, scenario.WithKeepData())
	}

	runner := scenario.NewRunner(client, cfg.TenantID, workers, opts...)
	results := runner.Run(cmd.Context(), scenarios)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Scenario %s finished", result.Scenario.DatasetID)),
			"tenant_id", result.TenantID,
			"duration", result.Duration.Round(time.Millisecond),
			"results", len(result.Results.Results))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenario(s) failed", failed, len(results))
	}

	slog.Info(cli.FormatSuccess("All scenarios finished"))
	return nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <dataset-id>",
		Short: "Delete a dataset's transaction data",
		Long: `Delete a dataset's transaction data, optionally restricted to a date
range. Without --from and --to the whole dataset is deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	// Flags
	cmd.Flags().String("from", "", "Delete transactions from this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Delete transactions up to this date (YYYY-MM-DD)")

	// Bind to viper
	_ = viper.BindPFlag("delete.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("delete.to", cmd.Flags().Lookup("to"))

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	datasetID := args[0]
	fromDate := viper.GetString("delete.from")
	toDate := viper.GetString("delete.to")

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	result, err := client.DeleteData(cmd.Context(), cfg.TenantID, datasetID, fromDate, toDate)
	if err != nil {
		slog.Error(cli.FormatError(fmt.Sprintf("Failed to delete dataset %s", datasetID)))
		return err
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Deleted dataset %s", datasetID)),
		"message", result.Message)
	return nil
}

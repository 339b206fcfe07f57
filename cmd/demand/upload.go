package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/generate"
	"github.com/Veraticus/demand-flow/internal/model"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload transaction datasets",
		Long: `Upload transaction datasets to the forecasting service.

Reads datasets from a JSON file, or generates dummy datasets when --dummy
is given. The command waits until the upload job reaches a terminal status.`,
		RunE: runUpload,
	}

	// Flags
	cmd.Flags().StringP("file", "f", "", "JSON file holding the upload payload")
	cmd.Flags().Int("dummy", 0, "Generate this many dummy datasets instead of reading a file")

	// Bind to viper
	_ = viper.BindPFlag("upload.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("upload.dummy", cmd.Flags().Lookup("dummy"))

	return cmd
}

func runUpload(cmd *cobra.Command, _ []string) error {
	file := viper.GetString("upload.file")
	dummy := viper.GetInt("upload.dummy")

	var payload *model.UploadPayload
	switch {
	case dummy > 0:
		payload = generate.UploadPayload(dummy)
	case file != "":
		var err error
		payload, err = model.LoadUploadPayload(file)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --file or --dummy is required")
	}

	client, cfg, err := initClient()
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Uploading datasets..."))

	datasetIDs, err := client.UploadData(cmd.Context(), cfg.TenantID, payload)
	if err != nil {
		slog.Error(cli.FormatError("Upload failed"))
		return err
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Uploaded %d dataset(s): %s",
		len(datasetIDs), strings.Join(datasetIDs, ", "))))
	return nil
}

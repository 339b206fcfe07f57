package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/demand-flow/internal/cli"
	"github.com/Veraticus/demand-flow/internal/config"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the persisted access token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Fetch a fresh access token and persist it",
		Long: `Fetch a fresh access token from the identity provider and write it to
the credential file. Normally unnecessary: API commands refresh expired
tokens automatically.`,
		RunE: runTokenRefresh,
	})

	return cmd
}

func runTokenRefresh(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.IdentityProvider.Validate(); err != nil {
		return err
	}
	if cfg.CredentialFile == "" {
		return fmt.Errorf("credential file path is required")
	}

	_, refresher, err := initCredentials(cfg)
	if err != nil {
		return err
	}

	if err := refresher.Refresh(cmd.Context()); err != nil {
		slog.Error(cli.FormatError("Token refresh failed"))
		return err
	}

	slog.Info(cli.FormatSuccess("Access token refreshed"),
		"credential_file", cfg.CredentialFile)
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/demand-flow/internal/config"
	"github.com/Veraticus/demand-flow/internal/credentials"
	"github.com/Veraticus/demand-flow/internal/forecast"
)

// initClient wires the full client stack: config, credential store, token
// refresher, and the forecast client itself.
func initClient() (*forecast.Client, *config.Config, error) {
	cfg := config.Load()
	if err := cfg.ValidateIdentityProvider(); err != nil {
		return nil, nil, err
	}

	store, refresher, err := initCredentials(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := forecast.NewClient(cfg.API, store, refresher)
	if err != nil {
		return nil, nil, err
	}

	return client, cfg, nil
}

// initCredentials builds the token store and refresher from config.
func initCredentials(cfg *config.Config) (*credentials.Store, *credentials.Refresher, error) {
	store, err := credentials.NewStore(cfg.CredentialFile)
	if err != nil {
		return nil, nil, err
	}

	refresher, err := credentials.NewRefresher(store, cfg.IdentityProvider)
	if err != nil {
		return nil, nil, err
	}

	return store, refresher, nil
}

// splitDatasetIDs parses a comma-separated dataset id list.
func splitDatasetIDs(raw string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one dataset id is required")
	}
	return ids, nil
}

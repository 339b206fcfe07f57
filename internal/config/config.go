// Package config loads application configuration from viper-managed
// sources: config file, environment, and bound flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/demand-flow/internal/credentials"
	"github.com/Veraticus/demand-flow/internal/forecast"
)

// Config is the fully resolved application configuration.
type Config struct {
	// API is the forecasting service client configuration.
	API forecast.Config
	// IdentityProvider configures the token refresh grant.
	IdentityProvider credentials.RefresherConfig
	// CredentialFile is the env file holding the persisted access token.
	CredentialFile string
	// TenantID scopes every API call.
	TenantID string
	// Workers sizes the batch scenario worker pool.
	Workers int
}

// Load resolves the configuration from viper. Call after viper has read its
// config file and environment.
func Load() *Config {
	return &Config{
		API: forecast.Config{
			BaseURL:           viper.GetString("api.base_url"),
			Timeout:           viper.GetDuration("api.timeout"),
			VisibilityRetries: viper.GetInt("api.visibility_retries"),
			VisibilityDelay:   viper.GetDuration("api.visibility_delay"),
			PollInterval:      viper.GetDuration("api.poll_interval"),
		},
		IdentityProvider: credentials.RefresherConfig{
			ClientID:     viper.GetString("idp.client_id"),
			ClientSecret: viper.GetString("idp.client_secret"),
			TokenURL:     viper.GetString("idp.token_url"),
			Scope:        viper.GetString("idp.scope"),
		},
		CredentialFile: ExpandPath(viper.GetString("credentials.file")),
		TenantID:       viper.GetString("tenant.id"),
		Workers:        viper.GetInt("batch.workers"),
	}
}

// SetDefaults registers configuration defaults with viper.
func SetDefaults() {
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("credentials.file", ".env")
	viper.SetDefault("batch.workers", 4)
}

// Validate checks that everything an authenticated API call needs is set.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if c.TenantID == "" {
		return fmt.Errorf("tenant id is required (set tenant.id or DEMAND_TENANT_ID)")
	}
	if c.CredentialFile == "" {
		return fmt.Errorf("credential file path is required")
	}
	return nil
}

// ValidateIdentityProvider additionally requires the token refresh settings.
// Commands that must be able to recover from an expired token call this
// instead of Validate.
func (c *Config) ValidateIdentityProvider() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.IdentityProvider.Validate()
}

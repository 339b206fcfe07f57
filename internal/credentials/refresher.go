package credentials

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// RefresherConfig holds the identity-provider settings for the
// client-credentials grant.
type RefresherConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scope        string
}

// Validate ensures all required fields are present.
func (c *RefresherConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("identity provider client id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("identity provider client secret is required")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("identity provider token URL is required")
	}
	return nil
}

// Refresher fetches fresh bearer tokens from the identity provider and
// publishes them through the store. Concurrent refreshes are collapsed into
// a single identity-provider call: every waiter returns after the store has
// been updated and persisted.
type Refresher struct {
	store *Store
	cfg   *clientcredentials.Config
	group singleflight.Group
}

// NewRefresher creates a refresher bound to the given store.
func NewRefresher(store *Store, cfg RefresherConfig) (*Refresher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	if cfg.Scope != "" {
		cc.Scopes = []string{cfg.Scope}
	}

	return &Refresher{store: store, cfg: cc}, nil
}

// Refresh obtains a new token and updates the store. The new token is
// persisted before Refresh returns, so a crash mid-retry leaves a valid
// credential behind.
func (r *Refresher) Refresh(ctx context.Context) error {
	_, err, shared := r.group.Do("refresh", func() (any, error) {
		slog.Info("Refreshing access token")

		tok, err := r.cfg.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("identity provider request failed: %w", err)
		}

		if err := r.store.Update(tok.AccessToken); err != nil {
			return nil, err
		}

		slog.Debug("Access token refreshed and persisted")
		return nil, nil
	})
	if err != nil {
		return err
	}
	if shared {
		slog.Debug("Joined in-flight token refresh")
	}
	return nil
}

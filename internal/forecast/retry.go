package forecast

import (
	"context"
	"errors"
	"fmt"
)

// withAuthRetry runs one authenticated call. On ErrAuthExpired it refreshes
// the credential exactly once and re-invokes the call exactly once more; a
// second expiry propagates so a misconfigured client cannot livelock. Every
// other failure propagates immediately.
func (c *Client) withAuthRetry(ctx context.Context, endpoint string, call func(context.Context) error) error {
	err := call(ctx)
	if !errors.Is(err, ErrAuthExpired) {
		return err
	}

	c.logger.Warn("Access token expired, refreshing", "endpoint", endpoint)
	if refreshErr := c.refresher.Refresh(ctx); refreshErr != nil {
		return fmt.Errorf("token refresh for %s failed: %w", endpoint, refreshErr)
	}

	c.logger.Info("Retrying request with fresh token", "endpoint", endpoint)
	return call(ctx)
}

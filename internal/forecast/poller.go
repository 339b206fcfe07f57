package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Veraticus/demand-flow/internal/model"
)

// PollJob blocks until the job reaches a terminal status and returns that
// status. A job not yet visible (404) is retried a bounded number of times;
// once visible, the in-progress loop has no upper bound — callers needing a
// deadline pass a context with one, which cancels both the sleeps and the
// status calls.
func (c *Client) PollJob(ctx context.Context, tenantID, jobID string) (*model.StatusResponse, error) {
	c.logger.Info("Polling job status", "tenant_id", tenantID, "job_id", jobID)

	status, err := c.awaitVisibility(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	for !status.Terminal() {
		c.logger.Debug("Job in progress", "job_id", jobID, "status", status.Status)
		if err := sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
		status, err = c.fetchStatus(ctx, tenantID, jobID)
		if err != nil {
			return nil, err
		}
	}

	c.logger.Info("Job complete",
		"job_id", jobID,
		"status", status.Status,
		"message", status.Message)
	return status, nil
}

// awaitVisibility absorbs the eventual-consistency window between job
// registration and status visibility: a bounded number of 404s are retried
// with a short fixed delay, then the job is presumed lost.
func (c *Client) awaitVisibility(ctx context.Context, tenantID, jobID string) (*model.StatusResponse, error) {
	status, err := c.fetchStatus(ctx, tenantID, jobID)
	attempts := 0
	for errors.Is(err, ErrJobNotFound) && attempts < c.visibilityRetries {
		attempts++
		c.logger.Debug("Job not yet visible, retrying",
			"job_id", jobID,
			"attempt", attempts,
			"max_attempts", c.visibilityRetries)
		if sleepErr := sleep(ctx, c.visibilityDelay); sleepErr != nil {
			return nil, sleepErr
		}
		status, err = c.fetchStatus(ctx, tenantID, jobID)
	}
	if errors.Is(err, ErrJobNotFound) {
		return nil, &JobLostError{JobID: jobID, Attempts: attempts}
	}
	return status, err
}

// fetchStatus queries /status once. 404 maps to ErrJobNotFound; any other
// non-200 is a fatal *APIError carrying the server's error and message.
func (c *Client) fetchStatus(ctx context.Context, tenantID, jobID string) (*model.StatusResponse, error) {
	headers := c.headers(headerOptions{includeAuth: true, tenantID: tenantID, jobID: jobID})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}
	req.Header = headers

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var status model.StatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return nil, &MalformedResponseError{Endpoint: "status", Err: err}
		}
		return &status, nil
	case http.StatusNotFound:
		return nil, ErrJobNotFound
	default:
		return nil, c.failure("status", resp)
	}
}

// sleep waits for the given duration unless the context is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Package forecast provides a client for the inventory/demand-forecasting
// service: endpoint operations, job status polling, and transparent
// recovery from expired access tokens.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/demand-flow/internal/credentials"
	"github.com/Veraticus/demand-flow/internal/model"
)

// Default messages substituted when the service omits one.
const (
	DefaultResultsMessage        = "Job completed successfully!"
	DefaultClassificationMessage = "NOT IMPLEMENTED"
)

// Config holds forecast client configuration.
type Config struct {
	// BaseURL is the root of the forecasting service API.
	BaseURL string
	// Timeout bounds each individual HTTP call, not a whole job.
	Timeout time.Duration
	// VisibilityRetries bounds the 404 retry window after starting a job.
	VisibilityRetries int
	// VisibilityDelay is the fixed wait between visibility retries.
	VisibilityDelay time.Duration
	// PollInterval is the fixed wait between in-progress status queries.
	PollInterval time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("forecast base URL is required")
	}
	return nil
}

// Client talks to the forecasting service. Safe for concurrent use: all
// mutable credential state lives in the shared store.
type Client struct {
	httpClient        *http.Client
	store             *credentials.Store
	refresher         *credentials.Refresher
	logger            *slog.Logger
	baseURL           string
	visibilityRetries int
	visibilityDelay   time.Duration
	pollInterval      time.Duration
}

// NewClient creates a forecast client. The store supplies the bearer token
// for every call; the refresher recovers from token expiry.
func NewClient(cfg Config, store *credentials.Store, refresher *credentials.Refresher) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	visibilityRetries := cfg.VisibilityRetries
	if visibilityRetries == 0 {
		visibilityRetries = 5
	}
	visibilityDelay := cfg.VisibilityDelay
	if visibilityDelay == 0 {
		visibilityDelay = 3 * time.Second
	}
	pollInterval := cfg.PollInterval
	if pollInterval == 0 {
		pollInterval = 6 * time.Second
	}

	return &Client{
		httpClient:        &http.Client{Timeout: timeout},
		store:             store,
		refresher:         refresher,
		logger:            slog.Default().With("component", "forecast"),
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		visibilityRetries: visibilityRetries,
		visibilityDelay:   visibilityDelay,
		pollInterval:      pollInterval,
	}, nil
}

// PresignedURL is the upload destination issued by /presigned_url.
type PresignedURL struct {
	URL     string `json:"url"`
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

// JobResult is the acknowledgement returned by job-starting endpoints after
// the job has reached a terminal status.
type JobResult struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

// Results is the forecast output for a completed prediction job.
type Results struct {
	Message string                 `json:"message"`
	Results []model.ForecastResult `json:"results"`
}

// ClassificationResults is the output of a completed classification job.
type ClassificationResults struct {
	Message string                       `json:"message"`
	Results []model.ClassificationResult `json:"results"`
}

// DeleteResult is the acknowledgement returned by a dataset deletion.
type DeleteResult struct {
	Message string `json:"message"`
}

// GetPresignedURL obtains an upload destination and its job id.
func (c *Client) GetPresignedURL(ctx context.Context, tenantID string) (*PresignedURL, error) {
	var presigned PresignedURL
	err := c.withAuthRetry(ctx, "presigned_url", func(ctx context.Context) error {
		c.logger.Debug("Requesting presigned upload URL", "tenant_id", tenantID)

		headers := c.headers(headerOptions{includeAuth: true, tenantID: tenantID})
		return c.do(ctx, http.MethodGet, c.baseURL+"/presigned_url", headers, nil,
			"presigned_url", http.StatusOK, &presigned)
	})
	if err != nil {
		return nil, err
	}
	return &presigned, nil
}

// UploadData performs the two-phase upload: obtain a presigned destination,
// PUT the dataset payload to it, then wait for the upload job to finish.
// Returns the uploaded dataset ids in batch order.
func (c *Client) UploadData(ctx context.Context, tenantID string, payload *model.UploadPayload) ([]string, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to upload invalid payload: %w", err)
	}

	presigned, err := c.GetPresignedURL(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload payload: %w", err)
	}

	err = c.withAuthRetry(ctx, "upload", func(ctx context.Context) error {
		c.logger.Info("Uploading datasets",
			"tenant_id", tenantID,
			"job_id", presigned.JobID,
			"datasets", len(payload.Datasets))

		// The presigned destination is pre-authorized; only the tenant
		// header travels with the PUT.
		headers := c.headers(headerOptions{tenantID: tenantID})
		return c.do(ctx, http.MethodPut, presigned.URL, headers, body, "upload", 0, nil)
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.PollJob(ctx, tenantID, presigned.JobID); err != nil {
		return nil, err
	}

	return payload.DatasetIDs(), nil
}

// StartTraining starts a training job for the given parameters and waits
// for it to finish.
func (c *Client) StartTraining(ctx context.Context, tenantID string, params []model.TrainingParameters) (*JobResult, error) {
	request := model.TrainingRequest{Parameters: params}
	return c.startJob(ctx, tenantID, "start_trainer", "/start_trainer", &request)
}

// CreatePrediction starts a prediction job and waits for it to finish.
func (c *Client) CreatePrediction(ctx context.Context, tenantID string, request *model.PredictionRequest) (*JobResult, error) {
	return c.startJob(ctx, tenantID, "create_prediction", "/create_prediction", request)
}

// StartClassification starts an inventory classification job and waits for
// it to finish.
func (c *Client) StartClassification(ctx context.Context, tenantID string, request *model.ClassificationRequest) (*JobResult, error) {
	return c.startJob(ctx, tenantID, "start_inventory_classification", "/start_inventory_classification", request)
}

// startJob POSTs a job-starting request, expects 202 with a job id, and
// polls the job to a terminal status before returning.
func (c *Client) startJob(ctx context.Context, tenantID, endpoint, path string, request any) (*JobResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	var accepted JobResult
	err = c.withAuthRetry(ctx, endpoint, func(ctx context.Context) error {
		c.logger.Info("Starting job", "endpoint", endpoint, "tenant_id", tenantID)

		headers := c.headers(headerOptions{includeAuth: true, includeContentType: true, tenantID: tenantID})
		return c.do(ctx, http.MethodPost, c.baseURL+path, headers, body,
			endpoint, http.StatusAccepted, &accepted)
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.PollJob(ctx, tenantID, accepted.JobID); err != nil {
		return nil, err
	}

	return &accepted, nil
}

// GetResults fetches the forecast results of a completed prediction job.
func (c *Client) GetResults(ctx context.Context, tenantID, jobID string) (*Results, error) {
	var results Results
	err := c.withAuthRetry(ctx, "results", func(ctx context.Context) error {
		c.logger.Info("Fetching results", "tenant_id", tenantID, "job_id", jobID)

		headers := c.headers(headerOptions{includeAuth: true, tenantID: tenantID, jobID: jobID})
		return c.do(ctx, http.MethodGet, c.baseURL+"/results", headers, nil,
			"results", http.StatusOK, &results)
	})
	if err != nil {
		return nil, err
	}

	if results.Message == "" {
		results.Message = DefaultResultsMessage
	}
	return &results, nil
}

// GetClassificationResults fetches the output of a completed inventory
// classification job.
func (c *Client) GetClassificationResults(ctx context.Context, tenantID, jobID string) (*ClassificationResults, error) {
	var results ClassificationResults
	err := c.withAuthRetry(ctx, "inventory_classification_results", func(ctx context.Context) error {
		c.logger.Info("Fetching classification results", "tenant_id", tenantID, "job_id", jobID)

		headers := c.headers(headerOptions{includeAuth: true, tenantID: tenantID, jobID: jobID})
		return c.do(ctx, http.MethodGet, c.baseURL+"/inventory_classification_results", headers, nil,
			"inventory_classification_results", http.StatusOK, &results)
	})
	if err != nil {
		return nil, err
	}

	if results.Message == "" {
		results.Message = DefaultClassificationMessage
	}
	return &results, nil
}

// DeleteData deletes a dataset, optionally restricted to a date range.
// fromDate and toDate are YYYY-MM-DD and may be empty.
func (c *Client) DeleteData(ctx context.Context, tenantID, datasetID, fromDate, toDate string) (*DeleteResult, error) {
	if datasetID == "" {
		return nil, fmt.Errorf("dataset id is required")
	}

	deleteURL := c.baseURL + "/data/" + url.PathEscape(datasetID)
	query := url.Values{}
	if fromDate != "" {
		query.Set("fromDate", fromDate)
	}
	if toDate != "" {
		query.Set("toDate", toDate)
	}
	if len(query) > 0 {
		deleteURL += "?" + query.Encode()
	}

	var result DeleteResult
	err := c.withAuthRetry(ctx, "data", func(ctx context.Context) error {
		c.logger.Info("Deleting dataset",
			"tenant_id", tenantID,
			"dataset_id", datasetID,
			"from_date", fromDate,
			"to_date", toDate)

		headers := c.headers(headerOptions{includeAuth: true, includeContentType: true, tenantID: tenantID})
		return c.do(ctx, http.MethodDelete, deleteURL, headers, nil, "data", http.StatusOK, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// do issues one HTTP call and normalizes the outcome: 403 becomes
// ErrAuthExpired, the declared success code decodes into out, and anything
// else decodes the server's failure body into an *APIError. A success code
// of 0 accepts any 2xx and skips decoding.
func (c *Client) do(ctx context.Context, method, rawURL string, headers http.Header, body []byte, endpoint string, successCode int, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header = headers

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%s: %w", endpoint, ErrAuthExpired)
	}

	if successCode == 0 {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return c.failure(endpoint, resp)
		}
		return nil
	}

	if resp.StatusCode != successCode {
		return c.failure(endpoint, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// failure decodes the server's {error, message} body into an *APIError and
// logs both fields. An undecodable body is carried verbatim as the message.
func (c *Client) failure(endpoint string, resp *http.Response) error {
	apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode}

	body, readErr := io.ReadAll(resp.Body)
	if readErr == nil {
		var failure model.FailureResponse
		if jsonErr := json.Unmarshal(body, &failure); jsonErr == nil {
			apiErr.Code = failure.Error
			apiErr.Message = failure.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}

	c.logger.Error("Request failed",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"error", apiErr.Code,
		"message", apiErr.Message)

	return apiErr
}

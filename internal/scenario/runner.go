package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/demand-flow/internal/forecast"
	"github.com/Veraticus/demand-flow/internal/generate"
	"github.com/Veraticus/demand-flow/internal/model"
)

// Forecaster is the subset of the forecast client the runner drives.
type Forecaster interface {
	UploadData(ctx context.Context, tenantID string, payload *model.UploadPayload) ([]string, error)
	StartTraining(ctx context.Context, tenantID string, params []model.TrainingParameters) (*forecast.JobResult, error)
	CreatePrediction(ctx context.Context, tenantID string, request *model.PredictionRequest) (*forecast.JobResult, error)
	GetResults(ctx context.Context, tenantID, jobID string) (*forecast.Results, error)
	DeleteData(ctx context.Context, tenantID, datasetID, fromDate, toDate string) (*forecast.DeleteResult, error)
}

// Result is the outcome of one scenario run.
type Result struct {
	Err      error
	Results  *forecast.Results
	TenantID string
	Scenario Scenario
	Duration time.Duration
}

// Runner executes scenarios on a fixed-size worker pool. Each scenario runs
// its full sequence strictly in order on one worker under its own tenant
// scope; scenarios interleave freely across workers.
type Runner struct {
	client         Forecaster
	progressWriter io.Writer
	tenantID       string
	workers        int
	keepData       bool
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithProgressWriter redirects progress bar output.
func WithProgressWriter(w io.Writer) RunnerOption {
	return func(r *Runner) { r.progressWriter = w }
}

// WithKeepData disables dataset cleanup after each scenario.
func WithKeepData() RunnerOption {
	return func(r *Runner) { r.keepData = true }
}

// NewRunner creates a runner. workers values below one are clamped to one.
func NewRunner(client Forecaster, tenantID string, workers int, opts ...RunnerOption) *Runner {
	if workers < 1 {
		workers = 1
	}
	r := &Runner{
		client:         client,
		progressWriter: os.Stderr,
		tenantID:       tenantID,
		workers:        workers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes all scenarios and returns one result per scenario, in
// completion order. A failed scenario never aborts the others.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) []Result {
	slog.Info("Running scenarios",
		"count", len(scenarios),
		"workers", r.workers)

	bar := progressbar.NewOptions(len(scenarios),
		progressbar.OptionSetWriter(r.progressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Running scenarios..."),
	)

	workChan := make(chan Scenario, len(scenarios))
	for _, s := range scenarios {
		workChan <- s
	}
	close(workChan)

	resultsChan := make(chan Result, len(scenarios))

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			for s := range workChan {
				select {
				case <-ctx.Done():
					resultsChan <- Result{Scenario: s, Err: ctx.Err()}
					continue
				default:
				}

				slog.Debug("Worker picked up scenario",
					"worker_id", workerID,
					"dataset_id", s.DatasetID)
				resultsChan <- r.runOne(ctx, s)
				_ = bar.Add(1)
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]Result, 0, len(scenarios))
	failures := 0
	for result := range resultsChan {
		if result.Err != nil {
			failures++
			slog.Error("Scenario failed",
				"dataset_id", result.Scenario.DatasetID,
				"tenant_id", result.TenantID,
				"error", result.Err)
		}
		results = append(results, result)
	}

	slog.Info("Scenario run complete",
		"total", len(results),
		"failed", failures)
	return results
}

// runOne drives a single scenario end to end: generate, upload, train,
// predict, fetch results, and delete the dataset again unless keepData is
// set. Cleanup is attempted even when an earlier step failed the scenario.
func (r *Runner) runOne(ctx context.Context, s Scenario) Result {
	start := time.Now()
	// Each run gets its own tenant scope so concurrent scenarios never
	// share dataset or job namespaces.
	tenantID := fmt.Sprintf("%s-%d", r.tenantID, time.Now().UnixNano())
	result := Result{Scenario: s, TenantID: tenantID}

	payload := &model.UploadPayload{Datasets: []model.Dataset{
		generate.Dataset(s.DatasetID, s.Months, s.TxnsPerMonth),
	}}

	datasetIDs, err := r.client.UploadData(ctx, tenantID, payload)
	if err != nil {
		result.Err = fmt.Errorf("upload failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	defer func() {
		if r.keepData {
			return
		}
		for _, id := range datasetIDs {
			if _, err := r.client.DeleteData(ctx, tenantID, id, "", ""); err != nil {
				slog.Warn("Failed to clean up dataset",
					"tenant_id", tenantID,
					"dataset_id", id,
					"error", err)
			}
		}
	}()

	if _, err := r.client.StartTraining(ctx, tenantID, generate.TrainingParameters(datasetIDs, s.Frequency, s.Horizon)); err != nil {
		result.Err = fmt.Errorf("training failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	prediction, err := r.client.CreatePrediction(ctx, tenantID, generate.PredictionRequest(datasetIDs))
	if err != nil {
		result.Err = fmt.Errorf("prediction failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	results, err := r.client.GetResults(ctx, tenantID, prediction.JobID)
	if err != nil {
		result.Err = fmt.Errorf("fetching results failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Results = results
	result.Duration = time.Since(start)
	return result
}

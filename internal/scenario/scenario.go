// Package scenario loads batch scenario definitions from CSV and runs each
// one through the full upload, train, predict sequence on a worker pool.
package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Scenario describes one dataset to generate and push through the service.
type Scenario struct {
	DatasetID    string
	Frequency    string
	Months       int
	TxnsPerMonth int
	Horizon      int
}

// Validate checks a single scenario row.
func (s *Scenario) Validate() error {
	if s.DatasetID == "" {
		return fmt.Errorf("scenario dataset id is required")
	}
	if s.Months <= 0 {
		return fmt.Errorf("scenario %s: months must be positive, got %d", s.DatasetID, s.Months)
	}
	if s.TxnsPerMonth <= 0 {
		return fmt.Errorf("scenario %s: txns per month must be positive, got %d", s.DatasetID, s.TxnsPerMonth)
	}
	if s.Frequency == "" {
		return fmt.Errorf("scenario %s: frequency is required", s.DatasetID)
	}
	if s.Horizon <= 0 {
		return fmt.Errorf("scenario %s: horizon must be positive, got %d", s.DatasetID, s.Horizon)
	}
	return nil
}

// CSV column headers.
const (
	colDatasetID    = "Dataset ID"
	colMonths       = "# months"
	colTxnsPerMonth = "# txns per month"
	colFrequency    = "frequency"
	colHorizon      = "horizon"
)

// Load reads scenarios from a CSV file with a header row naming the
// columns: "Dataset ID", "# months", "# txns per month", "frequency",
// "horizon".
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("scenario file %s has no data rows", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDatasetID, colMonths, colTxnsPerMonth, colFrequency, colHorizon} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("scenario file %s is missing column %q", path, required)
		}
	}

	scenarios := make([]Scenario, 0, len(rows)-1)
	for n, row := range rows[1:] {
		months, err := strconv.Atoi(strings.TrimSpace(row[index[colMonths]]))
		if err != nil {
			return nil, fmt.Errorf("scenario file %s row %d: invalid months: %w", path, n+2, err)
		}
		txns, err := strconv.Atoi(strings.TrimSpace(row[index[colTxnsPerMonth]]))
		if err != nil {
			return nil, fmt.Errorf("scenario file %s row %d: invalid txns per month: %w", path, n+2, err)
		}
		horizon, err := strconv.Atoi(strings.TrimSpace(row[index[colHorizon]]))
		if err != nil {
			return nil, fmt.Errorf("scenario file %s row %d: invalid horizon: %w", path, n+2, err)
		}

		s := Scenario{
			DatasetID:    strings.TrimSpace(row[index[colDatasetID]]),
			Months:       months,
			TxnsPerMonth: txns,
			Frequency:    strings.TrimSpace(row[index[colFrequency]]),
			Horizon:      horizon,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("scenario file %s row %d: %w", path, n+2, err)
		}
		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

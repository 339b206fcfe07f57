package model

// DateInterval bounds a suggestion's validity window.
type DateInterval struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Suggestion is a quantity recommendation with its validity window.
type Suggestion struct {
	ValidDateInterval DateInterval `json:"validDateInterval"`
	Quantity          float64      `json:"quantity"`
}

// ForecastPoint is one predicted period in a forecast series.
type ForecastPoint struct {
	Date              string  `json:"date"`
	PredictedQuantity float64 `json:"predictedQuantity"`
	PredictedSeason   float64 `json:"predictedSeason"`
	PredictedTrend    float64 `json:"predictedTrend"`
	PredictedNoise    float64 `json:"predictedNoise"`
	LowerQuantity     float64 `json:"lowerQuantity"`
	UpperQuantity     float64 `json:"upperQuantity"`
}

// HistoricalPoint is one observed quantity in the training history.
type HistoricalPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// ForecastResult is the full prediction output for one dataset/supplier pair.
type ForecastResult struct {
	DatasetID               string            `json:"datasetId"`
	SupplierID              string            `json:"supplierId"`
	SafetyStockSuggestion   Suggestion        `json:"safetyStockSuggestion"`
	ReorderPointSuggestion  Suggestion        `json:"reorderPointSuggestion"`
	ReplenishmentSuggestion Suggestion        `json:"replenishmentSuggestion"`
	Forecast                []ForecastPoint   `json:"forecast"`
	HistoricalData          []HistoricalPoint `json:"historicalData"`
}

// ClassificationResult is the classification output for one dataset.
type ClassificationResult struct {
	DatasetID     string   `json:"datasetId"`
	ABCCategory   string   `json:"abcCategory"`
	DemandType    string   `json:"demandType"`
	Trend         string   `json:"trend"`
	Seasonalities []string `json:"seasonalities"`
	IsSeasonal    bool     `json:"isSeasonal"`
}

// DatasetStatus reports per-dataset progress within a job.
type DatasetStatus struct {
	DatasetID string `json:"datasetId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// StatusInProgress is the sole non-terminal job status; any other status
// value reported by /status is terminal.
const StatusInProgress = "inProgress"

// StatusResponse is the body returned by /status.
type StatusResponse struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	DatasetsStatus []DatasetStatus `json:"datasetsStatus"`
}

// Terminal reports whether the job has left the in-progress state.
func (s *StatusResponse) Terminal() bool {
	return s.Status != StatusInProgress
}

// FailureResponse is the error body returned on any non-success status code.
type FailureResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

package model

// TrainingParameters configures one dataset's training run.
type TrainingParameters struct {
	DatasetID string `json:"datasetId"`
	Frequency string `json:"frequency"`
	Horizon   int    `json:"horizon"`
}

// TrainingRequest is the body POSTed to /start_trainer.
type TrainingRequest struct {
	Parameters []TrainingParameters `json:"parametersArray"`
}

// Interval is a value plus a time granularity ("D", "W", "M").
type Interval struct {
	Granularity string `json:"granularity"`
	Value       int    `json:"value"`
}

// Supplier ties a supplier id to its lead time for one dataset.
type Supplier struct {
	SupplierID string   `json:"supplierId"`
	LeadTime   Interval `json:"leadTime"`
}

// SupplierInfo describes a supplier referenced by prediction parameters.
type SupplierInfo struct {
	SupplierID        string  `json:"supplierId"`
	SupplierName      string  `json:"supplierName"`
	MinimumOrderValue float64 `json:"minimumOrderValue"`
}

// PredictionParameters configures one dataset's prediction run.
type PredictionParameters struct {
	DatasetID             string     `json:"datasetId"`
	CurrentInventoryLevel float64    `json:"currentInventoryLevel"`
	WantedServiceLevel    float64    `json:"wantedServiceLevel"`
	ReplenishmentInterval Interval   `json:"replenishmentInterval"`
	Suppliers             []Supplier `json:"suppliers"`
}

// PredictionRequest is the body POSTed to /create_prediction.
type PredictionRequest struct {
	Parameters   []PredictionParameters `json:"parametersArray"`
	SupplierInfo []SupplierInfo         `json:"supplierInfoArray"`
}

// ClassificationRequest is the body POSTed to
// /start_inventory_classification.
type ClassificationRequest struct {
	DatasetIDs []string `json:"datasetIds"`
	ABCDriver  string   `json:"abcDriver"`
}

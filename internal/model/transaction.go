// Package model defines the wire-level data types exchanged with the
// forecasting service.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DateFormat is the date layout used on every wire date field.
const DateFormat = "2006-01-02"

// Transaction is a single demand observation within a dataset.
type Transaction struct {
	RequestedDeliveryDate string  `json:"requestedDeliveryDate,omitempty"`
	SalesDate             string  `json:"salesDate,omitempty"`
	DepartureDate         string  `json:"departureDate"`
	TransactionID         string  `json:"transactionId"`
	Quantity              float64 `json:"quantity"`
	UnitCost              float64 `json:"unitCost"`
	UnitPrice             float64 `json:"unitPrice"`
}

// Validate checks field-level invariants on a single transaction.
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("transaction %s: quantity must be positive, got %v", t.TransactionID, t.Quantity)
	}
	if t.UnitCost <= 0 {
		return fmt.Errorf("transaction %s: unit cost must be positive, got %v", t.TransactionID, t.UnitCost)
	}
	if t.UnitPrice <= 0 {
		return fmt.Errorf("transaction %s: unit price must be positive, got %v", t.TransactionID, t.UnitPrice)
	}
	if _, err := time.Parse(DateFormat, t.DepartureDate); err != nil {
		return fmt.Errorf("transaction %s: invalid departure date %q: %w", t.TransactionID, t.DepartureDate, err)
	}
	return nil
}

// Dataset is an ordered sequence of transactions under one dataset id.
// Transaction ordering is significant and preserved through serialization.
type Dataset struct {
	DatasetID    string        `json:"datasetId"`
	Transactions []Transaction `json:"transactions"`
}

// Validate checks the dataset id and every transaction, including
// transaction-id uniqueness within the dataset.
func (d *Dataset) Validate() error {
	if d.DatasetID == "" {
		return fmt.Errorf("dataset id is required")
	}
	seen := make(map[string]bool, len(d.Transactions))
	for i := range d.Transactions {
		txn := &d.Transactions[i]
		if err := txn.Validate(); err != nil {
			return fmt.Errorf("dataset %s: %w", d.DatasetID, err)
		}
		if seen[txn.TransactionID] {
			return fmt.Errorf("dataset %s: duplicate transaction id %s", d.DatasetID, txn.TransactionID)
		}
		seen[txn.TransactionID] = true
	}
	return nil
}

// UploadPayload is the body PUT to a presigned upload URL. Dataset ordering
// across the batch is significant and preserved through serialization.
type UploadPayload struct {
	Datasets []Dataset `json:"datasets"`
}

// Validate checks every dataset and dataset-id uniqueness within the batch.
func (p *UploadPayload) Validate() error {
	if len(p.Datasets) == 0 {
		return fmt.Errorf("upload payload must contain at least one dataset")
	}
	seen := make(map[string]bool, len(p.Datasets))
	for i := range p.Datasets {
		ds := &p.Datasets[i]
		if err := ds.Validate(); err != nil {
			return err
		}
		if seen[ds.DatasetID] {
			return fmt.Errorf("duplicate dataset id %s in upload batch", ds.DatasetID)
		}
		seen[ds.DatasetID] = true
	}
	return nil
}

// DatasetIDs returns the dataset ids in batch order.
func (p *UploadPayload) DatasetIDs() []string {
	ids := make([]string, 0, len(p.Datasets))
	for i := range p.Datasets {
		ids = append(ids, p.Datasets[i].DatasetID)
	}
	return ids
}

// LoadUploadPayload reads and validates an upload payload from a JSON file.
func LoadUploadPayload(path string) (*UploadPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var payload UploadPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", path, err)
	}

	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset file %s: %w", path, err)
	}

	return &payload, nil
}

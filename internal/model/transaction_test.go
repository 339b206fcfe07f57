package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction(id string) Transaction {
	return Transaction{
		Quantity:      175.5,
		DepartureDate: "2026-08-01",
		TransactionID: id,
		UnitCost:      104.25,
		UnitPrice:     608.75,
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		mutate  func(*Transaction)
		name    string
		wantErr string
	}{
		{
			name:   "valid transaction",
			mutate: func(_ *Transaction) {},
		},
		{
			name:    "missing id",
			mutate:  func(tx *Transaction) { tx.TransactionID = "" },
			wantErr: "transaction id is required",
		},
		{
			name:    "zero quantity",
			mutate:  func(tx *Transaction) { tx.Quantity = 0 },
			wantErr: "quantity must be positive",
		},
		{
			name:    "negative unit cost",
			mutate:  func(tx *Transaction) { tx.UnitCost = -1 },
			wantErr: "unit cost must be positive",
		},
		{
			name:    "negative unit price",
			mutate:  func(tx *Transaction) { tx.UnitPrice = -0.5 },
			wantErr: "unit price must be positive",
		},
		{
			name:    "malformed date",
			mutate:  func(tx *Transaction) { tx.DepartureDate = "01/08/2026" },
			wantErr: "invalid departure date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction("txn-1")
			tt.mutate(&tx)

			err := tx.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDatasetValidate(t *testing.T) {
	t.Run("duplicate transaction ids rejected", func(t *testing.T) {
		ds := Dataset{
			DatasetID:    "ds-1",
			Transactions: []Transaction{validTransaction("txn-1"), validTransaction("txn-1")},
		}

		err := ds.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate transaction id txn-1")
	})

	t.Run("same transaction id across datasets allowed", func(t *testing.T) {
		payload := UploadPayload{Datasets: []Dataset{
			{DatasetID: "ds-1", Transactions: []Transaction{validTransaction("txn-1")}},
			{DatasetID: "ds-2", Transactions: []Transaction{validTransaction("txn-1")}},
		}}

		assert.NoError(t, payload.Validate())
	})

	t.Run("duplicate dataset ids rejected", func(t *testing.T) {
		payload := UploadPayload{Datasets: []Dataset{
			{DatasetID: "ds-1", Transactions: []Transaction{validTransaction("txn-1")}},
			{DatasetID: "ds-1", Transactions: []Transaction{validTransaction("txn-2")}},
		}}

		err := payload.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate dataset id ds-1")
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		payload := UploadPayload{}
		assert.Error(t, payload.Validate())
	})
}

func TestUploadPayloadRoundTrip(t *testing.T) {
	payload := UploadPayload{Datasets: []Dataset{
		{
			DatasetID: "ds-b",
			Transactions: []Transaction{
				validTransaction("txn-3"),
				validTransaction("txn-1"),
				validTransaction("txn-2"),
			},
		},
		{
			DatasetID:    "ds-a",
			Transactions: []Transaction{validTransaction("txn-1")},
		},
	}}

	data, err := json.Marshal(&payload)
	require.NoError(t, err)

	var decoded UploadPayload
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Dataset ordering across the batch and transaction ordering within a
	// dataset are both significant.
	assert.Equal(t, payload, decoded)
	assert.Equal(t, []string{"ds-b", "ds-a"}, decoded.DatasetIDs())
	assert.Equal(t, "txn-3", decoded.Datasets[0].Transactions[0].TransactionID)
}

func TestLoadUploadPayload(t *testing.T) {
	t.Run("loads valid file", func(t *testing.T) {
		payload := UploadPayload{Datasets: []Dataset{
			{DatasetID: "ds-1", Transactions: []Transaction{validTransaction("txn-1")}},
		}}
		data, err := json.Marshal(&payload)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "datasets.json")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		loaded, err := LoadUploadPayload(path)
		require.NoError(t, err)
		assert.Equal(t, &payload, loaded)
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "datasets.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"datasets":[{"datasetId":""}]}`), 0o600))

		_, err := LoadUploadPayload(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset id is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadUploadPayload(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestStatusResponseTerminal(t *testing.T) {
	assert.False(t, (&StatusResponse{Status: StatusInProgress}).Terminal())
	assert.True(t, (&StatusResponse{Status: "success"}).Terminal())
	assert.True(t, (&StatusResponse{Status: "failed"}).Terminal())
}

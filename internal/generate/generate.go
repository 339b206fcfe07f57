// Package generate builds synthetic datasets and request payloads for
// exercising the forecasting service.
package generate

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/demand-flow/internal/model"
)

// Defaults for dummy transaction generation.
const (
	dummyTransactionsPerDataset = 30
	dummyMinQuantity            = 150.0
	dummyMaxQuantity            = 250.0
	dummyUnitCost               = 104.25
	dummyUnitPrice              = 608.75
)

// Prediction parameter defaults.
const (
	DefaultInventoryLevel    = 50.0
	DefaultServiceLevel      = 0.95
	DefaultSupplierID        = "supplier-1"
	defaultSupplierName      = "Supplier 1"
	defaultMinimumOrderValue = 1000.0
)

// UploadPayload generates count dummy datasets, each with thirty monthly
// transactions walking back from the current date.
func UploadPayload(count int) *model.UploadPayload {
	slog.Info("Generating dummy datasets", "count", count)

	payload := &model.UploadPayload{Datasets: make([]model.Dataset, 0, count)}
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("dummy-dataset-%d", i)
		payload.Datasets = append(payload.Datasets, dummyDataset(id))
	}
	return payload
}

// dummyDataset builds one dataset with a fixed cost/price and one
// transaction per month, newest first.
func dummyDataset(id string) model.Dataset {
	date := time.Now()
	transactions := make([]model.Transaction, 0, dummyTransactionsPerDataset)
	for i := 0; i < dummyTransactionsPerDataset; i++ {
		formatted := date.Format(model.DateFormat)
		transactions = append(transactions, model.Transaction{
			Quantity:              dummyMinQuantity + rand.Float64()*(dummyMaxQuantity-dummyMinQuantity),
			RequestedDeliveryDate: formatted,
			SalesDate:             formatted,
			DepartureDate:         formatted,
			TransactionID:         fmt.Sprintf("txn%d", i),
			UnitCost:              dummyUnitCost,
			UnitPrice:             dummyUnitPrice,
		})
		date = date.AddDate(0, -1, 0)
	}
	return model.Dataset{DatasetID: id, Transactions: transactions}
}

// Dataset generates a dataset spanning the given number of months, filling
// each month day by day with up to txnsPerMonth transactions. Quantity,
// cost, and price ranges are randomized per dataset; transaction ids are
// uuids. No transaction is dated in the future.
func Dataset(id string, months, txnsPerMonth int) model.Dataset {
	slog.Info("Generating dataset", "dataset_id", id, "months", months, "txns_per_month", txnsPerMonth)

	minQuantity := 50.0 + rand.Float64()*250.0
	maxQuantity := minQuantity + rand.Float64()*minQuantity*2.0
	unitCost := 50.0 + rand.Float64()*100.0
	unitPrice := unitCost*1.5 + rand.Float64()*unitCost*2.5

	now := time.Now()
	transactions := make([]model.Transaction, 0, months*txnsPerMonth)

	// The current month is capped at today so no transaction lands in the
	// future; earlier months are filled from their first day onward.
	lastDayOfMonth := now
	for m := 0; m < months; m++ {
		day := time.Date(lastDayOfMonth.Year(), lastDayOfMonth.Month(), 1, 0, 0, 0, 0, lastDayOfMonth.Location())
		added := 0
		for !day.After(lastDayOfMonth) && added < txnsPerMonth {
			transactions = append(transactions, model.Transaction{
				Quantity:      minQuantity + rand.Float64()*(maxQuantity-minQuantity),
				DepartureDate: day.Format(model.DateFormat),
				TransactionID: uuid.NewString(),
				UnitCost:      unitCost,
				UnitPrice:     unitPrice,
			})
			day = day.AddDate(0, 0, 1)
			added++
		}
		// Step to the last day of the previous month.
		lastDayOfMonth = time.Date(lastDayOfMonth.Year(), lastDayOfMonth.Month(), 1, 0, 0, 0, 0, lastDayOfMonth.Location()).AddDate(0, 0, -1)
	}

	return model.Dataset{DatasetID: id, Transactions: transactions}
}

// TrainingParameters builds one parameter object per dataset with a shared
// frequency and horizon.
func TrainingParameters(datasetIDs []string, frequency string, horizon int) []model.TrainingParameters {
	params := make([]model.TrainingParameters, 0, len(datasetIDs))
	for _, id := range datasetIDs {
		params = append(params, model.TrainingParameters{
			DatasetID: id,
			Frequency: frequency,
			Horizon:   horizon,
		})
	}
	return params
}

// PredictionRequest builds a prediction request with default inventory and
// service levels, monthly replenishment, and a single supplier with a
// two-week lead time.
func PredictionRequest(datasetIDs []string) *model.PredictionRequest {
	request := &model.PredictionRequest{
		SupplierInfo: []model.SupplierInfo{{
			SupplierID:        DefaultSupplierID,
			SupplierName:      defaultSupplierName,
			MinimumOrderValue: defaultMinimumOrderValue,
		}},
	}
	for _, id := range datasetIDs {
		request.Parameters = append(request.Parameters, model.PredictionParameters{
			DatasetID:             id,
			CurrentInventoryLevel: DefaultInventoryLevel,
			WantedServiceLevel:    DefaultServiceLevel,
			ReplenishmentInterval: model.Interval{Value: 1, Granularity: "M"},
			Suppliers: []model.Supplier{{
				SupplierID: DefaultSupplierID,
				LeadTime:   model.Interval{Value: 2, Granularity: "W"},
			}},
		})
	}
	return request
}

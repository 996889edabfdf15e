// Package dataset loads the five input tables through a pluggable Source and
// keeps the parsed result in a read-through cache.
package dataset

import (
	"context"
	"errors"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Dataset names shared by every Source.
const (
	PickerMovement       = "picker_movement"
	OrderTransactions    = "order_transactions"
	WarehouseConstraints = "warehouse_constraints"
	SKUMaster            = "sku_master"
	FinalSlottingPlan    = "final_slotting_plan"
)

// Names lists the datasets in load order.
var Names = []string{PickerMovement, OrderTransactions, WarehouseConstraints, SKUMaster, FinalSlottingPlan}

// ErrDatasetNotFound is returned by a Source that has no table under a name.
var ErrDatasetNotFound = errors.New("dataset not found")

// ErrMissingColumn is returned when a required column is absent from a table header.
var ErrMissingColumn = errors.New("missing required column")

// Source reads raw tables by dataset name.
type Source interface {
	// Kind names the backend for logs ("csv", "sheets", "mongodb").
	Kind() string
	// Fetch returns the table stored under name.
	Fetch(ctx context.Context, name string) (models.Table, error)
	// Fingerprint identifies the current content version. An empty string
	// means the backend cannot track changes and the cache only refreshes on Clear.
	Fingerprint(ctx context.Context) (string, error)
}

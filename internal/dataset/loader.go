package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Dataset holds the five parsed inputs of one report run.
type Dataset struct {
	Pickers      []models.PickerMove
	Orders       []models.Order
	Slots        []models.Slot
	SKUs         []models.SKU
	SlottingPlan models.Table
	LoadedAt     time.Time
}

// Loader turns raw tables from a Source into typed records.
type Loader struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

// NewLoader wires a loader over the provided source.
func NewLoader(source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, logger: logger, now: time.Now}
}

// Load reads and parses every dataset. Any missing table, missing column,
// malformed number or unparseable timestamp aborts the load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	tables := make(map[string]models.Table, len(Names))
	for _, name := range Names {
		table, err := l.source.Fetch(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s from %s source: %w", name, l.source.Kind(), err)
		}
		tables[name] = table
		l.logger.Debug("dataset fetched", zap.String("dataset", name), zap.Int("rows", len(table.Rows)))
	}

	pickers, err := parsePickers(tables[PickerMovement])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", PickerMovement, err)
	}
	orders, err := parseOrders(tables[OrderTransactions])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", OrderTransactions, err)
	}
	slots, err := parseSlots(tables[WarehouseConstraints])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", WarehouseConstraints, err)
	}
	skus, err := parseSKUs(tables[SKUMaster])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", SKUMaster, err)
	}

	ds := &Dataset{
		Pickers:      pickers,
		Orders:       orders,
		Slots:        slots,
		SKUs:         skus,
		SlottingPlan: tables[FinalSlottingPlan],
		LoadedAt:     l.now(),
	}

	l.logger.Info("datasets loaded",
		zap.String("source", l.source.Kind()),
		zap.Int("pickers", len(ds.Pickers)),
		zap.Int("orders", len(ds.Orders)),
		zap.Int("slots", len(ds.Slots)),
		zap.Int("skus", len(ds.SKUs)),
		zap.Int("slotting_plan_rows", len(ds.SlottingPlan.Rows)))

	return ds, nil
}

type columns map[string]int

func requireColumns(table models.Table, names ...string) (columns, error) {
	index := table.ColumnIndex()
	cols := make(columns, len(names))
	for _, name := range names {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = pos
	}
	return cols, nil
}

// cell returns the value of a column, or "" when the row is short.
func (c columns) cell(row []string, name string) string {
	pos := c[name]
	if pos >= len(row) {
		return ""
	}
	return row[pos]
}

func parsePickers(table models.Table) ([]models.PickerMove, error) {
	cols, err := requireColumns(table, "picker_id", "order_id", "sku_id", "travel_distance_m", "order_timestamp")
	if err != nil {
		return nil, err
	}

	out := make([]models.PickerMove, 0, len(table.Rows))
	for i, row := range table.Rows {
		distance, err := parseOptionalFloat(cols.cell(row, "travel_distance_m"))
		if err != nil {
			return nil, fmt.Errorf("row %d travel_distance_m: %w", i+1, err)
		}
		ts, err := ParseTimestamp(cols.cell(row, "order_timestamp"))
		if err != nil {
			return nil, fmt.Errorf("row %d order_timestamp: %w", i+1, err)
		}
		out = append(out, models.PickerMove{
			PickerID:  cols.cell(row, "picker_id"),
			OrderID:   cols.cell(row, "order_id"),
			SKUID:     cols.cell(row, "sku_id"),
			DistanceM: distance,
			Timestamp: ts,
		})
	}
	return out, nil
}

func parseOrders(table models.Table) ([]models.Order, error) {
	cols, err := requireColumns(table, "order_id", "sku_id", "order_timestamp")
	if err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(table.Rows))
	for i, row := range table.Rows {
		ts, err := ParseTimestamp(cols.cell(row, "order_timestamp"))
		if err != nil {
			return nil, fmt.Errorf("row %d order_timestamp: %w", i+1, err)
		}
		out = append(out, models.Order{
			ID:        cols.cell(row, "order_id"),
			SKUID:     cols.cell(row, "sku_id"),
			Timestamp: ts,
		})
	}
	return out, nil
}

func parseSlots(table models.Table) ([]models.Slot, error) {
	cols, err := requireColumns(table, "slot_id", "temp_zone")
	if err != nil {
		return nil, err
	}

	out := make([]models.Slot, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, models.Slot{
			ID:       cols.cell(row, "slot_id"),
			TempZone: cols.cell(row, "temp_zone"),
		})
	}
	return out, nil
}

func parseSKUs(table models.Table) ([]models.SKU, error) {
	cols, err := requireColumns(table, "sku_id", "category", "weight_kg", "current_slot", "temp_req")
	if err != nil {
		return nil, err
	}

	out := make([]models.SKU, 0, len(table.Rows))
	for i, row := range table.Rows {
		weight, err := parseOptionalFloat(cols.cell(row, "weight_kg"))
		if err != nil {
			return nil, fmt.Errorf("row %d weight_kg: %w", i+1, err)
		}
		out = append(out, models.SKU{
			ID:          cols.cell(row, "sku_id"),
			Category:    cols.cell(row, "category"),
			WeightKg:    weight,
			CurrentSlot: cols.cell(row, "current_slot"),
			TempReq:     cols.cell(row, "temp_req"),
		})
	}
	return out, nil
}

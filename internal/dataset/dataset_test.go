package dataset

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

type memSource struct {
	tables      map[string]models.Table
	fingerprint string
	fetches     int
}

func (m *memSource) Kind() string { return "memory" }

func (m *memSource) Fetch(_ context.Context, name string) (models.Table, error) {
	m.fetches++
	table, ok := m.tables[name]
	if !ok {
		return models.Table{}, fmt.Errorf("%s: %w", name, ErrDatasetNotFound)
	}
	return table, nil
}

func (m *memSource) Fingerprint(context.Context) (string, error) {
	return m.fingerprint, nil
}

func sampleTables() map[string]models.Table {
	return map[string]models.Table{
		PickerMovement: {
			Header: []string{"picker_id", "order_id", "sku_id", "travel_distance_m", "order_timestamp"},
			Rows: [][]string{
				{"P1", "O1", "S1", "12.5", "2024-03-01 19:05:00"},
				{"P2", "O2", "S2", "", "2024-03-01T08:00:00Z"},
			},
		},
		OrderTransactions: {
			Header: []string{"order_id", "sku_id", "order_timestamp"},
			Rows:   [][]string{{"O1", "S1", "2024-03-01 19:05:00"}},
		},
		WarehouseConstraints: {
			Header: []string{"slot_id", "temp_zone"},
			Rows:   [][]string{{"A1", "Ambient"}},
		},
		SKUMaster: {
			Header: []string{"\ufeffsku_id", "category", "weight_kg", "current_slot", "temp_req", "extra"},
			Rows:   [][]string{{"S1", "Dairy", "1.25", "A1", "Chilled", "x"}, {"S2", "Snacks", "", "", "Ambient", "y"}},
		},
		FinalSlottingPlan: {
			Header: []string{"sku_id", "new_slot"},
			Rows:   [][]string{{"S1", "B2"}},
		},
	}
}

func TestLoaderLoad(t *testing.T) {
	src := &memSource{tables: sampleTables()}
	ds, err := NewLoader(src, nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Pickers, 2)
	require.NotNil(t, ds.Pickers[0].DistanceM)
	assert.InDelta(t, 12.5, *ds.Pickers[0].DistanceM, 1e-9)
	assert.Nil(t, ds.Pickers[1].DistanceM)
	assert.Equal(t, 19, ds.Pickers[0].Timestamp.Hour())

	require.Len(t, ds.SKUs, 2)
	assert.Equal(t, "S1", ds.SKUs[0].ID)
	require.NotNil(t, ds.SKUs[0].WeightKg)
	assert.Nil(t, ds.SKUs[1].WeightKg)

	assert.Equal(t, []models.Slot{{ID: "A1", TempZone: "Ambient"}}, ds.Slots)
	assert.Equal(t, sampleTables()[FinalSlottingPlan], ds.SlottingPlan)
}

func TestLoaderFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tables map[string]models.Table)
		target error
	}{
		{
			name:   "missing dataset",
			mutate: func(tables map[string]models.Table) { delete(tables, WarehouseConstraints) },
			target: ErrDatasetNotFound,
		},
		{
			name: "missing column",
			mutate: func(tables map[string]models.Table) {
				tables[OrderTransactions] = models.Table{Header: []string{"order_id", "sku_id"}}
			},
			target: ErrMissingColumn,
		},
		{
			name: "bad timestamp",
			mutate: func(tables map[string]models.Table) {
				tables[OrderTransactions] = models.Table{
					Header: []string{"order_id", "sku_id", "order_timestamp"},
					Rows:   [][]string{{"O1", "S1", "yesterday"}},
				}
			},
		},
		{
			name: "bad weight",
			mutate: func(tables map[string]models.Table) {
				tables[SKUMaster] = models.Table{
					Header: []string{"sku_id", "category", "weight_kg", "current_slot", "temp_req"},
					Rows:   [][]string{{"S1", "Dairy", "heavy", "A1", "Chilled"}},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := sampleTables()
			tt.mutate(tables)
			_, err := NewLoader(&memSource{tables: tables}, nil).Load(context.Background())
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		hour int
	}{
		{"2024-03-01 19:05:00", 19},
		{"2024-03-01 19:05:00.123", 19},
		{"2024-03-01T07:00:00Z", 7},
		{"2024-03-01T23:59:59+05:30", 23},
		{"2024-03-01 06:30", 6},
		{"2024-03-01", 0},
		{"03/01/2024 14:10", 14},
	}
	for _, tt := range tests {
		ts, err := ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hour, ts.Hour(), tt.in)
	}

	_, err := ParseTimestamp("")
	assert.Error(t, err)
	_, err = ParseTimestamp("not a date")
	assert.Error(t, err)
}

func TestCacheReadThrough(t *testing.T) {
	src := &memSource{tables: sampleTables(), fingerprint: "v1"}
	loader := NewLoader(src, nil)
	loader.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	cache := NewCache(loader, src, nil)
	ctx := context.Background()

	first, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Names), src.fetches)

	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, len(Names), src.fetches)

	src.fingerprint = "v2"
	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*len(Names), src.fetches)

	cache.Clear()
	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3*len(Names), src.fetches)
}

func TestCacheDoesNotKeepFailedLoads(t *testing.T) {
	tables := sampleTables()
	delete(tables, SKUMaster)
	src := &memSource{tables: tables}
	cache := NewCache(NewLoader(src, nil), src, nil)

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	src.tables = sampleTables()
	ds, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.SKUs, 2)
}

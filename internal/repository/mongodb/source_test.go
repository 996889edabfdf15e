package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/velocitymart/internal/dataset"
)

type fakeRepo struct {
	docs map[string][]bson.D
}

func (f fakeRepo) ReadCollection(_ context.Context, collection string) ([]bson.D, error) {
	return f.docs[collection], nil
}

func TestDocumentsToTable(t *testing.T) {
	ts := time.Date(2024, 3, 1, 19, 5, 0, 0, time.UTC)
	docs := []bson.D{
		{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "sku_id", Value: "S1"}, {Key: "weight_kg", Value: 1.25}},
		{{Key: "sku_id", Value: "S2"}, {Key: "order_timestamp", Value: primitive.NewDateTimeFromTime(ts)}, {Key: "qty", Value: int32(3)}},
		{{Key: "weight_kg", Value: nil}, {Key: "sku_id", Value: "S3"}},
	}

	table := DocumentsToTable(docs)

	assert.Equal(t, []string{"sku_id", "weight_kg", "order_timestamp", "qty"}, table.Header)
	assert.Equal(t, [][]string{
		{"S1", "1.25", "", ""},
		{"S2", "", "2024-03-01 19:05:00", "3"},
		{"S3", "", "", ""},
	}, table.Rows)
}

func TestSourceFetch(t *testing.T) {
	src := NewSource(fakeRepo{docs: map[string][]bson.D{
		dataset.WarehouseConstraints: {{{Key: "slot_id", Value: "A01"}, {Key: "temp_zone", Value: "Ambient"}}},
	}})

	table, err := src.Fetch(context.Background(), dataset.WarehouseConstraints)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A01", "Ambient"}}, table.Rows)

	_, err = src.Fetch(context.Background(), dataset.SKUMaster)
	assert.True(t, errors.Is(err, dataset.ErrDatasetNotFound))
}

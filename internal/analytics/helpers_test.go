package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

func kg(v float64) *float64 { return &v }

func sku(id, category string, weight *float64, slot, temp string) models.SKU {
	return models.SKU{ID: id, Category: category, WeightKg: weight, CurrentSlot: slot, TempReq: temp}
}

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
}

func order(t *testing.T, id, skuID string, hour int) models.Order {
	return models.Order{ID: id, SKUID: skuID, Timestamp: at(t, hour, 0)}
}

func move(t *testing.T, picker, orderID, skuID string, distance *float64, hour int) models.PickerMove {
	return models.PickerMove{PickerID: picker, OrderID: orderID, SKUID: skuID, DistanceM: distance, Timestamp: at(t, hour, 0)}
}

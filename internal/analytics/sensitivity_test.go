package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

func ordersAt(t *testing.T, hour, n int) []models.Order {
	out := make([]models.Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, order(t, fmt.Sprintf("O-%d-%d", hour, i), "S1", hour))
	}
	return out
}

func pickersAt(t *testing.T, hour, n int) []models.PickerMove {
	out := make([]models.PickerMove, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, move(t, fmt.Sprintf("P%d", i), "O", "S1", kg(10), hour))
	}
	return out
}

func TestSensitivity(t *testing.T) {
	orders := append(ordersAt(t, 8, 5), ordersAt(t, 19, 10)...)
	moves := append(pickersAt(t, 19, 3), pickersAt(t, 19, 2)...)
	moves = append(moves, pickersAt(t, 8, 7)...)

	got := Sensitivity(orders, moves)

	assert.Equal(t, models.Sensitivity{
		Applicable:        true,
		PeakHour:          19,
		PeakOrders:        10,
		ActivePickers:     3,
		OrdersPerPicker:   10.0 / 3.0,
		SpikeOrders:       12,
		RequiredPickers:   4,
		AdditionalPickers: 1,
		Resilience:        models.ResilienceHigh,
	}, got)
}

func TestSensitivityLowResilience(t *testing.T) {
	got := Sensitivity(ordersAt(t, 18, 100), pickersAt(t, 18, 30))

	assert.True(t, got.Applicable)
	assert.Equal(t, 120, got.SpikeOrders)
	assert.Equal(t, 36, got.RequiredPickers)
	assert.Equal(t, 6, got.AdditionalPickers)
	assert.Equal(t, models.ResilienceLow, got.Resilience)
}

func TestSensitivityPeakTieTakesEarliestHour(t *testing.T) {
	orders := append(ordersAt(t, 21, 4), ordersAt(t, 9, 4)...)
	got := Sensitivity(orders, pickersAt(t, 9, 2))
	assert.Equal(t, 9, got.PeakHour)
	assert.True(t, got.Applicable)
}

func TestSensitivityNotApplicable(t *testing.T) {
	got := Sensitivity(ordersAt(t, 19, 10), pickersAt(t, 8, 4))
	assert.False(t, got.Applicable)
	assert.Equal(t, 19, got.PeakHour)
	assert.Equal(t, 10, got.PeakOrders)
	assert.Zero(t, got.ActivePickers)
	assert.Zero(t, got.AdditionalPickers)
	assert.Equal(t, models.ResilienceUnknown, got.Resilience)

	empty := Sensitivity(nil, nil)
	assert.False(t, empty.Applicable)
	assert.Equal(t, models.ResilienceUnknown, empty.Resilience)
}

func TestClassifyResilience(t *testing.T) {
	assert.Equal(t, models.ResilienceHigh, ClassifyResilience(0))
	assert.Equal(t, models.ResilienceHigh, ClassifyResilience(2))
	assert.Equal(t, models.ResilienceMedium, ClassifyResilience(3))
	assert.Equal(t, models.ResilienceMedium, ClassifyResilience(4))
	assert.Equal(t, models.ResilienceLow, ClassifyResilience(5))
}

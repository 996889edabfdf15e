package analytics

import (
	"math"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// SpikeFactor is the projected order volume relative to today's peak.
const SpikeFactor = 1.2

// Sensitivity finds the busiest order hour (earliest on ties), derives the
// orders handled per active picker at that hour and projects how many extra
// pickers a SpikeFactor surge would need. Without orders, or without any
// active picker at the peak hour, the projection is not applicable.
func Sensitivity(orders []models.Order, moves []models.PickerMove) models.Sensitivity {
	result := models.Sensitivity{Resilience: models.ResilienceUnknown}
	if len(orders) == 0 {
		return result
	}

	var perHour [24]int
	for _, o := range orders {
		perHour[o.Timestamp.Hour()]++
	}
	peak := 0
	for h := 1; h < len(perHour); h++ {
		if perHour[h] > perHour[peak] {
			peak = h
		}
	}
	result.PeakHour = peak
	result.PeakOrders = perHour[peak]

	active := make(map[string]struct{})
	for _, m := range moves {
		if m.PickerID != "" && m.Timestamp.Hour() == peak {
			active[m.PickerID] = struct{}{}
		}
	}
	result.ActivePickers = len(active)
	result.SpikeOrders = int(math.Floor(float64(result.PeakOrders) * SpikeFactor))
	if result.ActivePickers == 0 {
		return result
	}

	result.Applicable = true
	result.OrdersPerPicker = float64(result.PeakOrders) / float64(result.ActivePickers)
	result.RequiredPickers = int(math.Ceil(float64(result.SpikeOrders) / result.OrdersPerPicker))
	result.AdditionalPickers = max(0, result.RequiredPickers-result.ActivePickers)
	result.Resilience = ClassifyResilience(result.AdditionalPickers)
	return result
}

// ClassifyResilience maps extra pickers needed to a resilience band.
func ClassifyResilience(additionalPickers int) models.Resilience {
	switch {
	case additionalPickers <= 2:
		return models.ResilienceHigh
	case additionalPickers <= 4:
		return models.ResilienceMedium
	default:
		return models.ResilienceLow
	}
}

package analytics

import (
	"math"
	"sort"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

const shortcutQuantile = 0.95

// ShortcutPickers aggregates distance and orders per picker and flags those
// whose orders-per-meter ratio is strictly above the 95th percentile.
//
// A picker with zero total distance has no defined ratio: it is marked
// ZeroDistance, left out of the percentile, and flagged whenever it logged
// at least one order.
func ShortcutPickers(moves []models.PickerMove) models.ShortcutReport {
	type agg struct {
		distance float64
		orders   int
	}
	byPicker := make(map[string]*agg)
	for _, m := range moves {
		if m.PickerID == "" {
			continue
		}
		a, ok := byPicker[m.PickerID]
		if !ok {
			a = &agg{}
			byPicker[m.PickerID] = a
		}
		if m.DistanceM != nil && !math.IsNaN(*m.DistanceM) {
			a.distance += *m.DistanceM
		}
		if m.OrderID != "" {
			a.orders++
		}
	}

	ids := make([]string, 0, len(byPicker))
	for id := range byPicker {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stats := make([]models.PickerStat, 0, len(ids))
	ratios := make([]float64, 0, len(ids))
	for _, id := range ids {
		a := byPicker[id]
		stat := models.PickerStat{
			PickerID:      id,
			TotalDistance: a.distance,
			TotalOrders:   a.orders,
		}
		if a.distance == 0 {
			stat.ZeroDistance = true
		} else {
			stat.OrdersPerMeter = float64(a.orders) / a.distance
			ratios = append(ratios, stat.OrdersPerMeter)
		}
		stats = append(stats, stat)
	}

	report := models.ShortcutReport{Pickers: stats, Suspicious: []models.PickerStat{}}
	threshold, hasThreshold := Quantile(ratios, shortcutQuantile)
	report.Threshold = threshold

	for _, stat := range stats {
		switch {
		case stat.ZeroDistance:
			if stat.TotalOrders > 0 {
				report.Suspicious = append(report.Suspicious, stat)
			}
		case hasThreshold && stat.OrdersPerMeter > threshold:
			report.Suspicious = append(report.Suspicious, stat)
		}
	}
	report.Count = len(report.Suspicious)
	return report
}

package analytics

import (
	"sort"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// FixedPeakHour is the business evening peak used by the congestion heatmap.
// It is intentionally not derived from data; see Sensitivity for the
// data-driven peak.
const FixedPeakHour = 19

// AisleB is the bottleneck aisle tracked by the traffic penalty and the forklift dead zone.
const AisleB = "B"

// AisleTraffic counts order visits per aisle. Orders whose SKU has no aisle
// are excluded from both the buckets and the total.
func AisleTraffic(orders []models.Order, skus []models.SKU) models.AisleTraffic {
	index := skuIndex(skus)
	counts := make(map[string]int)
	for _, o := range orders {
		if aisle, ok := aisleOf(index, o.SKUID); ok {
			counts[aisle]++
		}
	}

	traffic := models.AisleTraffic{Visits: sortedAisleCounts(counts)}
	for _, c := range traffic.Visits {
		traffic.Total += c.Orders
	}
	if traffic.Total > 0 {
		traffic.PctAisleB = float64(counts[AisleB]) / float64(traffic.Total) * 100
	}
	return traffic
}

// PeakHourCongestion counts orders per aisle during the given hour.
func PeakHourCongestion(orders []models.Order, skus []models.SKU, hour int) models.Congestion {
	index := skuIndex(skus)
	counts := make(map[string]int)
	for _, o := range orders {
		if o.Timestamp.Hour() != hour {
			continue
		}
		if aisle, ok := aisleOf(index, o.SKUID); ok {
			counts[aisle]++
		}
	}
	return models.Congestion{Hour: hour, Aisles: sortedAisleCounts(counts)}
}

func sortedAisleCounts(counts map[string]int) []models.AisleCount {
	out := make([]models.AisleCount, 0, len(counts))
	for aisle, n := range counts {
		out = append(out, models.AisleCount{Aisle: aisle, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Aisle < out[j].Aisle })
	return out
}

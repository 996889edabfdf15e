package analytics

import (
	"sort"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// RoadmapSize is how many SKUs phase 1 re-slots.
const RoadmapSize = 50

// Phase1Roadmap ranks SKUs by order count, highest first, and keeps the top
// RoadmapSize. Equal counts keep ascending sku_id order.
func Phase1Roadmap(orders []models.Order, skus []models.SKU) []models.RoadmapItem {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.SKUID != "" {
			counts[o.SKUID]++
		}
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool { return counts[ids[i]] > counts[ids[j]] })

	if len(ids) > RoadmapSize {
		ids = ids[:RoadmapSize]
	}

	index := skuIndex(skus)
	items := make([]models.RoadmapItem, 0, len(ids))
	for _, id := range ids {
		sku, known := index[id]
		if !known {
			sku = models.SKU{ID: id}
		}
		items = append(items, models.RoadmapItem{
			SKUID:      id,
			OrderCount: counts[id],
			Known:      known,
			SKU:        sku,
		})
	}
	return items
}

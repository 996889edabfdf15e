package analytics

import (
	"sort"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// GhostInventory returns the SKUs whose current slot is not a known warehouse
// slot. An empty slot code means the SKU is unassigned and is not a ghost.
func GhostInventory(skus []models.SKU, slots []models.Slot) models.GhostInventory {
	valid := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		valid[s.ID] = struct{}{}
	}

	ghosts := make(map[string]struct{})
	result := models.GhostInventory{GhostSlots: []string{}, SKUs: []models.SKU{}}
	for _, sku := range skus {
		if sku.CurrentSlot == "" {
			continue
		}
		if _, ok := valid[sku.CurrentSlot]; ok {
			continue
		}
		ghosts[sku.CurrentSlot] = struct{}{}
		result.SKUs = append(result.SKUs, sku)
	}

	for slot := range ghosts {
		result.GhostSlots = append(result.GhostSlots, slot)
	}
	sort.Strings(result.GhostSlots)
	return result
}

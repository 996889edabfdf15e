package analytics

import "github.com/mamadbah2/velocitymart/internal/domain/models"

// SpoilageRisk joins each SKU to its slot and reports SKUs whose required
// temperature differs from the slot's zone. A missing requirement, an unknown
// slot or a slot without a zone all count as violations.
func SpoilageRisk(skus []models.SKU, slots []models.Slot) models.SpoilageRisk {
	zones := make(map[string]string, len(slots))
	for _, s := range slots {
		if _, ok := zones[s.ID]; !ok {
			zones[s.ID] = s.TempZone
		}
	}

	result := models.SpoilageRisk{Violations: []models.TempViolation{}}
	for _, sku := range skus {
		zone, found := zones[sku.CurrentSlot]
		if found && zone != "" && sku.TempReq != "" && sku.TempReq == zone {
			continue
		}
		result.Violations = append(result.Violations, models.TempViolation{SKU: sku, TempZone: zone})
		if sku.WeightKg != nil {
			result.WeightAtRisk += *sku.WeightKg
		}
	}
	result.Count = len(result.Violations)
	return result
}

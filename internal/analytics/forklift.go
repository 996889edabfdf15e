package analytics

import (
	"sort"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// ForkliftSafetyLimit is the number of pickers that can share the forklift aisle safely.
const ForkliftSafetyLimit = 2

// ForkliftDeadZone counts distinct pickers working aisle B for every hour
// that has activity there.
func ForkliftDeadZone(moves []models.PickerMove, skus []models.SKU) models.ForkliftDeadZone {
	index := skuIndex(skus)
	pickersByHour := make(map[int]map[string]struct{})
	for _, m := range moves {
		if m.PickerID == "" {
			continue
		}
		aisle, ok := aisleOf(index, m.SKUID)
		if !ok || aisle != AisleB {
			continue
		}
		hour := m.Timestamp.Hour()
		set, ok := pickersByHour[hour]
		if !ok {
			set = make(map[string]struct{})
			pickersByHour[hour] = set
		}
		set[m.PickerID] = struct{}{}
	}

	zone := models.ForkliftDeadZone{
		Aisle:       AisleB,
		SafetyLimit: ForkliftSafetyLimit,
		Hours:       make([]models.HourDensity, 0, len(pickersByHour)),
	}
	for hour, set := range pickersByHour {
		zone.Hours = append(zone.Hours, models.HourDensity{
			Hour:      hour,
			Pickers:   len(set),
			OverLimit: len(set) > ForkliftSafetyLimit,
		})
	}
	sort.Slice(zone.Hours, func(i, j int) bool { return zone.Hours[i].Hour < zone.Hours[j].Hour })
	return zone
}

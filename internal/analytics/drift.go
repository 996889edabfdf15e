package analytics

import (
	"math"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// DriftLimits are the absolute domain bounds for a plausible SKU weight in kg.
type DriftLimits struct {
	Upper float64
	Lower float64
}

// DefaultDriftLimits are 25 kg and 10 g.
var DefaultDriftLimits = DriftLimits{Upper: 25, Lower: 0.01}

const (
	driftUpperQuantile = 0.995
	driftLowerQuantile = 0.005
)

// DecimalDrift flags SKUs whose weight falls outside the adaptive band
// [max(limits.Lower, q0.5%), min(limits.Upper, q99.5%)]. SKUs without a weight
// are never flagged.
func DecimalDrift(skus []models.SKU, limits DriftLimits) models.DecimalDrift {
	weights := make([]float64, 0, len(skus))
	for _, sku := range skus {
		if sku.WeightKg != nil {
			weights = append(weights, *sku.WeightKg)
		}
	}

	result := models.DecimalDrift{Flagged: []models.DriftRow{}}
	pHigh, ok := Quantile(weights, driftUpperQuantile)
	if !ok {
		result.UpperBound = limits.Upper
		result.LowerBound = limits.Lower
		return result
	}
	pLow, _ := Quantile(weights, driftLowerQuantile)

	result.UpperBound = math.Min(limits.Upper, pHigh)
	result.LowerBound = math.Max(limits.Lower, pLow)

	for _, sku := range skus {
		if sku.WeightKg == nil {
			continue
		}
		w := *sku.WeightKg
		if w > result.UpperBound || w < result.LowerBound {
			result.Flagged = append(result.Flagged, models.DriftRow{
				SKUID:    sku.ID,
				Category: sku.Category,
				WeightKg: w,
			})
		}
	}
	result.Count = len(result.Flagged)
	return result
}

package analytics

import (
	"math"
	"strconv"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Penalty caps. With every penalty maxed out the score bottoms out at 40.
const (
	maxTempPenalty     = 25.0
	maxShortcutPenalty = 15.0
	maxAisleBPenalty   = 20.0

	tempPenaltyPerViolation  = 0.05
	shortcutPenaltyPerPicker = 5.0
)

// ChaosScore combines the temperature, shortcut and aisle-B penalties into a
// 40 to 100 health index rounded to one decimal. Negative inputs count as zero.
func ChaosScore(violations, suspiciousPickers int, pctAisleB float64) models.ChaosScore {
	temp := math.Min(maxTempPenalty, float64(max(violations, 0))*tempPenaltyPerViolation)
	shortcut := math.Min(maxShortcutPenalty, float64(max(suspiciousPickers, 0))*shortcutPenaltyPerPicker)
	if math.IsNaN(pctAisleB) || pctAisleB < 0 {
		pctAisleB = 0
	}
	aisleB := math.Min(maxAisleBPenalty, pctAisleB)

	score := roundTenths(100 - temp - shortcut - aisleB)

	return models.ChaosScore{
		Score:           score,
		TempPenalty:     temp,
		ShortcutPenalty: shortcut,
		AisleBPenalty:   aisleB,
	}
}

// roundTenths rounds the exact binary value of x to one decimal, ties to even.
// 99.85 is stored just below the tie, so it rounds to 99.8.
func roundTenths(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}

package reporting

import (
	"fmt"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Section names used by alerts and the HTTP surface.
const (
	SectionDrift       = "decimal_drift"
	SectionShortcut    = "shortcut"
	SectionGhost       = "ghost_inventory"
	SectionSpoilage    = "spoilage"
	SectionForklift    = "forklift"
	SectionSensitivity = "sensitivity"
)

// BuildAlerts turns the computed sections into user-facing banners.
func BuildAlerts(d models.Dashboard) []models.Alert {
	alerts := make([]models.Alert, 0, 6)

	if d.Drift.Count > 0 {
		alerts = append(alerts, models.Alert{Section: SectionDrift, Level: models.AlertError,
			Message: fmt.Sprintf("%d SKUs flagged for potential decimal drift", d.Drift.Count)})
	} else {
		alerts = append(alerts, models.Alert{Section: SectionDrift, Level: models.AlertSuccess,
			Message: "No decimal drift detected under adaptive domain sanity rules"})
	}

	if d.Shortcut.Count > 0 {
		alerts = append(alerts, models.Alert{Section: SectionShortcut, Level: models.AlertError,
			Message: fmt.Sprintf("%d suspicious picker(s) detected", d.Shortcut.Count)})
	} else {
		alerts = append(alerts, models.Alert{Section: SectionShortcut, Level: models.AlertSuccess,
			Message: "No suspicious pickers detected"})
	}

	if len(d.Ghost.SKUs) > 0 {
		alerts = append(alerts, models.Alert{Section: SectionGhost, Level: models.AlertError,
			Message: fmt.Sprintf("Ghost inventory detected: %d SKUs in %d unknown slots", len(d.Ghost.SKUs), len(d.Ghost.GhostSlots))})
	} else {
		alerts = append(alerts, models.Alert{Section: SectionGhost, Level: models.AlertSuccess,
			Message: "No ghost inventory detected"})
	}

	if d.Spoilage.Count > 0 {
		alerts = append(alerts, models.Alert{Section: SectionSpoilage, Level: models.AlertWarning,
			Message: fmt.Sprintf("%d SKUs violate temperature zones, %.1f kg at risk", d.Spoilage.Count, d.Spoilage.WeightAtRisk)})
	}

	over := 0
	for _, h := range d.Forklift.Hours {
		if h.OverLimit {
			over++
		}
	}
	if over > 0 {
		alerts = append(alerts, models.Alert{Section: SectionForklift, Level: models.AlertWarning,
			Message: fmt.Sprintf("Aisle %s exceeds the %d-picker forklift limit in %d hour(s)", d.Forklift.Aisle, d.Forklift.SafetyLimit, over)})
	}

	alerts = append(alerts, sensitivityAlert(d.Sensitivity))
	return alerts
}

func sensitivityAlert(s models.Sensitivity) models.Alert {
	a := models.Alert{Section: SectionSensitivity}
	switch s.Resilience {
	case models.ResilienceHigh:
		a.Level, a.Message = models.AlertSuccess, "HIGH RESILIENCE"
	case models.ResilienceMedium:
		a.Level, a.Message = models.AlertWarning, "MEDIUM RESILIENCE"
	case models.ResilienceLow:
		a.Level, a.Message = models.AlertError, "LOW RESILIENCE"
	default:
		a.Level = models.AlertWarning
		if s.PeakOrders == 0 {
			a.Message = "Spike projection not applicable: no orders recorded"
		} else {
			a.Message = fmt.Sprintf("Spike projection not applicable: no active pickers at %02d:00", s.PeakHour)
		}
	}
	return a
}

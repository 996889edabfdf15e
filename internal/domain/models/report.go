package models

import "time"

// AlertLevel is the severity a presentation layer should use for a banner.
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

// Alert is a domain finding surfaced to the user. It is never a failure.
type Alert struct {
	Section string     `json:"section"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// DriftRow is a SKU flagged for a suspicious weight.
type DriftRow struct {
	SKUID    string  `json:"sku_id"`
	Category string  `json:"category"`
	WeightKg float64 `json:"weight_kg"`
}

// DecimalDrift is the result of the adaptive weight band check.
type DecimalDrift struct {
	UpperBound float64    `json:"upper_bound"`
	LowerBound float64    `json:"lower_bound"`
	Flagged    []DriftRow `json:"flagged"`
	Count      int        `json:"count"`
}

// PickerStat aggregates one picker's movement log.
type PickerStat struct {
	PickerID       string  `json:"picker_id"`
	TotalDistance  float64 `json:"total_distance"`
	TotalOrders    int     `json:"total_orders"`
	OrdersPerMeter float64 `json:"orders_per_meter"`
	// ZeroDistance marks pickers whose ratio is undefined; OrdersPerMeter is 0 for them.
	ZeroDistance bool `json:"zero_distance"`
}

// ShortcutReport lists pickers whose orders-per-meter ratio is anomalously high.
type ShortcutReport struct {
	Threshold  float64      `json:"threshold"`
	Pickers    []PickerStat `json:"pickers"`
	Suspicious []PickerStat `json:"suspicious"`
	Count      int          `json:"count"`
}

// GhostInventory lists SKUs assigned to slots that do not exist.
type GhostInventory struct {
	GhostSlots []string `json:"ghost_slots"`
	SKUs       []SKU    `json:"skus"`
}

// TempViolation is a SKU stored outside its required temperature zone.
type TempViolation struct {
	SKU      SKU    `json:"sku"`
	TempZone string `json:"temp_zone"`
}

// SpoilageRisk summarizes temperature zone violations.
type SpoilageRisk struct {
	Violations   []TempViolation `json:"violations"`
	Count        int             `json:"count"`
	WeightAtRisk float64         `json:"weight_at_risk_kg"`
}

// AisleCount is an order count for one aisle.
type AisleCount struct {
	Aisle  string `json:"aisle"`
	Orders int    `json:"orders"`
}

// AisleTraffic holds global visit counts per aisle.
type AisleTraffic struct {
	Visits    []AisleCount `json:"visits"`
	Total     int          `json:"total"`
	PctAisleB float64      `json:"pct_aisle_b"`
}

// Congestion is the per-aisle order count at the fixed business peak hour.
type Congestion struct {
	Hour   int          `json:"hour"`
	Aisles []AisleCount `json:"aisles"`
}

// HourDensity is the number of distinct pickers in the dead-zone aisle for one hour.
type HourDensity struct {
	Hour      int  `json:"hour"`
	Pickers   int  `json:"pickers"`
	OverLimit bool `json:"over_limit"`
}

// ForkliftDeadZone describes picker density in the forklift aisle across the day.
type ForkliftDeadZone struct {
	Aisle       string        `json:"aisle"`
	SafetyLimit int           `json:"safety_limit"`
	Hours       []HourDensity `json:"hours"`
}

// ChaosScore is the composite warehouse health index.
type ChaosScore struct {
	Score           float64 `json:"score"`
	TempPenalty     float64 `json:"temp_penalty"`
	ShortcutPenalty float64 `json:"shortcut_penalty"`
	AisleBPenalty   float64 `json:"aisle_b_penalty"`
}

// RoadmapItem is one SKU in the phase-1 re-slotting list.
type RoadmapItem struct {
	SKUID      string `json:"sku_id"`
	OrderCount int    `json:"order_count"`
	// Known is false when the SKU is absent from the SKU master.
	Known bool `json:"known"`
	SKU   SKU  `json:"sku"`
}

// Resilience classifies how well staffing absorbs an order spike.
type Resilience string

const (
	ResilienceHigh    Resilience = "high"
	ResilienceMedium  Resilience = "medium"
	ResilienceLow     Resilience = "low"
	ResilienceUnknown Resilience = "unknown"
)

// Sensitivity projects the staffing impact of an order spike at the busiest hour.
type Sensitivity struct {
	Applicable        bool       `json:"applicable"`
	PeakHour          int        `json:"peak_hour"`
	PeakOrders        int        `json:"peak_orders"`
	ActivePickers     int        `json:"active_pickers"`
	OrdersPerPicker   float64    `json:"orders_per_picker"`
	SpikeOrders       int        `json:"spike_orders"`
	RequiredPickers   int        `json:"required_pickers"`
	AdditionalPickers int        `json:"additional_pickers"`
	Resilience        Resilience `json:"resilience"`
}

// Header carries the static page texts.
type Header struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Footer   string `json:"footer"`
}

// Dashboard is every computed section of one report run.
type Dashboard struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Header      Header           `json:"header"`
	Drift       DecimalDrift     `json:"decimal_drift"`
	Shortcut    ShortcutReport   `json:"shortcut"`
	Ghost       GhostInventory   `json:"ghost_inventory"`
	Traffic     AisleTraffic     `json:"aisle_traffic"`
	Congestion  Congestion       `json:"congestion"`
	Spoilage    SpoilageRisk     `json:"spoilage"`
	Forklift    ForkliftDeadZone `json:"forklift"`
	Chaos       ChaosScore       `json:"chaos"`
	Roadmap     []RoadmapItem    `json:"roadmap"`
	Sensitivity Sensitivity      `json:"sensitivity"`
	PlanPreview Table            `json:"slotting_plan_preview"`
	PlanRows    int              `json:"slotting_plan_rows"`
	Alerts      []Alert          `json:"alerts"`
}

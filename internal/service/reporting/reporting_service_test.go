package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

type staticProvider struct {
	ds  *dataset.Dataset
	err error
}

func (p staticProvider) Get(context.Context) (*dataset.Dataset, error) { return p.ds, p.err }

type captureRecorder struct {
	seen []models.Dashboard
}

func (r *captureRecorder) Observe(d models.Dashboard) { r.seen = append(r.seen, d) }

func kg(v float64) *float64 { return &v }

func ts(hour int) time.Time { return time.Date(2024, 3, 1, hour, 5, 0, 0, time.UTC) }

func fixture() *dataset.Dataset {
	plan := models.Table{Header: []string{"sku_id", "proposed_slot"}}
	for i := 0; i < 25; i++ {
		plan.Rows = append(plan.Rows, []string{"S1", "A01"})
	}
	return &dataset.Dataset{
		SKUs: []models.SKU{
			{ID: "S1", Category: "Dairy", WeightKg: kg(1.2), CurrentSlot: "B01", TempReq: "Chilled"},
			{ID: "S2", Category: "Snacks", WeightKg: kg(0.4), CurrentSlot: "A01", TempReq: "Ambient"},
			{ID: "S3", Category: "Frozen", WeightKg: kg(2.5), CurrentSlot: "Z99", TempReq: "Frozen"},
		},
		Slots: []models.Slot{
			{ID: "A01", TempZone: "Ambient"},
			{ID: "B01", TempZone: "Chilled"},
			{ID: "B02", TempZone: "Frozen"},
		},
		Orders: []models.Order{
			{ID: "O1", SKUID: "S1", Timestamp: ts(19)},
			{ID: "O2", SKUID: "S2", Timestamp: ts(19)},
			{ID: "O3", SKUID: "S3", Timestamp: ts(8)},
			{ID: "O4", SKUID: "S1", Timestamp: ts(19)},
		},
		Pickers: []models.PickerMove{
			{PickerID: "PK01", OrderID: "O1", SKUID: "S1", DistanceM: kg(42.5), Timestamp: ts(19)},
			{PickerID: "PK01", OrderID: "O2", SKUID: "S2", DistanceM: kg(30), Timestamp: ts(19)},
			{PickerID: "PK02", OrderID: "O3", SKUID: "S3", DistanceM: kg(120), Timestamp: ts(8)},
			{PickerID: "PK03", OrderID: "O4", SKUID: "S1", DistanceM: kg(0), Timestamp: ts(19)},
		},
		SlottingPlan: plan,
	}
}

func TestCompute(t *testing.T) {
	d := Compute(fixture())

	assert.Equal(t, "VelocityMart Operations Dashboard", d.Header.Title)
	assert.Equal(t, 2, d.Drift.Count)
	assert.Equal(t, 2, d.Shortcut.Count)
	assert.Equal(t, []string{"Z99"}, d.Ghost.GhostSlots)

	assert.InDelta(t, 50.0, d.Traffic.PctAisleB, 1e-9)
	assert.Equal(t, []models.AisleCount{{Aisle: "A", Orders: 1}, {Aisle: "B", Orders: 2}}, d.Congestion.Aisles)
	assert.Equal(t, 1, d.Spoilage.Count)
	assert.InDelta(t, 2.5, d.Spoilage.WeightAtRisk, 1e-9)
	assert.Equal(t, []models.HourDensity{{Hour: 19, Pickers: 2}}, d.Forklift.Hours)

	assert.InDelta(t, 70.0, d.Chaos.Score, 1e-9)
	assert.InDelta(t, 20.0, d.Chaos.AisleBPenalty, 1e-9)

	require.Len(t, d.Roadmap, 3)
	assert.Equal(t, "S1", d.Roadmap[0].SKUID)
	assert.Equal(t, 2, d.Roadmap[0].OrderCount)

	assert.True(t, d.Sensitivity.Applicable)
	assert.Equal(t, 19, d.Sensitivity.PeakHour)
	assert.Equal(t, 2, d.Sensitivity.ActivePickers)
	assert.Equal(t, 0, d.Sensitivity.AdditionalPickers)
	assert.Equal(t, models.ResilienceHigh, d.Sensitivity.Resilience)

	assert.Len(t, d.PlanPreview.Rows, PreviewRows)
	assert.Equal(t, 25, d.PlanRows)
}

func TestBuildDashboard(t *testing.T) {
	rec := &captureRecorder{}
	svc := NewService(staticProvider{ds: fixture()}, rec, nil)
	fixed := time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "run-1" }

	d, err := svc.BuildDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", d.RunID)
	assert.Equal(t, fixed, d.GeneratedAt)
	require.Len(t, rec.seen, 1)
	assert.Equal(t, d.Chaos, rec.seen[0].Chaos)
}

func TestBuildDashboardLoadError(t *testing.T) {
	boom := errors.New("file missing")
	svc := NewService(staticProvider{err: boom}, nil, nil)

	_, err := svc.BuildDashboard(context.Background())
	assert.True(t, errors.Is(err, boom))

	_, err = svc.SlottingPlan(context.Background())
	assert.True(t, errors.Is(err, boom))
}

func TestSlottingPlanIsUntouched(t *testing.T) {
	ds := fixture()
	svc := NewService(staticProvider{ds: ds}, nil, nil)

	plan, err := svc.SlottingPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds.SlottingPlan, plan)
}

func TestBuildAlerts(t *testing.T) {
	alerts := BuildAlerts(Compute(fixture()))

	levels := make(map[string]models.AlertLevel, len(alerts))
	for _, a := range alerts {
		levels[a.Section] = a.Level
	}
	assert.Equal(t, map[string]models.AlertLevel{
		SectionDrift:       models.AlertError,
		SectionShortcut:    models.AlertError,
		SectionGhost:       models.AlertError,
		SectionSpoilage:    models.AlertWarning,
		SectionSensitivity: models.AlertSuccess,
	}, levels)
}

func TestBuildAlertsCleanRun(t *testing.T) {
	alerts := BuildAlerts(models.Dashboard{
		Sensitivity: models.Sensitivity{Resilience: models.ResilienceUnknown},
		Forklift:    models.ForkliftDeadZone{Aisle: "B", SafetyLimit: 2, Hours: []models.HourDensity{{Hour: 19, Pickers: 3, OverLimit: true}}},
	})

	require.Len(t, alerts, 5)
	assert.Equal(t, models.AlertSuccess, alerts[0].Level)
	assert.Equal(t, "No decimal drift detected under adaptive domain sanity rules", alerts[0].Message)
	assert.Equal(t, models.AlertSuccess, alerts[1].Level)
	assert.Equal(t, models.AlertSuccess, alerts[2].Level)
	assert.Equal(t, SectionForklift, alerts[3].Section)
	assert.Equal(t, models.AlertWarning, alerts[4].Level)
}

func TestSensitivityAlertNotApplicable(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity models.Sensitivity
		want        string
	}{
		{
			name:        "no orders",
			sensitivity: models.Sensitivity{Resilience: models.ResilienceUnknown},
			want:        "Spike projection not applicable: no orders recorded",
		},
		{
			name:        "no pickers at peak",
			sensitivity: models.Sensitivity{Resilience: models.ResilienceUnknown, PeakHour: 8, PeakOrders: 4},
			want:        "Spike projection not applicable: no active pickers at 08:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sensitivityAlert(tt.sensitivity)
			assert.Equal(t, models.AlertWarning, a.Level)
			assert.Equal(t, tt.want, a.Message)
		})
	}
}

func TestFormatDigest(t *testing.T) {
	d := Compute(fixture())
	d.GeneratedAt = time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC)

	digest := FormatDigest(d)

	assert.Contains(t, digest, "VelocityMart Operations Dashboard (2024-03-02 06:00)")
	assert.Contains(t, digest, "Chaos score: 70.0/100 (temp -0.1, shortcut -10.0, aisle B -20.0)")
	assert.Contains(t, digest, "Ghost SKUs: 1")
	assert.Contains(t, digest, "Peak 19:00: 3 orders, +20% spike needs 0 extra picker(s), HIGH resilience")
	assert.Contains(t, digest, "Move first: S1 (2), S2 (1), S3 (1)")
	assert.NotContains(t, digest, "\n\n")
}

func TestFormatPenalty(t *testing.T) {
	assert.Equal(t, "-5.0", FormatPenalty(5.000000000000001))
	assert.Equal(t, "65.0", FormatScore(65))
}

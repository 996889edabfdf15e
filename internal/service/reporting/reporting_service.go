package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/analytics"
	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// PreviewRows is how many slotting plan rows the dashboard shows inline.
const PreviewRows = 20

var pageHeader = models.Header{
	Title:    "VelocityMart Operations Dashboard",
	Subtitle: "Bangalore Dark Store – Real-Time Operations Intelligence",
	Footer:   "VelocityMart | Bangalore Dark Store | DATAVERSE Challenge",
}

// DatasetProvider returns the loaded inputs, typically through dataset.Cache.
type DatasetProvider interface {
	Get(ctx context.Context) (*dataset.Dataset, error)
}

// Recorder receives every computed dashboard, e.g. to update metrics.
type Recorder interface {
	Observe(d models.Dashboard)
}

// Service computes the operations dashboard from the current datasets.
type Service struct {
	data     DatasetProvider
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a new reporting service instance. recorder may be nil.
func NewService(data DatasetProvider, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		data:     data,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// BuildDashboard loads the datasets and recomputes every section.
func (s *Service) BuildDashboard(ctx context.Context) (*models.Dashboard, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	d := Compute(ds)
	d.RunID = s.newID()
	d.GeneratedAt = s.now()

	s.logAlerts(d)
	if s.recorder != nil {
		s.recorder.Observe(d)
	}

	s.logger.Info("dashboard computed",
		zap.String("run_id", d.RunID),
		zap.Float64("chaos_score", d.Chaos.Score),
		zap.Int("alerts", len(d.Alerts)))
	return &d, nil
}

// SlottingPlan returns the loaded slotting plan table untouched.
func (s *Service) SlottingPlan(ctx context.Context) (models.Table, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return models.Table{}, fmt.Errorf("load datasets: %w", err)
	}
	return ds.SlottingPlan, nil
}

// Compute derives every dashboard section from the loaded datasets.
func Compute(ds *dataset.Dataset) models.Dashboard {
	d := models.Dashboard{Header: pageHeader}

	d.Drift = analytics.DecimalDrift(ds.SKUs, analytics.DefaultDriftLimits)
	d.Shortcut = analytics.ShortcutPickers(ds.Pickers)
	d.Ghost = analytics.GhostInventory(ds.SKUs, ds.Slots)

	d.Traffic = analytics.AisleTraffic(ds.Orders, ds.SKUs)
	d.Congestion = analytics.PeakHourCongestion(ds.Orders, ds.SKUs, analytics.FixedPeakHour)
	d.Spoilage = analytics.SpoilageRisk(ds.SKUs, ds.Slots)
	d.Forklift = analytics.ForkliftDeadZone(ds.Pickers, ds.SKUs)

	d.Chaos = analytics.ChaosScore(d.Spoilage.Count, d.Shortcut.Count, d.Traffic.PctAisleB)
	d.Roadmap = analytics.Phase1Roadmap(ds.Orders, ds.SKUs)
	d.Sensitivity = analytics.Sensitivity(ds.Orders, ds.Pickers)

	d.PlanPreview = ds.SlottingPlan.Head(PreviewRows)
	d.PlanRows = len(ds.SlottingPlan.Rows)

	d.Alerts = BuildAlerts(d)
	return d
}

func (s *Service) logAlerts(d models.Dashboard) {
	for _, a := range d.Alerts {
		fields := []zap.Field{zap.String("run_id", d.RunID), zap.String("section", a.Section)}
		switch a.Level {
		case models.AlertError:
			s.logger.Error(a.Message, fields...)
		case models.AlertWarning:
			s.logger.Warn(a.Message, fields...)
		default:
			s.logger.Info(a.Message, fields...)
		}
	}
}

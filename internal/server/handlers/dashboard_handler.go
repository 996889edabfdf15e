package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/narrative"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
)

// ReportService is the read side the dashboard handlers depend on.
type ReportService interface {
	BuildDashboard(ctx context.Context) (*models.Dashboard, error)
	SlottingPlan(ctx context.Context) (models.Table, error)
}

// Narrator produces the optional board narrative.
type Narrator interface {
	Generate(ctx context.Context, d models.Dashboard) (string, error)
}

// Invalidator drops cached inputs.
type Invalidator interface {
	Clear()
}

// DashboardHandler serves the dashboard sections as JSON.
type DashboardHandler struct {
	svc      ReportService
	narrator Narrator
	cache    Invalidator
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter. narrator may be nil.
func NewDashboardHandler(svc ReportService, narrator Narrator, cache Invalidator, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, narrator: narrator, cache: cache, logger: logger}
}

type sectionResponse struct {
	RunID  string         `json:"run_id"`
	Data   any            `json:"data"`
	Alerts []models.Alert `json:"alerts"`
}

// Dashboard returns every section in one payload.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	d, ok := h.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

// Drift returns the decimal drift audit.
func (h *DashboardHandler) Drift(c *gin.Context) {
	h.section(c, reporting.SectionDrift, func(d *models.Dashboard) any { return d.Drift })
}

// Shortcut returns the picker efficiency audit.
func (h *DashboardHandler) Shortcut(c *gin.Context) {
	h.section(c, reporting.SectionShortcut, func(d *models.Dashboard) any { return d.Shortcut })
}

// Ghost returns SKUs stored in slots unknown to the warehouse.
func (h *DashboardHandler) Ghost(c *gin.Context) {
	h.section(c, reporting.SectionGhost, func(d *models.Dashboard) any { return d.Ghost })
}

// Congestion returns aisle traffic and the peak-hour heatmap.
func (h *DashboardHandler) Congestion(c *gin.Context) {
	h.section(c, "", func(d *models.Dashboard) any {
		return gin.H{"traffic": d.Traffic, "peak_hour": d.Congestion}
	})
}

// Spoilage returns temperature zone violations.
func (h *DashboardHandler) Spoilage(c *gin.Context) {
	h.section(c, reporting.SectionSpoilage, func(d *models.Dashboard) any { return d.Spoilage })
}

// Forklift returns the aisle B dead-zone density.
func (h *DashboardHandler) Forklift(c *gin.Context) {
	h.section(c, reporting.SectionForklift, func(d *models.Dashboard) any { return d.Forklift })
}

// Chaos returns the score with formatted tiles.
func (h *DashboardHandler) Chaos(c *gin.Context) {
	h.section(c, "", func(d *models.Dashboard) any {
		return gin.H{
			"score": d.Chaos,
			"tiles": gin.H{
				"score":            reporting.FormatScore(d.Chaos.Score) + "/100",
				"temp_penalty":     reporting.FormatPenalty(d.Chaos.TempPenalty),
				"shortcut_penalty": reporting.FormatPenalty(d.Chaos.ShortcutPenalty),
				"aisle_b_penalty":  reporting.FormatPenalty(d.Chaos.AisleBPenalty),
			},
		}
	})
}

// Roadmap returns the phase-1 re-slotting list.
func (h *DashboardHandler) Roadmap(c *gin.Context) {
	h.section(c, "", func(d *models.Dashboard) any { return d.Roadmap })
}

// Sensitivity returns the +20% spike projection.
func (h *DashboardHandler) Sensitivity(c *gin.Context) {
	h.section(c, reporting.SectionSensitivity, func(d *models.Dashboard) any { return d.Sensitivity })
}

// Narrative returns the generated board pitch.
func (h *DashboardHandler) Narrative(c *gin.Context) {
	if h.narrator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "narrative disabled"})
		return
	}

	d, ok := h.build(c)
	if !ok {
		return
	}

	text, err := h.narrator.Generate(c.Request.Context(), *d)
	if err != nil {
		if errors.Is(err, narrative.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "narrative disabled"})
			return
		}
		h.logger.Error("failed generating narrative", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate narrative"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run_id": d.RunID, "narrative": text})
}

// SlottingPlan returns the plan preview and its total size.
func (h *DashboardHandler) SlottingPlan(c *gin.Context) {
	plan, err := h.svc.SlottingPlan(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading slotting plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load datasets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview":    plan.Head(reporting.PreviewRows),
		"total_rows": len(plan.Rows),
	})
}

// ClearCache forces the next request to reload every dataset.
func (h *DashboardHandler) ClearCache(c *gin.Context) {
	h.cache.Clear()
	h.logger.Info("dataset cache cleared on request")
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) build(c *gin.Context) (*models.Dashboard, bool) {
	d, err := h.svc.BuildDashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load datasets"})
		return nil, false
	}
	return d, true
}

func (h *DashboardHandler) section(c *gin.Context, name string, pick func(d *models.Dashboard) any) {
	d, ok := h.build(c)
	if !ok {
		return
	}

	alerts := []models.Alert{}
	for _, a := range d.Alerts {
		if name != "" && a.Section == name {
			alerts = append(alerts, a)
		}
	}

	c.JSON(http.StatusOK, sectionResponse{RunID: d.RunID, Data: pick(d), Alerts: alerts})
}

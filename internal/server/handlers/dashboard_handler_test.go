package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
)

type fakeReports struct {
	dashboard *models.Dashboard
	plan      models.Table
	err       error
}

func (f fakeReports) BuildDashboard(context.Context) (*models.Dashboard, error) {
	return f.dashboard, f.err
}

func (f fakeReports) SlottingPlan(context.Context) (models.Table, error) { return f.plan, f.err }

type fakeNarrator struct {
	text string
	err  error
}

func (f fakeNarrator) Generate(context.Context, models.Dashboard) (string, error) {
	return f.text, f.err
}

type countingCache struct{ cleared int }

func (c *countingCache) Clear() { c.cleared++ }

func init() { gin.SetMode(gin.TestMode) }

func call(h gin.HandlerFunc, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", nil)
	h(c)
	return w
}

func sampleDashboard() *models.Dashboard {
	return &models.Dashboard{
		RunID: "run-42",
		Chaos: models.ChaosScore{Score: 65, TempPenalty: 5, ShortcutPenalty: 10, AisleBPenalty: 20},
		Drift: models.DecimalDrift{Count: 1},
		Alerts: []models.Alert{
			{Section: reporting.SectionDrift, Level: models.AlertError, Message: "drift"},
			{Section: reporting.SectionShortcut, Level: models.AlertSuccess, Message: "ok"},
		},
	}
}

func TestDriftFiltersAlerts(t *testing.T) {
	h := NewDashboardHandler(fakeReports{dashboard: sampleDashboard()}, nil, &countingCache{}, nil)

	w := call(h.Drift, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		RunID  string         `json:"run_id"`
		Alerts []models.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "run-42", body.RunID)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "drift", body.Alerts[0].Message)
}

func TestChaosTiles(t *testing.T) {
	h := NewDashboardHandler(fakeReports{dashboard: sampleDashboard()}, nil, &countingCache{}, nil)

	w := call(h.Chaos, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Tiles map[string]string `json:"tiles"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "65.0/100", body.Data.Tiles["score"])
	assert.Equal(t, "-20.0", body.Data.Tiles["aisle_b_penalty"])
}

func TestLoadFailureIs500(t *testing.T) {
	h := NewDashboardHandler(fakeReports{err: errors.New("no such file")}, nil, &countingCache{}, nil)

	assert.Equal(t, http.StatusInternalServerError, call(h.Dashboard, http.MethodGet).Code)
	assert.Equal(t, http.StatusInternalServerError, call(h.SlottingPlan, http.MethodGet).Code)

	ex := NewExportHandler(fakeReports{err: errors.New("no such file")}, nil)
	assert.Equal(t, http.StatusInternalServerError, call(ex.CSV, http.MethodGet).Code)
}

func TestNarrative(t *testing.T) {
	h := NewDashboardHandler(fakeReports{dashboard: sampleDashboard()}, fakeNarrator{text: "Pitch."}, &countingCache{}, nil)

	w := call(h.Narrative, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"run_id":"run-42","narrative":"Pitch."}`, w.Body.String())

	h = NewDashboardHandler(fakeReports{dashboard: sampleDashboard()}, fakeNarrator{err: errors.New("upstream")}, &countingCache{}, nil)
	assert.Equal(t, http.StatusBadGateway, call(h.Narrative, http.MethodGet).Code)
}

func TestSlottingPlanPreview(t *testing.T) {
	plan := models.Table{Header: []string{"sku_id"}}
	for i := 0; i < 30; i++ {
		plan.Rows = append(plan.Rows, []string{"S"})
	}
	h := NewDashboardHandler(fakeReports{plan: plan}, nil, &countingCache{}, nil)

	w := call(h.SlottingPlan, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Preview   models.Table `json:"preview"`
		TotalRows int          `json:"total_rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Preview.Rows, reporting.PreviewRows)
	assert.Equal(t, 30, body.TotalRows)
}

func TestClearCache(t *testing.T) {
	cache := &countingCache{}
	h := NewDashboardHandler(fakeReports{}, nil, cache, nil)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	h.ClearCache(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, 1, cache.cleared)
}

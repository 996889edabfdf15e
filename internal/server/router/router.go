package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/server/handlers"
)

// Options carries the optional parts of the router.
type Options struct {
	// Gatherer exposes /metrics when set.
	Gatherer prometheus.Gatherer
}

// New wires the Gin engine with required routes and middlewares.
func New(dashboard *handlers.DashboardHandler, exports *handlers.ExportHandler, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/dashboard", dashboard.Dashboard)
	api.GET("/slotting-plan", dashboard.SlottingPlan)
	api.POST("/cache/clear", dashboard.ClearCache)

	forensics := api.Group("/forensics")
	forensics.GET("/drift", dashboard.Drift)
	forensics.GET("/shortcut", dashboard.Shortcut)
	forensics.GET("/ghost", dashboard.Ghost)

	operations := api.Group("/operations")
	operations.GET("/congestion", dashboard.Congestion)
	operations.GET("/spoilage", dashboard.Spoilage)
	operations.GET("/forklift", dashboard.Forklift)

	executive := api.Group("/executive")
	executive.GET("/chaos", dashboard.Chaos)
	executive.GET("/roadmap", dashboard.Roadmap)
	executive.GET("/sensitivity", dashboard.Sensitivity)
	executive.GET("/narrative", dashboard.Narrative)

	r.GET("/export/final_slotting_plan.csv", exports.CSV)
	r.GET("/export/final_slotting_plan.xlsx", exports.XLSX)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if logger != nil {
		logger.Info("router initialized", zap.Bool("metrics", opts.Gatherer != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

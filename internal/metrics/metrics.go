package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Collector exposes the latest dashboard figures as Prometheus gauges.
type Collector struct {
	chaosScore      prometheus.Gauge
	penalties       *prometheus.GaugeVec
	anomalies       *prometheus.GaugeVec
	weightAtRisk    prometheus.Gauge
	extraPickers    prometheus.Gauge
	aisleBShare     prometheus.Gauge
	lastRunUnixTime prometheus.Gauge
	runs            prometheus.Counter
}

// New registers the collector's metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		chaosScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "chaos_score",
			Help:      "Composite warehouse health index (40-100).",
		}),
		penalties: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "chaos_penalty",
			Help:      "Chaos score penalty by component.",
		}, []string{"component"}),
		anomalies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "anomalies",
			Help:      "Rows flagged by each data forensics check.",
		}, []string{"check"}),
		weightAtRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "spoilage_weight_at_risk_kg",
			Help:      "Weight of SKUs stored outside their temperature zone.",
		}),
		extraPickers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "spike_additional_pickers",
			Help:      "Extra pickers needed to absorb a 20% order spike at the peak hour.",
		}),
		aisleBShare: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "aisle_b_traffic_percent",
			Help:      "Share of order visits that go through aisle B.",
		}),
		lastRunUnixTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "velocitymart",
			Name:      "last_report_timestamp_seconds",
			Help:      "Unix time of the last computed report.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "velocitymart",
			Name:      "reports_total",
			Help:      "Number of reports computed.",
		}),
	}

	reg.MustRegister(c.chaosScore, c.penalties, c.anomalies, c.weightAtRisk, c.extraPickers, c.aisleBShare, c.lastRunUnixTime, c.runs)
	return c
}

// Observe records the figures of a freshly computed dashboard.
func (c *Collector) Observe(d models.Dashboard) {
	c.chaosScore.Set(d.Chaos.Score)
	c.penalties.WithLabelValues("temperature").Set(d.Chaos.TempPenalty)
	c.penalties.WithLabelValues("shortcut").Set(d.Chaos.ShortcutPenalty)
	c.penalties.WithLabelValues("aisle_b").Set(d.Chaos.AisleBPenalty)

	c.anomalies.WithLabelValues("decimal_drift").Set(float64(d.Drift.Count))
	c.anomalies.WithLabelValues("shortcut_pickers").Set(float64(d.Shortcut.Count))
	c.anomalies.WithLabelValues("ghost_inventory").Set(float64(len(d.Ghost.SKUs)))
	c.anomalies.WithLabelValues("temperature_violations").Set(float64(d.Spoilage.Count))

	c.weightAtRisk.Set(d.Spoilage.WeightAtRisk)
	c.extraPickers.Set(float64(d.Sensitivity.AdditionalPickers))
	c.aisleBShare.Set(d.Traffic.PctAisleB)
	c.lastRunUnixTime.Set(float64(d.GeneratedAt.Unix()))
	c.runs.Inc()
}

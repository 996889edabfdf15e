package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

const timeLayout = "2006-01-02 15:04"

// FormatDigest renders a short plain-text summary suitable for chat delivery.
func FormatDigest(d models.Dashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", d.Header.Title, d.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Chaos score: %s/100 (temp %s, shortcut %s, aisle B %s)\n",
		FormatScore(d.Chaos.Score), FormatPenalty(d.Chaos.TempPenalty), FormatPenalty(d.Chaos.ShortcutPenalty), FormatPenalty(d.Chaos.AisleBPenalty))
	fmt.Fprintf(&b, "Decimal drift: %d SKUs | Suspicious pickers: %d | Ghost SKUs: %d\n",
		d.Drift.Count, d.Shortcut.Count, len(d.Ghost.SKUs))
	fmt.Fprintf(&b, "Temperature violations: %d (%.1f kg at risk)\n", d.Spoilage.Count, d.Spoilage.WeightAtRisk)

	if d.Sensitivity.Applicable {
		fmt.Fprintf(&b, "Peak %02d:00: %d orders, +20%% spike needs %d extra picker(s), %s resilience\n",
			d.Sensitivity.PeakHour, d.Sensitivity.PeakOrders, d.Sensitivity.AdditionalPickers, strings.ToUpper(string(d.Sensitivity.Resilience)))
	} else {
		b.WriteString("Spike projection: not applicable\n")
	}

	if len(d.Roadmap) > 0 {
		top := d.Roadmap
		if len(top) > 3 {
			top = top[:3]
		}
		ids := make([]string, 0, len(top))
		for _, item := range top {
			ids = append(ids, fmt.Sprintf("%s (%d)", item.SKUID, item.OrderCount))
		}
		fmt.Fprintf(&b, "Move first: %s\n", strings.Join(ids, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatScore renders a chaos score tile value, e.g. "65.0".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// FormatPenalty renders a penalty tile value, e.g. "-5.0".
func FormatPenalty(p float64) string {
	return fmt.Sprintf("-%.1f", p)
}

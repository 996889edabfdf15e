package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
)

// Limits on how many rows each terminal table shows.
const (
	maxListRows    = 10
	maxRoadmapRows = 15
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5e9"))
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94a3b8"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	tileStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	bannerStyles = map[models.AlertLevel]lipgloss.Style{
		models.AlertSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		models.AlertWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ca8a04")),
		models.AlertError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
	}
	bannerIcons = map[models.AlertLevel]string{
		models.AlertSuccess: "✔",
		models.AlertWarning: "!",
		models.AlertError:   "✖",
	}
)

// RenderReport writes every dashboard section in page order.
func RenderReport(w io.Writer, d models.Dashboard) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Header.Title) + "\n")
	b.WriteString(subtitleStyle.Render(d.Header.Subtitle) + "\n")

	b.WriteString(sectionStyle.Render("Data Forensics") + "\n")
	renderDrift(&b, d)
	renderShortcut(&b, d)
	renderGhost(&b, d)

	b.WriteString(sectionStyle.Render("Operational Visualizations") + "\n")
	renderCongestion(&b, d)
	renderSpoilage(&b, d)
	renderForklift(&b, d)

	b.WriteString(sectionStyle.Render("Executive Pitch") + "\n")
	renderChaos(&b, d)
	renderRoadmap(&b, d)
	renderSensitivity(&b, d)

	b.WriteString(sectionStyle.Render("Final Slotting Plan") + "\n")
	renderPlan(&b, d)

	b.WriteString("\n" + mutedStyle.Render(d.Header.Footer) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func renderDrift(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("Decimal Drift Audit") + "\n")
	fmt.Fprintf(b, "Upper bound: %.2f kg | Lower bound: %.2f kg\n", d.Drift.UpperBound, d.Drift.LowerBound)
	renderAlerts(b, d, reporting.SectionDrift)
	if len(d.Drift.Flagged) == 0 {
		return
	}
	rows := make([][]string, 0, len(d.Drift.Flagged))
	for _, r := range limit(d.Drift.Flagged, maxListRows) {
		rows = append(rows, []string{r.SKUID, r.Category, formatFloat(r.WeightKg)})
	}
	writeTable(b, []string{"sku_id", "category", "weight_kg"}, rows)
}

func renderShortcut(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("Shortcut Picker Detection") + "\n")
	fmt.Fprintf(b, "95th percentile orders/meter: %.4f\n", d.Shortcut.Threshold)
	renderAlerts(b, d, reporting.SectionShortcut)
	if len(d.Shortcut.Suspicious) == 0 {
		return
	}
	rows := make([][]string, 0, len(d.Shortcut.Suspicious))
	for _, p := range limit(d.Shortcut.Suspicious, maxListRows) {
		ratio := strconv.FormatFloat(p.OrdersPerMeter, 'f', 4, 64)
		if p.ZeroDistance {
			ratio = "no distance"
		}
		rows = append(rows, []string{p.PickerID, strconv.Itoa(p.TotalOrders), formatFloat(p.TotalDistance), ratio})
	}
	writeTable(b, []string{"picker_id", "orders", "distance_m", "orders_per_meter"}, rows)
}

func renderGhost(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("Ghost Inventory") + "\n")
	renderAlerts(b, d, reporting.SectionGhost)
	if len(d.Ghost.SKUs) == 0 {
		return
	}
	fmt.Fprintf(b, "Unknown slots: %s\n", strings.Join(d.Ghost.GhostSlots, ", "))
	rows := make([][]string, 0, len(d.Ghost.SKUs))
	for _, s := range limit(d.Ghost.SKUs, maxListRows) {
		rows = append(rows, []string{s.ID, s.Category, s.CurrentSlot})
	}
	writeTable(b, []string{"sku_id", "category", "current_slot"}, rows)
}

func renderCongestion(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render(fmt.Sprintf("Aisle Congestion at %02d:00", d.Congestion.Hour)) + "\n")
	fmt.Fprintf(b, "Aisle B share of all visits: %.1f%% of %d orders\n", d.Traffic.PctAisleB, d.Traffic.Total)
	if len(d.Congestion.Aisles) == 0 {
		b.WriteString(mutedStyle.Render("No orders at the peak hour.") + "\n")
		return
	}
	rows := make([][]string, 0, len(d.Congestion.Aisles))
	for _, a := range d.Congestion.Aisles {
		rows = append(rows, []string{a.Aisle, strconv.Itoa(a.Orders), strings.Repeat("█", min(a.Orders, 40))})
	}
	writeTable(b, []string{"aisle", "orders", ""}, rows)
}

func renderSpoilage(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("Spoilage Risk") + "\n")
	renderAlerts(b, d, reporting.SectionSpoilage)
	if d.Spoilage.Count == 0 {
		return
	}
	rows := make([][]string, 0, len(d.Spoilage.Violations))
	for _, v := range limit(d.Spoilage.Violations, maxListRows) {
		rows = append(rows, []string{v.SKU.ID, v.SKU.TempReq, v.TempZone, v.SKU.CurrentSlot})
	}
	writeTable(b, []string{"sku_id", "temp_req", "temp_zone", "slot"}, rows)
}

func renderForklift(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render(fmt.Sprintf("Forklift Dead-Zone (aisle %s, limit %d pickers)", d.Forklift.Aisle, d.Forklift.SafetyLimit)) + "\n")
	renderAlerts(b, d, reporting.SectionForklift)
	if len(d.Forklift.Hours) == 0 {
		return
	}
	rows := make([][]string, 0, len(d.Forklift.Hours))
	for _, h := range d.Forklift.Hours {
		flag := ""
		if h.OverLimit {
			flag = "over limit"
		}
		rows = append(rows, []string{fmt.Sprintf("%02d:00", h.Hour), strconv.Itoa(h.Pickers), flag})
	}
	writeTable(b, []string{"hour", "pickers", ""}, rows)
}

func renderChaos(b *strings.Builder, d models.Dashboard) {
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tileStyle.Render("Chaos Score\n"+reporting.FormatScore(d.Chaos.Score)+"/100"),
		tileStyle.Render("Temp Penalty\n"+reporting.FormatPenalty(d.Chaos.TempPenalty)),
		tileStyle.Render("Shortcut Penalty\n"+reporting.FormatPenalty(d.Chaos.ShortcutPenalty)),
		tileStyle.Render("Aisle B Penalty\n"+reporting.FormatPenalty(d.Chaos.AisleBPenalty)),
	)
	b.WriteString(tiles + "\n")
}

func renderRoadmap(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("Phase-1 Re-slotting Roadmap") + "\n")
	if len(d.Roadmap) == 0 {
		b.WriteString(mutedStyle.Render("No orders to rank.") + "\n")
		return
	}
	rows := make([][]string, 0, maxRoadmapRows)
	for i, item := range limit(d.Roadmap, maxRoadmapRows) {
		category, slot := "-", "-"
		if item.Known {
			category, slot = item.SKU.Category, item.SKU.CurrentSlot
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), item.SKUID, strconv.Itoa(item.OrderCount), category, slot})
	}
	writeTable(b, []string{"#", "sku_id", "orders", "category", "current_slot"}, rows)
	if len(d.Roadmap) > maxRoadmapRows {
		fmt.Fprintf(b, "%s\n", mutedStyle.Render(fmt.Sprintf("… %d more SKUs", len(d.Roadmap)-maxRoadmapRows)))
	}
}

func renderSensitivity(b *strings.Builder, d models.Dashboard) {
	b.WriteString(headingStyle.Render("+20% Order Spike Sensitivity") + "\n")
	s := d.Sensitivity
	if s.Applicable {
		fmt.Fprintf(b, "Peak hour %02d:00: %d orders, %d active pickers (%.2f orders/picker)\n",
			s.PeakHour, s.PeakOrders, s.ActivePickers, s.OrdersPerPicker)
		fmt.Fprintf(b, "Spike: %d orders need %d pickers, %d additional\n", s.SpikeOrders, s.RequiredPickers, s.AdditionalPickers)
	}
	renderAlerts(b, d, reporting.SectionSensitivity)
}

func renderPlan(b *strings.Builder, d models.Dashboard) {
	if len(d.PlanPreview.Header) == 0 {
		b.WriteString(mutedStyle.Render("Slotting plan is empty.") + "\n")
		return
	}
	writeTable(b, d.PlanPreview.Header, d.PlanPreview.Rows)
	fmt.Fprintf(b, "%s\n", mutedStyle.Render(fmt.Sprintf("Showing %d of %d rows", len(d.PlanPreview.Rows), d.PlanRows)))
}

func renderAlerts(b *strings.Builder, d models.Dashboard, section string) {
	for _, a := range d.Alerts {
		if a.Section != section {
			continue
		}
		style, ok := bannerStyles[a.Level]
		if !ok {
			style = lipgloss.NewStyle()
		}
		b.WriteString(style.Render(bannerIcons[a.Level]+" "+a.Message) + "\n")
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.String() + "\n")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

package cli

import (
	"fmt"
	"strings"

	"github.com/kartwerks/kartpick/internal/cost"
	"github.com/kartwerks/kartpick/internal/estimate"
	"github.com/kartwerks/kartpick/internal/model"
)

// RenderWarnings formats a compatibility result for terminal output.
func RenderWarnings(warnings []model.Warning) string {
	if len(warnings) == 0 {
		return FormatSuccess("No compatibility issues found")
	}

	var b strings.Builder
	for _, w := range warnings {
		line := w.Message
		if len(w.Categories) > 0 {
			line += SubtleStyle.Render("  (" + joinCategoryLabels(w.Categories) + ")")
		}
		switch w.Severity {
		case model.SeverityError:
			b.WriteString(FormatError(line))
		case model.SeverityWarning:
			b.WriteString(FormatWarning(line))
		default:
			b.WriteString(FormatInfo(line))
		}
		b.WriteString("\n")
	}

	errors, warns, infos := countBySeverity(warnings)
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d error(s), %d warning(s), %d note(s)", errors, warns, infos)))
	return b.String()
}

// RenderCostSummary formats a cost computation: total, breakdown table,
// budget bar, and savings suggestions.
func RenderCostSummary(summary cost.Summary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(MoneyIcon + " Build Cost"))
	b.WriteString("\n")
	b.WriteString(BoldStyle.Render(fmt.Sprintf("Total: %s", FormatPrice(summary.TotalCost))))
	if summary.HasUnpricedItems {
		b.WriteString(WarningStyle.Render("  (some items have no listed price)"))
	}
	b.WriteString("\n")

	if len(summary.Breakdown) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-22s %12s %8s", "Category", "Cost", "Share")))
		b.WriteString("\n")
		for _, item := range summary.Breakdown {
			b.WriteString(fmt.Sprintf("%-22s %12s %7.1f%%\n",
				item.Label, FormatPrice(item.Cost), item.Percentage))
			for _, part := range item.Parts {
				price := "—"
				if part.HasPrice {
					price = FormatPrice(part.Cost)
				}
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %-20s %12s", part.Name, price)))
				b.WriteString("\n")
			}
		}
	}

	if summary.BudgetStatus != nil {
		b.WriteString("\n")
		b.WriteString(renderBudget(summary.BudgetStatus))
		b.WriteString("\n")
	}

	if len(summary.ExpensiveParts) > 0 {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render("Savings suggestions"))
		b.WriteString("\n")
		for _, ep := range summary.ExpensiveParts {
			b.WriteString(fmt.Sprintf("%s %s (%s)\n",
				WarningIcon, ep.Part.Name, FormatPrice(derefPrice(ep.Part.Price))))
			for _, alt := range ep.Alternatives {
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("  → %s (%s)", alt.Name, FormatPrice(derefPrice(alt.Price)))))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// RenderPerformance formats the performance metric set.
func RenderPerformance(m estimate.Metrics) string {
	if !m.HasPower {
		return FormatInfo("Select an engine to see performance estimates")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(GaugeIcon + " Performance"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Horsepower:       %.1f HP\n", m.HP))
	b.WriteString(fmt.Sprintf("Torque:           %.1f ft-lbs\n", m.Torque))
	b.WriteString(fmt.Sprintf("Est. weight:      %.0f lbs\n", m.WeightLbs))
	b.WriteString(fmt.Sprintf("Gear ratio:       %.2f:1\n", m.GearRatio))
	if m.HasTopSpeed {
		b.WriteString(fmt.Sprintf("Top speed:        ~%.0f mph\n", m.TopSpeed))
	}
	if m.HasPowerToWt {
		b.WriteString(fmt.Sprintf("Power-to-weight:  %.1f HP per 100 lbs\n", m.PowerToWt))
	}
	b.WriteString(fmt.Sprintf("0-20 mph:         ~%.1fs\n", m.Accel0to20))
	b.WriteString(fmt.Sprintf("0-30 mph:         ~%.1fs\n", m.Accel0to30))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Tier: %s — recommended %s gearing (%s clutch, %s axle), typical %s",
		m.Tier.Name, m.Tier.RecommendedRatio, m.Tier.ClutchTeeth, m.Tier.AxleTeeth, m.Tier.SpeedRange)))
	return b.String()
}

// RenderEV formats the electric-build estimate.
func RenderEV(est estimate.EVEstimate) string {
	if !est.HasRange {
		return FormatInfo("Select a motor and battery (or pass a capacity) to see EV estimates")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(BoltIcon + " Electric Estimates"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Pack capacity:    %.0f Ah\n", est.AmpHours))
	b.WriteString(fmt.Sprintf("Range (light):    ~%.1f mi\n", est.Range.Light))
	b.WriteString(fmt.Sprintf("Range (moderate): ~%.1f mi\n", est.Range.Moderate))
	b.WriteString(fmt.Sprintf("Range (heavy):    ~%.1f mi\n", est.Range.Heavy))
	b.WriteString(fmt.Sprintf("Runtime:          ~%d min\n", est.RuntimeMinutes))
	if est.HasCharging {
		b.WriteString(fmt.Sprintf("Charge time:      ~%.1f h\n", est.ChargingHours))
	} else {
		b.WriteString(SubtleStyle.Render("Charge time:      unknown (no charger current listed)"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatPrice formats a dollar amount.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func renderBudget(bs *cost.BudgetStatus) string {
	const barWidth = 30
	filled := int(bs.Percentage / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var style = SuccessStyle
	var note string
	switch bs.Status {
	case cost.BudgetOver:
		style = ErrorStyle
		note = fmt.Sprintf("over budget by %s", FormatPrice(bs.Overage))
	case cost.BudgetApproaching:
		style = WarningStyle
		note = fmt.Sprintf("%s remaining", FormatPrice(bs.Remaining))
	default:
		note = fmt.Sprintf("%s remaining", FormatPrice(bs.Remaining))
	}

	return style.Render(fmt.Sprintf("[%s] %.0f%% of budget (%s)", bar, bs.Percentage, note))
}

func joinCategoryLabels(categories []model.PartCategory) string {
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Label()
	}
	return strings.Join(labels, " ↔ ")
}

func countBySeverity(warnings []model.Warning) (errors, warns, infos int) {
	for _, w := range warnings {
		switch w.Severity {
		case model.SeverityError:
			errors++
		case model.SeverityWarning:
			warns++
		default:
			infos++
		}
	}
	return errors, warns, infos
}

func derefPrice(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

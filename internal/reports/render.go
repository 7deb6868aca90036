package reports

import (
	"fmt"
	"sort"
	"strings"

	"enmon/internal/analytics"
	"enmon/pkg/contracts/domain"
)

const bannerWidth = 50

// Render formats a report as plain text suitable for the terminal or a
// text file export.
func Render(report *domain.Report) string {
	var sb strings.Builder

	banner := strings.Repeat("=", bannerWidth)
	sb.WriteString(banner + "\n")
	sb.WriteString(centerText(report.Title, bannerWidth) + "\n")
	sb.WriteString(banner + "\n")
	fmt.Fprintf(&sb, "Period:       %s\n", report.Period)
	fmt.Fprintf(&sb, "Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Measurements: %d\n", report.MeasurementCount)
	sb.WriteString("\n")

	if report.MeasurementCount == 0 {
		sb.WriteString("No measurements found for this period.\n")
		return sb.String()
	}

	switch report.Kind {
	case domain.ReportKindDaily:
		renderDaily(&sb, report.Daily)
	case domain.ReportKindWeekly:
		renderWeekly(&sb, report.Weekly)
	case domain.ReportKindMonthly:
		renderMonthly(&sb, report.Monthly)
	case domain.ReportKindEfficiency:
		renderEfficiency(&sb, report.Efficiency)
	}

	renderSections(&sb, report.Sections)
	return sb.String()
}

// Summary returns a one-line description of a report, used in logs and
// listings.
func Summary(report *domain.Report) string {
	return fmt.Sprintf("%s [%s] %d measurements", report.Title, report.Period, report.MeasurementCount)
}

func renderDaily(sb *strings.Builder, kpis *domain.DailyKPIs) {
	if kpis == nil {
		return
	}
	fmt.Fprintf(sb, "Total consumption:   %s kWh\n", formatFloat(kpis.TotalConsumption))
	fmt.Fprintf(sb, "Average consumption: %s kWh\n", formatFloat(kpis.AverageConsumption))
	fmt.Fprintf(sb, "Peak consumption:    %s kWh at %s\n", formatFloat(kpis.PeakConsumption), kpis.PeakHour)
	fmt.Fprintf(sb, "Minimum consumption: %s kWh at %s\n", formatFloat(kpis.MinConsumption), kpis.MinHour)
	fmt.Fprintf(sb, "Total CO2:           %.3f\n", kpis.TotalCO2)
}

func renderWeekly(sb *strings.Builder, kpis *domain.WeeklyKPIs) {
	if kpis == nil {
		return
	}
	fmt.Fprintf(sb, "Total consumption:   %s kWh\n", formatFloat(kpis.TotalConsumption))
	fmt.Fprintf(sb, "Average per day:     %s kWh\n", formatFloat(kpis.AverageDaily))
	fmt.Fprintf(sb, "Weekday consumption: %s kWh\n", formatFloat(kpis.WeekdayConsumption))
	fmt.Fprintf(sb, "Weekend consumption: %s kWh\n", formatFloat(kpis.WeekendConsumption))
}

func renderMonthly(sb *strings.Builder, kpis *domain.MonthlyKPIs) {
	if kpis == nil {
		return
	}
	fmt.Fprintf(sb, "Total consumption:  %s kWh\n", formatFloat(kpis.TotalConsumption))
	fmt.Fprintf(sb, "Total CO2:          %.3f\n", kpis.TotalCO2)
	fmt.Fprintf(sb, "Price per kWh:      %s\n", formatFloat(kpis.CostPerKWh))
	fmt.Fprintf(sb, "Total cost:         %s\n", formatFloat(kpis.TotalCost))
	fmt.Fprintf(sb, "Average daily cost: %s\n", formatFloat(kpis.AverageDailyCost))
	fmt.Fprintf(sb, "Peak day cost:      %s\n", formatFloat(kpis.PeakDayCost))

	if kpis.HasPreviousMonth {
		sb.WriteString("\nComparison with previous month:\n")
		fmt.Fprintf(sb, "  Previous consumption: %s kWh\n", formatFloat(kpis.PreviousMonthConsumption))
		fmt.Fprintf(sb, "  Previous cost:        %s\n", formatFloat(kpis.PreviousMonthCost))
		fmt.Fprintf(sb, "  Consumption change:   %+.1f%%\n", kpis.ConsumptionChangePercent)
		fmt.Fprintf(sb, "  Cost change:          %+.1f%%\n", kpis.CostChangePercent)
	}
}

func renderEfficiency(sb *strings.Builder, kpis *domain.EfficiencyKPIs) {
	if kpis == nil {
		return
	}
	fmt.Fprintf(sb, "Average power factor: %.1f%%\n", kpis.AveragePowerFactor)
	fmt.Fprintf(sb, "Load factor:          %.1f%%\n", kpis.LoadFactor)
	fmt.Fprintf(sb, "Energy intensity:     %s kWh/measurement\n", formatFloat(kpis.EnergyIntensity))
	fmt.Fprintf(sb, "CO2 intensity:        %.3f per kWh\n", kpis.CO2Intensity)
	sb.WriteString("\nLoad distribution:\n")
	fmt.Fprintf(sb, "  Light load:   %.1f%%\n", kpis.LightLoadPercentage)
	fmt.Fprintf(sb, "  Medium load:  %.1f%%\n", kpis.MediumLoadPercentage)
	fmt.Fprintf(sb, "  Maximum load: %.1f%%\n", kpis.MaximumLoadPercentage)

	if len(kpis.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for i, rec := range kpis.Recommendations {
			fmt.Fprintf(sb, "  %d. %s\n", i+1, rec)
		}
	} else {
		sb.WriteString("\nNo efficiency issues detected.\n")
	}
}

func renderSections(sb *strings.Builder, sections domain.Sections) {
	if sections.ConsumptionByHour != "" {
		sb.WriteString("\nConsumption by hour:\n")
		sb.WriteString(sections.ConsumptionByHour)
	}
	if sections.ConsumptionByDay != "" {
		sb.WriteString("\nConsumption by day:\n")
		sb.WriteString(sections.ConsumptionByDay)
	}
	if sections.ConsumptionByLoadType != "" {
		sb.WriteString("\nConsumption by load type:\n")
		sb.WriteString(sections.ConsumptionByLoadType)
	}
}

func formatHourSection(byHour map[int]float64) string {
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	var sb strings.Builder
	for _, hour := range hours {
		fmt.Fprintf(&sb, "  %02d:00  %s kWh\n", hour, formatFloat(byHour[hour]))
	}
	return sb.String()
}

func formatLoadTypeSection(byLoadType map[string]float64) string {
	loadTypes := make([]string, 0, len(byLoadType))
	for loadType := range byLoadType {
		loadTypes = append(loadTypes, loadType)
	}
	sort.Strings(loadTypes)

	var sb strings.Builder
	for _, loadType := range loadTypes {
		fmt.Fprintf(&sb, "  %-14s %s kWh\n", loadType, formatFloat(byLoadType[loadType]))
	}
	return sb.String()
}

func formatDaySection(byDay []analytics.DayValue) string {
	var sb strings.Builder
	for _, dv := range byDay {
		fmt.Fprintf(&sb, "  %-10s %s kWh\n", dv.Day, formatFloat(dv.Value))
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

package reports

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"enmon/internal/analytics"
	"enmon/internal/config"
	"enmon/pkg/contracts/domain"
)

// Efficiency recommendation thresholds. Fixed by the analysis method,
// not configuration.
const (
	minAcceptablePowerFactor = 85.0
	minAcceptableLoadFactor  = 60.0
	maxMaximumLoadShare      = 40.0
	maxAcceptableCO2PerKWh   = 0.5
)

const weekWindowDays = 7

// Generator synthesizes reports from a measurement dataset. It holds no
// dataset state; callers pass the dataset into every call.
type Generator struct {
	logger     *slog.Logger
	costPerKWh float64
}

// NewGenerator creates a report generator using the given pricing
// configuration.
func NewGenerator(logger *slog.Logger, pricing config.PricingConfig) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	costPerKWh := pricing.CostPerKWh
	if costPerKWh <= 0 {
		costPerKWh = config.DefaultCostPerKWh
	}
	return &Generator{
		logger:     logger,
		costPerKWh: costPerKWh,
	}
}

// Daily builds a consumption report for one calendar date. A date with
// no measurements yields a zero-valued report, not an error.
func (g *Generator) Daily(ds *domain.Dataset, date time.Time) *domain.Report {
	sub := analytics.FilterDate(ds, date)

	report := g.newReport(domain.ReportKindDaily, date.Format("2006-01-02"), sub.Len())
	report.Description = fmt.Sprintf("Consumption summary for %s", date.Format("2006-01-02"))
	kpis := &domain.DailyKPIs{ReportDate: truncateToDay(date)}
	report.Daily = kpis

	measurements := sub.Measurements()
	if len(measurements) == 0 {
		g.logger.Warn("daily report generated with no measurements",
			slog.String("date", date.Format("2006-01-02")))
		return report
	}

	peak := measurements[0]
	min := measurements[0]
	for _, m := range measurements {
		kpis.TotalConsumption += m.UsageKWh
		kpis.TotalCO2 += m.CO2
		if m.UsageKWh > peak.UsageKWh {
			peak = m
		}
		if m.UsageKWh < min.UsageKWh {
			min = m
		}
	}
	kpis.AverageConsumption = kpis.TotalConsumption / float64(len(measurements))
	kpis.PeakConsumption = peak.UsageKWh
	kpis.PeakHour = peak.Timestamp.Format("15:04")
	kpis.MinConsumption = min.UsageKWh
	kpis.MinHour = min.Timestamp.Format("15:04")

	report.Sections.ConsumptionByHour = formatHourSection(analytics.UsageByHourForDate(ds, date))
	report.Sections.ConsumptionByLoadType = formatLoadTypeSection(analytics.TotalUsageByLoadType(sub))
	return report
}

// DailyLatest builds a daily report for the chronologically latest date
// in the dataset.
func (g *Generator) DailyLatest(ds *domain.Dataset) *domain.Report {
	latest, ok := ds.MaxTimestamp()
	if !ok {
		return g.Daily(ds, time.Time{})
	}
	return g.Daily(ds, latest)
}

// Weekly builds a consumption report for the 7-day window ending on the
// given date, both endpoints inclusive.
func (g *Generator) Weekly(ds *domain.Dataset, end time.Time) *domain.Report {
	endDay := truncateToDay(end)
	return g.WeeklyRange(ds, endDay.AddDate(0, 0, -(weekWindowDays-1)), endDay)
}

// WeeklyRange builds a consumption report for an explicit inclusive date
// window. The daily average always divides by the fixed 7-day week
// regardless of the window length or how many days carry data.
func (g *Generator) WeeklyRange(ds *domain.Dataset, start, end time.Time) *domain.Report {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	sub := analytics.FilterRange(ds, startDay, endDay)

	period := fmt.Sprintf("%s to %s", startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
	report := g.newReport(domain.ReportKindWeekly, period, sub.Len())
	report.Description = fmt.Sprintf("Consumption summary for the week ending %s", endDay.Format("2006-01-02"))

	total := analytics.TotalUsage(sub)
	byStatus := analytics.TotalUsageByWeekStatus(sub)
	report.Weekly = &domain.WeeklyKPIs{
		StartDate:          startDay,
		EndDate:            endDay,
		TotalConsumption:   total,
		AverageDaily:       total / weekWindowDays,
		WeekdayConsumption: byStatus[domain.WeekStatusWeekday],
		WeekendConsumption: byStatus[domain.WeekStatusWeekend],
	}

	if sub.Len() > 0 {
		report.Sections.ConsumptionByDay = formatDaySection(analytics.TotalUsageByDayOfWeek(sub))
	}
	return report
}

// WeeklyLatest builds a weekly report for the 7-day window ending at
// the latest date in the dataset.
func (g *Generator) WeeklyLatest(ds *domain.Dataset) *domain.Report {
	latest, ok := ds.MaxTimestamp()
	if !ok {
		return g.Weekly(ds, time.Time{})
	}
	return g.Weekly(ds, latest)
}

// Monthly builds a cost report for one calendar month, comparing against
// the immediately preceding month when that month has data.
func (g *Generator) Monthly(ds *domain.Dataset, year int, month time.Month) *domain.Report {
	sub := analytics.FilterMonth(ds, year, month)

	period := fmt.Sprintf("%s %d", month.String(), year)
	report := g.newReport(domain.ReportKindMonthly, period, sub.Len())
	report.Description = fmt.Sprintf("Cost summary for %s", period)

	total := analytics.TotalUsage(sub)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	kpis := &domain.MonthlyKPIs{
		Year:             year,
		Month:            month,
		TotalConsumption: total,
		TotalCO2:         analytics.TotalCO2(sub),
		CostPerKWh:       g.costPerKWh,
		TotalCost:        total * g.costPerKWh,
		AverageDailyCost: safeDivide(total*g.costPerKWh, float64(daysInMonth)),
		PeakDayCost:      g.peakDayCost(sub),
	}
	report.Monthly = kpis

	prevYear, prevMonth := previousMonth(year, month)
	prev := analytics.FilterMonth(ds, prevYear, prevMonth)
	if prev.Len() > 0 {
		prevTotal := analytics.TotalUsage(prev)
		kpis.HasPreviousMonth = true
		kpis.PreviousMonthConsumption = prevTotal
		kpis.PreviousMonthCost = prevTotal * g.costPerKWh
		kpis.ConsumptionChangePercent = percentChange(prevTotal, total)
		kpis.CostChangePercent = percentChange(kpis.PreviousMonthCost, kpis.TotalCost)
	}

	if sub.Len() > 0 {
		report.Sections.ConsumptionByLoadType = formatLoadTypeSection(analytics.TotalUsageByLoadType(sub))
	}
	return report
}

// MonthlyLatest builds a monthly report for the calendar month of the
// latest measurement in the dataset.
func (g *Generator) MonthlyLatest(ds *domain.Dataset) *domain.Report {
	latest, ok := ds.MaxTimestamp()
	if !ok {
		return g.Monthly(ds, 0, time.January)
	}
	return g.Monthly(ds, latest.Year(), latest.Month())
}

// Efficiency builds an efficiency report over an inclusive date range,
// including rule-based improvement recommendations.
func (g *Generator) Efficiency(ds *domain.Dataset, start, end time.Time) *domain.Report {
	sub := analytics.FilterRange(ds, start, end)

	period := fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	report := g.newReport(domain.ReportKindEfficiency, period, sub.Len())
	report.Description = fmt.Sprintf("Efficiency analysis for %s", period)
	kpis := &domain.EfficiencyKPIs{
		StartDate: truncateToDay(start),
		EndDate:   truncateToDay(end),
	}
	report.Efficiency = kpis

	measurements := sub.Measurements()
	if len(measurements) == 0 {
		return report
	}

	var totalPF, totalUsage, totalCO2, peakUsage float64
	loadTypeCounts := make(map[string]int)
	for _, m := range measurements {
		totalPF += m.LaggingPowerFactor
		totalUsage += m.UsageKWh
		totalCO2 += m.CO2
		loadTypeCounts[m.LoadType]++
		if m.UsageKWh > peakUsage {
			peakUsage = m.UsageKWh
		}
	}
	count := float64(len(measurements))
	meanUsage := totalUsage / count

	kpis.AveragePowerFactor = totalPF / count
	kpis.EnergyIntensity = totalUsage / count
	kpis.CO2Intensity = safeDivide(totalCO2, totalUsage)
	kpis.LoadFactor = safeDivide(meanUsage, peakUsage) * 100

	// Distribution is a share of measurement count, not of usage: it
	// describes how much of the time the load operates in each regime.
	kpis.LightLoadPercentage = float64(loadTypeCounts[domain.LoadTypeLight]) / count * 100
	kpis.MediumLoadPercentage = float64(loadTypeCounts[domain.LoadTypeMedium]) / count * 100
	kpis.MaximumLoadPercentage = float64(loadTypeCounts[domain.LoadTypeMaximum]) / count * 100

	kpis.Recommendations = buildRecommendations(kpis)

	report.Sections.ConsumptionByLoadType = formatLoadTypeSection(analytics.TotalUsageByLoadType(sub))
	return report
}

// EfficiencyFull builds an efficiency report over the full chronological
// span of the dataset.
func (g *Generator) EfficiencyFull(ds *domain.Dataset) *domain.Report {
	start, ok := ds.MinTimestamp()
	if !ok {
		return g.Efficiency(ds, time.Time{}, time.Time{})
	}
	end, _ := ds.MaxTimestamp()
	return g.Efficiency(ds, start, end)
}

// buildRecommendations evaluates the fixed efficiency thresholds and
// returns the list of triggered improvement actions.
func buildRecommendations(kpis *domain.EfficiencyKPIs) []string {
	var recs []string
	if kpis.AveragePowerFactor < minAcceptablePowerFactor {
		recs = append(recs, fmt.Sprintf(
			"Average power factor is %.1f%%. Install reactive power compensation to bring it above %.0f%%.",
			kpis.AveragePowerFactor, minAcceptablePowerFactor))
	}
	if kpis.LoadFactor < minAcceptableLoadFactor {
		recs = append(recs, fmt.Sprintf(
			"Load factor is %.1f%%. Redistribute demand to off-peak hours to raise it above %.0f%%.",
			kpis.LoadFactor, minAcceptableLoadFactor))
	}
	if kpis.MaximumLoadPercentage > maxMaximumLoadShare {
		recs = append(recs, fmt.Sprintf(
			"Maximum-load operation accounts for %.1f%% of consumption. Apply peak shaving to bring it below %.0f%%.",
			kpis.MaximumLoadPercentage, maxMaximumLoadShare))
	}
	if kpis.CO2Intensity > maxAcceptableCO2PerKWh {
		recs = append(recs, fmt.Sprintf(
			"CO2 intensity is %.2f per kWh. Source more energy from renewables to bring it below %.1f.",
			kpis.CO2Intensity, maxAcceptableCO2PerKWh))
	}
	return recs
}

func (g *Generator) newReport(kind domain.ReportKind, period string, count int) *domain.Report {
	return &domain.Report{
		ID:               uuid.New().String(),
		Kind:             kind,
		Title:            kind.DisplayName(),
		Period:           period,
		GeneratedAt:      time.Now(),
		MeasurementCount: count,
	}
}

// peakDayCost finds the calendar day with the highest total usage and
// prices it.
func (g *Generator) peakDayCost(ds *domain.Dataset) float64 {
	dayTotals := make(map[time.Time]float64)
	for _, m := range ds.Measurements() {
		dayTotals[m.Date()] += m.UsageKWh
	}
	var peak float64
	for _, total := range dayTotals {
		if total > peak {
			peak = total
		}
	}
	return peak * g.costPerKWh
}

func previousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// percentChange returns the relative change from previous to current in
// percent, 0 when previous is zero.
func percentChange(previous, current float64) float64 {
	return safeDivide(current-previous, previous) * 100
}

// safeDivide yields 0 on a zero denominator instead of Inf or NaN.
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

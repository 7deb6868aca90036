package reports

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enmon/internal/config"
	"enmon/pkg/contracts/domain"
)

func measurement(ts string, usage, co2, powerFactor float64, loadType string) domain.Measurement {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	weekStatus := domain.WeekStatusWeekday
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		weekStatus = domain.WeekStatusWeekend
	}
	return domain.Measurement{
		Timestamp:          t,
		UsageKWh:           usage,
		CO2:                co2,
		LaggingPowerFactor: powerFactor,
		WeekStatus:         weekStatus,
		DayOfWeek:          t.Weekday().String(),
		LoadType:           loadType,
	}
}

func newTestGenerator() *Generator {
	return NewGenerator(slog.Default(), config.PricingConfig{CostPerKWh: 0.15})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaily_SingleMeasurement(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0.005, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Daily(ds, date(2024, time.January, 15))

	require.NotNil(t, report.Daily)
	assert.Equal(t, domain.ReportKindDaily, report.Kind)
	assert.Equal(t, 1, report.MeasurementCount)
	assert.InDelta(t, 10.0, report.Daily.TotalConsumption, 1e-9)
	assert.InDelta(t, 10.0, report.Daily.AverageConsumption, 1e-9)
	assert.Equal(t, "08:00", report.Daily.PeakHour)
	assert.Equal(t, "08:00", report.Daily.MinHour)
	assert.InDelta(t, 0.005, report.Daily.TotalCO2, 1e-9)
	assert.NotEmpty(t, report.ID)
}

func TestDaily_PeakAndMinHours(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 12:00", 30.0, 0, 90, domain.LoadTypeMaximum),
		measurement("2024-01-15 22:00", 5.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Daily(ds, date(2024, time.January, 15))

	assert.Equal(t, "12:00", report.Daily.PeakHour)
	assert.InDelta(t, 30.0, report.Daily.PeakConsumption, 1e-9)
	assert.Equal(t, "22:00", report.Daily.MinHour)
	assert.InDelta(t, 5.0, report.Daily.MinConsumption, 1e-9)
	assert.NotEmpty(t, report.Sections.ConsumptionByHour)
	assert.NotEmpty(t, report.Sections.ConsumptionByLoadType)
}

func TestDaily_TieResolvesToFirstEncountered(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 10.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Daily(ds, date(2024, time.January, 15))

	assert.Equal(t, "08:00", report.Daily.PeakHour)
	assert.Equal(t, "08:00", report.Daily.MinHour)
}

func TestDaily_EmptyDateIsSoft(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Daily(ds, date(2024, time.March, 1))

	require.NotNil(t, report.Daily)
	assert.Zero(t, report.MeasurementCount)
	assert.Zero(t, report.Daily.TotalConsumption)
	assert.Empty(t, report.Daily.PeakHour)
}

func TestDailyLatest_UsesChronologicalMax(t *testing.T) {
	// File order is not chronological; the latest date must still win.
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-20 08:00", 40.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 08:00", 10.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().DailyLatest(ds)

	assert.Equal(t, date(2024, time.January, 20), report.Daily.ReportDate)
	assert.InDelta(t, 40.0, report.Daily.TotalConsumption, 1e-9)
}

func TestWeekly_FixedSevenDayDenominator(t *testing.T) {
	// Only two of the seven window days carry data; the average still
	// divides by seven.
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-14 08:00", 30.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 08:00", 40.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Weekly(ds, date(2024, time.January, 15))

	require.NotNil(t, report.Weekly)
	assert.Equal(t, date(2024, time.January, 9), report.Weekly.StartDate)
	assert.Equal(t, date(2024, time.January, 15), report.Weekly.EndDate)
	assert.InDelta(t, 70.0, report.Weekly.TotalConsumption, 1e-9)
	assert.InDelta(t, 10.0, report.Weekly.AverageDaily, 1e-9)
}

func TestWeekly_WeekdayWeekendSplit(t *testing.T) {
	// 2024-01-14 is a Sunday, 2024-01-15 a Monday.
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-14 08:00", 30.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 08:00", 40.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Weekly(ds, date(2024, time.January, 15))

	assert.InDelta(t, 40.0, report.Weekly.WeekdayConsumption, 1e-9)
	assert.InDelta(t, 30.0, report.Weekly.WeekendConsumption, 1e-9)
	assert.NotEmpty(t, report.Sections.ConsumptionByDay)
}

func TestWeeklyRange_ExplicitWindow(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-10 08:00", 14.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-12 08:00", 21.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-20 08:00", 99.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().WeeklyRange(ds, date(2024, time.January, 10), date(2024, time.January, 12))

	require.NotNil(t, report.Weekly)
	assert.Equal(t, date(2024, time.January, 10), report.Weekly.StartDate)
	assert.Equal(t, date(2024, time.January, 12), report.Weekly.EndDate)
	assert.Equal(t, 2, report.MeasurementCount)
	assert.InDelta(t, 35.0, report.Weekly.TotalConsumption, 1e-9)
	// The denominator stays the fixed 7-day week even for a 3-day window.
	assert.InDelta(t, 5.0, report.Weekly.AverageDaily, 1e-9)
}

func TestWeekly_ExcludesOutsideWindow(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-08 08:00", 99.0, 0, 90, domain.LoadTypeLight), // day before window
		measurement("2024-01-09 08:00", 10.0, 0, 90, domain.LoadTypeLight), // window start
		measurement("2024-01-15 08:00", 20.0, 0, 90, domain.LoadTypeLight), // window end
	})

	report := newTestGenerator().Weekly(ds, date(2024, time.January, 15))

	assert.Equal(t, 2, report.MeasurementCount)
	assert.InDelta(t, 30.0, report.Weekly.TotalConsumption, 1e-9)
}

func TestMonthly_CostAndComparison(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2023-12-10 08:00", 100.0, 0.1, 90, domain.LoadTypeLight),
		measurement("2024-01-10 08:00", 150.0, 0.2, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Monthly(ds, 2024, time.January)

	kpis := report.Monthly
	require.NotNil(t, kpis)
	assert.InDelta(t, 150.0, kpis.TotalConsumption, 1e-9)
	assert.InDelta(t, 22.5, kpis.TotalCost, 1e-9)
	assert.InDelta(t, 22.5/31.0, kpis.AverageDailyCost, 1e-9)
	assert.InDelta(t, 22.5, kpis.PeakDayCost, 1e-9)
	require.True(t, kpis.HasPreviousMonth)
	assert.InDelta(t, 100.0, kpis.PreviousMonthConsumption, 1e-9)
	assert.InDelta(t, 15.0, kpis.PreviousMonthCost, 1e-9)
	assert.InDelta(t, 50.0, kpis.ConsumptionChangePercent, 1e-9)
	assert.InDelta(t, 50.0, kpis.CostChangePercent, 1e-9)
}

func TestMonthly_NoPreviousMonth(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-10 08:00", 150.0, 0.2, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Monthly(ds, 2024, time.January)

	assert.False(t, report.Monthly.HasPreviousMonth)
	assert.Zero(t, report.Monthly.PreviousMonthConsumption)
	assert.Zero(t, report.Monthly.ConsumptionChangePercent)
}

func TestMonthly_JanuaryComparesToPriorDecember(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2023-12-10 08:00", 100.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-10 08:00", 100.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Monthly(ds, 2024, time.January)

	require.True(t, report.Monthly.HasPreviousMonth)
	assert.Zero(t, report.Monthly.ConsumptionChangePercent)
}

func TestMonthly_PeakDayCost(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-10 08:00", 50.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-10 09:00", 50.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-11 08:00", 60.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Monthly(ds, 2024, time.January)

	// 2024-01-10 totals 100 kWh, beating 2024-01-11 at 60 kWh.
	assert.InDelta(t, 100.0*0.15, report.Monthly.PeakDayCost, 1e-9)
}

func TestEfficiency_HealthyDatasetHasNoRecommendations(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0.001, 95, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 9.0, 0.001, 92, domain.LoadTypeMedium),
		measurement("2024-01-15 10:00", 8.0, 0.001, 90, domain.LoadTypeMedium),
	})

	report := newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15))

	kpis := report.Efficiency
	require.NotNil(t, kpis)
	assert.InDelta(t, (95.0+92+90)/3, kpis.AveragePowerFactor, 1e-9)
	assert.InDelta(t, 9.0, kpis.EnergyIntensity, 1e-9)
	assert.InDelta(t, 0.003/27.0, kpis.CO2Intensity, 1e-9)
	assert.InDelta(t, 90.0, kpis.LoadFactor, 1e-9) // mean 9 over peak 10
	assert.Empty(t, kpis.Recommendations)
}

func TestEfficiency_ThresholdBreachesTriggerRecommendations(t *testing.T) {
	// Low power factor, peaky load shape, maximum-load dominated, dirty
	// energy: all four rules should fire.
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 1.0, 0.9, 70, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 99.0, 80.0, 75, domain.LoadTypeMaximum),
	})

	report := newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15))

	assert.Len(t, report.Efficiency.Recommendations, 4)
}

func TestEfficiency_LoadDistributionCountsMeasurements(t *testing.T) {
	// One light and one maximum measurement split the distribution
	// 50/50 no matter how lopsided their usage is.
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 1.0, 0, 95, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 99.0, 0, 95, domain.LoadTypeMaximum),
	})

	report := newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15))

	kpis := report.Efficiency
	assert.InDelta(t, 50.0, kpis.LightLoadPercentage, 1e-9)
	assert.Zero(t, kpis.MediumLoadPercentage)
	assert.InDelta(t, 50.0, kpis.MaximumLoadPercentage, 1e-9)
}

func TestEfficiency_ZeroUsageGuardsIntensity(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 0.0, 0.5, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15))

	assert.Zero(t, report.Efficiency.CO2Intensity)
	assert.Zero(t, report.Efficiency.LoadFactor)
}

func TestEfficiencyFull_UsesChronologicalSpan(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-20 08:00", 10.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 08:00", 10.0, 0, 90, domain.LoadTypeLight),
	})

	report := newTestGenerator().EfficiencyFull(ds)

	assert.Equal(t, date(2024, time.January, 15), report.Efficiency.StartDate)
	assert.Equal(t, date(2024, time.January, 20), report.Efficiency.EndDate)
	assert.Equal(t, 2, report.MeasurementCount)
}

func TestAllKinds_EmptyDatasetIsSoft(t *testing.T) {
	gen := newTestGenerator()
	empty := domain.NewDataset(nil)

	tests := []struct {
		name   string
		report *domain.Report
	}{
		{"daily", gen.DailyLatest(empty)},
		{"weekly", gen.WeeklyLatest(empty)},
		{"monthly", gen.MonthlyLatest(empty)},
		{"efficiency", gen.EfficiencyFull(empty)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.report)
			assert.Zero(t, tt.report.MeasurementCount)
			assert.NotEmpty(t, tt.report.ID)
			assert.NotEmpty(t, tt.report.Title)
		})
	}
}

func TestNewGenerator_DefaultPrice(t *testing.T) {
	gen := NewGenerator(nil, config.PricingConfig{})
	assert.InDelta(t, config.DefaultCostPerKWh, gen.costPerKWh, 1e-9)
}

package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"enmon/internal/analytics"
	"enmon/pkg/contracts/domain"
)

func TestRender_Daily(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0.005, 90, domain.LoadTypeLight),
		measurement("2024-01-15 12:00", 30.0, 0.010, 90, domain.LoadTypeMaximum),
	})

	text := Render(newTestGenerator().Daily(ds, date(2024, time.January, 15)))

	assert.Contains(t, text, "Daily Consumption Report")
	assert.Contains(t, text, "Period:       2024-01-15")
	assert.Contains(t, text, "Total consumption:   40.00 kWh")
	assert.Contains(t, text, "Peak consumption:    30.00 kWh at 12:00")
	assert.Contains(t, text, "Consumption by hour:")
	assert.Contains(t, text, "08:00  10.00 kWh")
	assert.Contains(t, text, strings.Repeat("=", 50))
}

func TestRender_EmptyReport(t *testing.T) {
	text := Render(newTestGenerator().DailyLatest(domain.NewDataset(nil)))

	assert.Contains(t, text, "No measurements found for this period.")
	assert.NotContains(t, text, "Total consumption")
}

func TestRender_WeeklySections(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-14 08:00", 30.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-15 08:00", 40.0, 0, 90, domain.LoadTypeLight),
	})

	text := Render(newTestGenerator().Weekly(ds, date(2024, time.January, 15)))

	assert.Contains(t, text, "Weekly Consumption Report")
	assert.Contains(t, text, "Average per day:     10.00 kWh")
	assert.Contains(t, text, "Consumption by day:")
	// Monday appears before Sunday regardless of calendar order in the window.
	assert.Less(t, strings.Index(text, "Monday"), strings.Index(text, "Sunday"))
}

func TestRender_MonthlyComparison(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2023-12-10 08:00", 100.0, 0, 90, domain.LoadTypeLight),
		measurement("2024-01-10 08:00", 150.0, 0, 90, domain.LoadTypeLight),
	})

	text := Render(newTestGenerator().Monthly(ds, 2024, time.January))

	assert.Contains(t, text, "Monthly Cost Report")
	assert.Contains(t, text, "Comparison with previous month:")
	assert.Contains(t, text, "Consumption change:   +50.0%")
}

func TestRender_EfficiencyRecommendations(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 1.0, 0.9, 70, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 99.0, 80.0, 75, domain.LoadTypeMaximum),
	})

	text := Render(newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15)))

	assert.Contains(t, text, "Energy Efficiency Report")
	assert.Contains(t, text, "Recommendations:")
	assert.Contains(t, text, "  1. ")
	assert.Contains(t, text, "  4. ")
}

func TestRender_EfficiencyClean(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0.001, 95, domain.LoadTypeLight),
		measurement("2024-01-15 09:00", 9.0, 0.001, 92, domain.LoadTypeMedium),
	})

	text := Render(newTestGenerator().Efficiency(ds, date(2024, time.January, 15), date(2024, time.January, 15)))

	assert.Contains(t, text, "No efficiency issues detected.")
}

func TestSummary(t *testing.T) {
	ds := domain.NewDataset([]domain.Measurement{
		measurement("2024-01-15 08:00", 10.0, 0.005, 90, domain.LoadTypeLight),
	})

	line := Summary(newTestGenerator().Daily(ds, date(2024, time.January, 15)))

	assert.Equal(t, "Daily Consumption Report [2024-01-15] 1 measurements", line)
}

func TestFormatDaySection(t *testing.T) {
	section := formatDaySection([]analytics.DayValue{
		{Day: "Monday", Value: 12.5},
		{Day: "Saturday", Value: 3.0},
	})

	assert.Contains(t, section, "Monday")
	assert.Contains(t, section, "12.50 kWh")
	assert.Contains(t, section, "3.00 kWh")
}

package exporter

import (
	"sort"

	"enmon/internal/analytics"
	"enmon/pkg/contracts/domain"
)

var measurementHeaders = []string{
	"timestamp", "usage_kwh", "lagging_reactive_kvarh", "leading_reactive_kvarh",
	"co2", "lagging_power_factor", "leading_power_factor", "nsm",
	"week_status", "day_of_week", "load_type",
}

// ExportMeasurements writes the full dataset to a CSV file in canonical
// column order.
func (w *CSVWriter) ExportMeasurements(ds *domain.Dataset, filePath string) error {
	records := make([][]string, 0, ds.Len())
	for _, m := range ds.Measurements() {
		records = append(records, []string{
			formatTimestamp(m.Timestamp),
			formatFloat(m.UsageKWh),
			formatFloat(m.LaggingReactivePower),
			formatFloat(m.LeadingReactivePower),
			formatSmallFloat(m.CO2),
			formatFloat(m.LaggingPowerFactor),
			formatFloat(m.LeadingPowerFactor),
			formatInt(m.SecondsFromMidnight),
			m.WeekStatus,
			m.DayOfWeek,
			m.LoadType,
		})
	}
	return w.WriteSimpleCSV(filePath, measurementHeaders, records)
}

// ExportHourlyAggregate writes an hour-of-day usage aggregate, hours
// sorted ascending.
func (w *CSVWriter) ExportHourlyAggregate(byHour map[int]float64, filePath string) error {
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	records := make([][]string, 0, len(hours))
	for _, hour := range hours {
		records = append(records, []string{formatInt(hour), formatFloat(byHour[hour])})
	}
	return w.WriteSimpleCSV(filePath, []string{"hour", "usage_kwh"}, records)
}

// ExportDayOfWeekAggregate writes a day-of-week aggregate preserving its
// Monday-first ordering.
func (w *CSVWriter) ExportDayOfWeekAggregate(byDay []analytics.DayValue, filePath string) error {
	records := make([][]string, 0, len(byDay))
	for _, dv := range byDay {
		records = append(records, []string{dv.Day, formatFloat(dv.Value)})
	}
	return w.WriteSimpleCSV(filePath, []string{"day", "usage_kwh"}, records)
}

// ExportLoadTypeAggregate writes a load-type usage aggregate, labels
// sorted for stable output.
func (w *CSVWriter) ExportLoadTypeAggregate(byLoadType map[string]float64, filePath string) error {
	loadTypes := make([]string, 0, len(byLoadType))
	for loadType := range byLoadType {
		loadTypes = append(loadTypes, loadType)
	}
	sort.Strings(loadTypes)

	records := make([][]string, 0, len(loadTypes))
	for _, loadType := range loadTypes {
		records = append(records, []string{loadType, formatFloat(byLoadType[loadType])})
	}
	return w.WriteSimpleCSV(filePath, []string{"load_type", "usage_kwh"}, records)
}

package analytics

import (
	"sort"
	"time"

	"enmon/pkg/contracts/domain"
)

// canonicalWeek is the emission order for day-of-week aggregates.
var canonicalWeek = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayValue is one entry of a day-of-week aggregate. Results are slices
// rather than maps so the Monday-first ordering survives the trip to
// renderers and exporters.
type DayValue struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// Stats holds the one-pass basic statistics over a dataset. All fields
// are zero when the dataset is empty.
type Stats struct {
	Count     int     `json:"count"`
	MeanUsage float64 `json:"mean_usage"`
	MinUsage  float64 `json:"min_usage"`
	MaxUsage  float64 `json:"max_usage"`
	TotalCO2  float64 `json:"total_co2"`
}

// TotalUsageByHour sums usage per hour of day across all dates.
// Keys are hours 0-23; hours with no measurements are absent.
func TotalUsageByHour(ds *domain.Dataset) map[int]float64 {
	totals := make(map[int]float64)
	for _, m := range ds.Measurements() {
		totals[m.Hour()] += m.UsageKWh
	}
	return totals
}

// UsageByHourForDate sums usage per hour for a single calendar date.
func UsageByHourForDate(ds *domain.Dataset, date time.Time) map[int]float64 {
	totals := make(map[int]float64)
	for _, m := range ds.Measurements() {
		if m.SameDate(date) {
			totals[m.Hour()] += m.UsageKWh
		}
	}
	return totals
}

// TotalUsageByDayOfWeek sums usage per day-of-week label, Monday first,
// days absent from the data omitted.
func TotalUsageByDayOfWeek(ds *domain.Dataset) []DayValue {
	return byDayOfWeek(ds, false, func(m domain.Measurement) float64 { return m.UsageKWh })
}

// AverageUsageByDayOfWeek averages usage per day-of-week label.
func AverageUsageByDayOfWeek(ds *domain.Dataset) []DayValue {
	return byDayOfWeek(ds, true, func(m domain.Measurement) float64 { return m.UsageKWh })
}

// TotalCO2ByDayOfWeek sums CO2 emissions per day-of-week label.
func TotalCO2ByDayOfWeek(ds *domain.Dataset) []DayValue {
	return byDayOfWeek(ds, false, func(m domain.Measurement) float64 { return m.CO2 })
}

// AverageCO2ByDayOfWeek averages CO2 emissions per day-of-week label.
func AverageCO2ByDayOfWeek(ds *domain.Dataset) []DayValue {
	return byDayOfWeek(ds, true, func(m domain.Measurement) float64 { return m.CO2 })
}

func byDayOfWeek(ds *domain.Dataset, mean bool, value func(domain.Measurement) float64) []DayValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range ds.Measurements() {
		sums[m.DayOfWeek] += value(m)
		counts[m.DayOfWeek]++
	}

	result := make([]DayValue, 0, len(sums))
	for _, day := range canonicalWeek {
		count, ok := counts[day]
		if !ok {
			continue
		}
		v := sums[day]
		if mean {
			v /= float64(count)
		}
		result = append(result, DayValue{Day: day, Value: v})
	}
	return result
}

// TotalUsageByLoadType sums usage per load-type label.
func TotalUsageByLoadType(ds *domain.Dataset) map[string]float64 {
	totals := make(map[string]float64)
	for _, m := range ds.Measurements() {
		totals[m.LoadType] += m.UsageKWh
	}
	return totals
}

// AverageUsageByLoadType averages usage per load-type label. Each value
// is a single-element slice; the container leaves room for additional
// per-type statistics without changing the signature.
func AverageUsageByLoadType(ds *domain.Dataset) map[string][]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range ds.Measurements() {
		sums[m.LoadType] += m.UsageKWh
		counts[m.LoadType]++
	}

	averages := make(map[string][]float64, len(sums))
	for loadType, sum := range sums {
		averages[loadType] = []float64{sum / float64(counts[loadType])}
	}
	return averages
}

// TotalUsageByWeekStatus sums usage per week-status label
// (Weekday or Weekend).
func TotalUsageByWeekStatus(ds *domain.Dataset) map[string]float64 {
	totals := make(map[string]float64)
	for _, m := range ds.Measurements() {
		totals[m.WeekStatus] += m.UsageKWh
	}
	return totals
}

// BasicStatistics computes count, mean, min and max usage plus total
// CO2 in a single pass. An empty dataset yields the zero value, not an
// error. Ties on min and max resolve to the first record encountered.
func BasicStatistics(ds *domain.Dataset) Stats {
	measurements := ds.Measurements()
	if len(measurements) == 0 {
		return Stats{}
	}

	stats := Stats{
		Count:    len(measurements),
		MinUsage: measurements[0].UsageKWh,
		MaxUsage: measurements[0].UsageKWh,
	}
	var totalUsage float64
	for _, m := range measurements {
		totalUsage += m.UsageKWh
		stats.TotalCO2 += m.CO2
		if m.UsageKWh < stats.MinUsage {
			stats.MinUsage = m.UsageKWh
		}
		if m.UsageKWh > stats.MaxUsage {
			stats.MaxUsage = m.UsageKWh
		}
	}
	stats.MeanUsage = totalUsage / float64(stats.Count)
	return stats
}

// TotalUsage sums usage over the whole dataset.
func TotalUsage(ds *domain.Dataset) float64 {
	var total float64
	for _, m := range ds.Measurements() {
		total += m.UsageKWh
	}
	return total
}

// TotalCO2 sums CO2 emissions over the whole dataset.
func TotalCO2(ds *domain.Dataset) float64 {
	var total float64
	for _, m := range ds.Measurements() {
		total += m.CO2
	}
	return total
}

// AvailableDates returns the distinct calendar dates present in the
// dataset, sorted ascending.
func AvailableDates(ds *domain.Dataset) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, m := range ds.Measurements() {
		seen[m.Date()] = struct{}{}
	}

	dates := make([]time.Time, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// FilterDate returns the measurements falling on one calendar date.
func FilterDate(ds *domain.Dataset, date time.Time) *domain.Dataset {
	var matched []domain.Measurement
	for _, m := range ds.Measurements() {
		if m.SameDate(date) {
			matched = append(matched, m)
		}
	}
	return domain.NewDataset(matched)
}

// FilterRange returns the measurements with start <= timestamp <= end.
func FilterRange(ds *domain.Dataset, start, end time.Time) *domain.Dataset {
	var matched []domain.Measurement
	for _, m := range ds.Measurements() {
		if m.InRange(start, end) {
			matched = append(matched, m)
		}
	}
	return domain.NewDataset(matched)
}

// FilterMonth returns the measurements within one calendar month.
func FilterMonth(ds *domain.Dataset, year int, month time.Month) *domain.Dataset {
	var matched []domain.Measurement
	for _, m := range ds.Measurements() {
		if m.Timestamp.Year() == year && m.Timestamp.Month() == month {
			matched = append(matched, m)
		}
	}
	return domain.NewDataset(matched)
}

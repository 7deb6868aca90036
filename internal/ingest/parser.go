package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"enmon/internal/errors"
	"enmon/pkg/contracts/domain"
)

// Column names of the industrial 11-column schema.
const (
	colDate            = "date"
	colUsage           = "Usage_kWh"
	colLaggingReactive = "Lagging_Current_Reactive.Power_kVarh"
	colLeadingReactive = "Leading_Current_Reactive_Power_kVarh"
	colCO2             = "CO2(tCO2)"
	colLaggingPF       = "Lagging_Current_Power_Factor"
	colLeadingPF       = "Leading_Current_Power_Factor"
	colNSM             = "NSM"
	colWeekStatus      = "WeekStatus"
	colDayOfWeek       = "Day_of_week"
	colLoadType        = "Load_Type"
)

// Column names of the simple 3-column schema.
const (
	colDevice    = "device"
	colPower     = "power"
	colTimestamp = "timestamp"
)

// timestampLayouts are tried in order; the first successful parse wins.
// The two ISO variants cover local date-times with and without seconds.
var timestampLayouts = []string{
	"01/02/2006 15:04",
	"02/01/2006 15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// MapColumns builds a header-name-to-index mapping from the first row of
// the source. Header names are trimmed but otherwise matched exactly.
func MapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

// ParseRow maps one delimited row to a Measurement using the given column
// mapping. It is a pure function: the caller is responsible for counting
// successes and failures across a batch.
//
// Schema detection follows the column mapping, not the row: a mapping with
// a Usage_kWh column is treated as industrial, one with a device column as
// simple, anything else is a parse failure.
func ParseRow(row []string, columns map[string]int) (domain.Measurement, error) {
	if _, ok := columns[colUsage]; ok {
		return parseIndustrialRow(row, columns)
	}
	if _, ok := columns[colDevice]; ok {
		return parseSimpleRow(row, columns)
	}
	return domain.Measurement{}, errors.NewParsingError("row matches no known schema", nil)
}

// parseIndustrialRow parses the 11-column industrial layout.
func parseIndustrialRow(row []string, columns map[string]int) (domain.Measurement, error) {
	dateStr, ok := field(row, columns, colDate)
	if !ok {
		return domain.Measurement{}, errors.NewParsingError("missing date field", nil)
	}

	timestamp, err := ParseTimestamp(dateStr)
	if err != nil {
		return domain.Measurement{}, err
	}

	usage, err := floatField(row, columns, colUsage)
	if err != nil {
		return domain.Measurement{}, err
	}
	laggingReactive, err := floatField(row, columns, colLaggingReactive)
	if err != nil {
		return domain.Measurement{}, err
	}
	leadingReactive, err := floatField(row, columns, colLeadingReactive)
	if err != nil {
		return domain.Measurement{}, err
	}
	co2, err := floatField(row, columns, colCO2)
	if err != nil {
		return domain.Measurement{}, err
	}
	laggingPF, err := floatField(row, columns, colLaggingPF)
	if err != nil {
		return domain.Measurement{}, err
	}
	leadingPF, err := floatField(row, columns, colLeadingPF)
	if err != nil {
		return domain.Measurement{}, err
	}

	// NSM values carry a trailing ".0" in some exports; parse as float
	// and truncate rather than requiring a clean integer.
	nsmFloat, err := floatField(row, columns, colNSM)
	if err != nil {
		return domain.Measurement{}, err
	}

	weekStatus, _ := field(row, columns, colWeekStatus)
	dayOfWeek, _ := field(row, columns, colDayOfWeek)
	loadType, _ := field(row, columns, colLoadType)

	return domain.Measurement{
		Timestamp:            timestamp,
		UsageKWh:             usage,
		LaggingReactivePower: laggingReactive,
		LeadingReactivePower: leadingReactive,
		CO2:                  co2,
		LaggingPowerFactor:   laggingPF,
		LeadingPowerFactor:   leadingPF,
		SecondsFromMidnight:  int(nsmFloat),
		WeekStatus:           weekStatus,
		DayOfWeek:            dayOfWeek,
		LoadType:             loadType,
	}, nil
}

// parseSimpleRow parses the 3-column (device, power, timestamp) layout.
// Fields the schema does not supply get neutral defaults: reactive power,
// CO2 and NSM are zero, both power factors are 100, the load type is the
// device name, and the week labels are derived from the timestamp.
func parseSimpleRow(row []string, columns map[string]int) (domain.Measurement, error) {
	device, ok := field(row, columns, colDevice)
	if !ok || device == "" {
		return domain.Measurement{}, errors.NewParsingError("missing device field", nil)
	}

	power, err := floatField(row, columns, colPower)
	if err != nil {
		return domain.Measurement{}, err
	}

	tsStr, ok := field(row, columns, colTimestamp)
	if !ok {
		return domain.Measurement{}, errors.NewParsingError("missing timestamp field", nil)
	}
	timestamp, err := ParseTimestamp(tsStr)
	if err != nil {
		return domain.Measurement{}, err
	}

	return domain.Measurement{
		Timestamp:          timestamp,
		UsageKWh:           power,
		LaggingPowerFactor: 100,
		LeadingPowerFactor: 100,
		WeekStatus:         weekStatusFor(timestamp),
		DayOfWeek:          timestamp.Weekday().String(),
		LoadType:           device,
	}, nil
}

// ParseTimestamp parses a timestamp string against the supported layouts
// in order, returning the first match.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.NewParsingError(fmt.Sprintf("unrecognized timestamp %q", value), nil)
}

// weekStatusFor derives the Weekday/Weekend label from a timestamp.
func weekStatusFor(ts time.Time) string {
	switch ts.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.WeekStatusWeekend
	default:
		return domain.WeekStatusWeekday
	}
}

// field returns the trimmed value of a named column, if mapped and present.
func field(row []string, columns map[string]int, name string) (string, bool) {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

// floatField parses a named column as a float, failing on absent columns.
func floatField(row []string, columns map[string]int, name string) (float64, error) {
	value, ok := field(row, columns, name)
	if !ok {
		return 0, errors.NewParsingError(fmt.Sprintf("missing %s field", name), nil)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.NewParsingError(fmt.Sprintf("invalid %s value %q", name, value), err)
	}
	return f, nil
}

package domain

import (
	"time"
)

// Canonical labels observed in the industrial dataset. Load type is
// free-form on the wire; these are the three values the efficiency
// analysis buckets by.
const (
	LoadTypeLight   = "Light_Load"
	LoadTypeMedium  = "Medium_Load"
	LoadTypeMaximum = "Maximum_Load"

	WeekStatusWeekday = "Weekday"
	WeekStatusWeekend = "Weekend"
)

// Measurement represents a single energy reading taken from one source row.
// It is an immutable value: created once at load time and never mutated.
type Measurement struct {
	Timestamp            time.Time `json:"timestamp" validate:"required"`
	UsageKWh             float64   `json:"usage_kwh" validate:"min=0"`
	LaggingReactivePower float64   `json:"lagging_reactive_kvarh"`
	LeadingReactivePower float64   `json:"leading_reactive_kvarh"`
	CO2                  float64   `json:"co2"` // same opaque unit as the source dataset
	LaggingPowerFactor   float64   `json:"lagging_power_factor" validate:"min=0,max=100"`
	LeadingPowerFactor   float64   `json:"leading_power_factor" validate:"min=0,max=100"`
	SecondsFromMidnight  int       `json:"nsm" validate:"min=0"`
	WeekStatus           string    `json:"week_status" validate:"oneof=Weekday Weekend"`
	DayOfWeek            string    `json:"day_of_week" validate:"oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	LoadType             string    `json:"load_type"`
}

// Date returns the calendar date of the measurement with the time-of-day
// component dropped.
func (m Measurement) Date() time.Time {
	y, mo, d := m.Timestamp.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, m.Timestamp.Location())
}

// Hour returns the hour-of-day (0-23) of the measurement.
func (m Measurement) Hour() int {
	return m.Timestamp.Hour()
}

// SameDate reports whether the measurement falls on the given calendar date.
func (m Measurement) SameDate(date time.Time) bool {
	y1, m1, d1 := m.Timestamp.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InRange reports whether the measurement's calendar date falls within
// [start, end], both inclusive.
func (m Measurement) InRange(start, end time.Time) bool {
	d := m.Date()
	return !d.Before(truncateToDay(start)) && !d.After(truncateToDay(end))
}

func truncateToDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

package domain

import (
	"time"
)

// ReportKind identifies the variant of a generated report.
type ReportKind string

const (
	ReportKindDaily      ReportKind = "daily"
	ReportKindWeekly     ReportKind = "weekly"
	ReportKindMonthly    ReportKind = "monthly"
	ReportKindEfficiency ReportKind = "efficiency"
)

// DisplayName returns the human-readable name of the report kind.
func (k ReportKind) DisplayName() string {
	switch k {
	case ReportKindDaily:
		return "Daily Consumption Report"
	case ReportKindWeekly:
		return "Weekly Consumption Report"
	case ReportKindMonthly:
		return "Monthly Cost Report"
	case ReportKindEfficiency:
		return "Energy Efficiency Report"
	default:
		return "unknown"
	}
}

// Report is a tagged union over the four report variants. Exactly one of
// the KPI payload pointers matching Kind is non-nil. It is immutable once
// returned by the generator; the caller owns it for the duration of a
// display or export action.
type Report struct {
	ID               string     `json:"id"`
	Kind             ReportKind `json:"kind"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Period           string     `json:"period"`
	GeneratedAt      time.Time  `json:"generated_at"`
	MeasurementCount int        `json:"measurement_count"`
	Sections         Sections   `json:"sections"`

	Daily      *DailyKPIs      `json:"daily,omitempty"`
	Weekly     *WeeklyKPIs     `json:"weekly,omitempty"`
	Monthly    *MonthlyKPIs    `json:"monthly,omitempty"`
	Efficiency *EfficiencyKPIs `json:"efficiency,omitempty"`
}

// Sections holds the optional precomputed text blocks a report may carry.
// The set is enumerated so every consumer knows the full section list at
// compile time; an empty string means the section is absent.
type Sections struct {
	ConsumptionByHour     string `json:"consumption_by_hour,omitempty"`
	ConsumptionByLoadType string `json:"consumption_by_load_type,omitempty"`
	ConsumptionByDay      string `json:"consumption_by_day,omitempty"`
}

// DailyKPIs carries the numeric results of a daily report.
type DailyKPIs struct {
	ReportDate         time.Time `json:"report_date"`
	TotalConsumption   float64   `json:"total_consumption"`
	AverageConsumption float64   `json:"average_consumption"`
	PeakConsumption    float64   `json:"peak_consumption"`
	PeakHour           string    `json:"peak_hour"` // "HH:MM" of the peak measurement
	MinConsumption     float64   `json:"min_consumption"`
	MinHour            string    `json:"min_hour"`
	TotalCO2           float64   `json:"total_co2"`
}

// WeeklyKPIs carries the numeric results of a weekly report. The daily
// average always divides by the fixed 7-day window, not by how many days
// actually have data.
type WeeklyKPIs struct {
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	TotalConsumption   float64   `json:"total_consumption"`
	AverageDaily       float64   `json:"average_daily"`
	WeekdayConsumption float64   `json:"weekday_consumption"`
	WeekendConsumption float64   `json:"weekend_consumption"`
}

// MonthlyKPIs carries the numeric results of a monthly cost report.
// The comparison fields are only meaningful when HasPreviousMonth is true.
type MonthlyKPIs struct {
	Year                     int        `json:"year"`
	Month                    time.Month `json:"month"`
	TotalConsumption         float64    `json:"total_consumption"`
	TotalCO2                 float64    `json:"total_co2"`
	CostPerKWh               float64    `json:"cost_per_kwh"`
	TotalCost                float64    `json:"total_cost"`
	AverageDailyCost         float64    `json:"average_daily_cost"`
	PeakDayCost              float64    `json:"peak_day_cost"`
	HasPreviousMonth         bool       `json:"has_previous_month"`
	PreviousMonthConsumption float64    `json:"previous_month_consumption"`
	PreviousMonthCost        float64    `json:"previous_month_cost"`
	ConsumptionChangePercent float64    `json:"consumption_change_percent"`
	CostChangePercent        float64    `json:"cost_change_percent"`
}

// EfficiencyKPIs carries the numeric results of an efficiency report.
type EfficiencyKPIs struct {
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	AveragePowerFactor    float64   `json:"average_power_factor"`
	LoadFactor            float64   `json:"load_factor"`
	EnergyIntensity       float64   `json:"energy_intensity"` // kWh per measurement
	CO2Intensity          float64   `json:"co2_intensity"`    // CO2 units per kWh, 0 when usage is 0
	LightLoadPercentage   float64   `json:"light_load_percentage"`
	MediumLoadPercentage  float64   `json:"medium_load_percentage"`
	MaximumLoadPercentage float64   `json:"maximum_load_percentage"`
	Recommendations       []string  `json:"recommendations,omitempty"`
}

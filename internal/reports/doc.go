// Package reports synthesizes the four report kinds (daily, weekly,
// monthly cost, efficiency) from aggregation results and renders them
// as plain text.
//
// Generation never fails for lack of matching data: a window with zero
// measurements yields a well-formed report with zero-valued KPIs and
// MeasurementCount 0, which callers should check before presenting the
// numbers as meaningful. Only ingestion treats emptiness as an error.
package reports

// Package ingest turns raw delimited energy data into the in-memory
// measurement store the analytics layer runs against.
//
// Two source schemas are supported and detected per row from the header:
//
//   - the industrial 11-column layout (date, Usage_kWh, reactive power,
//     CO2, power factors, NSM, WeekStatus, Day_of_week, Load_Type)
//   - the simple 3-column layout (device, power, timestamp), whose missing
//     fields are backfilled with neutral defaults
//
// Row parsing is a pure function; the Loader owns batch concerns: counting
// successes and failures, keeping the first few failures as diagnostics,
// validating parsed records, and distinguishing an empty source from a
// source where every row failed to parse.
package ingest

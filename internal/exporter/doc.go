// Package exporter writes measurements, aggregates and reports to files.
//
// CSVWriter is the core CSV writing primitive, with optional UTF-8 BOM
// for Excel compatibility. On top of it sit measurement and aggregate
// exports, plus text and JSON report exports consumed by external
// presentation layers.
package exporter

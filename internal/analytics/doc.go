// Package analytics computes grouped aggregates over a measurement
// dataset: usage by hour of day, by day of week, by load type and by
// week status, plus one-pass basic statistics.
//
// Every function is a pure, total function of the dataset it is given.
// Nothing in this package holds state between calls; callers own the
// dataset and decide when to reload it. Day-of-week results are emitted
// in canonical week order, Monday first, with absent days omitted
// rather than zero-filled.
package analytics

package domain

import (
	"time"
)

// Dataset is the in-memory measurement store for one loaded source file.
// Insertion order matches file order, which is not guaranteed to be
// chronological; callers needing chronological bounds must use
// MinTimestamp/MaxTimestamp rather than First/Last.
//
// A Dataset is immutable after construction. Reloading a source produces a
// new Dataset that replaces the old one wholesale, so readers always see a
// consistent snapshot.
type Dataset struct {
	measurements []Measurement
}

// NewDataset builds a dataset from parsed measurements. The input slice is
// copied so later mutation by the caller cannot reach the store.
func NewDataset(measurements []Measurement) *Dataset {
	ms := make([]Measurement, len(measurements))
	copy(ms, measurements)
	return &Dataset{measurements: ms}
}

// Measurements returns the stored sequence in file order. The returned
// slice is shared with the store and must not be modified.
func (d *Dataset) Measurements() []Measurement {
	if d == nil {
		return nil
	}
	return d.measurements
}

// Len returns the number of stored measurements.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.measurements)
}

// First returns the first measurement in file order.
func (d *Dataset) First() (Measurement, bool) {
	if d.Len() == 0 {
		return Measurement{}, false
	}
	return d.measurements[0], true
}

// Last returns the last measurement in file order.
func (d *Dataset) Last() (Measurement, bool) {
	if d.Len() == 0 {
		return Measurement{}, false
	}
	return d.measurements[len(d.measurements)-1], true
}

// MinTimestamp returns the earliest timestamp across all measurements.
// Unlike First, this is correct even when the source file is unsorted.
func (d *Dataset) MinTimestamp() (time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, false
	}
	min := d.measurements[0].Timestamp
	for _, m := range d.measurements[1:] {
		if m.Timestamp.Before(min) {
			min = m.Timestamp
		}
	}
	return min, true
}

// MaxTimestamp returns the latest timestamp across all measurements.
func (d *Dataset) MaxTimestamp() (time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, false
	}
	max := d.measurements[0].Timestamp
	for _, m := range d.measurements[1:] {
		if m.Timestamp.After(max) {
			max = m.Timestamp
		}
	}
	return max, true
}

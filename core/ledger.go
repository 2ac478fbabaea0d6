package core

import "cablemap/geometry"

// VerticalLineRecord is a committed vertical run of one connection.
type VerticalLineRecord struct {
	Start geometry.Point
	End   geometry.Point
	Owner string
}

// X returns the column of the run.
func (r VerticalLineRecord) X() float64 {
	return r.Start.X
}

// Bounds returns the zero-width rect covered by the run.
func (r VerticalLineRecord) Bounds() geometry.Rect {
	return geometry.BoundingRect(r.Start, r.End)
}

// VerticalLedger is the append-only list of vertical runs committed during
// one routing pass. A pass creates one ledger, threads it through every
// routing call in order, and drops it on the next full re-route.
//
// The zero value is ready to use. VerticalLedger is not safe for concurrent
// writes; a pass is sequential.
type VerticalLedger struct {
	records []VerticalLineRecord
}

// NewVerticalLedger returns an empty ledger.
func NewVerticalLedger() *VerticalLedger {
	return &VerticalLedger{}
}

// Record appends a vertical run. Zero-length runs are ignored.
func (l *VerticalLedger) Record(start, end geometry.Point, owner string) {
	if start.Eq(end) {
		return
	}
	l.records = append(l.records, VerticalLineRecord{Start: start, End: end, Owner: owner})
}

// Len returns the number of recorded runs.
func (l *VerticalLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// All returns a copy of every recorded run in insertion order.
func (l *VerticalLedger) All() []VerticalLineRecord {
	if l == nil {
		return nil
	}
	out := make([]VerticalLineRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Others returns the runs not owned by owner, in insertion order.
func (l *VerticalLedger) Others(owner string) []VerticalLineRecord {
	if l == nil {
		return nil
	}
	var out []VerticalLineRecord
	for _, r := range l.records {
		if r.Owner != owner {
			out = append(out, r)
		}
	}
	return out
}

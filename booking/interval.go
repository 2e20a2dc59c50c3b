package booking

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End). Half-open semantics keep
// back-to-back bookings from counting as overlapping.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps implements the half-open overlap rule:
// two intervals overlap iff start1 < end2 AND start2 < end1.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Subtract removes the union of busy intervals from the window and returns
// the ordered free sub-intervals. Busy intervals outside the window are
// clipped; empty results are dropped.
func Subtract(window Interval, busy []Interval) []Interval {
	if !window.Valid() {
		return nil
	}

	clipped := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if !b.Overlaps(window) {
			continue
		}
		if b.Start.Before(window.Start) {
			b.Start = window.Start
		}
		if b.End.After(window.End) {
			b.End = window.End
		}
		clipped = append(clipped, b)
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start.Before(clipped[j].Start) })

	free := []Interval{}
	cursor := window.Start
	for _, b := range clipped {
		if cursor.Before(b.Start) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}
	return free
}

package domain

import (
	"sort"
	"time"
)

// Interval is a half-open time interval [Start, End).
// The end instant is excluded, so adjacent intervals touch without overlapping.
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval is well-formed (Start strictly before End)
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (i.End == other.Start) do NOT overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Clip returns the part of the interval lying within bounds.
// The result may be empty (Start >= End) if the intervals do not intersect.
func (i Interval) Clip(bounds Interval) Interval {
	clipped := i
	if clipped.Start.Before(bounds.Start) {
		clipped.Start = bounds.Start
	}
	if clipped.End.After(bounds.End) {
		clipped.End = bounds.End
	}
	return clipped
}

// OccupiedKind identifies the source of an occupied interval
type OccupiedKind string

const (
	KindReservation   OccupiedKind = "reservation"
	KindBlockedPeriod OccupiedKind = "blocked_period"
)

// OccupiedInterval is court time taken by an active reservation or a blocked period
type OccupiedInterval struct {
	Interval
	Kind  OccupiedKind
	RefID int64 // id of the reservation or blocked period
}

// SortOccupied orders occupied intervals by start ascending, ties broken by
// end ascending. The order matters only for determinism of the sweep output.
func SortOccupied(occupied []OccupiedInterval) {
	sort.Slice(occupied, func(a, b int) bool {
		if occupied[a].Start.Equal(occupied[b].Start) {
			return occupied[a].End.Before(occupied[b].End)
		}
		return occupied[a].Start.Before(occupied[b].Start)
	})
}

// FreeIntervals computes the free windows within the open interval, given the
// occupied intervals on the same court. Occupied intervals may overlap each
// other (a blocked period over a reservation): the sweep merges them
// implicitly because the cursor never moves backward.
func FreeIntervals(open Interval, occupied []OccupiedInterval) []Interval {
	free := make([]Interval, 0)
	if !open.IsValid() {
		return free
	}

	SortOccupied(occupied)

	cursor := open.Start
	for _, occ := range occupied {
		clipped := occ.Clip(open)
		if !clipped.IsValid() {
			continue
		}
		if cursor.Before(clipped.Start) {
			free = append(free, Interval{Start: cursor, End: clipped.Start})
		}
		if clipped.End.After(cursor) {
			cursor = clipped.End
		}
	}

	if cursor.Before(open.End) {
		free = append(free, Interval{Start: cursor, End: open.End})
	}

	return free
}

// FirstConflict returns the first occupied interval overlapping the candidate,
// or nil if the candidate is free. Occupied intervals are examined in sweep
// order, so the earliest conflicting record is reported.
func FirstConflict(candidate Interval, occupied []OccupiedInterval) *OccupiedInterval {
	SortOccupied(occupied)
	for i := range occupied {
		if candidate.Overlaps(occupied[i].Interval) {
			return &occupied[i]
		}
	}
	return nil
}

// Package ivset implements the interval coverage set of spec.md §4.2: a
// sorted, coalescing set of closed integer intervals used by the
// case-completeness rule.
//
// Grounded line-for-line on bounds.c's bounds_case_cover() and the gap-walk
// in bounds_check_case(); here a slice of ascending, disjoint intervals
// stands in for the original's singly linked list, since Go has no reason
// to hand-roll a list for a structure that lives for one case-statement
// analysis.
package ivset

// Interval is a closed range [Low, High].
type Interval struct {
	Low, High int64
}

// Set is a sorted, coalescing set of disjoint closed intervals. The zero
// value is an empty set, scoped to one case-analysis invocation as
// spec.md §3 requires.
type Set struct {
	intervals []Interval
}

// Overlap describes an insertion that collided with existing coverage.
type Overlap struct {
	Low, High int64 // the overlapping sub-range
}

// Cover inserts [low, high], coalescing with adjacent intervals. It
// returns the overlap and ok=false if the new interval collides with
// already-covered values; the caller is expected to turn that into a
// diagnostic and skip the insertion, matching bounds_case_cover()'s "abort
// insertion" on overlap.
func (s *Set) Cover(low, high int64) (ov Overlap, ok bool) {
	for _, it := range s.intervals {
		if it.Low > high {
			break
		}
		if low <= it.High && it.Low <= high {
			rlow := max64(low, it.Low)
			rhigh := min64(high, it.High)
			return Overlap{Low: rlow, High: rhigh}, false
		}
	}

	for i, it := range s.intervals {
		if it.Low > high {
			break
		}
		if high == it.Low-1 {
			s.intervals[i].Low = low
			s.coalesceAround(i)
			return Overlap{}, true
		}
		if low == it.High+1 {
			s.intervals[i].High = high
			s.coalesceAround(i)
			return Overlap{}, true
		}
	}

	// Insert in sorted position.
	pos := len(s.intervals)
	for i, it := range s.intervals {
		if low < it.Low {
			pos = i
			break
		}
	}
	s.intervals = append(s.intervals, Interval{})
	copy(s.intervals[pos+1:], s.intervals[pos:])
	s.intervals[pos] = Interval{Low: low, High: high}
	return Overlap{}, true
}

// coalesceAround merges the interval at idx with an immediate neighbor
// that now abuts it, keeping the set's "no two adjacent-or-overlapping
// intervals" invariant after an in-place extension.
func (s *Set) coalesceAround(idx int) {
	if idx+1 < len(s.intervals) && s.intervals[idx].High+1 >= s.intervals[idx+1].Low {
		s.intervals[idx].High = max64(s.intervals[idx].High, s.intervals[idx+1].High)
		s.intervals = append(s.intervals[:idx+1], s.intervals[idx+2:]...)
	}
	if idx > 0 && s.intervals[idx-1].High+1 >= s.intervals[idx].Low {
		s.intervals[idx-1].High = max64(s.intervals[idx-1].High, s.intervals[idx].High)
		s.intervals = append(s.intervals[:idx], s.intervals[idx+1:]...)
	}
}

// Gaps walks the covered set against the target bounds [tlow, thigh] and
// returns every uncovered segment in ascending order, including a trailing
// segment up to thigh when the set doesn't reach it. This is the "missing
// choices" computation that follows case-completeness checking in
// bounds_check_case().
func (s *Set) Gaps(tlow, thigh int64) []Interval {
	var gaps []Interval
	walk := tlow
	for _, it := range s.intervals {
		if it.Low != walk {
			gaps = append(gaps, Interval{Low: walk, High: it.Low - 1})
		}
		walk = it.High + 1
	}
	if walk != thigh+1 {
		gaps = append(gaps, Interval{Low: walk, High: thigh})
	}
	return gaps
}

// Intervals returns the set's current disjoint, sorted intervals.
func (s *Set) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

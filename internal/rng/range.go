// Package rng implements the range utilities of spec.md §2 component B:
// normalizing ascending/descending ranges, deriving low/high bounds, and
// classifying null ranges.
package rng

import "github.com/hdlcore/vcore/internal/ast"

// Bounds folds both endpoints of r and returns (low, high) oriented so that
// low <= high regardless of direction. ok is false if either endpoint does
// not fold to an integer.
//
// Grounded on bounds.c's range_bounds()/folded_bounds(): the direction only
// decides which literal endpoint is "low" and which is "high", it never
// changes which integers are folded.
func Bounds(r *ast.Range, foldInt func(ast.Expr) (int64, bool)) (low, high int64, ok bool) {
	left, lok := foldInt(r.Left)
	right, rok := foldInt(r.Right)
	if !lok || !rok {
		return 0, 0, false
	}
	if r.Dir == ast.Downto {
		return right, left, true
	}
	return left, right, true
}

// Length returns max(0, high-low+1) for the folded bounds of r, per
// spec.md §4.1 folded_length.
func Length(r *ast.Range, foldInt func(ast.Expr) (int64, bool)) (int64, bool) {
	low, high, ok := Bounds(r, foldInt)
	if !ok {
		return 0, false
	}
	if high < low {
		return 0, true
	}
	return high - low + 1, true
}

// IsNull reports whether r is statically known to be null (low > high
// under its own direction) and whether that could be determined at all.
// A range whose endpoints do not both fold is never reported null —
// partial information never produces a bounds diagnostic (spec.md §4.3
// closing paragraph).
func IsNull(r *ast.Range, foldInt func(ast.Expr) (int64, bool)) (isNull, known bool) {
	left, lok := foldInt(r.Left)
	right, rok := foldInt(r.Right)
	if !lok || !rok {
		return false, false
	}
	if r.Dir == ast.Downto {
		return left < right, true
	}
	return left > right, true
}

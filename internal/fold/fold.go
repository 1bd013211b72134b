// Package fold implements the folding primitives of spec.md §4.1: pure,
// non-mutating extraction of compile-time integer, real, boolean,
// enumeration, and range values from arbitrary tree nodes. Every primitive
// returns a success flag instead of executing user code, and all of them
// terminate in time linear in the size of the traversed subtree.
package fold

import (
	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/rng"
)

// Int extracts a compile-time integer value: a literal integer, or a
// reference to a constant whose initializer itself folds to an integer.
//
// Grounded on bounds.c/eval.c's folded_int(), which this mirrors exactly:
// failure anywhere in the sub-computation fails the whole primitive, never
// panics and never partially succeeds.
func Int(e ast.Expr) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return n.Value, true
	case *ast.Ref:
		if c, ok := n.Decl.(*ast.ConstDecl); ok && c.Value != nil {
			return Int(c.Value)
		}
		return 0, false
	case *ast.TypeConv:
		// integer(<real-folding-to-int>) truncates toward zero; only
		// meaningful when the conversion target is itself integer, which
		// ExprType already captures for a well-typed tree.
		if ast.IsInteger(n.Target) {
			if v, ok := Real(n.Arg); ok {
				return int64(v), true
			}
			return Int(n.Arg)
		}
		return 0, false
	default:
		return 0, false
	}
}

// Real extracts a compile-time real value: a literal real, or a reference
// to a constant whose initializer folds to a real.
func Real(e ast.Expr) (float64, bool) {
	switch n := e.(type) {
	case *ast.RealLit:
		return n.Value, true
	case *ast.Ref:
		if c, ok := n.Decl.(*ast.ConstDecl); ok && c.Value != nil {
			return Real(c.Value)
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bool extracts a compile-time boolean value: a reference to one of the
// two literals of the standard boolean enumeration (position 0 = false,
// position 1 = true), following VHDL's convention that boolean is just an
// ordinary two-literal enumeration type.
func Bool(e ast.Expr) (bool, bool) {
	pos, ok := Enum(e)
	if !ok {
		return false, false
	}
	switch pos {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// Enum extracts the 0-based position of a reference to an enumeration
// literal, folding through constant initializers the same way Int does.
func Enum(e ast.Expr) (uint32, bool) {
	switch n := e.(type) {
	case *ast.EnumLitRef:
		return uint32(n.Decl.Index), true
	case *ast.Ref:
		if c, ok := n.Decl.(*ast.ConstDecl); ok && c.Value != nil {
			return Enum(c.Value)
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bounds folds both endpoints of r, oriented (low, high) regardless of
// direction.
func Bounds(r *ast.Range) (low, high int64, ok bool) {
	return rng.Bounds(r, Int)
}

// Length returns max(0, high-low+1) for the folded bounds of r.
func Length(r *ast.Range) (int64, bool) {
	return rng.Length(r, Int)
}

// IsNull reports whether r is statically known to be null.
func IsNull(r *ast.Range) (isNull, known bool) {
	return rng.IsNull(r, Int)
}

// Folded reports whether e has already been reduced to a literal, or is a
// reference that folds to a boolean literal — the same "already folded"
// test eval.c's folded() performs before deciding whether a call's
// arguments need no further reduction.
func Folded(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IntLit, *ast.RealLit, *ast.StringLit, *ast.EnumLitRef:
		return true
	case *ast.Ref:
		_, ok := Bool(e)
		return ok
	default:
		return false
	}
}

// Package builtin implements the builtin evaluator of spec.md §4.5: the
// fixed operator tables invoked when a call's callee names a builtin
// primitive rather than carrying a user-defined body.
//
// Grounded on eval.c's eval_fcall_log/real/int/enum/universal/str family,
// one function per domain exactly as the original dispatches: the
// evaluator classifies actual arguments by attempting each folding
// primitive in turn and uses the first domain where every argument
// succeeds.
package builtin

import (
	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/fold"
)

// Eval attempts to reduce a builtin call to a literal, trying boolean,
// integer, real, enumeration, string, and universal-mixed domains in turn.
// ok is false if no domain's arguments folded, or the operator is unknown
// to that domain or cannot be applied to these arguments (e.g. division by
// zero), matching eval.c's behavior of leaving the call unfolded rather
// than raising.
func Eval(call *ast.Call) (ast.Expr, bool) {
	if v, ok := evalBool(call); ok {
		return v, true
	}
	if v, ok := evalInt(call); ok {
		return v, true
	}
	if v, ok := evalReal(call); ok {
		return v, true
	}
	if v, ok := evalEnum(call); ok {
		return v, true
	}
	if v, ok := evalStr(call); ok {
		return v, true
	}
	if v, ok := evalUniversal(call); ok {
		return v, true
	}
	return nil, false
}

func boolLit(pos ast.Position, typ ast.Type, v bool) *ast.EnumLitRef {
	et, ok := ast.BaseRecur(typ).(*ast.EnumType)
	if !ok || len(et.Literals) < 2 {
		return nil
	}
	idx := 0
	if v {
		idx = 1
	}
	return &ast.EnumLitRef{NodePos: pos, Decl: et.Literal(idx)}
}

func evalBool(call *ast.Call) (ast.Expr, bool) {
	args := make([]bool, len(call.Args))
	for i, a := range call.Args {
		v, ok := fold.Bool(a)
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	if len(args) == 0 {
		return nil, false
	}
	var r bool
	switch call.Callee.Builtin {
	case "not":
		if len(args) != 1 {
			return nil, false
		}
		r = !args[0]
	case "and":
		r = allTrue(args, func(a, b bool) bool { return a && b })
	case "nand":
		r = !allTrue(args, func(a, b bool) bool { return a && b })
	case "or":
		r = allTrue(args, func(a, b bool) bool { return a || b })
	case "nor":
		r = !allTrue(args, func(a, b bool) bool { return a || b })
	case "xor":
		if len(args) != 2 {
			return nil, false
		}
		r = args[0] != args[1]
	case "xnor":
		if len(args) != 2 {
			return nil, false
		}
		r = args[0] == args[1]
	case "eq":
		if len(args) != 2 {
			return nil, false
		}
		r = args[0] == args[1]
	case "neq":
		if len(args) != 2 {
			return nil, false
		}
		r = args[0] != args[1]
	default:
		return nil, false
	}
	lit := boolLit(call.NodePos, call.Typ, r)
	if lit == nil {
		return nil, false
	}
	return lit, true
}

func allTrue(args []bool, combine func(a, b bool) bool) bool {
	acc := args[0]
	for _, a := range args[1:] {
		acc = combine(acc, a)
	}
	return acc
}

func evalInt(call *ast.Call) (ast.Expr, bool) {
	args := make([]int64, len(call.Args))
	for i, a := range call.Args {
		v, ok := fold.Int(a)
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	if len(args) == 0 {
		return nil, false
	}

	intLit := func(v int64) ast.Expr {
		return &ast.IntLit{NodePos: call.NodePos, Typ: call.Typ, Value: v}
	}
	boolResult := func(v bool) (ast.Expr, bool) {
		lit := boolLit(call.NodePos, call.Typ, v)
		if lit == nil {
			return nil, false
		}
		return lit, true
	}

	switch call.Callee.Builtin {
	case "add":
		return accumInt(args, intLit, func(a, b int64) int64 { return a + b })
	case "sub":
		if len(args) != 2 {
			return nil, false
		}
		return intLit(args[0] - args[1]), true
	case "mul":
		return accumInt(args, intLit, func(a, b int64) int64 { return a * b })
	case "div":
		if len(args) != 2 {
			return nil, false
		}
		if args[1] == 0 {
			return nil, false
		}
		return intLit(args[0] / args[1]), true
	case "neg":
		if len(args) != 1 {
			return nil, false
		}
		return intLit(-args[0]), true
	case "identity":
		if len(args) != 1 {
			return nil, false
		}
		return intLit(args[0]), true
	case "eq":
		return boolResult(args[0] == args[1])
	case "neq":
		return boolResult(args[0] != args[1])
	case "gt":
		return boolResult(args[0] > args[1])
	case "lt":
		return boolResult(args[0] < args[1])
	case "leq":
		return boolResult(args[0] <= args[1])
	case "geq":
		return boolResult(args[0] >= args[1])
	case "exp":
		if len(args) != 2 {
			return nil, false
		}
		if args[1] < 0 {
			return nil, false
		}
		return intLit(ipow(args[0], args[1])), true
	case "mod":
		if len(args) != 2 {
			return nil, false
		}
		if args[1] == 0 {
			return nil, false
		}
		return intLit(iabs(args[0]) % iabs(args[1])), true
	case "rem":
		if len(args) != 2 {
			return nil, false
		}
		if args[1] == 0 {
			return nil, false
		}
		return intLit(args[0] % args[1]), true
	case "min":
		return accumInt(args, intLit, func(a, b int64) int64 {
			if a < b {
				return a
			}
			return b
		})
	case "max":
		return accumInt(args, intLit, func(a, b int64) int64 {
			if a > b {
				return a
			}
			return b
		})
	default:
		return nil, false
	}
}

func accumInt(args []int64, lit func(int64) ast.Expr, combine func(a, b int64) int64) (ast.Expr, bool) {
	acc := args[0]
	for _, a := range args[1:] {
		acc = combine(acc, a)
	}
	return lit(acc), true
}

// ipow computes base**exp by exponentiation-by-squaring, per spec.md §4.5.
// Overflow wraps with native int64 two's-complement semantics, matching the
// spec's explicit "not modeled specially" clause.
func ipow(base, exp int64) int64 {
	if base == 0 {
		return 0
	}
	var result int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func iabs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func evalReal(call *ast.Call) (ast.Expr, bool) {
	args := make([]float64, len(call.Args))
	for i, a := range call.Args {
		v, ok := fold.Real(a)
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	if len(args) == 0 {
		return nil, false
	}

	realLit := func(v float64) ast.Expr {
		return &ast.RealLit{NodePos: call.NodePos, Typ: call.Typ, Value: v}
	}
	boolResult := func(v bool) (ast.Expr, bool) {
		lit := boolLit(call.NodePos, call.Typ, v)
		if lit == nil {
			return nil, false
		}
		return lit, true
	}

	switch call.Callee.Builtin {
	case "add":
		if len(args) != 2 {
			return nil, false
		}
		return realLit(args[0] + args[1]), true
	case "sub":
		if len(args) != 2 {
			return nil, false
		}
		return realLit(args[0] - args[1]), true
	case "mul":
		if len(args) != 2 {
			return nil, false
		}
		return realLit(args[0] * args[1]), true
	case "div":
		if len(args) != 2 {
			return nil, false
		}
		if args[1] == 0 {
			return nil, false
		}
		return realLit(args[0] / args[1]), true
	case "neg":
		if len(args) != 1 {
			return nil, false
		}
		return realLit(-args[0]), true
	case "identity":
		if len(args) != 1 {
			return nil, false
		}
		return realLit(args[0]), true
	case "eq":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] == args[1])
	case "neq":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] != args[1])
	case "gt":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] > args[1])
	case "lt":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] < args[1])
	default:
		return nil, false
	}
}

func evalEnum(call *ast.Call) (ast.Expr, bool) {
	args := make([]uint32, len(call.Args))
	var parent *ast.EnumType
	for i, a := range call.Args {
		v, ok := fold.Enum(a)
		if !ok {
			return nil, false
		}
		if r, ok := a.(*ast.Ref); ok {
			if et, ok := ast.BaseRecur(ast.DeclType(r.Decl)).(*ast.EnumType); ok {
				parent = et
			}
		}
		args[i] = v
	}
	if len(args) == 0 {
		return nil, false
	}

	boolResult := func(v bool) (ast.Expr, bool) {
		lit := boolLit(call.NodePos, call.Typ, v)
		if lit == nil {
			return nil, false
		}
		return lit, true
	}

	switch call.Callee.Builtin {
	case "min", "max":
		acc := args[0]
		for _, a := range args[1:] {
			if (call.Callee.Builtin == "min") == (a < acc) {
				acc = a
			}
		}
		if parent == nil {
			et, ok := ast.BaseRecur(call.Typ).(*ast.EnumType)
			if !ok {
				return nil, false
			}
			parent = et
		}
		lit := parent.Literal(int(acc))
		if lit == nil {
			return nil, false
		}
		return &ast.EnumLitRef{NodePos: call.NodePos, Decl: lit}, true
	case "eq":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] == args[1])
	case "neq":
		if len(args) != 2 {
			return nil, false
		}
		return boolResult(args[0] != args[1])
	default:
		return nil, false
	}
}

func evalStr(call *ast.Call) (ast.Expr, bool) {
	if len(call.Args) != 2 {
		return nil, false
	}
	a, aok := call.Args[0].(*ast.StringLit)
	b, bok := call.Args[1].(*ast.StringLit)
	if !aok || !bok {
		return nil, false
	}
	eq := a.Value == b.Value
	boolResult := func(v bool) (ast.Expr, bool) {
		lit := boolLit(call.NodePos, call.Typ, v)
		if lit == nil {
			return nil, false
		}
		return lit, true
	}
	switch call.Callee.Builtin {
	case "aeq":
		return boolResult(eq)
	case "aneq":
		return boolResult(!eq)
	default:
		return nil, false
	}
}

// evalUniversal folds the universal mixed real/int builtins, which require
// both a real and an integer operand to fold before they apply.
func evalUniversal(call *ast.Call) (ast.Expr, bool) {
	if len(call.Args) != 2 {
		return nil, false
	}
	switch call.Callee.Builtin {
	case "mulri":
		r, rok := fold.Real(call.Args[0])
		i, iok := fold.Int(call.Args[1])
		if !rok || !iok {
			return nil, false
		}
		return &ast.RealLit{NodePos: call.NodePos, Typ: call.Typ, Value: r * float64(i)}, true
	case "mulir":
		i, iok := fold.Int(call.Args[0])
		r, rok := fold.Real(call.Args[1])
		if !iok || !rok {
			return nil, false
		}
		return &ast.RealLit{NodePos: call.NodePos, Typ: call.Typ, Value: float64(i) * r}, true
	case "divri":
		r, rok := fold.Real(call.Args[0])
		i, iok := fold.Int(call.Args[1])
		if !rok || !iok || i == 0 {
			return nil, false
		}
		return &ast.RealLit{NodePos: call.NodePos, Typ: call.Typ, Value: r / float64(i)}, true
	default:
		return nil, false
	}
}

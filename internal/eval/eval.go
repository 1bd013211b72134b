// Package eval implements the expression evaluator, statement interpreter,
// and top-level fold entry point of spec.md §4.6-4.8.
//
// Grounded on eval.c's eval_expr/eval_stmt dispatch and its eval() entry
// point: every reduction either produces a literal or falls back to the
// original node, and no partial tree mutation ever happens on a failed
// path.
package eval

import (
	"fmt"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/builtin"
	"github.com/hdlcore/vcore/internal/diagctx"
	"github.com/hdlcore/vcore/internal/fold"
	"github.com/hdlcore/vcore/internal/vm"
)

// maxIterations bounds while- and for-loop execution during folding,
// matching eval.c's MAX_ITERS.
const maxIterations = 1000

// Eval attempts to reduce call to a literal tree node of equivalent value,
// returning the original call unchanged on any doubt. This is the §4.8
// top-level entry point; it never panics on malformed input from a
// well-typed tree, and recovers internally from any *diagctx.Fatal raised
// deeper in the walk.
func Eval(ctx *diagctx.Context, call *ast.Call) (result ast.Expr) {
	result = call
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*diagctx.Fatal); ok {
				result = call
				return
			}
			panic(r)
		}
	}()
	v, ok := evalFcall(ctx, nil, call)
	if tr := ctx.Trace(); tr != nil {
		result := "unfolded"
		if ok {
			result = v.String()
		}
		tr.RecordFold(call.NodePos, call.Callee.Name, ok, result)
	}
	if !ok {
		return call
	}
	return v
}

func debugWarn(ctx *diagctx.Context, pos ast.Position, format string, args ...any) {
	if ctx == nil || !ctx.DebugEval() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	ctx.Warnf(pos, "%s", msg)
	if tr := ctx.Trace(); tr != nil {
		tr.RecordWarning(pos, msg)
	}
}

// evalExpr reduces e as far as folding allows. ok is true only when the
// result is a literal of equivalent value; a false result may still carry
// a partially substituted tree, which callers must discard rather than
// splice into the original.
func evalExpr(ctx *diagctx.Context, frame *vm.Frame, e ast.Expr) (ast.Expr, bool) {
	switch n := e.(type) {
	case *ast.IntLit, *ast.RealLit, *ast.StringLit, *ast.EnumLitRef:
		return n, true

	case *ast.Ref:
		if frame != nil {
			if v, ok := frame.Lookup(n.Decl); ok {
				return v, true
			}
		}
		if c, ok := n.Decl.(*ast.ConstDecl); ok && c.Value != nil {
			if v, ok := evalExpr(ctx, nil, c.Value); ok {
				return v, true
			}
		}
		return n, false

	case *ast.TypeConv:
		v, ok := evalExpr(ctx, frame, n.Arg)
		if !ok {
			return n, false
		}
		switch {
		case ast.IsInteger(n.Target):
			switch vv := v.(type) {
			case *ast.RealLit:
				return &ast.IntLit{NodePos: n.NodePos, Typ: n.Target, Value: int64(vv.Value)}, true
			case *ast.IntLit:
				return &ast.IntLit{NodePos: n.NodePos, Typ: n.Target, Value: vv.Value}, true
			}
		case ast.IsReal(n.Target):
			switch vv := v.(type) {
			case *ast.IntLit:
				return &ast.RealLit{NodePos: n.NodePos, Typ: n.Target, Value: float64(vv.Value)}, true
			case *ast.RealLit:
				return &ast.RealLit{NodePos: n.NodePos, Typ: n.Target, Value: vv.Value}, true
			}
		}
		return n, false

	case *ast.Call:
		v, ok := evalFcall(ctx, frame, n)
		if ok {
			return v, true
		}
		return n, false

	default:
		// Array references, aggregates, attribute references, and slices
		// have no folding rule here; spec.md §4.6 reduces only calls,
		// references, and conversions.
		return n, false
	}
}

// evalFcall reduces a function call: builtin dispatch (§4.5), or
// activation of a user-defined scalar-returning body (§4.7).
func evalFcall(ctx *diagctx.Context, frame *vm.Frame, call *ast.Call) (ast.Expr, bool) {
	args := make([]ast.Expr, len(call.Args))
	allFolded := true
	for i, a := range call.Args {
		v, ok := evalExpr(ctx, frame, a)
		if !ok {
			allFolded = false
		}
		args[i] = v
	}

	if call.Callee.IsBuiltin() {
		if !allFolded {
			debugWarn(ctx, call.NodePos, "not all arguments folded for call to %s", call.Callee.Name)
			return call, false
		}
		substituted := &ast.Call{NodePos: call.NodePos, Typ: call.Typ, Callee: call.Callee, Args: args}
		v, ok := builtin.Eval(substituted)
		if !ok {
			debugWarn(ctx, call.NodePos, "failed to fold call to %s", call.Callee.Name)
			return call, false
		}
		return v, true
	}

	if call.Callee.Body == nil {
		return call, false
	}
	if !isScalar(call.Callee.ReturnType) {
		debugWarn(ctx, call.NodePos, "cannot fold call to %s with non-scalar result", call.Callee.Name)
		return call, false
	}
	if !allFolded {
		debugWarn(ctx, call.NodePos, "not all arguments folded for call to %s", call.Callee.Name)
		return call, false
	}
	if len(args) != len(call.Callee.Ports) {
		diagctx.Raise(call.NodePos, "call to %s has %d arguments but %d ports", call.Callee.Name, len(args), len(call.Callee.Ports))
	}

	newFrame := vm.Push(frame)
	for i, port := range call.Callee.Ports {
		newFrame.Bind(port, args[i])
	}

	sig := evalFuncBody(ctx, newFrame, call.Callee.Body)
	if sig.Kind != vm.SigReturn {
		return call, false
	}
	result, ok := evalExpr(ctx, newFrame, sig.Value)
	if !ok {
		return call, false
	}
	return result, true
}

func isScalar(t ast.Type) bool {
	return ast.IsInteger(t) || ast.IsReal(t) || ast.IsEnum(t)
}

// evalFuncBody binds each initialized local declaration to its folded
// initializer, then interprets the body's statement sequence.
func evalFuncBody(ctx *diagctx.Context, frame *vm.Frame, body *ast.FuncBody) vm.Signal {
	for _, d := range body.Decls {
		vd, ok := d.(*ast.VarDecl)
		if !ok || vd.Value == nil {
			continue
		}
		v, ok := evalExpr(ctx, frame, vd.Value)
		if !ok {
			debugWarn(ctx, vd.NodePos, "failed to fold initializer for %s", vd.Name)
			return vm.Fail
		}
		frame.Bind(vd, v)
	}
	return evalSeq(ctx, frame, body.Stmts)
}

// evalSeq executes stmts in order, stopping as soon as any statement
// returns a non-Normal signal.
func evalSeq(ctx *diagctx.Context, frame *vm.Frame, stmts []ast.Stmt) vm.Signal {
	for _, s := range stmts {
		sig := evalStmt(ctx, frame, s)
		if sig.Stopped() {
			return sig
		}
	}
	return vm.Normal
}

func evalStmt(ctx *diagctx.Context, frame *vm.Frame, s ast.Stmt) vm.Signal {
	switch st := s.(type) {
	case *ast.VarAssign:
		return evalVarAssign(ctx, frame, st)
	case *ast.If:
		return evalIf(ctx, frame, st)
	case *ast.Case:
		return evalCase(ctx, frame, st)
	case *ast.While:
		return evalWhile(ctx, frame, st)
	case *ast.For:
		return evalFor(ctx, frame, st)
	case *ast.Return:
		return evalReturn(ctx, frame, st)
	case *ast.Exit:
		return evalExit(ctx, frame, st)
	case *ast.Block:
		return evalSeq(ctx, frame, st.Stmts)
	default:
		// Signal assignments, procedure calls, and any other statement
		// kind have no folding rule; spec.md §4.7 treats anything
		// unsupported as an unconditional failure.
		return vm.Fail
	}
}

func evalVarAssign(ctx *diagctx.Context, frame *vm.Frame, st *ast.VarAssign) vm.Signal {
	ref, ok := st.Target.(*ast.Ref)
	if !ok {
		return vm.Fail
	}
	v, ok := evalExpr(ctx, frame, st.Value)
	if !ok {
		debugWarn(ctx, st.NodePos, "failed to fold assignment to %s", ref.String())
		return vm.Fail
	}
	frame.Bind(ref.Decl, v)
	return vm.Normal
}

func evalIf(ctx *diagctx.Context, frame *vm.Frame, st *ast.If) vm.Signal {
	cv, ok := evalExpr(ctx, frame, st.Cond)
	if !ok {
		return vm.Fail
	}
	b, ok := fold.Bool(cv)
	if !ok {
		return vm.Fail
	}
	if b {
		return evalSeq(ctx, frame, st.Then)
	}
	return evalSeq(ctx, frame, st.Else)
}

// evalCase supports only an integer discriminant, per spec.md §4.7: array
// cases always fail to fold. Named associations are tried before others,
// regardless of source order, since others is only a match of last resort.
func evalCase(ctx *diagctx.Context, frame *vm.Frame, st *ast.Case) vm.Signal {
	dv, ok := evalExpr(ctx, frame, st.Value)
	if !ok {
		return vm.Fail
	}
	disc, ok := fold.Int(dv)
	if !ok {
		return vm.Fail
	}

	var othersAssoc *ast.CaseAssoc
	for _, assoc := range st.Assocs {
		switch assoc.Kind {
		case ast.Others:
			othersAssoc = assoc
		case ast.Named:
			for _, nameExpr := range assoc.Names {
				nv, ok := evalExpr(ctx, frame, nameExpr)
				if !ok {
					continue
				}
				iv, ok := fold.Int(nv)
				if ok && iv == disc {
					return evalSeq(ctx, frame, assoc.Body)
				}
			}
		case ast.RangeAssoc:
			// A range choice reaching the folder is an internal-consistency
			// breach: sema is expected to have normalized case choices to
			// named associations before this point, mirroring eval_case's
			// `default: assert(false)` for anything but A_NAMED/A_OTHERS.
			diagctx.Raise(assoc.NodePos, "unexpected range choice in case statement during folding")
		}
	}
	if othersAssoc != nil {
		return evalSeq(ctx, frame, othersAssoc.Body)
	}
	return vm.Fail
}

func evalWhile(ctx *diagctx.Context, frame *vm.Frame, st *ast.While) vm.Signal {
	for iters := 0; ; iters++ {
		if st.Cond != nil {
			cv, ok := evalExpr(ctx, frame, st.Cond)
			if !ok {
				return vm.Fail
			}
			b, ok := fold.Bool(cv)
			if !ok {
				return vm.Fail
			}
			if !b {
				return vm.Normal
			}
		}
		if iters >= maxIterations {
			debugWarn(ctx, st.NodePos, "iteration limit exceeded in while loop")
			return vm.Fail
		}

		sig := evalSeq(ctx, frame, st.Stmts)
		switch sig.Kind {
		case vm.SigNormal:
			continue
		case vm.SigExit:
			if sig.Label == "" || sig.Label == st.Label {
				return vm.Normal
			}
			return sig
		default:
			return sig
		}
	}
}

// evalFor binds Index to successive integer literals stepping from Left to
// Right according to the range's direction, stopping at a return or when
// the bound passes Right. A statically null range executes nothing.
func evalFor(ctx *diagctx.Context, frame *vm.Frame, st *ast.For) vm.Signal {
	isNull, known := fold.IsNull(st.Range)
	if !known {
		return vm.Fail
	}
	if isNull {
		return vm.Normal
	}

	left, lok := fold.Int(st.Range.Left)
	right, rok := fold.Int(st.Range.Right)
	if !lok || !rok {
		return vm.Fail
	}

	step := int64(1)
	if st.Range.Dir == ast.Downto {
		step = -1
	}

	idxType := ast.DeclType(st.Index)
	iters := 0
	for cur := left; (step > 0 && cur <= right) || (step < 0 && cur >= right); cur += step {
		if iters >= maxIterations {
			debugWarn(ctx, st.NodePos, "iteration limit exceeded in for loop")
			return vm.Fail
		}
		iters++

		frame.Bind(st.Index, &ast.IntLit{NodePos: st.NodePos, Typ: idxType, Value: cur})
		sig := evalSeq(ctx, frame, st.Stmts)
		switch sig.Kind {
		case vm.SigNormal:
			continue
		case vm.SigExit:
			if sig.Label == "" || sig.Label == st.Label {
				return vm.Normal
			}
			return sig
		default:
			return sig
		}
	}
	return vm.Normal
}

func evalReturn(ctx *diagctx.Context, frame *vm.Frame, st *ast.Return) vm.Signal {
	v, ok := evalExpr(ctx, frame, st.Value)
	if !ok {
		return vm.Fail
	}
	return vm.Return(v)
}

func evalExit(ctx *diagctx.Context, frame *vm.Frame, st *ast.Exit) vm.Signal {
	if st.Cond != nil {
		cv, ok := evalExpr(ctx, frame, st.Cond)
		if !ok {
			return vm.Fail
		}
		b, ok := fold.Bool(cv)
		if !ok {
			return vm.Fail
		}
		if !b {
			return vm.Normal
		}
	}
	return vm.Exit(st.Label)
}

// Package bounds implements the bounds checker of spec.md §4.3: a single
// dispatcher visiting every design-tree node and firing diagnostics A
// through K through a *diagctx.Context, with no severity gradient and no
// suppression.
//
// Grounded directly on bounds.c's bounds_check_* family; diagnostic
// message shapes are reproduced verbatim from that source, including its
// direction-respecting phrasing ("to"/"downto") and dimension suffixes.
package bounds

import (
	"fmt"
	"strings"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/diagctx"
	"github.com/hdlcore/vcore/internal/fold"
	"github.com/hdlcore/vcore/internal/ivset"
)

// Check walks every declaration reachable from top, firing diagnostics
// through ctx. It never returns an error: folding failures are silent by
// design (spec.md §4.3's "partial information cannot produce a
// diagnostic"), and only a *diagctx.Fatal panic escapes to the caller.
func Check(ctx *diagctx.Context, top *ast.Unit) {
	for _, d := range top.Decls {
		checkDecl(ctx, d)
	}
}

func checkDecl(ctx *diagctx.Context, d ast.Decl) {
	switch dd := d.(type) {
	case *ast.SignalDecl:
		checkArrayDeclConstraint(ctx, dd.Typ)
		if dd.Value != nil {
			checkExpr(ctx, dd.Value)
			checkAssignment(ctx, dd.Typ, dd.Value)
		}
	case *ast.ConstDecl:
		checkArrayDeclConstraint(ctx, dd.Typ)
		if dd.Value != nil {
			checkExpr(ctx, dd.Value)
			checkAssignment(ctx, dd.Typ, dd.Value)
		}
	case *ast.VarDecl:
		checkArrayDeclConstraint(ctx, dd.Typ)
		if dd.Value != nil {
			checkExpr(ctx, dd.Value)
			checkAssignment(ctx, dd.Typ, dd.Value)
		}
	case *ast.Port:
		checkArrayDeclConstraint(ctx, dd.Typ)
	case *ast.FuncDecl:
		for _, p := range dd.Ports {
			checkArrayDeclConstraint(ctx, p.Typ)
		}
		if dd.Body != nil {
			checkBody(ctx, dd.Body)
		}
	case *ast.ProcDecl:
		for _, p := range dd.Ports {
			checkArrayDeclConstraint(ctx, p.Typ)
		}
		if dd.Body != nil {
			checkBody(ctx, dd.Body)
		}
	case *ast.TypeDecl:
		checkArrayDeclConstraint(ctx, dd.Typ)
	case *ast.SubtypeDecl:
		checkArrayDeclConstraint(ctx, dd.Typ)
	}
}

func checkBody(ctx *diagctx.Context, body *ast.FuncBody) {
	for _, d := range body.Decls {
		checkDecl(ctx, d)
	}
	checkStmts(ctx, body.Stmts)
}

func checkStmts(ctx *diagctx.Context, stmts []ast.Stmt) {
	for _, s := range stmts {
		checkStmt(ctx, s)
	}
}

func checkStmt(ctx *diagctx.Context, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarAssign:
		checkExpr(ctx, st.Target)
		checkExpr(ctx, st.Value)
		if ref, ok := st.Target.(*ast.Ref); ok {
			checkAssignment(ctx, ast.DeclType(ref.Decl), st.Value)
		}
	case *ast.SignalAssign:
		checkExpr(ctx, st.Target)
		targetType := st.Target.ExprType()
		for _, w := range st.Waveforms {
			checkExpr(ctx, w.Value)
			checkAssignment(ctx, targetType, w.Value)
		}
	case *ast.If:
		checkExpr(ctx, st.Cond)
		checkStmts(ctx, st.Then)
		checkStmts(ctx, st.Else)
	case *ast.Case:
		checkExpr(ctx, st.Value)
		for _, a := range st.Assocs {
			checkStmts(ctx, a.Body)
		}
		checkCase(ctx, st)
	case *ast.While:
		if st.Cond != nil {
			checkExpr(ctx, st.Cond)
		}
		checkStmts(ctx, st.Stmts)
	case *ast.For:
		checkExpr(ctx, st.Range.Left)
		checkExpr(ctx, st.Range.Right)
		checkStmts(ctx, st.Stmts)
	case *ast.Return:
		checkExpr(ctx, st.Value)
	case *ast.Exit:
		if st.Cond != nil {
			checkExpr(ctx, st.Cond)
		}
	case *ast.Block:
		checkStmts(ctx, st.Stmts)
	case *ast.ExprStmt:
		checkExpr(ctx, st.Call)
	}
}

func checkExpr(ctx *diagctx.Context, e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.StringLit:
		checkStringLiteral(ctx, n)
	case *ast.Call:
		checkCallArgs(ctx, n.Callee.Ports, n.Args, n.NodePos)
		for _, a := range n.Args {
			checkExpr(ctx, a)
		}
	case *ast.ProcCall:
		checkCallArgs(ctx, n.Callee.Ports, n.Args, n.NodePos)
		for _, a := range n.Args {
			checkExpr(ctx, a)
		}
	case *ast.TypeConv:
		checkExpr(ctx, n.Arg)
		checkTypeConv(ctx, n)
	case *ast.ArrayRef:
		checkExpr(ctx, n.Value)
		for _, ix := range n.Indices {
			checkExpr(ctx, ix)
		}
		checkArrayRef(ctx, n)
	case *ast.ArraySlice:
		checkExpr(ctx, n.Value)
		checkArraySlice(ctx, n)
	case *ast.Aggregate:
		for _, a := range n.Assocs {
			if a.Name != nil {
				checkExpr(ctx, a.Name)
			}
			checkExpr(ctx, a.Value)
		}
		checkAggregate(ctx, n)
	case *ast.AttrRef:
		checkExpr(ctx, n.Prefix)
		if n.Dim != nil {
			checkExpr(ctx, n.Dim)
		}
		checkAttrRef(ctx, n)
	}
}

// rangeOf returns the effective index/value range of t, unwrapping a
// subtype's own constraint or its base's, matching type_dim(type, 0) on a
// scalar or subtype node.
func rangeOf(t ast.Type) *ast.Range {
	switch tt := t.(type) {
	case *ast.IntegerType:
		return tt.Range
	case *ast.SubtypeType:
		if tt.Constraint != nil {
			return tt.Constraint
		}
		return rangeOf(tt.Base)
	default:
		return nil
	}
}

func dirWord(dir ast.Direction) string {
	if dir == ast.Downto {
		return "downto"
	}
	return "to"
}

// A. String literal: constrained element count must match character count.
func checkStringLiteral(ctx *diagctx.Context, n *ast.StringLit) {
	typ := n.Typ
	if ast.IsUnconstrained(typ) {
		return
	}
	dims := ast.Dims(typ)
	if len(dims) == 0 {
		return
	}
	expect, ok := fold.Length(dims[0])
	if !ok || expect == int64(n.Chars()) {
		return
	}
	ctx.ErrorAt(n.NodePos, "expected %d elements in string literal but have %d", expect, n.Chars())
}

// B. Function/procedure call argument checking.
func checkCallArgs(ctx *diagctx.Context, ports []*ast.Port, args []ast.Expr, pos ast.Position) {
	n := len(ports)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		port := ports[i]
		actual := args[i]
		ftype := port.Typ
		atype := actual.ExprType()

		switch {
		case ast.IsArray(ftype):
			if ast.IsUnconstrained(ftype) || ast.IsUnconstrained(atype) {
				continue
			}
			fdims := ast.Dims(ftype)
			adims := ast.Dims(atype)
			ndims := len(fdims)
			for j := 0; j < ndims && j < len(adims); j++ {
				fLen, fok := fold.Length(fdims[j])
				aLen, aok := fold.Length(adims[j])
				if !fok || !aok || fLen == aLen {
					continue
				}
				if ndims > 1 {
					ctx.ErrorAt(actual.Pos(), "actual length %d for dimension %d does not match formal length %d", aLen, j+1, fLen)
				} else {
					ctx.ErrorAt(actual.Pos(), "actual length %d does not match formal length %d", aLen, fLen)
				}
			}
		case ast.IsInteger(ftype):
			ival, ok := fold.Int(actual)
			if !ok {
				continue
			}
			r := rangeOf(ftype)
			if r == nil {
				continue
			}
			low, high, ok := fold.Bounds(r)
			if !ok {
				continue
			}
			if ival < low || ival > high {
				l, h := low, high
				if r.Dir == ast.Downto {
					l, h = high, low
				}
				ctx.ErrorAt(actual.Pos(), "value %d out of bounds %d %s %d for parameter %s", ival, l, dirWord(r.Dir), h, port.Name)
			}
		}
		// Real and enum parameters are accepted unconditionally (reserved).
	}
}

// C. Array element access: per-subscript bounds, annotating elide-bounds
// when every subscript was statically proven in range.
func checkArrayRef(ctx *diagctx.Context, n *ast.ArrayRef) {
	valueType := n.Value.ExprType()
	if valueType == nil || ast.IsUnconstrained(valueType) {
		return
	}
	dims := ast.Dims(valueType)
	if len(dims) == 0 {
		return
	}

	nstatic := 0
	for i, idxExpr := range n.Indices {
		if i >= len(dims) {
			break
		}
		index, ok := fold.Int(idxExpr)
		if !ok {
			continue
		}
		b := dims[i]
		left, lok := fold.Int(b.Left)
		right, rok := fold.Int(b.Right)
		if !lok || !rok {
			continue
		}
		low, high := left, right
		if b.Dir == ast.Downto {
			low, high = right, left
		}
		if index < low || index > high {
			name := ""
			if ref, ok := n.Value.(*ast.Ref); ok {
				name = ast.DeclName(ref.Decl) + " "
			}
			ctx.ErrorAt(n.NodePos, "array %sindex %d out of bounds %d %s %d", name, index, left, dirWord(b.Dir), right)
		} else {
			nstatic++
		}
	}

	if nstatic == len(n.Indices) && len(n.Indices) > 0 {
		n.ElideBounds = true
	}
}

// D. Array slice endpoints must lie within dim[0] of the sliced value.
func checkArraySlice(ctx *diagctx.Context, n *ast.ArraySlice) {
	valueType := n.Value.ExprType()
	if valueType == nil || ast.IsUnconstrained(valueType) {
		return
	}
	dims := ast.Dims(valueType)
	if len(dims) == 0 {
		return
	}
	b := dims[0]
	r := n.Range

	var leftErr, rightErr bool
	var rLeft, rRight int64
	bLeft, blok := fold.Int(b.Left)
	bRight, brok := fold.Int(b.Right)

	if blok {
		if v, ok := fold.Int(r.Left); ok {
			rLeft = v
			leftErr = (b.Dir == ast.To && v < bLeft) || (b.Dir == ast.Downto && v > bLeft)
		}
	}
	if brok {
		if v, ok := fold.Int(r.Right); ok {
			rRight = v
			rightErr = (b.Dir == ast.To && v > bRight) || (b.Dir == ast.Downto && v < bRight)
		}
	}

	if !leftErr && !rightErr {
		return
	}

	name := ""
	if ref, ok := n.Value.(*ast.Ref); ok {
		name = ast.DeclName(ref.Decl) + " "
	}
	side := "right"
	val := rRight
	if leftErr {
		side = "left"
		val = rLeft
	}
	ctx.ErrorAt(n.NodePos, "%sslice %s index %d out of bounds %d %s %d", name, side, val, bLeft, dirWord(b.Dir), bRight)
}

func checkWithin(ctx *diagctx.Context, e ast.Expr, dir ast.Direction, what string, low, high int64) {
	v, ok := fold.Int(e)
	if !ok {
		return
	}
	if v < low || v > high {
		l, h := low, high
		if dir == ast.Downto {
			l, h = high, low
		}
		ctx.ErrorAt(e.Pos(), "%s index %d out of bounds %d %s %d", what, v, l, dirWord(dir), h)
	}
}

// E. Aggregate element-count and index-bound checking.
func checkAggregate(ctx *diagctx.Context, n *ast.Aggregate) {
	typ := n.Typ
	if !ast.IsArray(typ) {
		return
	}

	var low, high int64 = -1<<62, 1<<62 - 1
	var typeR *ast.Range
	haveBounds := false

	if n.Unconstrained {
		if ua, ok := ast.BaseRecur(typ).(*ast.UnconstrainedArrayType); ok && len(ua.IndexTypes) > 0 {
			if r := rangeOf(ua.IndexTypes[0]); r != nil {
				if l, h, ok := fold.Bounds(r); ok {
					low, high, typeR, haveBounds = l, h, r, true
				}
			}
		}
	} else {
		dims := ast.Dims(typ)
		if len(dims) > 0 {
			typeR = dims[0]
			if l, h, ok := fold.Bounds(typeR); ok {
				low, high, haveBounds = l, h, true
			}
		}
	}
	if !haveBounds {
		return
	}

	knownCount := true
	nelems := int64(0)
	for _, a := range n.Assocs {
		switch a.Kind {
		case ast.Named:
			checkWithin(ctx, a.Name, typeR.Dir, "aggregate", low, high)
			nelems++
		case ast.RangeAssoc:
			checkWithin(ctx, a.Range.Left, a.Range.Dir, "aggregate", low, high)
			checkWithin(ctx, a.Range.Right, a.Range.Dir, "aggregate", low, high)
			if l, ok := fold.Length(a.Range); ok {
				nelems += l
			} else {
				knownCount = false
			}
		case ast.Others:
			knownCount = false
		default:
			nelems++
		}
	}

	dims := ast.Dims(typ)
	ndims := len(dims)

	if knownCount && typeR != nil {
		if expect, ok := fold.Length(typeR); ok && expect != nelems {
			ctx.ErrorAt(n.NodePos, "expected %d elements in aggregate but have %d", expect, nelems)
		}
	}

	if ndims > 1 && n.Unconstrained {
		length := int64(-1)
		for _, a := range n.Assocs {
			vt := a.Value.ExprType()
			vdims := ast.Dims(vt)
			if len(vdims) == 0 {
				break
			}
			thisLen, ok := fold.Length(vdims[0])
			if !ok {
				break
			}
			if length == -1 {
				length = thisLen
			} else if length != thisLen {
				ctx.ErrorAt(a.NodePos, "length of sub-aggregate %d does not match expected length %d", thisLen, length)
			}
		}
	}
}

// F. Declaration: constrained array dimensions must lie within their index
// type's own constraint.
func checkArrayDeclConstraint(ctx *diagctx.Context, typ ast.Type) {
	if typ == nil || !ast.IsArray(typ) || ast.IsUnconstrained(typ) {
		return
	}
	for _, dim := range ast.Dims(typ) {
		cons := dim.Left.ExprType()
		if ast.IsEnum(cons) {
			continue // enum index constraints are not checked here.
		}
		boundsR := rangeOf(cons)
		if boundsR == nil {
			continue
		}

		dimLeft, dlok := fold.Int(dim.Left)
		dimRight, drok := fold.Int(dim.Right)
		boundsLeft, blok := fold.Int(boundsR.Left)
		boundsRight, brok := fold.Int(boundsR.Right)
		if !dlok || !drok || !blok || !brok {
			continue
		}

		isNull := (dim.Dir == ast.To && dimLeft > dimRight) || (dim.Dir == ast.Downto && dimLeft < dimRight)
		if isNull {
			continue
		}

		if dimLeft < boundsLeft {
			ctx.ErrorAt(dim.Left.Pos(), "left index %d violates constraint %s", dimLeft, cons)
		}
		if dimRight > boundsRight {
			ctx.ErrorAt(dim.Right.Pos(), "right index %d violates constraint %s", dimRight, cons)
		}
	}
}

// G. Assignment: array-length matching plus scalar-subtype containment.
func checkAssignment(ctx *diagctx.Context, targetType ast.Type, value ast.Expr) {
	if targetType == nil || value.ExprType() == nil {
		return
	}
	valueType := value.ExprType()

	if ast.IsArray(targetType) && !ast.IsUnconstrained(targetType) && !ast.IsUnconstrained(valueType) {
		tdims := ast.Dims(targetType)
		vdims := ast.Dims(valueType)
		for i := 0; i < len(tdims) && i < len(vdims); i++ {
			targetW, tok := fold.Length(tdims[i])
			valueW, vok := fold.Length(vdims[i])
			if !tok || !vok || targetW == valueW {
				continue
			}
			if i > 0 {
				ctx.ErrorAt(value.Pos(), "length of dimension %d of value %d does not match length of target %d", i+1, valueW, targetW)
			} else {
				ctx.ErrorAt(value.Pos(), "length of value %d does not match length of target %d", valueW, targetW)
			}
		}
		return
	}

	if ast.IsArray(targetType) || ast.IsRecord(targetType) || !ast.IsSubtype(targetType) {
		return
	}
	r := rangeOf(targetType)
	if r == nil {
		return
	}

	if ival, ok := fold.Int(value); ok {
		if left, lok := fold.Int(r.Left); lok {
			if right, rok := fold.Int(r.Right); rok {
				switch r.Dir {
				case ast.To:
					if ival < left || ival > right {
						ctx.ErrorAt(value.Pos(), "value %d out of target bounds %d to %d", ival, left, right)
					}
				case ast.Downto:
					if ival > left || ival < right {
						ctx.ErrorAt(value.Pos(), "value %d out of target bounds %d downto %d", ival, left, right)
					}
				}
			}
		}
		return
	}

	if pos, ok := fold.Enum(value); ok {
		if left, lok := fold.Enum(r.Left); lok {
			if right, rok := fold.Enum(r.Right); rok {
				valueBase, _ := ast.BaseRecur(valueType).(*ast.EnumType)
				targetBase, _ := ast.BaseRecur(targetType).(*ast.EnumType)
				if valueBase == nil || targetBase == nil {
					return
				}
				valueLit := valueBase.Literal(int(pos))
				leftLit := targetBase.Literal(int(left))
				rightLit := targetBase.Literal(int(right))
				if valueLit == nil || leftLit == nil || rightLit == nil {
					return
				}
				switch r.Dir {
				case ast.To:
					if pos < left || pos > right {
						ctx.ErrorAt(value.Pos(), "value %s out of target bounds %s to %s", valueLit.Name, leftLit.Name, rightLit.Name)
					}
				case ast.Downto:
					if pos > left || pos < right {
						ctx.ErrorAt(value.Pos(), "value %s out of target bounds %s downto %s", valueLit.Name, leftLit.Name, rightLit.Name)
					}
				}
			}
		}
	}
}

func enumChoiceName(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.EnumLitRef:
		return n.Decl.Name
	case *ast.Ref:
		if el, ok := n.Decl.(*ast.EnumLit); ok {
			return el.Name
		}
	}
	return e.String()
}

// H. Case statement completeness, dispatched by the discriminant's type.
func checkCase(ctx *diagctx.Context, st *ast.Case) {
	discType := st.Value.ExprType()
	if discType == nil {
		return
	}

	switch {
	case ast.IsEnum(discType):
		checkCaseEnum(ctx, st, discType)
	case ast.IsInteger(discType):
		checkCaseInteger(ctx, st, discType)
	case ast.IsArray(discType):
		checkCaseArray(ctx, st, discType)
	}
}

func checkCaseEnum(ctx *diagctx.Context, st *ast.Case, discType ast.Type) {
	base, ok := ast.BaseRecur(discType).(*ast.EnumType)
	if !ok {
		return
	}
	low, high := 0, len(base.Literals)-1
	if sub, ok := discType.(*ast.SubtypeType); ok && sub.Constraint != nil {
		l, lok := fold.Enum(sub.Constraint.Left)
		h, hok := fold.Enum(sub.Constraint.Right)
		if !lok || !hok {
			return
		}
		low, high = int(l), int(h)
	}
	if high < low {
		return
	}

	have := make([]bool, high-low+1)
	haveOthers := false

	for _, a := range st.Assocs {
		if a.Kind == ast.Others {
			haveOthers = true
			continue
		}
		for _, nameExpr := range a.Names {
			pos, ok := fold.Enum(nameExpr)
			if !ok {
				continue
			}
			idx := int(pos) - low
			if idx < 0 || idx >= len(have) {
				continue
			}
			if have[idx] {
				ctx.ErrorAt(nameExpr.Pos(), "choice %s appears multiple times in case statement", enumChoiceName(nameExpr))
			} else {
				have[idx] = true
			}
		}
	}

	if haveOthers {
		return
	}
	for i := range have {
		if !have[i] {
			lit := base.Literal(low + i)
			if lit != nil {
				ctx.ErrorAt(st.NodePos, "missing choice %s in case statement", lit.Name)
			}
		}
	}
}

func typeName(t ast.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

func checkCaseInteger(ctx *diagctx.Context, st *ast.Case, discType ast.Type) {
	r := rangeOf(discType)
	if r == nil {
		return
	}
	tlow, thigh, ok := fold.Bounds(r)
	if !ok {
		return
	}

	haveOthers := false
	var covered ivset.Set

	// Split each multi-name choice ("when 0 | 2 =>") into one single-name
	// association per name, so every listed value is covered.
	assocs := make([]*ast.CaseAssoc, 0, len(st.Assocs))
	for _, a := range st.Assocs {
		if a.Kind != ast.Named || len(a.Names) == 1 {
			assocs = append(assocs, a)
			continue
		}
		for _, name := range a.Names {
			assocs = append(assocs, &ast.CaseAssoc{NodePos: a.NodePos, Kind: ast.Named, Names: []ast.Expr{name}})
		}
	}

	for _, a := range assocs {
		var low, high int64
		var okRange bool
		switch a.Kind {
		case ast.Others:
			haveOthers = true
			continue
		case ast.Named:
			if len(a.Names) != 1 {
				continue
			}
			v, ok := fold.Int(a.Names[0])
			if !ok {
				continue
			}
			low, high, okRange = v, v, true
		case ast.RangeAssoc:
			v1, ok1 := fold.Int(a.Range.Left)
			v2, ok2 := fold.Int(a.Range.Right)
			if !ok1 || !ok2 {
				continue
			}
			low, high, okRange = v1, v2, true
		}
		if !okRange {
			continue
		}

		if low < tlow || high > thigh {
			bad := low
			if low >= tlow {
				bad = high
			}
			ctx.ErrorAt(a.NodePos, "value %d outside %s bounds %d to %d", bad, typeName(discType), tlow, thigh)
			continue
		}

		if ov, ok := covered.Cover(low, high); !ok {
			if ov.Low == ov.High {
				ctx.ErrorAt(a.NodePos, "value %d is already covered", ov.Low)
			} else {
				ctx.ErrorAt(a.NodePos, "range %d to %d is already covered", ov.Low, ov.High)
			}
		}
	}

	if haveOthers {
		return
	}

	gaps := covered.Gaps(tlow, thigh)
	if len(gaps) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "case choices do not cover the following values of %s:", typeName(discType))
	for _, g := range gaps {
		if g.Low == g.High {
			fmt.Fprintf(&sb, "\n    %d", g.Low)
		} else {
			fmt.Fprintf(&sb, "\n    %d to %d", g.Low, g.High)
		}
	}
	ctx.ErrorAt(st.NodePos, "%s", sb.String())
}

// int32Max is the saturation threshold of spec.md §4.3H / §9's open
// question: when the element value-set is larger than this, checkCaseArray
// computes no possible-values count and reports only that the choices do
// not cover all possible values. At or below it, ipow's product is not
// overflow-checked.
const int32Max = 1<<31 - 1

func ipow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func checkCaseArray(ctx *diagctx.Context, st *ast.Case, discType ast.Type) {
	elem := ast.ElemType(discType)
	if elem == nil {
		return
	}

	var elemsz int64
	switch ast.BaseRecur(elem).(type) {
	case *ast.IntegerType, *ast.SubtypeType:
		r := rangeOf(elem)
		if r == nil {
			return
		}
		low, high, ok := fold.Bounds(r)
		if !ok {
			return
		}
		elemsz = high - low + 1
	case *ast.EnumType:
		et := ast.BaseRecur(elem).(*ast.EnumType)
		elemsz = int64(len(et.Literals))
	default:
		return
	}

	dims := ast.Dims(discType)
	if len(dims) == 0 {
		return
	}
	length, ok := fold.Length(dims[0])
	if !ok {
		return
	}

	saturated := elemsz > int32Max
	var expect int64
	if !saturated {
		expect = ipow(elemsz, length)
	}

	have := int64(0)
	haveOthers := false
	for _, a := range st.Assocs {
		switch a.Kind {
		case ast.Others:
			haveOthers = true
			have = expect
		case ast.Named:
			have++
		case ast.RangeAssoc:
			diagctx.Raise(a.NodePos, "range association in array case statement")
		}
	}

	if haveOthers {
		return
	}
	if saturated {
		ctx.ErrorAt(st.NodePos, "choices do not cover all possible values")
		return
	}
	if have != expect {
		ctx.ErrorAt(st.NodePos, "choices cover only %d of %d possible values", have, expect)
	}
}

// I. Type conversion: integer target bounds vs. the folded argument,
// truncating a real argument toward zero first.
func checkTypeConv(ctx *diagctx.Context, n *ast.TypeConv) {
	if !ast.IsInteger(n.Target) {
		return
	}
	from := n.Arg.ExprType()

	var ival int64
	var folded bool
	var display string

	if ast.IsReal(from) {
		if rv, ok := fold.Real(n.Arg); ok {
			ival = int64(rv)
			folded = true
			display = fmt.Sprintf("%g", rv)
		}
	} else if ast.IsInteger(from) {
		if iv, ok := fold.Int(n.Arg); ok {
			ival = iv
			folded = true
			display = fmt.Sprintf("%d", iv)
		}
	}
	if !folded {
		return
	}

	r := rangeOf(n.Target)
	if r == nil {
		return
	}
	low, high, ok := fold.Bounds(r)
	if !ok {
		return
	}
	if ival < low || ival > high {
		ctx.ErrorAt(n.Arg.Pos(), "type conversion argument %s out of bounds %d to %d", display, low, high)
	}
}

// J. Dimension-indexed attribute reference: the explicit dimension
// argument must be within [1, rank].
func checkAttrRef(ctx *diagctx.Context, n *ast.AttrRef) {
	switch n.Kind {
	case ast.AttrLength, ast.AttrLow, ast.AttrHigh, ast.AttrLeft, ast.AttrRight:
	default:
		return
	}
	if n.Dim == nil {
		return
	}
	prefixType := n.Prefix.ExprType()
	if prefixType == nil || !ast.IsArray(prefixType) || ast.IsUnconstrained(prefixType) {
		return
	}
	dim, ok := fold.Int(n.Dim)
	if !ok {
		return
	}
	rank := int64(len(ast.Dims(prefixType)))
	if dim < 1 || dim > rank {
		ctx.ErrorAt(n.Dim.Pos(), "invalid dimension %d for type %s", dim, typeName(prefixType))
	}
}

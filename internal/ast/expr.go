package ast

import (
	"fmt"
	"strings"
)

// Expr is implemented by every expression node.
type Expr interface {
	Node
	String() string
	ExprType() Type
	isExpr()
}

// IntLit is an integer literal.
type IntLit struct {
	NodePos Position
	Typ     Type
	Value   int64
}

func (*IntLit) isExpr()          {}
func (e *IntLit) Pos() Position   { return e.NodePos }
func (e *IntLit) ExprType() Type  { return e.Typ }
func (e *IntLit) String() string  { return fmt.Sprintf("%d", e.Value) }

// RealLit is a floating-point literal.
type RealLit struct {
	NodePos Position
	Typ     Type
	Value   float64
}

func (*RealLit) isExpr()         {}
func (e *RealLit) Pos() Position  { return e.NodePos }
func (e *RealLit) ExprType() Type { return e.Typ }
func (e *RealLit) String() string { return fmt.Sprintf("%g", e.Value) }

// StringLit is a string-of-characters literal (a sequence of enum-lit
// character references in the real front end, flattened to a Go string
// here).
type StringLit struct {
	NodePos Position
	Typ     Type
	Value   string
}

func (*StringLit) isExpr()         {}
func (e *StringLit) Pos() Position  { return e.NodePos }
func (e *StringLit) ExprType() Type { return e.Typ }
func (e *StringLit) String() string { return fmt.Sprintf("%q", e.Value) }

// Chars returns the number of character elements in the literal.
func (e *StringLit) Chars() int { return len([]rune(e.Value)) }

// EnumLitRef is a reference to a named enumeration literal.
type EnumLitRef struct {
	NodePos Position
	Decl    *EnumLit
}

func (*EnumLitRef) isExpr()         {}
func (e *EnumLitRef) Pos() Position  { return e.NodePos }
func (e *EnumLitRef) ExprType() Type { return e.Decl.Parent }
func (e *EnumLitRef) String() string { return e.Decl.Name }

// Ref is a reference to a named declaration: a constant, variable, signal,
// or port.
type Ref struct {
	NodePos Position
	Decl    Decl
}

func (*Ref) isExpr()        {}
func (e *Ref) Pos() Position { return e.NodePos }
func (e *Ref) ExprType() Type {
	return DeclType(e.Decl)
}
func (e *Ref) String() string { return DeclName(e.Decl) }

// Arg is one positional actual parameter of a call.
type Arg struct {
	Value Expr
}

// Call is a function call. Builtin operators (and/or/add/mul/...) are
// ordinary calls to a FuncDecl whose Builtin field names the primitive, the
// same way the source front end represents operators as function calls.
type Call struct {
	NodePos Position
	Typ     Type
	Callee  *FuncDecl
	Args    []Expr
}

func (*Call) isExpr()         {}
func (e *Call) Pos() Position  { return e.NodePos }
func (e *Call) ExprType() Type { return e.Typ }
func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.Name, strings.Join(parts, ", "))
}

// ProcCall is a procedure call; it has no value and is only interesting to
// the bounds checker's parameter-matching rule (spec.md §4.3B), never to
// the folder (procedures are never folded).
type ProcCall struct {
	NodePos Position
	Callee  *ProcDecl
	Args    []Expr
}

func (*ProcCall) isExpr()         {}
func (e *ProcCall) Pos() Position  { return e.NodePos }
func (e *ProcCall) ExprType() Type { return nil }
func (e *ProcCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.Name, strings.Join(parts, ", "))
}

// TypeConv is an explicit type conversion, e.g. integer(x) or real(x).
type TypeConv struct {
	NodePos Position
	Target  Type
	Arg     Expr
}

func (*TypeConv) isExpr()         {}
func (e *TypeConv) Pos() Position  { return e.NodePos }
func (e *TypeConv) ExprType() Type { return e.Target }
func (e *TypeConv) String() string { return fmt.Sprintf("%s(%s)", e.Target, e.Arg) }

// ArrayRef is an indexed array element access. ElideBounds is set by the
// bounds checker once every subscript has been proven in range
// (spec.md §4.3C); it is the one mutation the checker ever performs on the
// tree besides bumping the error counter.
type ArrayRef struct {
	NodePos     Position
	Typ         Type
	Value       Expr
	Indices     []Expr
	ElideBounds bool
}

func (*ArrayRef) isExpr()         {}
func (e *ArrayRef) Pos() Position  { return e.NodePos }
func (e *ArrayRef) ExprType() Type { return e.Typ }
func (e *ArrayRef) String() string {
	parts := make([]string, len(e.Indices))
	for i, ix := range e.Indices {
		parts[i] = ix.String()
	}
	return fmt.Sprintf("%s(%s)", e.Value, strings.Join(parts, ", "))
}

// ArraySlice is a contiguous sub-range of an array's first dimension.
type ArraySlice struct {
	NodePos Position
	Typ     Type
	Value   Expr
	Range   *Range
}

func (*ArraySlice) isExpr()         {}
func (e *ArraySlice) Pos() Position  { return e.NodePos }
func (e *ArraySlice) ExprType() Type { return e.Typ }
func (e *ArraySlice) String() string {
	return fmt.Sprintf("%s(%s)", e.Value, e.Range)
}

// AssocKind classifies one association inside an Aggregate or Case.
type AssocKind int

const (
	Positional AssocKind = iota
	Named
	RangeAssoc
	Others
)

// AggAssoc is one element association inside an Aggregate literal.
type AggAssoc struct {
	NodePos Position
	Kind    AssocKind
	Name    Expr   // set when Kind == Named
	Range   *Range // set when Kind == RangeAssoc
	Value   Expr
}

func (a *AggAssoc) Pos() Position { return a.NodePos }

// Aggregate is an array or record aggregate literal.
type Aggregate struct {
	NodePos       Position
	Typ           Type
	Assocs        []*AggAssoc
	Unconstrained bool // true if Typ's first dimension comes from an index subtype
}

func (*Aggregate) isExpr()         {}
func (e *Aggregate) Pos() Position  { return e.NodePos }
func (e *Aggregate) ExprType() Type { return e.Typ }
func (e *Aggregate) String() string {
	parts := make([]string, len(e.Assocs))
	for i, a := range e.Assocs {
		parts[i] = a.Value.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// AttrKind enumerates the predefined dimension-indexed attributes relevant
// to bounds checking (spec.md §4.3J).
type AttrKind int

const (
	AttrOther AttrKind = iota
	AttrLength
	AttrLow
	AttrHigh
	AttrLeft
	AttrRight
)

// AttrRef is a 'attribute reference, e.g. A'length(1).
type AttrRef struct {
	NodePos Position
	Typ     Type
	Kind    AttrKind
	Prefix  Expr
	Dim     Expr // optional dimension argument
}

func (*AttrRef) isExpr()         {}
func (e *AttrRef) Pos() Position  { return e.NodePos }
func (e *AttrRef) ExprType() Type { return e.Typ }
func (e *AttrRef) String() string {
	if e.Dim != nil {
		return fmt.Sprintf("%s'%v(%s)", e.Prefix, e.Kind, e.Dim)
	}
	return fmt.Sprintf("%s'%v", e.Prefix, e.Kind)
}

package ast

import "strings"

// Type is implemented by every type node: integer, real, enumeration,
// constrained/unconstrained array, subtype, and record.
type Type interface {
	Node
	String() string
	isType()
}

// IntegerType is an integer type with exactly one range dimension.
type IntegerType struct {
	NodePos Position
	Name    string
	Range   *Range
}

func (*IntegerType) isType()        {}
func (t *IntegerType) Pos() Position { return t.NodePos }
func (t *IntegerType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "integer range " + t.Range.String()
}

// RealType is a floating-point type. The core never bounds-checks real
// parameters/results beyond accepting them unconditionally (spec.md §4.3B).
type RealType struct {
	NodePos Position
	Name    string
}

func (*RealType) isType()         {}
func (t *RealType) Pos() Position  { return t.NodePos }
func (t *RealType) String() string { return t.Name }

// EnumType is an ordered list of enumeration literals with stable
// positions 0..N-1.
type EnumType struct {
	NodePos  Position
	Name     string
	Literals []*EnumLit
}

func (*EnumType) isType()         {}
func (t *EnumType) Pos() Position  { return t.NodePos }
func (t *EnumType) String() string { return t.Name }

// Literal returns the enum literal at the given position, or nil if out of
// range.
func (t *EnumType) Literal(pos int) *EnumLit {
	if pos < 0 || pos >= len(t.Literals) {
		return nil
	}
	return t.Literals[pos]
}

// ConstrainedArrayType has N dimensions, each a static Range, and an
// element type.
type ConstrainedArrayType struct {
	NodePos Position
	Name    string
	Dims    []*Range
	Elem    Type
}

func (*ConstrainedArrayType) isType()         {}
func (t *ConstrainedArrayType) Pos() Position  { return t.NodePos }
func (t *ConstrainedArrayType) String() string {
	if t.Name != "" {
		return t.Name
	}
	dims := make([]string, len(t.Dims))
	for i, d := range t.Dims {
		dims[i] = d.String()
	}
	return "array (" + strings.Join(dims, ", ") + ") of " + t.Elem.String()
}

// UnconstrainedArrayType has its index constraint supplied by an index
// subtype at instantiation rather than by a literal range.
type UnconstrainedArrayType struct {
	NodePos    Position
	Name       string
	IndexTypes []Type
	Elem       Type
}

func (*UnconstrainedArrayType) isType()         {}
func (t *UnconstrainedArrayType) Pos() Position  { return t.NodePos }
func (t *UnconstrainedArrayType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "array of " + t.Elem.String()
}

// SubtypeType derives from a base type by optionally adding a range
// constraint.
type SubtypeType struct {
	NodePos    Position
	Name       string
	Base       Type
	Constraint *Range // nil if the subtype adds no constraint
}

func (*SubtypeType) isType()         {}
func (t *SubtypeType) Pos() Position  { return t.NodePos }
func (t *SubtypeType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Base.String()
}

// BaseRecur unwraps subtype layers to find the underlying base type.
func BaseRecur(t Type) Type {
	for {
		st, ok := t.(*SubtypeType)
		if !ok {
			return t
		}
		t = st.Base
	}
}

// RecordField is one named, typed field of a RecordType.
type RecordField struct {
	NodePos Position
	Name    string
	Typ     Type
}

func (f *RecordField) Pos() Position { return f.NodePos }

// RecordType is an ordered collection of named fields.
type RecordType struct {
	NodePos Position
	Name    string
	Fields  []*RecordField
}

func (*RecordType) isType()         {}
func (t *RecordType) Pos() Position  { return t.NodePos }
func (t *RecordType) String() string { return t.Name }

// IsArray reports whether t is a constrained or unconstrained array type.
func IsArray(t Type) bool {
	switch t.(type) {
	case *ConstrainedArrayType, *UnconstrainedArrayType:
		return true
	default:
		return false
	}
}

// IsUnconstrained reports whether t lacks literal bounds of its own.
func IsUnconstrained(t Type) bool {
	_, ok := t.(*UnconstrainedArrayType)
	return ok
}

// IsInteger reports whether t is, or is a subtype of, an integer type.
func IsInteger(t Type) bool {
	_, ok := BaseRecur(t).(*IntegerType)
	return ok
}

// IsReal reports whether t is, or is a subtype of, a real type.
func IsReal(t Type) bool {
	_, ok := BaseRecur(t).(*RealType)
	return ok
}

// IsEnum reports whether t is, or is a subtype of, an enumeration type.
func IsEnum(t Type) bool {
	_, ok := BaseRecur(t).(*EnumType)
	return ok
}

// IsRecord reports whether t is a record type.
func IsRecord(t Type) bool {
	_, ok := t.(*RecordType)
	return ok
}

// IsSubtype reports whether t is a SubtypeType node itself (not merely
// derived from one).
func IsSubtype(t Type) bool {
	_, ok := t.(*SubtypeType)
	return ok
}

// Dims returns the dimension ranges of an array type, or nil for a
// non-array or unconstrained array type.
func Dims(t Type) []*Range {
	if ca, ok := t.(*ConstrainedArrayType); ok {
		return ca.Dims
	}
	return nil
}

// ElemType returns the element type of an array type, or nil.
func ElemType(t Type) Type {
	switch a := t.(type) {
	case *ConstrainedArrayType:
		return a.Elem
	case *UnconstrainedArrayType:
		return a.Elem
	default:
		return nil
	}
}

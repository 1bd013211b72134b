package bounds

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/diagctx"
)

func byteArrayType() *ast.ConstrainedArrayType {
	return &ast.ConstrainedArrayType{
		Name: "nibble_vec",
		Dims: []*ast.Range{{Left: &ast.IntLit{Value: 0}, Right: &ast.IntLit{Value: 3}, Dir: ast.To}},
		Elem: &ast.IntegerType{Name: "byte"},
	}
}

// TestCheckArrayRefOutOfRange covers scenario 1 from spec.md §8: a
// statically out-of-range array index fires rule C.
func TestCheckArrayRefOutOfRange(t *testing.T) {
	arrType := byteArrayType()
	a := &ast.VarDecl{Name: "a", Typ: arrType}
	ref := &ast.ArrayRef{Value: &ast.Ref{Decl: a}, Indices: []ast.Expr{&ast.IntLit{Value: 5}}}

	ctx := diagctx.New("", "")
	checkArrayRef(ctx, ref)

	if !ctx.HasErrors() {
		t.Fatal("expected a bounds error for an out-of-range index")
	}
	want := "array a index 5 out of bounds 0 to 3"
	if got := ctx.Diagnostics()[0].Message; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if ref.ElideBounds {
		t.Fatal("ElideBounds must not be set when the index is out of range")
	}
}

func TestCheckArrayRefInRangeElidesBounds(t *testing.T) {
	arrType := byteArrayType()
	a := &ast.VarDecl{Name: "a", Typ: arrType}
	ref := &ast.ArrayRef{Value: &ast.Ref{Decl: a}, Indices: []ast.Expr{&ast.IntLit{Value: 2}}}

	ctx := diagctx.New("", "")
	checkArrayRef(ctx, ref)

	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diagnostics())
	}
	if !ref.ElideBounds {
		t.Fatal("a statically in-range reference should be elide-annotated")
	}
}

// TestCheckCaseIntegerReportsMissingValue covers scenario 2: an integer
// case statement missing a value in its discriminant's range.
func TestCheckCaseIntegerReportsMissingValue(t *testing.T) {
	discType := &ast.IntegerType{Name: "nibble", Range: &ast.Range{
		Left: &ast.IntLit{Value: 0}, Right: &ast.IntLit{Value: 3}, Dir: ast.To,
	}}
	st := &ast.Case{
		Value: &ast.Ref{Decl: &ast.VarDecl{Typ: discType}},
		Assocs: []*ast.CaseAssoc{
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 0}}},
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 1}}},
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 2}}},
		},
	}

	ctx := diagctx.New("", "")
	checkCaseInteger(ctx, st, discType)

	if !ctx.HasErrors() {
		t.Fatal("expected a case-completeness error")
	}
	want := "case choices do not cover the following values of nibble:\n    3"
	if got := ctx.Diagnostics()[0].Message; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestCheckCaseIntegerCompleteWithOthers(t *testing.T) {
	discType := &ast.IntegerType{Name: "nibble", Range: &ast.Range{
		Left: &ast.IntLit{Value: 0}, Right: &ast.IntLit{Value: 3}, Dir: ast.To,
	}}
	st := &ast.Case{
		Value: &ast.Ref{Decl: &ast.VarDecl{Typ: discType}},
		Assocs: []*ast.CaseAssoc{
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 0}}},
			{Kind: ast.Others},
		},
	}
	ctx := diagctx.New("", "")
	checkCaseInteger(ctx, st, discType)
	if ctx.HasErrors() {
		t.Fatalf("an others clause should make the case complete, got %v", ctx.Diagnostics())
	}
}

func TestCheckCaseIntegerDuplicateChoice(t *testing.T) {
	discType := &ast.IntegerType{Name: "nibble", Range: &ast.Range{
		Left: &ast.IntLit{Value: 0}, Right: &ast.IntLit{Value: 3}, Dir: ast.To,
	}}
	st := &ast.Case{
		Value: &ast.Ref{Decl: &ast.VarDecl{Typ: discType}},
		Assocs: []*ast.CaseAssoc{
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 1}}},
			{Kind: ast.Named, Names: []ast.Expr{&ast.IntLit{Value: 1}}},
			{Kind: ast.Others},
		},
	}
	ctx := diagctx.New("", "")
	checkCaseInteger(ctx, st, discType)
	if !ctx.HasErrors() {
		t.Fatal("expected a duplicate-coverage error")
	}
	if ctx.Diagnostics()[0].Message != "value 1 is already covered" {
		t.Fatalf("message = %q", ctx.Diagnostics()[0].Message)
	}
}

// TestCheckCaseEnumSubtypeWithUnresolvedConstraintSkipsCheck covers
// bounds.c's `tree_kind(r.left) != T_REF || tree_kind(r.right) != T_REF`
// bail-out: when a subtype's constraint bounds don't fold to enum
// positions, completeness cannot be judged against either the subtype's
// (unknown) range or the base enum's full range, so no diagnostic fires.
func TestCheckCaseEnumSubtypeWithUnresolvedConstraintSkipsCheck(t *testing.T) {
	colorType := &ast.EnumType{Name: "color"}
	colorType.Literals = []*ast.EnumLit{
		{Name: "red", Index: 0, Parent: colorType},
		{Name: "green", Index: 1, Parent: colorType},
		{Name: "blue", Index: 2, Parent: colorType},
	}
	// An unresolvable bound: a reference to a plain variable, which
	// fold.Enum cannot fold (only enum literals and const refs fold).
	unresolved := &ast.Ref{Decl: &ast.VarDecl{Name: "lo", Typ: colorType}}
	subType := &ast.SubtypeType{
		Name: "primary",
		Base: colorType,
		Constraint: &ast.Range{
			Left:  unresolved,
			Right: &ast.EnumLitRef{Decl: colorType.Literals[2]},
			Dir:   ast.To,
		},
	}

	st := &ast.Case{
		Value: &ast.Ref{Decl: &ast.VarDecl{Typ: subType}},
		Assocs: []*ast.CaseAssoc{
			{Kind: ast.Named, Names: []ast.Expr{&ast.EnumLitRef{Decl: colorType.Literals[0]}}},
		},
	}

	ctx := diagctx.New("", "")
	checkCaseEnum(ctx, st, subType)

	if ctx.HasErrors() {
		t.Fatalf("expected no diagnostic when subtype bounds cannot fold, got %v", ctx.Diagnostics())
	}
}

func TestCheckStringLiteralLengthMismatch(t *testing.T) {
	strType := &ast.ConstrainedArrayType{
		Dims: []*ast.Range{{Left: &ast.IntLit{Value: 0}, Right: &ast.IntLit{Value: 2}, Dir: ast.To}},
		Elem: &ast.EnumType{Name: "character"},
	}
	lit := &ast.StringLit{Typ: strType, Value: "abcd"}
	ctx := diagctx.New("", "")
	checkStringLiteral(ctx, lit)
	if !ctx.HasErrors() {
		t.Fatal("expected a length-mismatch error")
	}
	want := "expected 3 elements in string literal but have 4"
	if got := ctx.Diagnostics()[0].Message; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestSnapshotArrayIndexOutOfBoundsDiagnostic(t *testing.T) {
	arrType := byteArrayType()
	a := &ast.VarDecl{Name: "a", Typ: arrType}
	ref := &ast.ArrayRef{
		NodePos: ast.Position{Line: 12, Column: 5},
		Value:   &ast.Ref{Decl: a},
		Indices: []ast.Expr{&ast.IntLit{Value: 9}},
	}

	ctx := diagctx.New("a(9) := 0;", "demo.vhd")
	checkArrayRef(ctx, ref)

	snaps.MatchSnapshot(t, "array_index_out_of_bounds", ctx.Render(false))
}

package fold

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func TestIntThroughConstRef(t *testing.T) {
	c := &ast.ConstDecl{Name: "N", Value: &ast.IntLit{Value: 42}}
	ref := &ast.Ref{Decl: c}
	v, ok := Int(ref)
	if !ok || v != 42 {
		t.Fatalf("Int(ref) = (%d, %v), want (42, true)", v, ok)
	}
}

func TestIntFailsOnUninitializedConst(t *testing.T) {
	c := &ast.ConstDecl{Name: "N"}
	ref := &ast.Ref{Decl: c}
	if _, ok := Int(ref); ok {
		t.Fatal("Int should fail on a constant with no value")
	}
}

func TestIntTypeConvTruncatesReal(t *testing.T) {
	intType := &ast.IntegerType{Name: "integer"}
	conv := &ast.TypeConv{Target: intType, Arg: &ast.RealLit{Value: 3.9}}
	v, ok := Int(conv)
	if !ok || v != 3 {
		t.Fatalf("Int(conv) = (%d, %v), want (3, true)", v, ok)
	}
}

func TestBoolFromEnumPositions(t *testing.T) {
	boolType := &ast.EnumType{Name: "boolean"}
	f := &ast.EnumLit{Name: "false", Index: 0, Parent: boolType}
	tr := &ast.EnumLit{Name: "true", Index: 1, Parent: boolType}
	boolType.Literals = []*ast.EnumLit{f, tr}

	if v, ok := Bool(&ast.EnumLitRef{Decl: f}); !ok || v {
		t.Fatalf("Bool(false) = (%v, %v)", v, ok)
	}
	if v, ok := Bool(&ast.EnumLitRef{Decl: tr}); !ok || !v {
		t.Fatalf("Bool(true) = (%v, %v)", v, ok)
	}
}

func TestFoldedRecognizesLiteralsOnly(t *testing.T) {
	if !Folded(&ast.IntLit{Value: 1}) {
		t.Fatal("an integer literal should be folded")
	}
	if Folded(&ast.Ref{Decl: &ast.VarDecl{Name: "x"}}) {
		t.Fatal("a variable reference should not be folded")
	}
}

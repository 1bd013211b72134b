package builtin

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func intType() *ast.IntegerType { return &ast.IntegerType{Name: "integer"} }

func boolType() *ast.EnumType {
	bt := &ast.EnumType{Name: "boolean"}
	bt.Literals = []*ast.EnumLit{
		{Name: "false", Index: 0, Parent: bt},
		{Name: "true", Index: 1, Parent: bt},
	}
	return bt
}

func intLit(v int64) *ast.IntLit { return &ast.IntLit{Typ: intType(), Value: v} }

func call(builtin string, typ ast.Type, args ...ast.Expr) *ast.Call {
	return &ast.Call{Typ: typ, Callee: &ast.FuncDecl{Builtin: builtin}, Args: args}
}

func TestEvalIntAdd(t *testing.T) {
	v, ok := Eval(call("add", intType(), intLit(2), intLit(3)))
	if !ok {
		t.Fatal("add should fold")
	}
	if v.(*ast.IntLit).Value != 5 {
		t.Fatalf("2+3 = %v", v)
	}
}

func TestEvalIntDivByZeroFails(t *testing.T) {
	_, ok := Eval(call("div", intType(), intLit(1), intLit(0)))
	if ok {
		t.Fatal("division by zero must not fold")
	}
}

func TestEvalIntExpNegativeExponentFails(t *testing.T) {
	_, ok := Eval(call("exp", intType(), intLit(2), intLit(-1)))
	if ok {
		t.Fatal("negative exponent must not fold")
	}
}

func TestEvalIntExpZeroToZero(t *testing.T) {
	v, ok := Eval(call("exp", intType(), intLit(0), intLit(0)))
	if !ok {
		t.Fatal("0**0 should fold")
	}
	if v.(*ast.IntLit).Value != 0 {
		t.Fatalf("0**0 = %v, want 0 (base==0 is checked before exponent==0)", v)
	}
}

func TestEvalIntModUsesAbsoluteValues(t *testing.T) {
	v, ok := Eval(call("mod", intType(), intLit(-7), intLit(3)))
	if !ok {
		t.Fatal("mod should fold")
	}
	if v.(*ast.IntLit).Value != 1 {
		t.Fatalf("-7 mod 3 = %v, want 1 (|a| mod |b|)", v)
	}
}

func TestEvalIntRemFollowsSignOfDividend(t *testing.T) {
	v, ok := Eval(call("rem", intType(), intLit(-7), intLit(3)))
	if !ok {
		t.Fatal("rem should fold")
	}
	if v.(*ast.IntLit).Value != -1 {
		t.Fatalf("-7 rem 3 = %v, want -1 (sign-of-dividend convention)", v)
	}
}

func TestEvalBoolAnd(t *testing.T) {
	bt := boolType()
	tru := &ast.EnumLitRef{Decl: bt.Literal(1)}
	fls := &ast.EnumLitRef{Decl: bt.Literal(0)}
	v, ok := Eval(call("and", bt, tru, fls))
	if !ok {
		t.Fatal("and should fold")
	}
	if v.(*ast.EnumLitRef).Decl.Index != 0 {
		t.Fatalf("true and false should be false, got index %d", v.(*ast.EnumLitRef).Decl.Index)
	}
}

func TestEvalIntComparisonReturnsBoolean(t *testing.T) {
	bt := boolType()
	v, ok := Eval(call("gt", bt, intLit(5), intLit(3)))
	if !ok {
		t.Fatal("gt should fold")
	}
	ref, ok := v.(*ast.EnumLitRef)
	if !ok || ref.Decl.Index != 1 {
		t.Fatalf("5 > 3 should fold to true, got %v", v)
	}
}

func TestEvalStringEquality(t *testing.T) {
	bt := boolType()
	a := &ast.StringLit{Value: "abc"}
	b := &ast.StringLit{Value: "abc"}
	v, ok := Eval(call("aeq", bt, a, b))
	if !ok {
		t.Fatal("aeq should fold")
	}
	if v.(*ast.EnumLitRef).Decl.Index != 1 {
		t.Fatal("equal strings should fold to true")
	}
}

func TestEvalUniversalMulRealInt(t *testing.T) {
	realType := &ast.RealType{Name: "real"}
	v, ok := Eval(call("mulri", realType, &ast.RealLit{Value: 2.5}, intLit(4)))
	if !ok {
		t.Fatal("mulri should fold")
	}
	if v.(*ast.RealLit).Value != 10.0 {
		t.Fatalf("2.5 * 4 = %v", v)
	}
}

func TestEvalUnknownBuiltinFails(t *testing.T) {
	if _, ok := Eval(call("frobnicate", intType(), intLit(1))); ok {
		t.Fatal("an unknown builtin must never fold")
	}
}

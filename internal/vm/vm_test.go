package vm

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func TestFrameBindAndLookup(t *testing.T) {
	f := Push(nil)
	decl := &ast.VarDecl{Name: "x"}
	if _, ok := f.Lookup(decl); ok {
		t.Fatal("lookup before bind should miss")
	}
	f.Bind(decl, &ast.IntLit{Value: 7})
	v, ok := f.Lookup(decl)
	if !ok {
		t.Fatal("lookup after bind should hit")
	}
	if v.(*ast.IntLit).Value != 7 {
		t.Fatalf("bound value = %v", v)
	}
}

func TestFrameLookupDoesNotTraverseParent(t *testing.T) {
	decl := &ast.VarDecl{Name: "x"}
	parent := Push(nil)
	parent.Bind(decl, &ast.IntLit{Value: 1})

	child := Push(parent)
	if _, ok := child.Lookup(decl); ok {
		t.Fatal("a call's frame must not see its caller's locals")
	}
	if child.Depth != 1 {
		t.Fatalf("Depth = %d, want 1", child.Depth)
	}
}

func TestSignalStopped(t *testing.T) {
	if Normal.Stopped() {
		t.Fatal("Normal should not stop a sequence")
	}
	if !Fail.Stopped() {
		t.Fatal("Fail should stop a sequence")
	}
	if !Exit("loop").Stopped() {
		t.Fatal("Exit should stop a sequence")
	}
	if !Return(&ast.IntLit{Value: 1}).Stopped() {
		t.Fatal("Return should stop a sequence")
	}
}

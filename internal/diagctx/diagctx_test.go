package diagctx

import (
	"os"
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func TestErrorAtIncrementsCount(t *testing.T) {
	c := New("", "t.vhd")
	c.ErrorAt(ast.Position{Line: 1, Column: 1}, "boom %d", 1)
	if c.Errors() != 1 {
		t.Fatalf("Errors() = %d, want 1", c.Errors())
	}
	if !c.HasErrors() {
		t.Fatal("HasErrors() should be true")
	}
}

func TestWarnfDoesNotIncrementErrorCount(t *testing.T) {
	c := New("", "t.vhd")
	c.Warnf(ast.Position{Line: 1, Column: 1}, "heads up")
	if c.HasErrors() {
		t.Fatal("a warning must not count as an error")
	}
	if len(c.Diagnostics()) != 1 {
		t.Fatalf("Diagnostics() = %v", c.Diagnostics())
	}
}

func TestRaiseRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		Raise(ast.Position{Line: 2, Column: 3}, "tree shape %s", "unexpected")
	}()
	if err == nil {
		t.Fatal("expected a recovered error")
	}
	if _, ok := err.(*Fatal); !ok {
		t.Fatalf("err = %T, want *Fatal", err)
	}
}

func TestRecoverPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("a non-Fatal panic should still propagate")
		}
	}()
	var err error
	defer Recover(&err)
	panic("not a Fatal")
}

func TestDebugEvalReadsEnvOnce(t *testing.T) {
	os.Setenv("VCORE_EVAL_DEBUG", "true")
	defer os.Unsetenv("VCORE_EVAL_DEBUG")

	c := New("", "")
	if !c.DebugEval() {
		t.Fatal("DebugEval() should report true when VCORE_EVAL_DEBUG=true")
	}

	os.Unsetenv("VCORE_EVAL_DEBUG")
	if !c.DebugEval() {
		t.Fatal("DebugEval() should stay cached after the first read")
	}
}

func TestTraceDisabledByDefault(t *testing.T) {
	c := New("", "")
	if c.Trace() != nil {
		t.Fatal("Trace() should be nil until EnableTrace is called")
	}
	c.EnableTrace()
	if c.Trace() == nil {
		t.Fatal("Trace() should be non-nil after EnableTrace")
	}
}

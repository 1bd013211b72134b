package diagctx

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func TestTraceRecordsFoldAndWarning(t *testing.T) {
	tr := NewTrace()
	pos := ast.Position{Line: 4, Column: 1}
	tr.RecordFold(pos, "add", true, "3")
	tr.RecordWarning(pos, "not all arguments folded")

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}

	events := tr.Events()
	if events[0].Get("callee").String() != "add" {
		t.Fatalf("event 0 callee = %q", events[0].Get("callee").String())
	}
	if !events[0].Get("folded").Bool() {
		t.Fatal("event 0 should record folded=true")
	}
	if events[1].Get("warning").String() != "not all arguments folded" {
		t.Fatalf("event 1 warning = %q", events[1].Get("warning").String())
	}
}

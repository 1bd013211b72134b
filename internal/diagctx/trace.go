package diagctx

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/hdlcore/vcore/internal/ast"
)

// Trace accumulates a JSON document of fold events for cmd/vcore's `trace`
// subcommand, keyed by event index so callers never need a struct per
// event shape — sjson appends, gjson reads back for display or assertions.
type Trace struct {
	doc string
}

// NewTrace returns an empty trace document: `{"events":[]}`.
func NewTrace() *Trace {
	return &Trace{doc: `{"events":[]}`}
}

// RecordFold appends one fold attempt's outcome to the trace.
func (t *Trace) RecordFold(pos ast.Position, callee string, folded bool, result string) {
	path := fmt.Sprintf("events.-1")
	event := map[string]any{
		"pos":     pos.String(),
		"callee":  callee,
		"folded":  folded,
		"result":  result,
	}
	doc, err := sjson.Set(t.doc, path, event)
	if err != nil {
		return
	}
	t.doc = doc
}

// RecordWarning appends a debug-trace warning (spec.md §6's "per-failure
// warning emission during evaluation") to the trace.
func (t *Trace) RecordWarning(pos ast.Position, message string) {
	doc, err := sjson.Set(t.doc, "events.-1", map[string]any{
		"pos":     pos.String(),
		"warning": message,
	})
	if err != nil {
		return
	}
	t.doc = doc
}

// JSON returns the accumulated trace document.
func (t *Trace) JSON() string { return t.doc }

// Events returns each recorded event as a gjson.Result, in recording
// order, for cmd/vcore trace's pretty-printer and for tests that assert on
// specific fields without unmarshaling into a Go struct.
func (t *Trace) Events() []gjson.Result {
	return gjson.Get(t.doc, "events").Array()
}

// Len reports how many events have been recorded.
func (t *Trace) Len() int {
	return len(t.Events())
}

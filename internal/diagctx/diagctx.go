// Package diagctx is the diagnostic sink threaded through the bounds
// checker and evaluator: it accumulates errors and warnings against
// source positions, counts errors for spec.md §7's "best-effort" contract,
// and gates eval-trace logging behind VCORE_EVAL_DEBUG.
//
// A Context carries no package-level state; every caller threads its own
// instance explicitly, the way the teacher threads its interpreter state
// rather than reaching for globals.
package diagctx

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sasha-s/go-deadlock"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/errfmt"
)

// Severity classifies a recorded diagnostic.
type Severity int

const (
	SevError Severity = iota
	SevWarning
)

func (s Severity) String() string {
	if s == SevWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one recorded error or warning.
type Diagnostic struct {
	Severity Severity
	Pos      ast.Position
	Message  string
}

// Fatal signals an internal-consistency breach: a tree shape the checker or
// evaluator never expects from a well-formed front end, as opposed to a
// diagnosable user error. Callers recover from it at the top-level entry
// point rather than threading an error return through every recursive
// helper, mirroring how eval.c's fatal_trace() aborts the walk outright.
type Fatal struct {
	Pos     ast.Position
	Message string
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: internal error: %s", f.Pos, f.Message)
}

// Raise panics with a *Fatal, to be recovered by Recover at the top of a
// public entry point.
func Raise(pos ast.Position, format string, args ...any) {
	panic(&Fatal{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Recover turns a panicking *Fatal into a returned error, leaving any other
// panic value to propagate. Call it via defer in every exported entry
// point that calls Raise transitively.
func Recover(err *error) {
	if r := recover(); r != nil {
		if f, ok := r.(*Fatal); ok {
			*err = f
			return
		}
		panic(r)
	}
}

// Context accumulates diagnostics for one bounds-check or fold invocation.
// The mutex makes it safe to share across the goroutines spec.md §5 allows
// a caller to fan a design tree's units out across, even though no package
// here spawns goroutines of its own.
type Context struct {
	mu          deadlock.Mutex
	diagnostics []Diagnostic
	errorCount  int
	source      string
	file        string

	debugOnce sync.Once
	debug     bool

	trace *Trace
}

// EnableTrace starts JSON fold-trace recording on c, for cmd/vcore's
// `trace` subcommand. Calling it more than once resets the trace.
func (c *Context) EnableTrace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trace = NewTrace()
}

// Trace returns the active trace, or nil if EnableTrace was never called.
func (c *Context) Trace() *Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trace
}

// New returns an empty diagnostic context. source and file are used only to
// decorate rendered output (errfmt.CompilerError); pass "" for either when
// unavailable.
func New(source, file string) *Context {
	return &Context{source: source, file: file}
}

// ErrorAt records an error at pos and increments the error count, matching
// the original front end's diag_at(..., DIAG_ERROR, ...); it does not
// abort the walk, in line with spec.md §4.3's "keep checking" contract.
func (c *Context) ErrorAt(pos ast.Position, format string, args ...any) {
	c.record(SevError, pos, format, args...)
}

// Warnf records a warning at pos without affecting the error count.
func (c *Context) Warnf(pos ast.Position, format string, args ...any) {
	c.record(SevWarning, pos, format, args...)
}

func (c *Context) record(sev Severity, pos ast.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, Diagnostic{Severity: sev, Pos: pos, Message: msg})
	if sev == SevError {
		c.errorCount++
	}
}

// Errors returns the number of errors recorded so far.
func (c *Context) Errors() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorCount
}

// HasErrors reports whether any error (as opposed to warning) was recorded.
func (c *Context) HasErrors() bool { return c.Errors() > 0 }

// Diagnostics returns a snapshot of every diagnostic recorded so far, in
// recording order.
func (c *Context) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Render formats every recorded diagnostic using errfmt, optionally with
// ANSI color for terminal output.
func (c *Context) Render(color bool) string {
	diags := c.Diagnostics()
	errs := make([]*errfmt.CompilerError, len(diags))
	for i, d := range diags {
		prefix := ""
		if d.Severity == SevWarning {
			prefix = "warning: "
		}
		errs[i] = errfmt.NewCompilerError(d.Pos, prefix+d.Message, c.source, c.file)
	}
	return errfmt.FormatErrors(errs, color)
}

// DebugEval reports whether eval-trace logging is enabled. It reads the
// VCORE_EVAL_DEBUG environment variable at most once per Context: the first
// call caches the answer for the rest of that Context's lifetime, and a
// new Context reads the variable again.
func (c *Context) DebugEval() bool {
	c.debugOnce.Do(func() {
		v, ok := os.LookupEnv("VCORE_EVAL_DEBUG")
		if !ok {
			return
		}
		b, err := strconv.ParseBool(v)
		c.debug = ok && (err != nil || b)
	})
	return c.debug
}

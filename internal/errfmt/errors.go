// Package errfmt renders diagnostics with source context, line/column
// information, and a caret pointing at the offending column, the same shape
// the original front end's diagnostics use.
package errfmt

import (
	"fmt"
	"strings"

	"github.com/hdlcore/vcore/internal/ast"
)

// CompilerError is a single rendered diagnostic with position and context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     ast.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos ast.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is true,
// ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if sourceLine := e.sourceLine(e.Pos.Line); sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		writeColored(&sb, "^", "\033[1;31m", color)
		sb.WriteString("\n")
	}

	writeColored(&sb, e.Message, "\033[1m", color)
	return sb.String()
}

// sourceLine extracts a specific 1-indexed line from the source code.
func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func writeColored(sb *strings.Builder, s, code string, color bool) {
	if color {
		sb.WriteString(code)
	}
	sb.WriteString(s)
	if color {
		sb.WriteString("\033[0m")
	}
}

// FormatErrors renders a batch of diagnostics, one per CompilerError, with
// a summary header once there is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "analysis failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

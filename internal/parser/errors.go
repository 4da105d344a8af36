package parser

import (
	"fmt"

	"ooroo/internal/ast"
)

// Error is a syntax error produced while parsing .ooroo source. Its Span
// points at the offending token. The root package wraps this into a
// *ooroo.CompileError at the loader boundary.
type Error struct {
	Message string
	Span    ast.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.Message)
}

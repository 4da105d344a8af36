package ooroo

import (
	"fmt"
	"strings"

	"ooroo/internal/analyzer"
	"ooroo/internal/ast"
	"ooroo/internal/graph"
	"ooroo/internal/parser"
)

// ErrorKind classifies a CompileError.
type ErrorKind string

const (
	ErrParse             ErrorKind = "ParseError"
	ErrDuplicateRule     ErrorKind = "DuplicateRule"
	ErrUndefinedRule     ErrorKind = "UndefinedRule"
	ErrUndefinedTerminal ErrorKind = "UndefinedTerminal"
	ErrCyclicDependency  ErrorKind = "CyclicDependency"
	ErrTypeMismatch      ErrorKind = "TypeMismatch"
	ErrEmptyRuleset      ErrorKind = "EmptyRuleset"
	ErrNoTerminals       ErrorKind = "NoTerminals"
)

// CompileError is the single error type returned by Compile and
// PlanFromDSL, and by PlanFromFile once the file has been read (a read
// failure is a plain wrapped error): a parse failure, a structural
// problem (duplicate or undefined rule, no terminals, empty ruleset), a
// cyclic dependency, or a static type conflict. RelatedSpans carries
// the other spans of a multi-span diagnostic: the originating use of a
// field typed inconsistently, or every reference along a cycle.
type CompileError struct {
	Kind         ErrorKind
	Message      string
	PrimarySpan  ast.Span
	RelatedSpans []ast.Span
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func wrapParseError(err error) *CompileError {
	if perr, ok := err.(*parser.Error); ok {
		return &CompileError{Kind: ErrParse, Message: perr.Message, PrimarySpan: perr.Span}
	}
	return &CompileError{Kind: ErrParse, Message: err.Error()}
}

func wrapAnalyzerError(err error) *CompileError {
	aerr := err.(*analyzer.Error)
	return &CompileError{
		Kind:         ErrorKind(aerr.Kind),
		Message:      aerr.Message,
		PrimarySpan:  aerr.PrimarySpan,
		RelatedSpans: aerr.RelatedSpans,
	}
}

func wrapCycleError(cyc *graph.CycleError) *CompileError {
	spans := make([]ast.Span, len(cyc.Edges))
	for i, e := range cyc.Edges {
		spans[i] = e.Span
	}
	var primary ast.Span
	if len(spans) > 0 {
		primary = spans[len(spans)-1]
	}
	return &CompileError{
		Kind:         ErrCyclicDependency,
		Message:      fmt.Sprintf("cyclic rule dependency: %s", strings.Join(cyc.Names, " -> ")),
		PrimarySpan:  primary,
		RelatedSpans: spans,
	}
}

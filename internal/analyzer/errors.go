package analyzer

import (
	"fmt"

	"ooroo/internal/ast"
)

// Kind classifies the errors semantic analysis can produce. String
// values match ooroo.ErrorKind exactly so the root package's
// wrapAnalyzerError (errors.go) can convert by simple cast, with no
// translation table to keep in sync.
type Kind string

const (
	KindDuplicateRule     Kind = "DuplicateRule"
	KindUndefinedRule     Kind = "UndefinedRule"
	KindUndefinedTerminal Kind = "UndefinedTerminal"
	KindTypeMismatch      Kind = "TypeMismatch"
	KindEmptyRuleset      Kind = "EmptyRuleset"
	KindNoTerminals       Kind = "NoTerminals"
)

// Error is a semantic-analysis failure: unresolved names, type
// conflicts, or structural problems (no rules, no terminals, duplicate
// names). A type conflict on a field carries both the conflicting use's
// span (PrimarySpan) and the originating use's span (RelatedSpans).
type Error struct {
	Kind         Kind
	Message      string
	PrimarySpan  ast.Span
	RelatedSpans []ast.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

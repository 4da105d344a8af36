// Package ooroo is a compiled rule engine: authors describe named
// boolean predicates ("rules") over a runtime key/value context using
// the Builder or the .ooroo DSL; Compile/PlanFromDSL turn the
// description into an immutable CompiledPlan, evaluated many times from
// many goroutines with no locking and no per-evaluation heap allocation
// on the indexed fast path.
package ooroo

import "ooroo/internal/ast"

// Value, ValueKind and FieldPath are re-exported from internal/ast so
// external callers never need to import the internal package directly:
// every pipeline stage (lexer, parser, analyzer, graph, optimizer) needs
// the same IR, and defining it here instead would create an import
// cycle back into this package.
type (
	Value     = ast.Value
	ValueKind = ast.ValueKind
	FieldPath = ast.FieldPath
)

const (
	KindInt    = ast.KindInt
	KindFloat  = ast.KindFloat
	KindBool   = ast.KindBool
	KindString = ast.KindString
	KindAbsent = ast.KindAbsent
)

func IntValue(v int64) Value     { return ast.IntValue(v) }
func FloatValue(v float64) Value { return ast.FloatValue(v) }
func BoolValue(v bool) Value     { return ast.BoolValue(v) }
func StringValue(v string) Value { return ast.StringValue(v) }

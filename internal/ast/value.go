package ast

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindFloat
	KindBool
	KindString
	// KindAbsent marks a field that was never set in a context. It is
	// never produced by the parser or the builder; only contexts
	// produce it, and only the evaluator ever observes it.
	KindAbsent

	// KindUnconstrained marks a SlotRef whose field was never pinned to
	// a concrete type by any comparison in the ruleset (see
	// internal/analyzer's handling of two never-otherwise-typed fields
	// compared to each other). It is a compile-time-only bookkeeping
	// value; the evaluator treats it as "no type check possible" rather
	// than a runtime TypeMismatch source.
	KindUnconstrained ValueKind = 255
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindAbsent:
		return "absent"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Value is a tagged scalar. Only one of I, F, B, S is meaningful,
// selected by Kind.
type Value struct {
	Kind ValueKind
	I    int64
	F    float64
	B    bool
	S    string
}

func IntValue(v int64) Value     { return Value{Kind: KindInt, I: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, F: v} }
func BoolValue(v bool) Value     { return Value{Kind: KindBool, B: v} }
func StringValue(v string) Value { return Value{Kind: KindString, S: v} }

// Absent is the sentinel value held by a slot that a context never set.
var Absent = Value{Kind: KindAbsent}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindString:
		return fmt.Sprintf("%q", v.S)
	case KindAbsent:
		return "<absent>"
	default:
		return "<invalid>"
	}
}

// numeric reports whether v is an int or float, and its value promoted
// to float64.
func (v Value) numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I), true
	case KindFloat:
		return v.F, true
	default:
		return 0, false
	}
}

// comparable reports whether a and b may be compared at all: both
// numeric (int/float, promoted across the pair), or identical non-
// numeric kinds. KindAbsent is never comparable to anything.
func comparable(a, b Value) bool {
	if a.Kind == KindAbsent || b.Kind == KindAbsent {
		return false
	}
	_, aNum := a.numeric()
	_, bNum := b.numeric()
	if aNum && bNum {
		return true
	}
	return a.Kind == b.Kind
}

// StaticTypesCompatible reports whether two value kinds may ever be
// compared, ignoring runtime Absent — used by the analyzer at compile
// time, where int/float cross-comparison is allowed but e.g.
// string/bool is a hard type error.
func StaticTypesCompatible(a, b ValueKind) bool {
	if a == KindAbsent || b == KindAbsent {
		return true // absence is a runtime-only concept, never a static error
	}
	aNum := a == KindInt || a == KindFloat
	bNum := b == KindInt || b == KindFloat
	if aNum && bNum {
		return true
	}
	return a == b
}

// Compare evaluates op against a and b per the runtime comparison
// semantics: a missing operand or an incomparable pair always yields
// false, never an error. NaN compares unequal to everything, itself
// included, and unordered — Go's float comparisons already implement
// exactly that, so there is no NaN special case here.
func Compare(op CmpOp, a, b Value) bool {
	if !comparable(a, b) {
		return false
	}
	if af, aNum := a.numeric(); aNum {
		bf, _ := b.numeric()
		switch op {
		case CmpEq:
			return af == bf
		case CmpNe:
			return af != bf
		case CmpLt:
			return af < bf
		case CmpLe:
			return af <= bf
		case CmpGt:
			return af > bf
		case CmpGe:
			return af >= bf
		}
		return false
	}
	switch a.Kind {
	case KindBool:
		switch op {
		case CmpEq:
			return a.B == b.B
		case CmpNe:
			return a.B != b.B
		default:
			return false // ordering on bool is not meaningful; analyzer rejects it statically
		}
	case KindString:
		switch op {
		case CmpEq:
			return a.S == b.S
		case CmpNe:
			return a.S != b.S
		case CmpLt:
			return a.S < b.S
		case CmpLe:
			return a.S <= b.S
		case CmpGt:
			return a.S > b.S
		case CmpGe:
			return a.S >= b.S
		}
	}
	return false
}

package ooroo

import (
	"time"

	"github.com/google/uuid"

	"ooroo/internal/ast"
)

// diagFunc records an evaluation-time observation (EvaluateDetailed
// only); nil in the two fast paths, where the extra branch to call it
// would cost something and nothing consumes the result anyway.
type diagFunc func(kind string, slot int)

// evalBool evaluates e's boolean value, switching on Kind directly with
// no virtual dispatch. results holds the boolean outcome of every rule
// index already scheduled before the current one; a RuleIdx node reads
// straight out of it.
func evalBool(e *ast.Expr, results []bool, getValue func(int) Value, diag diagFunc) bool {
	switch e.Kind {
	case ast.ExprLit:
		return e.Lit.Kind == ast.KindBool && e.Lit.B
	case ast.ExprRuleIdx:
		return results[e.RuleIdx]
	case ast.ExprCmp:
		l := evalOperand(e.Left, results, getValue, diag)
		r := evalOperand(e.Right, results, getValue, diag)
		return ast.Compare(e.Op, l, r)
	case ast.ExprNot:
		return !evalBool(e.Operand, results, getValue, diag)
	case ast.ExprAnd:
		return evalBool(e.Left, results, getValue, diag) && evalBool(e.Right, results, getValue, diag)
	case ast.ExprOr:
		return evalBool(e.Left, results, getValue, diag) || evalBool(e.Right, results, getValue, diag)
	default:
		return false
	}
}

// evalOperand evaluates e as a Cmp operand: a literal, a resolved
// SlotRef, another rule's boolean outcome wrapped as a Value, or (a
// parenthesized boolean sub-expression used as a comparison atom) the
// wrapped result of evalBool.
func evalOperand(e *ast.Expr, results []bool, getValue func(int) Value, diag diagFunc) Value {
	switch e.Kind {
	case ast.ExprLit:
		return e.Lit
	case ast.ExprSlotRef:
		v := getValue(e.Slot)
		if diag != nil {
			if v.Kind == ast.KindAbsent {
				diag("MissingField", e.Slot)
			} else if e.ExpectedType != ast.KindUnconstrained && v.Kind != e.ExpectedType &&
				!(isNumeric(v.Kind) && isNumeric(e.ExpectedType)) {
				diag("TypeMismatch", e.Slot)
			}
		}
		return v
	case ast.ExprRuleIdx:
		return ast.BoolValue(results[e.RuleIdx])
	default:
		return ast.BoolValue(evalBool(e, results, getValue, diag))
	}
}

func isNumeric(k ast.ValueKind) bool {
	return k == ast.KindInt || k == ast.KindFloat
}

// Evaluate walks the plan against a dynamic (map-keyed) context and
// returns the first terminal to fire, in priority order, or nil if none
// did.
func (p *CompiledPlan) Evaluate(ctx *DynamicContext) *Verdict {
	n := len(p.rules)
	var stackBuf [64]bool
	var results []bool
	if n <= 64 {
		results = stackBuf[:n]
	} else {
		results = make([]bool, n)
	}

	getValue := func(slot int) Value { return ctx.get(p.slotNames[slot]) }

	for i, r := range p.rules {
		results[i] = evalBool(r.Body, results, getValue, nil)
		if r.Terminal && results[i] {
			return &Verdict{Terminal: r.Name, Result: true}
		}
	}
	return nil
}

// EvaluateIndexed is Evaluate's allocation-free fast path: ctx reads
// directly by slot index, with no string lookup or caching.
func (p *CompiledPlan) EvaluateIndexed(ctx *IndexedContext) *Verdict {
	n := len(p.rules)
	var stackBuf [64]bool
	var results []bool
	if n <= 64 {
		results = stackBuf[:n]
	} else {
		results = make([]bool, n)
	}

	getValue := func(slot int) Value { return ctx.get(slot) }

	for i, r := range p.rules {
		results[i] = evalBool(r.Body, results, getValue, nil)
		if r.Terminal && results[i] {
			return &Verdict{Terminal: r.Name, Result: true}
		}
	}
	return nil
}

// EvaluateDetailed runs the same walk as Evaluate but times it, records
// every rule outcome visited before short-circuiting, and collects
// MissingField/TypeMismatch diagnostics. The per-slot value is looked up
// once and cached locally, since a detailed run is already paying for a
// map and a timer and the extra cache avoids repeat dotted-path lookups
// within a single evaluation.
func (p *CompiledPlan) EvaluateDetailed(ctx *DynamicContext) Report {
	start := time.Now()

	n := len(p.rules)
	var stackBuf [64]bool
	var results []bool
	if n <= 64 {
		results = stackBuf[:n]
	} else {
		results = make([]bool, n)
	}

	cache := make(map[int]Value)
	getValue := func(slot int) Value {
		if v, ok := cache[slot]; ok {
			return v
		}
		v := ctx.get(p.slotNames[slot])
		cache[slot] = v
		return v
	}

	var diagnostics []Diagnostic
	seen := make(map[int]bool) // one diagnostic per slot per evaluation
	diag := func(kind string, slot int) {
		if seen[slot] {
			return
		}
		seen[slot] = true
		diagnostics = append(diagnostics, Diagnostic{Kind: kind, Slot: slot, Field: p.slotNames[slot]})
	}

	var evaluated []RuleOutcome
	var verdict *Verdict
	for i, r := range p.rules {
		results[i] = evalBool(r.Body, results, getValue, diag)
		evaluated = append(evaluated, RuleOutcome{Name: r.Name, Result: results[i]})
		if r.Terminal && results[i] {
			verdict = &Verdict{Terminal: r.Name, Result: true}
			break
		}
	}

	return Report{
		ID:          uuid.New().String(),
		Verdict:     verdict,
		Evaluated:   evaluated,
		DurationNs:  uint64(time.Since(start).Nanoseconds()),
		Diagnostics: diagnostics,
	}
}

// Package analyzer performs semantic analysis over a parsed program:
// name resolution (field reference vs. rule reference), field-path
// interning into slot indices, and type inference/checking over
// comparison and boolean operands.
package analyzer

import (
	"fmt"

	"ooroo/internal/ast"
)

// unresolved is a sentinel ValueKind meaning "this field's type is not
// yet pinned by any comparison seen so far."
const unresolved = ast.KindUnconstrained

type slotType struct {
	kind ast.ValueKind
	span ast.Span // the comparison that first pinned this slot's type
}

// Result is the outcome of a successful analysis pass: the same
// ast.Program, mutated in place (FieldRef nodes rewritten to SlotRef,
// single-segment rule-name references rewritten to RuleRef), plus the
// interned slot table.
type Result struct {
	Program   ast.Program
	SlotCount int
	PathIndex map[string]int // dotted path -> slot index, declaration order of first use
}

type analyzer struct {
	ruleNames map[string]bool
	pathIndex map[string]int
	paths     []ast.FieldPath
	slots     []slotType // parallel to paths; unresolved kind means not yet pinned
}

// Analyze runs semantic analysis over prog and returns the mutated
// program plus slot table, or the first error encountered.
func Analyze(prog ast.Program) (Result, error) {
	if len(prog.Rules) == 0 {
		return Result{}, &Error{Kind: KindEmptyRuleset, Message: "ruleset declares no rules"}
	}

	a := &analyzer{
		ruleNames: make(map[string]bool, len(prog.Rules)),
		pathIndex: make(map[string]int),
	}

	terminalCount := 0
	for _, r := range prog.Rules {
		if a.ruleNames[r.Name] {
			return Result{}, &Error{
				Kind:        KindDuplicateRule,
				Message:     fmt.Sprintf("duplicate rule name %q", r.Name),
				PrimarySpan: r.NameSpan,
			}
		}
		a.ruleNames[r.Name] = true
		if r.Terminal {
			terminalCount++
		}
	}
	if terminalCount == 0 {
		return Result{}, &Error{Kind: KindNoTerminals, Message: "ruleset declares no terminals"}
	}

	for i := range prog.Rules {
		t, err := a.resolve(&prog.Rules[i].Body)
		if err != nil {
			return Result{}, err
		}
		if err := a.constrainBool(&prog.Rules[i].Body, t); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Program:   prog,
		SlotCount: len(a.paths),
		PathIndex: a.pathIndex,
	}, nil
}

func (a *analyzer) internPath(p ast.FieldPath) int {
	key := p.String()
	if idx, ok := a.pathIndex[key]; ok {
		return idx
	}
	idx := len(a.paths)
	a.pathIndex[key] = idx
	a.paths = append(a.paths, p)
	a.slots = append(a.slots, slotType{kind: unresolved})
	return idx
}

// setSlotType pins slot's type the first time it is constrained by a
// comparison; a later comparison that is statically incompatible with
// that pin fails with both spans reported. A field's inferred type is
// monomorphic across the whole ruleset: the first use wins.
func (a *analyzer) setSlotType(slot int, kind ast.ValueKind, span ast.Span) error {
	cur := a.slots[slot]
	if cur.kind == unresolved {
		a.slots[slot] = slotType{kind: kind, span: span}
		return nil
	}
	if !ast.StaticTypesCompatible(cur.kind, kind) {
		return &Error{
			Kind:         KindTypeMismatch,
			Message:      fmt.Sprintf("field %q used as %s here, but as %s elsewhere", a.paths[slot], kind, cur.kind),
			PrimarySpan:  span,
			RelatedSpans: []ast.Span{cur.span},
		}
	}
	return nil
}

// resolve walks e bottom-up, rewriting FieldRef nodes to SlotRef (or to
// RuleRef, when a single-segment path names a declared rule) and
// returns e's inferred type (possibly `unresolved`, for a field not yet
// pinned by any comparison).
func (a *analyzer) resolve(e *ast.Expr) (ast.ValueKind, error) {
	switch e.Kind {
	case ast.ExprLit:
		return e.Lit.Kind, nil

	case ast.ExprFieldRef:
		if len(e.Path) == 1 && a.ruleNames[e.Path[0]] {
			name := e.Path[0]
			*e = ast.Expr{Kind: ast.ExprRuleRef, Span: e.Span, RuleName: name}
			return ast.KindBool, nil
		}
		slot := a.internPath(e.Path)
		*e = ast.Expr{Kind: ast.ExprSlotRef, Span: e.Span, Slot: slot, ExpectedType: unresolved}
		if a.slots[slot].kind != unresolved {
			e.ExpectedType = a.slots[slot].kind
			return a.slots[slot].kind, nil
		}
		return unresolved, nil

	case ast.ExprRuleRef:
		if !a.ruleNames[e.RuleName] {
			return 0, &Error{Kind: KindUndefinedRule, Message: fmt.Sprintf("reference to undefined rule %q", e.RuleName), PrimarySpan: e.Span}
		}
		return ast.KindBool, nil

	case ast.ExprCmp:
		lt, err := a.resolve(e.Left)
		if err != nil {
			return 0, err
		}
		rt, err := a.resolve(e.Right)
		if err != nil {
			return 0, err
		}
		return a.unifyCmp(e, lt, rt)

	case ast.ExprNot:
		ot, err := a.resolve(e.Operand)
		if err != nil {
			return 0, err
		}
		if err := a.constrainBool(e.Operand, ot); err != nil {
			return 0, err
		}
		return ast.KindBool, nil

	case ast.ExprAnd, ast.ExprOr:
		lt, err := a.resolve(e.Left)
		if err != nil {
			return 0, err
		}
		if err := a.constrainBool(e.Left, lt); err != nil {
			return 0, err
		}
		rt, err := a.resolve(e.Right)
		if err != nil {
			return 0, err
		}
		if err := a.constrainBool(e.Right, rt); err != nil {
			return 0, err
		}
		return ast.KindBool, nil

	default:
		return 0, &Error{Kind: KindTypeMismatch, Message: fmt.Sprintf("internal: unexpected expression kind %d during analysis", e.Kind), PrimarySpan: e.Span}
	}
}

// constrainBool enforces that e (already resolved to type t) is usable
// in a boolean position (And/Or/Not operand): a bool literal, a bool
// field, a rule reference, or a nested boolean expression. An unresolved
// field is pinned to bool on the spot.
func (a *analyzer) constrainBool(e *ast.Expr, t ast.ValueKind) error {
	if e.Kind == ast.ExprSlotRef && t == unresolved {
		if err := a.setSlotType(e.Slot, ast.KindBool, e.Span); err != nil {
			return err
		}
		e.ExpectedType = ast.KindBool
		return nil
	}
	if t == ast.KindBool {
		return nil
	}
	err := &Error{
		Kind:        KindTypeMismatch,
		Message:     fmt.Sprintf("boolean operand required, got %s", t),
		PrimarySpan: e.Span,
	}
	if e.Kind == ast.ExprSlotRef {
		err.RelatedSpans = []ast.Span{a.slots[e.Slot].span}
	}
	return err
}

func isNumericOrString(k ast.ValueKind) bool {
	return k == ast.KindInt || k == ast.KindFloat || k == ast.KindString
}

// unifyCmp resolves the comparison's operand types against each other,
// pinning any unresolved field operand along the way, and enforces that
// ordering operators see numeric-or-string operands.
func (a *analyzer) unifyCmp(e *ast.Expr, lt, rt ast.ValueKind) (ast.ValueKind, error) {
	ordering := e.Op == ast.CmpLt || e.Op == ast.CmpLe || e.Op == ast.CmpGt || e.Op == ast.CmpGe

	if lt == unresolved && rt == unresolved {
		// Neither side carries a type yet (e.g. two never-otherwise-used
		// fields compared to each other). Nothing to unify statically, so
		// this is left unconstrained — a real conflict still surfaces if
		// either field is pinned by some other comparison in the ruleset.
		return ast.KindBool, nil
	}
	if lt == unresolved {
		if ordering && rt == ast.KindBool {
			return 0, &Error{Kind: KindTypeMismatch, Message: "ordering operator requires numeric or string operands, got bool", PrimarySpan: e.Span}
		}
		if err := a.setSlotType(e.Left.Slot, rt, e.Span); err != nil {
			return 0, err
		}
		e.Left.ExpectedType = rt
		lt = rt
	}
	if rt == unresolved {
		if ordering && lt == ast.KindBool {
			return 0, &Error{Kind: KindTypeMismatch, Message: "ordering operator requires numeric or string operands, got bool", PrimarySpan: e.Span}
		}
		if err := a.setSlotType(e.Right.Slot, lt, e.Span); err != nil {
			return 0, err
		}
		e.Right.ExpectedType = lt
		rt = lt
	}

	if !ast.StaticTypesCompatible(lt, rt) {
		err := &Error{
			Kind:        KindTypeMismatch,
			Message:     fmt.Sprintf("incompatible comparison operand types %s and %s", lt, rt),
			PrimarySpan: e.Span,
		}
		// A field operand pinned by an earlier use also reports that use.
		for _, side := range []*ast.Expr{e.Left, e.Right} {
			if side.Kind == ast.ExprSlotRef && a.slots[side.Slot].kind != unresolved {
				err.RelatedSpans = append(err.RelatedSpans, a.slots[side.Slot].span)
			}
		}
		return 0, err
	}
	if ordering && !isNumericOrString(lt) {
		return 0, &Error{
			Kind:        KindTypeMismatch,
			Message:     fmt.Sprintf("ordering operator %s requires numeric or string operands, got %s", e.Op, lt),
			PrimarySpan: e.Span,
		}
	}
	return ast.KindBool, nil
}

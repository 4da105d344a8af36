// Package optimizer runs two passes over a compiled expression tree:
// constant folding and boolean short-circuit simplification, followed
// by a second dead-rule-elimination sweep once folding has run.
package optimizer

import "ooroo/internal/ast"

// Fold constant-folds and simplifies e in place, bottom-up, applying
// each rewrite rule until no further local simplification applies to
// the node. Folding never changes which RuleRef/SlotRef nodes exist
// below an unreachable branch's surviving sibling — a rule reference
// that now transitively resolves to a constant is left in place here;
// Prune is what removes the rule it pointed to once nothing reads it.
func Fold(e *ast.Expr) {
	if e == nil {
		return
	}
	Fold(e.Left)
	Fold(e.Right)
	Fold(e.Operand)

	switch e.Kind {
	case ast.ExprCmp:
		if e.Left.Kind == ast.ExprLit && e.Right.Kind == ast.ExprLit {
			result := ast.Compare(e.Op, e.Left.Lit, e.Right.Lit)
			replaceWithLit(e, ast.BoolValue(result))
		}

	case ast.ExprNot:
		switch {
		case e.Operand.Kind == ast.ExprLit && e.Operand.Lit.Kind == ast.KindBool:
			replaceWithLit(e, ast.BoolValue(!e.Operand.Lit.B))
		case e.Operand.Kind == ast.ExprNot:
			// Not(Not(x)) -> x
			inner := *e.Operand.Operand
			span := e.Span
			*e = inner
			e.Span = span
		}

	case ast.ExprAnd:
		if e.Left.Kind == ast.ExprLit && e.Left.Lit.Kind == ast.KindBool {
			if !e.Left.Lit.B {
				replaceWithLit(e, ast.BoolValue(false))
			} else {
				keepOperand(e, e.Right)
			}
			return
		}
		if e.Right.Kind == ast.ExprLit && e.Right.Lit.Kind == ast.KindBool {
			if !e.Right.Lit.B {
				replaceWithLit(e, ast.BoolValue(false))
			} else {
				keepOperand(e, e.Left)
			}
		}

	case ast.ExprOr:
		if e.Left.Kind == ast.ExprLit && e.Left.Lit.Kind == ast.KindBool {
			if e.Left.Lit.B {
				replaceWithLit(e, ast.BoolValue(true))
			} else {
				keepOperand(e, e.Right)
			}
			return
		}
		if e.Right.Kind == ast.ExprLit && e.Right.Lit.Kind == ast.KindBool {
			if e.Right.Lit.B {
				replaceWithLit(e, ast.BoolValue(true))
			} else {
				keepOperand(e, e.Left)
			}
		}
	}
}

func replaceWithLit(e *ast.Expr, v ast.Value) {
	span := e.Span
	*e = ast.Lit(v)
	e.Span = span
}

func keepOperand(e *ast.Expr, operand *ast.Expr) {
	span := e.Span
	*e = *operand
	e.Span = span
}

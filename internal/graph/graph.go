// Package graph builds the rule dependency DAG, detects cycles,
// computes reachability from a terminal set, and schedules a
// topological, priority-aware execution order.
package graph

import "ooroo/internal/ast"

// Edge is one rule-reference dependency: rule From's expression
// contains a RuleRef targeting rule To, at the given span (used for
// cycle-path diagnostics).
type Edge struct {
	From, To int
	Span     ast.Span
}

// CollectRuleRefs walks e and returns every RuleRef name it contains,
// each paired with the span of the reference, in the order first
// encountered (duplicates kept — a rule may reference another rule
// more than once; callers that want a dependency set should dedupe).
func CollectRuleRefs(e *ast.Expr) []RuleRefUse {
	var out []RuleRefUse
	e.Walk(func(n *ast.Expr) {
		if n.Kind == ast.ExprRuleRef {
			out = append(out, RuleRefUse{Name: n.RuleName, Span: n.Span})
		}
	})
	return out
}

// RuleRefUse is one occurrence of a RuleRef within an expression tree.
type RuleRefUse struct {
	Name string
	Span ast.Span
}

// CollectRuleIdx walks e (post-scheduling, where every RuleRef has been
// rewritten to RuleIdx) and returns the distinct target indices it
// references. Used by the optimizer's dead-rule elimination pass to
// recompute reachability after folding.
func CollectRuleIdx(e *ast.Expr) []int {
	seen := make(map[int]bool)
	var out []int
	e.Walk(func(n *ast.Expr) {
		if n.Kind == ast.ExprRuleIdx {
			if !seen[n.RuleIdx] {
				seen[n.RuleIdx] = true
				out = append(out, n.RuleIdx)
			}
		}
	})
	return out
}

// Reachable returns, for each of the n nodes, whether it is reachable
// from the roots set by following depsOf edges (depsOf(i) gives the
// nodes i directly depends on). Used both for the initial terminal-
// reachability prune and for the optimizer's post-fold dead-rule
// elimination.
func Reachable(n int, depsOf func(int) []int, roots []int) []bool {
	reached := make([]bool, n)
	var visit func(int)
	visit = func(i int) {
		if reached[i] {
			return
		}
		reached[i] = true
		for _, d := range depsOf(i) {
			visit(d)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return reached
}

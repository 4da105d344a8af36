package optimizer

import (
	"sort"

	"ooroo/internal/ast"
	"ooroo/internal/graph"
)

// Prune re-runs reachability from the terminal set after Fold has run
// and drops every rule that is neither a terminal nor read by a
// surviving rule, renumbering the remaining rules and
// rewriting their RuleIdx references to match. Relative order among
// surviving rules is preserved, so the scheduler's invariant (every
// RuleIdx(i) inside rule k satisfies i < k) still holds.
func Prune(rules []graph.ScheduledRule, terminals []graph.TerminalInfo) ([]graph.ScheduledRule, []graph.TerminalInfo) {
	n := len(rules)
	depsOf := func(i int) []int { return graph.CollectRuleIdx(rules[i].Body) }

	roots := make([]int, 0, len(terminals))
	for _, t := range terminals {
		roots = append(roots, t.RuleIndex)
	}
	reached := graph.Reachable(n, depsOf, roots)

	remap := make([]int, n)
	for i := range remap {
		remap[i] = -1
	}
	kept := make([]graph.ScheduledRule, 0, n)
	for i := 0; i < n; i++ {
		if reached[i] {
			remap[i] = len(kept)
			kept = append(kept, rules[i])
		}
	}
	for i := range kept {
		rewriteIdx(kept[i].Body, remap)
	}

	newTerminals := make([]graph.TerminalInfo, len(terminals))
	for i, t := range terminals {
		newTerminals[i] = graph.TerminalInfo{RuleIndex: remap[t.RuleIndex], Priority: t.Priority, Name: t.Name}
	}
	sort.SliceStable(newTerminals, func(i, j int) bool { return newTerminals[i].Priority < newTerminals[j].Priority })

	return kept, newTerminals
}

func rewriteIdx(e *ast.Expr, remap []int) {
	if e == nil {
		return
	}
	if e.Kind == ast.ExprRuleIdx {
		e.RuleIdx = remap[e.RuleIdx]
	}
	rewriteIdx(e.Left, remap)
	rewriteIdx(e.Right, remap)
	rewriteIdx(e.Operand, remap)
}

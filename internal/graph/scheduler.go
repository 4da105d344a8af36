package graph

import (
	"container/heap"
	"sort"

	"ooroo/internal/ast"
)

// ScheduledRule is one rule in final execution order: Body has every
// RuleRef rewritten to RuleIdx, so every RuleIdx(i) inside rule k's
// expression satisfies i < k.
type ScheduledRule struct {
	Name     string
	Body     *ast.Expr
	Terminal bool
	Priority int
}

// TerminalInfo is one entry of the terminals table: (rule_index,
// priority, name), the slice ascending by priority with declaration-
// order ties.
type TerminalInfo struct {
	RuleIndex int
	Priority  int
	Name      string
}

// Result is the scheduler's output: the pruned, topologically and
// priority-ordered rule list plus the terminal table.
type Result struct {
	Rules     []ScheduledRule
	Terminals []TerminalInfo
}

// Schedule builds the dependency DAG over prog's rules, detects cycles,
// prunes rules unreachable from any terminal, and produces a linear
// execution order: dependencies get smaller indices than their
// dependents, and among valid orderings the one minimizing the index
// of higher-priority terminals is preferred, ties broken by declaration
// order.
func Schedule(prog ast.Program) (Result, *CycleError) {
	n := len(prog.Rules)
	nameIndex := make(map[string]int, n)
	names := make([]string, n)
	for i, r := range prog.Rules {
		nameIndex[r.Name] = i
		names[i] = r.Name
	}

	edgesOf := make([][]Edge, n)
	for i := range prog.Rules {
		r := &prog.Rules[i]
		for _, use := range CollectRuleRefs(&r.Body) {
			edgesOf[i] = append(edgesOf[i], Edge{From: i, To: nameIndex[use.Name], Span: use.Span})
		}
	}

	if cyc := DetectCycle(n, names, func(i int) []Edge { return edgesOf[i] }); cyc != nil {
		return Result{}, cyc
	}

	var terminalIdx []int // in declaration order
	for i, r := range prog.Rules {
		if r.Terminal {
			terminalIdx = append(terminalIdx, i)
		}
	}

	depsOf := func(i int) []int {
		ds := make([]int, len(edgesOf[i]))
		for j, e := range edgesOf[i] {
			ds[j] = e.To
		}
		return ds
	}
	reached := Reachable(n, depsOf, terminalIdx)

	const unreachedPriority = int(^uint(0) >> 1)
	minPriority := make([]int, n)
	for i := range minPriority {
		minPriority[i] = unreachedPriority
	}
	for _, t := range terminalIdx {
		tp := prog.Rules[t].Priority
		reachFromT := Reachable(n, depsOf, []int{t})
		for i, ok := range reachFromT {
			if ok && tp < minPriority[i] {
				minPriority[i] = tp
			}
		}
	}

	// dependents[v] = rules that directly depend on v (forward edge
	// v -> u); scheduling v makes each such u one step closer to ready.
	dependents := make([][]int, n)
	indegree := make([]int, n)
	for i := 0; i < n; i++ {
		if !reached[i] {
			continue
		}
		seen := make(map[int]bool)
		for _, e := range edgesOf[i] {
			if seen[e.To] {
				continue
			}
			seen[e.To] = true
			indegree[i]++
			dependents[e.To] = append(dependents[e.To], i)
		}
	}

	pq := &readyQueue{}
	heap.Init(pq)
	for i := 0; i < n; i++ {
		if reached[i] && indegree[i] == 0 {
			heap.Push(pq, readyItem{idx: i, minPriority: minPriority[i], declOrder: i})
		}
	}

	newIndex := make([]int, n)
	for i := range newIndex {
		newIndex[i] = -1
	}
	order := make([]int, 0, n)
	for pq.Len() > 0 {
		item := heap.Pop(pq).(readyItem)
		newIndex[item.idx] = len(order)
		order = append(order, item.idx)
		for _, dep := range dependents[item.idx] {
			indegree[dep]--
			if indegree[dep] == 0 {
				heap.Push(pq, readyItem{idx: dep, minPriority: minPriority[dep], declOrder: dep})
			}
		}
	}

	rules := make([]ScheduledRule, len(order))
	for newIdx, origIdx := range order {
		body := prog.Rules[origIdx].Body
		rewriteRuleRefs(&body, nameIndex, newIndex)
		rules[newIdx] = ScheduledRule{
			Name:     prog.Rules[origIdx].Name,
			Body:     &body,
			Terminal: prog.Rules[origIdx].Terminal,
			Priority: prog.Rules[origIdx].Priority,
		}
	}

	terminals := make([]TerminalInfo, len(terminalIdx))
	for i, origIdx := range terminalIdx {
		terminals[i] = TerminalInfo{
			RuleIndex: newIndex[origIdx],
			Priority:  prog.Rules[origIdx].Priority,
			Name:      prog.Rules[origIdx].Name,
		}
	}
	// terminalIdx (and thus terminals, before sorting) is already in
	// declaration order, so a stable sort on Priority alone gives
	// "ascending by priority, ties broken by declaration order".
	sort.SliceStable(terminals, func(i, j int) bool { return terminals[i].Priority < terminals[j].Priority })

	return Result{Rules: rules, Terminals: terminals}, nil
}

// rewriteRuleRefs replaces every ExprRuleRef in e with the scheduled
// ExprRuleIdx of its target — the last rewrite step, since it depends
// on the final rule order having been decided.
func rewriteRuleRefs(e *ast.Expr, nameIndex map[string]int, newIndex []int) {
	if e == nil {
		return
	}
	if e.Kind == ast.ExprRuleRef {
		target := newIndex[nameIndex[e.RuleName]]
		*e = ast.Expr{Kind: ast.ExprRuleIdx, Span: e.Span, RuleIdx: target}
		return
	}
	rewriteRuleRefs(e.Left, nameIndex, newIndex)
	rewriteRuleRefs(e.Right, nameIndex, newIndex)
	rewriteRuleRefs(e.Operand, nameIndex, newIndex)
}

// readyItem is one entry in the scheduler's priority queue, keyed by
// (minPriority, declOrder): the smallest minPriority goes first, ties
// broken by earlier declaration order.
type readyItem struct {
	idx         int
	minPriority int
	declOrder   int
}

type readyQueue []readyItem

func (q readyQueue) Len() int { return len(q) }
func (q readyQueue) Less(i, j int) bool {
	if q[i].minPriority != q[j].minPriority {
		return q[i].minPriority < q[j].minPriority
	}
	return q[i].declOrder < q[j].declOrder
}
func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x any)   { *q = append(*q, x.(readyItem)) }
func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

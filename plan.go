package ooroo

import (
	"ooroo/internal/ast"
	"ooroo/internal/graph"
)

// compiledRule is one rule in final execution order: Body has every
// RuleRef resolved to RuleIdx and every FieldRef resolved to SlotRef, so
// the evaluator never has to resolve a name at evaluation time.
type compiledRule struct {
	Name     string
	Body     *ast.Expr
	Terminal bool
	Priority int
}

// terminalInfo is one entry of the terminals table: ascending by
// priority, declaration-order ties, exactly as graph.Schedule produced.
type terminalInfo struct {
	RuleIndex int
	Priority  int
	Name      string
}

// CompiledPlan is the immutable result of Compile/PlanFromDSL/
// PlanFromFile: safe to share by pointer across any number of
// goroutines with no synchronization, since every field is set once and
// never mutated again.
type CompiledPlan struct {
	slotCount int
	pathIndex map[string]int // dotted field path -> context slot
	slotNames []string       // slot -> dotted field path, inverse of pathIndex
	rules     []compiledRule
	terminals []terminalInfo
	nameIndex map[string]int // rule name -> index into rules
}

func assemble(rules []graph.ScheduledRule, terminals []graph.TerminalInfo, pathIndex map[string]int, slotCount int) *CompiledPlan {
	cr := make([]compiledRule, len(rules))
	nameIndex := make(map[string]int, len(rules))
	for i, r := range rules {
		cr[i] = compiledRule{Name: r.Name, Body: r.Body, Terminal: r.Terminal, Priority: r.Priority}
		nameIndex[r.Name] = i
	}

	ti := make([]terminalInfo, len(terminals))
	for i, t := range terminals {
		ti[i] = terminalInfo{RuleIndex: t.RuleIndex, Priority: t.Priority, Name: t.Name}
	}

	slotNames := make([]string, slotCount)
	for path, slot := range pathIndex {
		slotNames[slot] = path
	}

	return &CompiledPlan{
		slotCount: slotCount,
		pathIndex: pathIndex,
		slotNames: slotNames,
		rules:     cr,
		terminals: ti,
		nameIndex: nameIndex,
	}
}

// RuleNames returns every surviving rule's name, in final execution
// order (dependencies before dependents).
func (p *CompiledPlan) RuleNames() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

// ContextBuilder returns a builder for constructing an IndexedContext
// against this plan: the only way to obtain one, so an unknown field
// path is rejected at insertion time rather than silently ignored.
func (p *CompiledPlan) ContextBuilder() *IndexedContextBuilder {
	return newIndexedContextBuilder(p)
}

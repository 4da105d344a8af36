package ooroo

import (
	"ooroo/internal/analyzer"
	"ooroo/internal/ast"
	"ooroo/internal/graph"
	"ooroo/internal/optimizer"
)

// compile runs the full pipeline over an already-parsed program:
// semantic analysis, scheduling (with cycle detection), constant
// folding, and dead-rule elimination, then assembles the result into a
// CompiledPlan. Shared by Builder.Compile and PlanFromDSL.
func compile(prog ast.Program) (*CompiledPlan, error) {
	res, err := analyzer.Analyze(prog)
	if err != nil {
		return nil, wrapAnalyzerError(err)
	}

	sched, cyc := graph.Schedule(res.Program)
	if cyc != nil {
		return nil, wrapCycleError(cyc)
	}

	for i := range sched.Rules {
		optimizer.Fold(sched.Rules[i].Body)
	}
	rules, terminals := optimizer.Prune(sched.Rules, sched.Terminals)

	return assemble(rules, terminals, res.PathIndex, res.SlotCount), nil
}

package optimizer

import (
	"math/rand"
	"testing"
	"testing/quick"

	"ooroo/internal/ast"
	"ooroo/internal/graph"
)

func TestFoldCmpLiterals(t *testing.T) {
	e := ast.Lit(ast.IntValue(1)).Eq(ast.Lit(ast.IntValue(1)))
	Fold(&e)
	if e.Kind != ast.ExprLit || e.Lit.Kind != ast.KindBool || !e.Lit.B {
		t.Fatalf("got %+v, want Lit(true)", e)
	}
}

func TestFoldNotLiteral(t *testing.T) {
	e := ast.Lit(ast.BoolValue(false)).Not()
	Fold(&e)
	if e.Kind != ast.ExprLit || !e.Lit.B {
		t.Fatalf("got %+v, want Lit(true)", e)
	}
}

func TestFoldDoubleNegation(t *testing.T) {
	inner := ast.Field("user.banned")
	e := inner.Not().Not()
	Fold(&e)
	if e.Kind != ast.ExprFieldRef {
		t.Fatalf("got %+v, want the inner field ref, double negation eliminated", e)
	}
}

func TestFoldAndAbsorption(t *testing.T) {
	e := ast.Lit(ast.BoolValue(false)).And(ast.Field("user.age").Ge(ast.Lit(ast.IntValue(18))))
	Fold(&e)
	if e.Kind != ast.ExprLit || e.Lit.B {
		t.Fatalf("got %+v, want Lit(false), And(false,_) absorbs", e)
	}
}

func TestFoldAndIdentity(t *testing.T) {
	cmp := ast.Field("user.age").Ge(ast.Lit(ast.IntValue(18)))
	e := ast.Lit(ast.BoolValue(true)).And(cmp)
	Fold(&e)
	if e.Kind != ast.ExprCmp {
		t.Fatalf("got %+v, want the surviving comparison, And(true,x) is identity", e)
	}
}

func TestFoldOrAbsorption(t *testing.T) {
	e := ast.Lit(ast.BoolValue(true)).Or(ast.Field("user.age").Ge(ast.Lit(ast.IntValue(18))))
	Fold(&e)
	if e.Kind != ast.ExprLit || !e.Lit.B {
		t.Fatalf("got %+v, want Lit(true), Or(true,_) absorbs", e)
	}
}

func TestFoldDropsConstantTrueConjunctKeepingComparison(t *testing.T) {
	// (1 == 1) AND user.age >= 18 -> folds to just the comparison.
	e := ast.Lit(ast.IntValue(1)).Eq(ast.Lit(ast.IntValue(1))).And(ast.Field("user.age").Ge(ast.Lit(ast.IntValue(18))))
	Fold(&e)
	if e.Kind != ast.ExprCmp {
		t.Fatalf("got %+v, want the age comparison alone", e)
	}
}

func TestPrunePreservesTerminalsDropsDeadRule(t *testing.T) {
	rules := []graph.ScheduledRule{
		{Name: "unused", Body: litExpr(true)},
		{Name: "ok", Body: litExpr(true), Terminal: true, Priority: 0},
	}
	terminals := []graph.TerminalInfo{{RuleIndex: 1, Priority: 0, Name: "ok"}}
	kept, newTerminals := Prune(rules, terminals)
	if len(kept) != 1 || kept[0].Name != "ok" {
		t.Fatalf("kept = %+v, want only 'ok'", kept)
	}
	if newTerminals[0].RuleIndex != 0 {
		t.Fatalf("terminal RuleIndex = %d, want 0 after renumbering", newTerminals[0].RuleIndex)
	}
}

func litExpr(b bool) *ast.Expr {
	e := ast.Lit(ast.BoolValue(b))
	return &e
}

// --- property test: folding preserves evaluated semantics ---

// evalBoolTree is a tiny self-contained evaluator over the bool-only
// subset of the expression grammar generated below, used only to check
// that Fold doesn't change the answer.
func evalBoolTree(e *ast.Expr) bool {
	switch e.Kind {
	case ast.ExprLit:
		return e.Lit.B
	case ast.ExprNot:
		return !evalBoolTree(e.Operand)
	case ast.ExprAnd:
		return evalBoolTree(e.Left) && evalBoolTree(e.Right)
	case ast.ExprOr:
		return evalBoolTree(e.Left) || evalBoolTree(e.Right)
	default:
		panic("unsupported node in evalBoolTree")
	}
}

func randBoolTree(r *rand.Rand, depth int) ast.Expr {
	if depth <= 0 || r.Intn(3) == 0 {
		return ast.Lit(ast.BoolValue(r.Intn(2) == 0))
	}
	switch r.Intn(3) {
	case 0:
		return randBoolTree(r, depth-1).Not()
	case 1:
		return randBoolTree(r, depth-1).And(randBoolTree(r, depth-1))
	default:
		return randBoolTree(r, depth-1).Or(randBoolTree(r, depth-1))
	}
}

func TestFoldPreservesBooleanSemantics(t *testing.T) {
	f := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))
		e := randBoolTree(r, 4)
		before := evalBoolTree(&e)
		Fold(&e)
		after := evalBoolTree(&e)
		return before == after
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

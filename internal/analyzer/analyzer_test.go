package analyzer

import (
	"testing"

	"ooroo/internal/ast"
	"ooroo/internal/parser"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	return prog
}

func TestAnalyzeSimpleTerminal(t *testing.T) {
	prog := mustParse(t, `rule banned (priority 0): user.banned == true`)
	res, err := Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.SlotCount != 1 {
		t.Fatalf("SlotCount = %d, want 1", res.SlotCount)
	}
	body := res.Program.Rules[0].Body
	if body.Left.Kind != ast.ExprSlotRef {
		t.Fatalf("left = %+v, want SlotRef", body.Left)
	}
	if body.Left.ExpectedType != ast.KindBool {
		t.Fatalf("ExpectedType = %v, want Bool", body.Left.ExpectedType)
	}
}

func TestAnalyzeRuleRefResolution(t *testing.T) {
	prog := mustParse(t, `
rule age_ok: user.age >= 18
rule active: user.status == "active"
rule ok (priority 0): age_ok AND active
`)
	res, err := Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	ok := res.Program.Rules[2].Body
	if ok.Left.Kind != ast.ExprRuleRef || ok.Left.RuleName != "age_ok" {
		t.Fatalf("left = %+v, want RuleRef(age_ok)", ok.Left)
	}
	if ok.Right.Kind != ast.ExprRuleRef || ok.Right.RuleName != "active" {
		t.Fatalf("right = %+v, want RuleRef(active)", ok.Right)
	}
}

func TestAnalyzeSharedSlot(t *testing.T) {
	prog := mustParse(t, `
rule a (priority 0): user.age >= 18
rule b (priority 1): user.age < 65
`)
	res, err := Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.SlotCount != 1 {
		t.Fatalf("SlotCount = %d, want 1 (same path interned once)", res.SlotCount)
	}
}

func TestAnalyzeDuplicateRuleName(t *testing.T) {
	prog := mustParse(t, `
rule r (priority 0): true
rule r (priority 1): false
`)
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindDuplicateRule {
		t.Fatalf("err = %v, want DuplicateRule", err)
	}
}

func TestAnalyzeUndefinedRuleRef(t *testing.T) {
	prog := ast.Program{Rules: []ast.RuleDecl{
		{Name: "r", Terminal: true, Priority: 0, Body: ast.RuleRef("nope")},
	}}
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindUndefinedRule {
		t.Fatalf("err = %v, want UndefinedRule", err)
	}
}

func TestAnalyzeNoTerminals(t *testing.T) {
	prog := mustParse(t, `rule r: true`)
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindNoTerminals {
		t.Fatalf("err = %v, want NoTerminals", err)
	}
}

func TestAnalyzeEmptyRuleset(t *testing.T) {
	_, err := Analyze(ast.Program{})
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindEmptyRuleset {
		t.Fatalf("err = %v, want EmptyRuleset", err)
	}
}

func TestAnalyzeTypeMismatchAcrossUses(t *testing.T) {
	prog := mustParse(t, `
rule a (priority 0): user.val == 1
rule b (priority 1): user.val == "x"
`)
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindTypeMismatch {
		t.Fatalf("err = %v, want TypeMismatch", err)
	}
	if len(aerr.RelatedSpans) != 1 {
		t.Fatalf("expected one related span pointing at the originating use")
	}
}

func TestAnalyzeIntFloatPromotionOK(t *testing.T) {
	prog := mustParse(t, `
rule a (priority 0): user.val == 1
rule b (priority 1): user.val < 2.5
`)
	if _, err := Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v, want int/float promotion to succeed", err)
	}
}

func TestAnalyzeOrderingOnBoolRejected(t *testing.T) {
	prog := mustParse(t, `rule r (priority 0): user.flag < true`)
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindTypeMismatch {
		t.Fatalf("err = %v, want TypeMismatch for ordering on bool", err)
	}
}

func TestAnalyzeBooleanOperandRequired(t *testing.T) {
	prog := mustParse(t, `rule r (priority 0): 1 AND true`)
	_, err := Analyze(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != KindTypeMismatch {
		t.Fatalf("err = %v, want TypeMismatch for non-bool AND operand", err)
	}
}

func TestAnalyzeNestedBooleanExpr(t *testing.T) {
	prog := mustParse(t, `rule r (priority 0): NOT (user.banned == true)`)
	if _, err := Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}

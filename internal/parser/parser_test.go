package parser

import (
	"testing"

	"ooroo/internal/ast"
)

func TestParseSimpleTerminal(t *testing.T) {
	prog, err := Parse(`rule banned (priority 0): user.banned == true`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(prog.Rules))
	}
	r := prog.Rules[0]
	if r.Name != "banned" || !r.Terminal || r.Priority != 0 {
		t.Fatalf("got %+v", r)
	}
	if r.Body.Kind != ast.ExprCmp || r.Body.Op != ast.CmpEq {
		t.Fatalf("body = %+v, want Cmp(Eq)", r.Body)
	}
	if r.Body.Left.Kind != ast.ExprFieldRef || !r.Body.Left.Path.Equal(ast.FieldPath{"user", "banned"}) {
		t.Fatalf("left = %+v", r.Body.Left)
	}
}

func TestParseNonTerminalNoPriority(t *testing.T) {
	prog, err := Parse(`rule age_ok: user.age >= 18`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if prog.Rules[0].Terminal {
		t.Fatal("expected non-terminal rule")
	}
}

func TestParseBooleanCombinators(t *testing.T) {
	prog, err := Parse(`rule ok (priority 0): age_ok AND active OR NOT banned`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := prog.Rules[0].Body
	// OR is lowest precedence: (age_ok AND active) OR (NOT banned)
	if body.Kind != ast.ExprOr {
		t.Fatalf("top = %v, want Or", body.Kind)
	}
	if body.Left.Kind != ast.ExprAnd {
		t.Fatalf("left = %v, want And", body.Left.Kind)
	}
	if body.Right.Kind != ast.ExprNot {
		t.Fatalf("right = %v, want Not", body.Right.Kind)
	}
}

func TestParseParenGrouping(t *testing.T) {
	prog, err := Parse(`rule r (priority 0): (1 == 1) AND user.age >= 18`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := prog.Rules[0].Body
	if body.Kind != ast.ExprAnd {
		t.Fatalf("top = %v, want And", body.Kind)
	}
	if body.Left.Kind != ast.ExprCmp {
		t.Fatalf("left = %v, want Cmp", body.Left.Kind)
	}
}

func TestParseMultipleRulesAndComments(t *testing.T) {
	src := `
# deny before allow
rule banned (priority 0): user.banned == true
rule eligible (priority 10): user.age >= 18
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(prog.Rules))
	}
}

func TestParseStringLiteral(t *testing.T) {
	prog, err := Parse(`rule active: user.status == "active"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	right := prog.Rules[0].Body.Right
	if right.Kind != ast.ExprLit || right.Lit.Kind != ast.KindString || right.Lit.S != "active" {
		t.Fatalf("got %+v", right)
	}
}

func TestParseErrorMissingColon(t *testing.T) {
	_, err := Parse(`rule r user.age >= 18`)
	if err == nil {
		t.Fatal("expected parse error for missing colon")
	}
}

func TestParseErrorUnterminatedExpr(t *testing.T) {
	_, err := Parse(`rule r: (user.age >= 18`)
	if err == nil {
		t.Fatal("expected parse error for unclosed paren")
	}
}

func TestParseErrorUnknownToken(t *testing.T) {
	_, err := Parse(`rule r: user.age >= 18 & true`)
	if err == nil {
		t.Fatal("expected parse error for '&'")
	}
}

func TestParseSpanCoversWholeExpr(t *testing.T) {
	prog, err := Parse(`rule r (priority 0): user.age >= 18`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	span := prog.Rules[0].Body.Span
	if span.Start == 0 && span.End == 0 {
		t.Fatal("expected non-zero span on parsed comparison")
	}
}

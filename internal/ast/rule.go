package ast

// RuleDecl is a single named rule, as produced by either the builder or
// the DSL parser. Body is unresolved (FieldRef/RuleRef nodes only) until
// the analyzer runs.
type RuleDecl struct {
	Name     string
	Body     Expr
	Terminal bool
	Priority int
	NameSpan Span
}

// Program is the full set of rule declarations produced by one builder
// session or one parsed DSL source. Order is preserved exactly as
// declared; it is later used only as a tie-breaker (diagnostics, and
// scheduling ties at equal priority).
type Program struct {
	Rules []RuleDecl
}

// RuleNames returns the declared names in declaration order.
func (p Program) RuleNames() []string {
	names := make([]string, len(p.Rules))
	for i, r := range p.Rules {
		names[i] = r.Name
	}
	return names
}

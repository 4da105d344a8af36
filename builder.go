package ooroo

import (
	"fmt"

	"ooroo/internal/ast"
)

// Builder assembles a ruleset programmatically, as an alternative to
// parsing .ooroo source. A rule body is taken directly as an Expr value
// built from Field/Lit/RuleRef and their combinators, rather than a
// closure over a separate "rule body surface" — simpler to type-check
// and just as expressive.
type Builder struct {
	rules     []ast.RuleDecl
	ruleIndex map[string]int
	terminals map[string]int // name -> priority, applied at Compile time
	err       *CompileError
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ruleIndex: make(map[string]int)}
}

// Rule declares a named rule. A name declared twice fails Compile with
// ErrDuplicateRule; the first such failure is sticky and reported in
// place of whatever Compile would otherwise have done.
func (b *Builder) Rule(name string, body Expr) *Builder {
	if _, exists := b.ruleIndex[name]; exists {
		if b.err == nil {
			b.err = &CompileError{Kind: ErrDuplicateRule, Message: fmt.Sprintf("duplicate rule name %q", name)}
		}
		return b
	}
	b.ruleIndex[name] = len(b.rules)
	b.rules = append(b.rules, ast.RuleDecl{Name: name, Body: body})
	return b
}

// Terminal marks a previously (or later) declared rule as a terminal
// with the given priority; lower numbers take precedence over higher
// ones when more than one terminal fires for a given context.
func (b *Builder) Terminal(name string, priority int) *Builder {
	if b.terminals == nil {
		b.terminals = make(map[string]int)
	}
	b.terminals[name] = priority
	return b
}

// Compile runs the full pipeline (analysis, scheduling, optimization)
// over the declared rules and returns an immutable CompiledPlan, or the
// first CompileError encountered.
func (b *Builder) Compile() (*CompiledPlan, error) {
	if b.err != nil {
		return nil, b.err
	}
	// The pipeline rewrites expression trees in place; clone each body
	// so the builder's own declarations survive intact and Compile may
	// be called more than once.
	prog := ast.Program{Rules: make([]ast.RuleDecl, len(b.rules))}
	for i, r := range b.rules {
		r.Body = *r.Body.Clone()
		prog.Rules[i] = r
	}
	for name, priority := range b.terminals {
		idx, ok := b.ruleIndex[name]
		if !ok {
			return nil, &CompileError{Kind: ErrUndefinedTerminal, Message: fmt.Sprintf("terminal references undeclared rule %q", name)}
		}
		prog.Rules[idx].Terminal = true
		prog.Rules[idx].Priority = priority
	}
	return compile(prog)
}

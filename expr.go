package ooroo

import "ooroo/internal/ast"

// Expr and CmpOp are re-exported from internal/ast; Eq/Ne/Lt/Le/Gt/Ge,
// And/Or/Not and the Field/Lit/RuleRef constructors below are the
// builder-facing combinators an Expr is assembled from.
type (
	Expr  = ast.Expr
	CmpOp = ast.CmpOp
)

const (
	CmpEq = ast.CmpEq
	CmpNe = ast.CmpNe
	CmpLt = ast.CmpLt
	CmpLe = ast.CmpLe
	CmpGt = ast.CmpGt
	CmpGe = ast.CmpGe
)

// Field references a dotted context path, e.g. Field("user.profile.age").
func Field(path string) Expr { return ast.Field(path) }

// Lit wraps a constant value as an expression leaf.
func Lit(v Value) Expr { return ast.Lit(v) }

// RuleRef references another rule by name; its value is that rule's
// boolean outcome.
func RuleRef(name string) Expr { return ast.RuleRef(name) }

// Package parser implements a recursive-descent parser for the .ooroo
// DSL grammar, producing an internal/ast.Program identical in shape to
// what the Go builder constructs: one recursive-descent method per
// grammar rule, built on cur/advance/check/expect primitives over the token
// stream from internal/lexer.
package parser

import (
	"fmt"
	"strconv"

	"ooroo/internal/ast"
	"ooroo/internal/lexer"
)

// Parser consumes a token stream produced by internal/lexer and builds
// an ast.Program.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse tokenizes and parses a complete .ooroo source file.
func Parse(source string) (ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		if lerr, ok := err.(*lexer.Error); ok {
			return ast.Program{}, &Error{
				Message: lerr.Message,
				Span:    ast.Span{Start: lerr.Start, End: lerr.End},
			}
		}
		return ast.Program{}, &Error{Message: err.Error()}
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.TokenKind) bool {
	return p.cur().Kind == k
}

func (p *Parser) expect(k lexer.TokenKind) (lexer.Token, error) {
	if !p.check(k) {
		return lexer.Token{}, p.errorf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Span:    ast.Span{Start: p.cur().Start, End: p.cur().End},
	}
}

func (p *Parser) parseProgram() (ast.Program, error) {
	var prog ast.Program
	for !p.check(lexer.TokEOF) {
		decl, err := p.parseRuleDecl()
		if err != nil {
			return ast.Program{}, err
		}
		prog.Rules = append(prog.Rules, decl)
	}
	return prog, nil
}

func (p *Parser) parseRuleDecl() (ast.RuleDecl, error) {
	if _, err := p.expect(lexer.TokRule); err != nil {
		return ast.RuleDecl{}, err
	}
	nameTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return ast.RuleDecl{}, err
	}

	decl := ast.RuleDecl{
		Name:     nameTok.Text,
		NameSpan: ast.Span{Start: nameTok.Start, End: nameTok.End},
		Priority: 0,
	}

	if p.check(lexer.TokLParen) {
		p.advance()
		if _, err := p.expect(lexer.TokPriority); err != nil {
			return ast.RuleDecl{}, err
		}
		prioTok, err := p.expect(lexer.TokInt)
		if err != nil {
			return ast.RuleDecl{}, err
		}
		n, convErr := strconv.Atoi(prioTok.Text)
		if convErr != nil {
			return ast.RuleDecl{}, &Error{Message: "invalid priority integer: " + prioTok.Text, Span: ast.Span{Start: prioTok.Start, End: prioTok.End}}
		}
		decl.Terminal = true
		decl.Priority = n
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return ast.RuleDecl{}, err
		}
	}

	if _, err := p.expect(lexer.TokColon); err != nil {
		return ast.RuleDecl{}, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return ast.RuleDecl{}, err
	}
	decl.Body = body
	return decl, nil
}

// expr := or_expr
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

// or_expr := and_expr ('OR' and_expr)*
func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.check(lexer.TokOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return ast.Expr{}, err
		}
		left = left.Or(right)
	}
	return left, nil
}

// and_expr := not_expr ('AND' not_expr)*
func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.check(lexer.TokAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return ast.Expr{}, err
		}
		left = left.And(right)
	}
	return left, nil
}

// not_expr := 'NOT' not_expr | cmp_expr
func (p *Parser) parseNot() (ast.Expr, error) {
	if p.check(lexer.TokNot) {
		tok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return ast.Expr{}, err
		}
		e := operand.Not()
		e.Span = ast.Span{Start: tok.Start, End: tok.End}.Cover(operand.Span)
		return e, nil
	}
	return p.parseCmp()
}

var cmpOps = map[lexer.TokenKind]ast.CmpOp{
	lexer.TokEq: ast.CmpEq,
	lexer.TokNe: ast.CmpNe,
	lexer.TokLt: ast.CmpLt,
	lexer.TokLe: ast.CmpLe,
	lexer.TokGt: ast.CmpGt,
	lexer.TokGe: ast.CmpGe,
}

// cmp_expr := atom (CMP_OP atom)?
func (p *Parser) parseCmp() (ast.Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return ast.Expr{}, err
	}
	if op, ok := cmpOps[p.cur().Kind]; ok {
		p.advance()
		right, err := p.parseAtom()
		if err != nil {
			return ast.Expr{}, err
		}
		switch op {
		case ast.CmpEq:
			return left.Eq(right), nil
		case ast.CmpNe:
			return left.Ne(right), nil
		case ast.CmpLt:
			return left.Lt(right), nil
		case ast.CmpLe:
			return left.Le(right), nil
		case ast.CmpGt:
			return left.Gt(right), nil
		default:
			return left.Ge(right), nil
		}
	}
	return left, nil
}

// atom := '(' expr ')' | literal | path_or_ref
func (p *Parser) parseAtom() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.TokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return ast.Expr{}, err
		}
		return inner, nil
	case lexer.TokInt:
		tok := p.advance()
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return ast.Expr{}, &Error{Message: "invalid integer literal: " + tok.Text, Span: ast.Span{Start: tok.Start, End: tok.End}}
		}
		e := ast.Lit(ast.IntValue(n))
		e.Span = ast.Span{Start: tok.Start, End: tok.End}
		return e, nil
	case lexer.TokFloat:
		tok := p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return ast.Expr{}, &Error{Message: "invalid float literal: " + tok.Text, Span: ast.Span{Start: tok.Start, End: tok.End}}
		}
		e := ast.Lit(ast.FloatValue(f))
		e.Span = ast.Span{Start: tok.Start, End: tok.End}
		return e, nil
	case lexer.TokBool:
		tok := p.advance()
		e := ast.Lit(ast.BoolValue(tok.Text == "true"))
		e.Span = ast.Span{Start: tok.Start, End: tok.End}
		return e, nil
	case lexer.TokString:
		tok := p.advance()
		e := ast.Lit(ast.StringValue(tok.Text))
		e.Span = ast.Span{Start: tok.Start, End: tok.End}
		return e, nil
	case lexer.TokIdent:
		return p.parsePathOrRef()
	default:
		return ast.Expr{}, p.errorf("unexpected token %s %q", p.cur().Kind, p.cur().Text)
	}
}

// path_or_ref := IDENT ('.' IDENT)*
// Whether this is a field path or a rule reference is not decidable
// here (it depends on whether a single-segment identifier names a
// declared rule, which the analyzer alone knows per spec §4.2); this
// parser always emits an untyped FieldRef, and the analyzer rewrites
// single-segment FieldRefs matching a rule name to RuleRef.
func (p *Parser) parsePathOrRef() (ast.Expr, error) {
	first, err := p.expect(lexer.TokIdent)
	if err != nil {
		return ast.Expr{}, err
	}
	segs := []string{first.Text}
	end := first.End
	for p.check(lexer.TokDot) {
		p.advance()
		seg, err := p.expect(lexer.TokIdent)
		if err != nil {
			return ast.Expr{}, err
		}
		segs = append(segs, seg.Text)
		end = seg.End
	}
	return ast.Expr{
		Kind: ast.ExprFieldRef,
		Span: ast.Span{Start: first.Start, End: end},
		Path: ast.FieldPath(segs),
	}, nil
}

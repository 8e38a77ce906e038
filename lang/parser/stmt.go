package parser

import (
	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/token"
)

// parseBlock parses a brace-delimited statement list. Each element is
// either a Let, a For, or an expression statement (including trailing
// bare-expression "tail" position, which the checker treats as the
// block's value).
func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipStmtSep()

	var list []ast.Node
	for !p.check(token.RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
		p.skipStmtSep()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewBlock(list, nil), nil
}

func (p *Parser) parseStmt() (ast.Node, error) {
	switch {
	case p.check(token.LET):
		return p.parseLet()
	case p.check(token.FOR):
		return p.parseFor()
	default:
		return p.parseExpr()
	}
}

func (p *Parser) parseLet() (ast.Node, error) {
	p.advance() // 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	antn, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}

	var init ast.Node
	if p.match(token.ASSIGN) {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewLet(nameTok.Value.Raw, antn, init), nil
}

// parseFor parses `for start: ty = init; cond; step { body }`.
func (p *Parser) parseFor() (ast.Node, error) {
	p.advance() // 'for'

	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	antn, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}

	var startInit ast.Node
	if p.match(token.ASSIGN) {
		startInit, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	step, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFor(nameTok.Value.Raw, antn, startInit, cond, step, body), nil
}

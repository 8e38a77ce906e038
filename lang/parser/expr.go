package parser

import (
	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// assignOps is the set of tokens parsed at the lowest (assignment) binding
// level: right-associative, and the only level where the LHS must be an
// lvalue (checked by the checker, not here).
var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.ADD_EQ: true, token.SUB_EQ: true,
	token.MUL_EQ: true, token.DIV_EQ: true,
}

// binPrec gives every other binary operator's precedence, low to high; 0
// means "not a binary operator". Ties bind left-to-right except POW, which
// is right-associative.
func binPrec(k token.Kind) int {
	switch k {
	case token.OR:
		return 2
	case token.AND:
		return 3
	case token.BIT_OR:
		return 4
	case token.BIT_XOR:
		return 5
	case token.BIT_AND:
		return 6
	case token.EQ, token.NOT_EQ:
		return 7
	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		return 8
	case token.ADD, token.SUB:
		return 9
	case token.MUL, token.DIV:
		return 10
	case token.POW:
		return 11
	default:
		return 0
	}
}

// parseExpr is the expression entry point: level 1 (assignment).
func (p *Parser) parseExpr() (ast.Node, error) {
	lhs, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if assignOps[p.curKind()] {
		op := p.advance().Kind
		rhs, err := p.parseExpr() // right-associative: recurse into assignment level
		if err != nil {
			return nil, err
		}
		return ast.NewBinOp(op, lhs, rhs, nil), nil
	}
	return lhs, nil
}

// parseBinary climbs levels 2-11 by precedence.
func (p *Parser) parseBinary(minPrec int) (ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := binPrec(p.curKind())
		if prec == 0 || prec < minPrec {
			return lhs, nil
		}
		op := p.advance().Kind

		nextMin := prec + 1
		if op == token.POW {
			nextMin = prec // right-associative
		}
		rhs, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinOp(op, lhs, rhs, nil)
	}
}

// parseUnary is level 12: prefix -, !, ++, --. The precedence table (§4.2)
// lists ++/-- as prefix only; spec §4.5's "pre/post increment" phrasing
// describes the general operator, not a postfix form this grammar accepts.
// lang/lower's lowerUnOp correspondingly only ever sees the prefix ast.UnOp
// shape. Postfix `x++`/`x--` is intentionally unparseable.
func (p *Parser) parseUnary() (ast.Node, error) {
	switch p.curKind() {
	case token.SUB, token.NOT, token.INC, token.DEC:
		op := p.advance().Kind
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnOp(op, operand, nil), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix is level 13: call and index, left-associative and chainable
// (e.g. `a[0][1]`).
func (p *Parser) parsePostfix() (ast.Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(token.LPAREN):
			ident, ok := n.(*ast.Ident)
			if !ok {
				return nil, p.errorf("call target must be a function name")
			}
			p.advance()
			var args []ast.Node
			for !p.check(token.RPAREN) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(token.COMMA) {
					break
				}
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			n = ast.NewCall(ident.Name, args, nil)

		case p.check(token.LBRACK):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACK); err != nil {
				return nil, err
			}
			n = ast.NewIndex(n, idx, nil)

		default:
			return n, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.curKind() {
	case token.INT:
		tok := p.advance()
		return ast.NewLit(types.NewIntLiteral[ast.Node](types.LitUInt64, tok.Value.Int), nil), nil

	case token.FLOAT:
		tok := p.advance()
		return ast.NewLit(types.NewFloatLiteral[ast.Node](types.LitDouble, tok.Value.Float), nil), nil

	case token.BOOL:
		tok := p.advance()
		return ast.NewLit(types.NewBoolLiteral[ast.Node](tok.Value.Bool), nil), nil

	case token.CHAR:
		tok := p.advance()
		return ast.NewLit(types.NewCharLiteral[ast.Node](tok.Value.Char), nil), nil

	case token.IDENT:
		tok := p.advance()
		return ast.NewIdent(tok.Value.Raw, nil), nil

	case token.LPAREN:
		p.advance()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return n, nil

	case token.LBRACK:
		p.advance()
		var elems []ast.Node
		for !p.check(token.RBRACK) {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		return ast.NewLit(types.NewArrayLiteral[ast.Node](elems, nil), nil), nil

	case token.IF:
		return p.parseIf()

	case token.LBRACE:
		return p.parseBlock()

	default:
		return nil, p.errorf("expected expression, found %#v", p.curKind())
	}
}

func (p *Parser) parseIf() (ast.Node, error) {
	p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var els ast.Node
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.NewCond(cond, then, els, nil), nil
}

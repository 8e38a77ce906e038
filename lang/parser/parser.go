// Package parser implements stage 2 of the compiler: recursive-descent
// parsing of a token sequence into an untyped AST, with operator-precedence
// climbing for expressions.
//
// As a side effect, each fn/extern fn/struct declaration inserts its symbol
// into the symbol table's global scope before its body is parsed, so
// recursion and forward reference are legal and the checker can always
// resolve a call regardless of declaration order.
package parser

import (
	"fmt"

	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/lexer"
	"github.com/marcsoda/lightc/lang/symtable"
	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// resolveTypeName maps a source type-name token to its Type, per the same
// resolution rule the checker uses for annotations.
func resolveTypeName(name string) types.Type { return types.ResolveType(name) }

// parseTypeAnnotation parses a type annotation: either a plain primitive or
// composite name, or the compound array form `array(elem, len)`, recursively
// so arrays of arrays are legal.
func (p *Parser) parseTypeAnnotation() (types.Type, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return types.Type{}, err
	}

	if nameTok.Value.Raw == "array" && p.check(token.LPAREN) {
		p.advance()
		elemTy, err := p.parseTypeAnnotation()
		if err != nil {
			return types.Type{}, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return types.Type{}, err
		}
		lenTok, err := p.expect(token.INT)
		if err != nil {
			return types.Type{}, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return types.Type{}, err
		}
		return types.NewArray(elemTy, int(lenTok.Value.Int)), nil
	}

	return resolveTypeName(nameTok.Value.Raw), nil
}

// Parser holds the token stream and the shared symbol table.
type Parser struct {
	toks []lexer.TokenAndValue
	pos  int

	symbols *symtable.Table
}

// New returns a Parser over the given token sequence, threading the shared
// symbol table so declarations can be installed as they're parsed.
func New(toks []lexer.TokenAndValue, symbols *symtable.Table) *Parser {
	return &Parser{toks: toks, symbols: symbols}
}

// Parse consumes the entire token sequence and returns the untyped
// top-level AST, or the first parse error encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := ast.NewProgram()
	for p.cur().Kind != token.EOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Add(decl)
	}
	return prog, nil
}

func (p *Parser) cur() lexer.TokenAndValue {
	return p.toks[p.pos]
}

func (p *Parser) curKind() token.Kind { return p.cur().Kind }

func (p *Parser) advance() lexer.TokenAndValue {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.curKind() == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) (lexer.TokenAndValue, error) {
	if !p.check(k) {
		return lexer.TokenAndValue{}, p.errorf("expected %#v, found %#v", k, p.curKind())
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// skipStmtSep consumes any number of optional `;` statement separators.
func (p *Parser) skipStmtSep() {
	for p.match(token.SEMI) {
	}
}

func (p *Parser) parseDecl() (ast.Node, error) {
	switch {
	case p.check(token.EXTERN):
		return p.parseExtern()
	case p.check(token.FN):
		return p.parseFn()
	case p.check(token.STRUCT):
		return p.parseStruct()
	default:
		return nil, p.errorf("expected declaration (extern, fn or struct), found %#v", p.curKind())
	}
}

func (p *Parser) parseExtern() (ast.Node, error) {
	p.advance() // 'extern'
	proto, err := p.parsePrototype(true)
	if err != nil {
		return nil, err
	}
	p.symbols.InsertGlobal(symtable.NewFnSymbol(proto.Name, toSymArgs(proto.Args), proto.RetTy, true))
	p.skipStmtSep()
	return ast.NewFn(proto, nil), nil
}

func (p *Parser) parseFn() (ast.Node, error) {
	p.advance() // 'fn'
	proto, err := p.parsePrototype(false)
	if err != nil {
		return nil, err
	}
	p.symbols.InsertGlobal(symtable.NewFnSymbol(proto.Name, toSymArgs(proto.Args), proto.RetTy, false))

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFn(proto, body), nil
}

func toSymArgs(args []ast.Arg) []symtable.Arg {
	out := make([]symtable.Arg, len(args))
	for i, a := range args {
		out[i] = symtable.Arg{Name: a.Name, TyName: a.TyName}
	}
	return out
}

func (p *Parser) parsePrototype(isExtern bool) (*ast.Prototype, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Arg
	for !p.check(token.RPAREN) {
		argName, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		tyTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Arg{Name: argName.Value.Raw, TyName: tyTok.Value.Raw})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	retTy := "void"
	if p.match(token.ARROW) {
		tyTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		retTy = tyTok.Value.Raw
	}

	return &ast.Prototype{Name: nameTok.Value.Raw, Args: args, RetTy: retTy, IsExtern: isExtern}, nil
}

func (p *Parser) parseStruct() (ast.Node, error) {
	p.advance() // 'struct'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	name := nameTok.Value.Raw
	// Installed before the body; re-inserted below with its fields and methods.
	p.symbols.InsertGlobal(symtable.NewStructSymbol(name, nil, nil))

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var (
		fields     []ast.Node
		methods    []ast.Node
		symFields  []symtable.Arg
		methodName []string
	)
	for !p.check(token.RBRACE) {
		if p.check(token.FN) {
			m, err := p.parseFn()
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
			methodName = append(methodName, m.(*ast.Fn).Proto.Name)
			p.skipStmtSep()
			continue
		}

		fNameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		fTyPos := p.pos
		fTy, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		fTyName := p.toks[fTyPos].Value.Raw
		fields = append(fields, ast.NewLet(fNameTok.Value.Raw, fTy, nil))
		symFields = append(symFields, symtable.Arg{Name: fNameTok.Value.Raw, TyName: fTyName})
		p.match(token.COMMA)
		p.skipStmtSep()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	p.symbols.InsertGlobal(symtable.NewStructSymbol(name, symFields, methodName))
	return ast.NewStruct(name, fields, methods), nil
}

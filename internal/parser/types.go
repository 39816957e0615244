package parser

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/token"
)

// parseType parses a type starting at curToken. `a -> b` is right
// associative: int -> int -> int is int -> (int -> int).
func (p *Parser) parseType() ast.Type {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.fail(diagnostics.ErrP001, p.curToken, "type too complex: nesting depth limit exceeded")
		return nil
	}

	start := posOf(p.curToken)
	t := p.parseSimpleType()
	if t == nil || p.failed() {
		return nil
	}
	if !p.peekTokenIs(token.ARROW) {
		return t
	}
	p.nextToken()
	p.nextToken()
	res := p.parseType()
	if res == nil {
		return nil
	}
	fun := &ast.FunType{Arg: t, Res: res}
	fun.ID = p.register(start, t, res)
	return fun
}

func (p *Parser) parseSimpleType() ast.Type {
	start := posOf(p.curToken)
	switch p.curToken.Type {
	case token.INT_TYPE:
		t := &ast.IntType{}
		t.ID = p.register(start)
		return t
	case token.STR_TYPE:
		t := &ast.StrType{}
		t.ID = p.register(start)
		return t
	case token.BOOL_TYPE:
		t := &ast.BoolType{}
		t.ID = p.register(start)
		return t
	case token.IDENT:
		name := p.curToken.Lexeme
		if ast.IsTypeConstName(name) {
			t := &ast.ConstType{Name: name}
			t.ID = p.register(start)
			return t
		}
		t := &ast.VarType{Name: name}
		t.ID = p.register(start)
		return t
	case token.SET:
		elem := p.parseTypeArgument()
		if elem == nil {
			return nil
		}
		t := &ast.SetType{Elem: elem}
		t.ID = p.register(start, elem)
		return t
	case token.SEQ, token.LIST:
		elem := p.parseTypeArgument()
		if elem == nil {
			return nil
		}
		t := &ast.SeqType{Elem: elem}
		t.ID = p.register(start, elem)
		return t
	case token.LPAREN:
		return p.parseParenType()
	case token.LBRACE:
		if r := p.parseRecordType(); r != nil {
			return r
		}
		return nil
	case token.PIPE:
		return p.parseUnionType()
	}
	p.fail(diagnostics.ErrP001, p.curToken, fmt.Sprintf("expected a type, found %s", describe(p.curToken)))
	return nil
}

// parseTypeArgument parses `(T)` after set, seq or list.
func (p *Parser) parseTypeArgument() ast.Type {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	elem := p.parseType()
	if elem == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return elem
}

// parseParenType handles
//
//	() => T          operator without parameters
//	(A, B) => T      operator signature
//	(A, B)           tuple
//	(A)              grouping
func (p *Parser) parseParenType() ast.Type {
	start := posOf(p.curToken)
	args := []ast.Type{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		for {
			p.nextToken()
			t := p.parseType()
			if t == nil {
				return nil
			}
			args = append(args, t)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if p.peekTokenIs(token.FAT_ARROW) {
		p.nextToken()
		p.nextToken()
		res := p.parseType()
		if res == nil {
			return nil
		}
		oper := &ast.OperType{Args: args, Res: res}
		oper.ID = p.register(start, append(typeNodes(args), res)...)
		return oper
	}

	switch len(args) {
	case 0:
		p.fail(diagnostics.ErrP001, p.peekToken,
			fmt.Sprintf("expected '=>' after '()', found %s", describe(p.peekToken)))
		return nil
	case 1:
		return args[0]
	}
	tuple := &ast.TupleType{Elems: args}
	tuple.ID = p.register(start, typeNodes(args)...)
	return tuple
}

// { name: T, tag: "a" }; curToken is '{'. A string literal is accepted as a
// field type here; only union discriminators may use it, which is checked
// after parsing.
func (p *Parser) parseRecordType() *ast.RecordType {
	start := posOf(p.curToken)
	rec := &ast.RecordType{Fields: []*ast.Field{}}
	var children []ast.Node
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		rec.ID = p.register(start)
		return rec
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := &ast.Field{Name: p.curToken.Lexeme}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		if p.curTokenIs(token.STRING) {
			lit := &ast.StrLitType{Value: p.curToken.Literal.(string)}
			lit.ID = p.register(posOf(p.curToken))
			field.Type = lit
		} else if field.Type = p.parseType(); field.Type == nil {
			return nil
		}
		rec.Fields = append(rec.Fields, field)
		children = append(children, field.Type)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	rec.ID = p.register(start, children...)
	return rec
}

// | { tag: "a", ... } | { tag: "b", ... }; curToken is the first '|'.
// The union starts at its first record.
func (p *Parser) parseUnionType() ast.Type {
	union := &ast.UnionType{}
	for {
		if !p.peekTokenIs(token.LBRACE) {
			p.fail(diagnostics.ErrP002, p.peekToken,
				fmt.Sprintf("unterminated disjoint union: expected a record after '|', found %s", describe(p.peekToken)))
			return nil
		}
		p.nextToken()
		rec := p.parseRecordType()
		if rec == nil {
			return nil
		}
		union.Records = append(union.Records, rec)
		if !p.peekTokenIs(token.PIPE) {
			break
		}
		p.nextToken()
	}
	children := make([]ast.Node, len(union.Records))
	for i, r := range union.Records {
		children[i] = r
	}
	union.ID = p.register(p.startOf(union.Records[0]), children...)
	return union
}

func typeNodes(ts []ast.Type) []ast.Node {
	out := make([]ast.Node, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

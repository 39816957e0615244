package parser

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/token"
)

// x -> body
func (p *Parser) parseSingleParamLambda() ast.Expr {
	start := posOf(p.curToken)
	param := p.parseParam()
	if param == nil || !p.expectPeek(token.ARROW) {
		return nil
	}
	return p.parseLambdaBody(start, []*ast.Param{param})
}

// _ -> body
func (p *Parser) parseHoleLambda() ast.Expr {
	if !p.peekTokenIs(token.ARROW) {
		p.fail(diagnostics.ErrP001, p.curToken, "'_' can only be used as a parameter")
		return nil
	}
	return p.parseSingleParamLambda()
}

// (x, y) -> body; curToken is '('.
func (p *Parser) parseMultiParamLambda() ast.Expr {
	start := posOf(p.curToken)
	params := p.parseParams()
	if params == nil || !p.expectPeek(token.ARROW) {
		return nil
	}
	return p.parseLambdaBody(start, params)
}

// parseLambdaBody parses the body after '->'; curToken is '->'.
// Lambdas written in expressions are plain operators.
func (p *Parser) parseLambdaBody(start srcmap.Pos, params []*ast.Param) ast.Expr {
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	lam := &ast.Lambda{Params: params, Qualifier: ast.QualDef, Expr: body}
	lam.ID = p.register(start, append(paramNodes(params), body)...)
	return lam
}

// isLambdaParams reports whether curToken '(' opens `(a, _, b) ->`.
func (p *Parser) isLambdaParams() bool {
	i := 1
	for {
		tok := p.lookahead(i)
		if tok.Type != token.IDENT && tok.Type != token.UNDERSCORE {
			return false
		}
		switch p.lookahead(i + 1).Type {
		case token.COMMA:
			i += 2
		case token.RPAREN:
			return p.lookahead(i+2).Type == token.ARROW
		default:
			return false
		}
	}
}

// parseLetExpression parses a definition followed by the expression it is
// visible in:
//
//	val x = 1
//	x + 1
func (p *Parser) parseLetExpression() ast.Expr {
	start := posOf(p.curToken)
	def := p.parseOpDef()
	if def == nil {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	let := &ast.Let{OpDef: def, Expr: body}
	let.ID = p.register(start, def, body)
	return let
}

// f(a, b); curToken is '('.
func (p *Parser) parseCallExpression(function ast.Expr) ast.Expr {
	name, ok := function.(*ast.Name)
	if !ok {
		p.fail(diagnostics.ErrP001, p.curToken, "only named operators can be applied")
		return nil
	}
	start := p.startOf(name)
	// The name becomes the opcode and is not a node of its own.
	p.release(name.ID)
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	return p.newApp(start, name.Name, args...)
}

// e.f, e.f(a, b); curToken is '.'.
// e is the first argument of f. An empty argument list is an error: the
// call would have nothing but its receiver.
func (p *Parser) parseDotCall(receiver ast.Expr) ast.Expr {
	start := p.startOf(receiver)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	opcode := p.curToken.Lexeme
	if !p.peekTokenIs(token.LPAREN) {
		return p.newApp(start, opcode, receiver)
	}
	p.nextToken()
	if p.peekTokenIs(token.RPAREN) {
		p.fail(diagnostics.ErrP006, p.curToken,
			fmt.Sprintf("operator '%s' expects arguments after the receiver, found '()'", opcode))
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	return p.newApp(start, opcode, append([]ast.Expr{receiver}, args...)...)
}

// parseExpressionList parses a comma-separated list up to end, with an
// optional trailing comma. curToken is the opening delimiter; on return it
// is end. An empty list is a non-nil empty slice.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expr {
	list := []ast.Expr{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	for {
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil
		}
		list = append(list, exp)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

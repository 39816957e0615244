package parser

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/config"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/token"
)

// parseGroupedExpression handles what can follow '(':
//
//	(x, y) -> e   lambda
//	(a, b)        tuple
//	(e)           grouping, no node of its own
func (p *Parser) parseGroupedExpression() ast.Expr {
	if p.isLambdaParams() {
		return p.parseMultiParamLambda()
	}
	start := posOf(p.curToken)
	if p.peekTokenIs(token.RPAREN) {
		p.fail(diagnostics.ErrP001, p.peekToken, "expected an expression, found ')'")
		return nil
	}
	elems := p.parseExpressionList(token.RPAREN)
	if elems == nil {
		return nil
	}
	if len(elems) == 1 {
		return p.group(start, elems[0])
	}
	return p.newApp(start, config.OpTuple, elems...)
}

// parseBraceExpression handles `{ name: e, ... }` records and `{ e }` groups.
func (p *Parser) parseBraceExpression() ast.Expr {
	if p.peekTokenIs(token.IDENT) && p.lookahead(2).Type == token.COLON {
		return p.parseRecordLiteral()
	}
	start := posOf(p.curToken)
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(token.RBRACE) {
		return nil
	}
	return p.group(start, exp)
}

// { a: 1, b: 2 } is Rec("a", 1, "b", 2)
func (p *Parser) parseRecordLiteral() ast.Expr {
	start := posOf(p.curToken)
	args := []ast.Expr{}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := &ast.StrLit{Value: p.curToken.Lexeme}
		field.ID = p.register(posOf(p.curToken))
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		args = append(args, field, value)
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
	return p.newApp(start, config.OpRecord, args...)
}

// [a, b] is List(a, b)
func (p *Parser) parseListLiteral() ast.Expr {
	start := posOf(p.curToken)
	elems := p.parseExpressionList(token.RBRACKET)
	if elems == nil {
		return nil
	}
	return p.newApp(start, config.OpList, elems...)
}

var naryOpcodes = map[token.TokenType]string{
	token.AND: config.OpAnd,
	token.OR:  config.OpOr,
	token.ALL: config.OpActionAll,
	token.ANY: config.OpActionAny,
}

// and { a, b }, or { ... }, all { ... }, any { ... }
func (p *Parser) parseNaryExpression() ast.Expr {
	start := posOf(p.curToken)
	opcode := naryOpcodes[p.curToken.Type]
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	args := p.parseExpressionList(token.RBRACE)
	if args == nil {
		return nil
	}
	return p.newApp(start, opcode, args...)
}

// parseMatchExpression parses
//
//	e match | "tag1": x => e1 | "tag2": _ => e2
//
// into unionMatch(e, "tag1", x -> e1, "tag2", _ -> e2). curToken is 'match'.
func (p *Parser) parseMatchExpression(subject ast.Expr) ast.Expr {
	start := p.startOf(subject)
	args := []ast.Expr{subject}
	if !p.peekTokenIs(token.PIPE) {
		p.fail(diagnostics.ErrP001, p.peekToken,
			fmt.Sprintf("expected '|' after 'match', found %s", describe(p.peekToken)))
		return nil
	}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		if !p.expectPeek(token.STRING) {
			return nil
		}
		tag := &ast.StrLit{Value: p.curToken.Literal.(string)}
		tag.ID = p.register(posOf(p.curToken))
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		lamStart := posOf(p.curToken)
		param := p.parseParam()
		if param == nil || !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		body := p.parseExpression(MATCH)
		if body == nil {
			return nil
		}
		lam := &ast.Lambda{Params: []*ast.Param{param}, Qualifier: ast.QualDef, Expr: body}
		lam.ID = p.register(lamStart, param, body)
		args = append(args, tag, lam)
	}
	return p.newApp(start, config.OpMatch, args...)
}

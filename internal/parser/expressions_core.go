package parser

import (
	"fmt"
	"math/big"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/config"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/token"
)

var infixOpcodes = map[token.TokenType]string{
	token.IFF:      config.OpIff,
	token.IMPLIES:  config.OpImplies,
	token.OR:       config.OpOr,
	token.AND:      config.OpAnd,
	token.EQ:       config.OpEq,
	token.NOT_EQ:   config.OpNeq,
	token.LT:       config.OpLt,
	token.GT:       config.OpGt,
	token.LTE:      config.OpLte,
	token.GTE:      config.OpGte,
	token.PLUS:     config.OpAdd,
	token.MINUS:    config.OpSub,
	token.ASTERISK: config.OpMul,
	token.SLASH:    config.OpDiv,
	token.PERCENT:  config.OpMod,
	token.CARET:    config.OpPow,
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.fail(diagnostics.ErrP001, p.curToken, "expression too complex: nesting depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil || p.failed() {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			break
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil || p.failed() {
			return nil
		}
	}

	// A lone '=' can only be a mistyped comparison here.
	if p.peekTokenIs(token.ASSIGN) {
		p.fail(diagnostics.ErrP005, p.peekToken, "unexpected '=', did you mean '=='?")
		return nil
	}
	if p.peekTokenIs(token.ILLEGAL) {
		p.fail(diagnostics.ErrP004, p.peekToken, "")
		return nil
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expr {
	if p.peekTokenIs(token.ARROW) {
		return p.parseSingleParamLambda()
	}
	name := &ast.Name{Name: p.curToken.Lexeme}
	name.ID = p.register(posOf(p.curToken))
	return name
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	value, ok := p.curToken.Literal.(*big.Int)
	if !ok || value == nil {
		p.fail(diagnostics.ErrP001, p.curToken, fmt.Sprintf("could not parse %q as integer", p.curToken.Lexeme))
		return nil
	}
	lit := &ast.IntLit{Value: value}
	lit.ID = p.register(posOf(p.curToken))
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expr {
	lit := &ast.StrLit{Value: p.curToken.Literal.(string)}
	lit.ID = p.register(posOf(p.curToken))
	return lit
}

func (p *Parser) parseBoolean() ast.Expr {
	lit := &ast.BoolLit{Value: p.curTokenIs(token.TRUE)}
	lit.ID = p.register(posOf(p.curToken))
	return lit
}

// -x is iuminus(x)
func (p *Parser) parsePrefixExpression() ast.Expr {
	start := posOf(p.curToken)
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return p.newApp(start, config.OpNeg, right)
}

func (p *Parser) parseInfixExpression(left ast.Expr) ast.Expr {
	opcode := infixOpcodes[p.curToken.Type]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return p.newApp(p.startOf(left), opcode, left, right)
}

// parseRightAssocInfixExpression parses right-associative operators like ^
// 2 ^ 3 ^ 2 parses as 2 ^ (3 ^ 2)
func (p *Parser) parseRightAssocInfixExpression(left ast.Expr) ast.Expr {
	opcode := infixOpcodes[p.curToken.Type]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence - 1)
	if right == nil {
		return nil
	}
	return p.newApp(p.startOf(left), opcode, left, right)
}

// x' is next(x); x' = e is assign(x, e).
func (p *Parser) parsePrimeExpression(left ast.Expr) ast.Expr {
	start := p.startOf(left)
	if !p.peekTokenIs(token.ASSIGN) {
		return p.newApp(start, config.OpNext, left)
	}
	p.nextToken()
	p.nextToken()
	right := p.parseExpression(EQUALS)
	if right == nil {
		return nil
	}
	return p.newApp(start, config.OpAssign, left, right)
}

// if (cond) a else b is ite(cond, a, b)
func (p *Parser) parseIfExpression() ast.Expr {
	start := posOf(p.curToken)
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	then := p.parseExpression(LOWEST)
	if then == nil || !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	otherwise := p.parseExpression(LOWEST)
	if otherwise == nil {
		return nil
	}
	return p.newApp(start, config.OpIte, cond, then, otherwise)
}

// newApp registers an application that ends at curToken.
func (p *Parser) newApp(start srcmap.Pos, opcode string, args ...ast.Expr) *ast.App {
	if args == nil {
		args = []ast.Expr{}
	}
	app := &ast.App{Opcode: opcode, Args: args}
	children := make([]ast.Node, len(args))
	for i, a := range args {
		children[i] = a
	}
	app.ID = p.register(start, children...)
	return app
}

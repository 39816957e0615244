package parser

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/token"
)

// parseModule parses `module Name { units }`. curToken is 'module'; on
// return it is the closing brace.
func (p *Parser) parseModule() *ast.Module {
	start := posOf(p.curToken)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	mod := &ast.Module{Name: p.curToken.Lexeme, Defs: []ast.Def{}}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	endsInExpr := false
	for !p.curTokenIs(token.RBRACE) {
		switch {
		case p.curTokenIs(token.EOF):
			p.fail(diagnostics.ErrP002, p.curToken,
				fmt.Sprintf("missing '}' at end of module '%s'", mod.Name))
			return nil
		case p.curTokenIs(token.SEMICOLON):
			p.nextToken()
			continue
		case !isUnitStart(p.curToken.Type):
			p.unexpectedInModule(endsInExpr)
			return nil
		}

		def := p.parseUnit()
		if def == nil || p.failed() {
			return nil
		}
		mod.Defs = append(mod.Defs, def)
		switch def.(type) {
		case *ast.OpDef, *ast.AssumeDef:
			endsInExpr = true
		default:
			endsInExpr = false
		}
		p.nextToken()
	}

	children := make([]ast.Node, len(mod.Defs))
	for i, d := range mod.Defs {
		children[i] = d
	}
	mod.ID = p.register(start, children...)
	return mod
}

func isUnitStart(t token.TokenType) bool {
	switch t {
	case token.CONST, token.VAR, token.ASSUME, token.TYPE, token.IMPORT, token.MODULE:
		return true
	}
	return t.IsQualifier()
}

func (p *Parser) unexpectedInModule(endsInExpr bool) {
	tok := p.curToken
	switch {
	case tok.Type == token.ASSIGN:
		p.fail(diagnostics.ErrP005, tok, "unexpected '=', did you mean '=='?")
	case endsInExpr:
		p.fail(diagnostics.ErrP003, tok,
			fmt.Sprintf("unexpected %s after the expression, expected a definition or '}'", describe(tok)))
	default:
		p.fail(diagnostics.ErrP001, tok,
			fmt.Sprintf("expected a definition ('const', 'var', 'val', 'def', ...), found %s", describe(tok)))
	}
}

func (p *Parser) parseUnit() ast.Def {
	switch p.curToken.Type {
	case token.CONST:
		return p.parseConstDef()
	case token.VAR:
		return p.parseVarDef()
	case token.ASSUME:
		return p.parseAssumeDef()
	case token.TYPE:
		return p.parseTypeDef()
	case token.IMPORT:
		return p.parseImportDef()
	case token.MODULE:
		return p.parseModuleDef()
	case token.NONDET:
		p.fail(diagnostics.ErrP007, p.curToken, "'nondet' is only allowed inside an action body")
		return nil
	}
	if d := p.parseOpDef(); d != nil {
		return d
	}
	return nil
}

// const N: int
func (p *Parser) parseConstDef() ast.Def {
	start := posOf(p.curToken)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	def := &ast.ConstDef{Name: p.curToken.Lexeme}
	if def.Type = p.parseTypeAnnotation(); def.Type == nil {
		return nil
	}
	def.ID = p.register(start, def.Type)
	return def
}

// var x: int
func (p *Parser) parseVarDef() ast.Def {
	start := posOf(p.curToken)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	def := &ast.VarDef{Name: p.curToken.Lexeme}
	if def.Type = p.parseTypeAnnotation(); def.Type == nil {
		return nil
	}
	def.ID = p.register(start, def.Type)
	return def
}

// parseTypeAnnotation parses `: type` following curToken.
func (p *Parser) parseTypeAnnotation() ast.Type {
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	return p.parseType()
}

// assume Name = expr, or assume _ = expr
func (p *Parser) parseAssumeDef() ast.Def {
	start := posOf(p.curToken)
	p.nextToken()
	if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.UNDERSCORE) {
		p.fail(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected a name or '_' after 'assume', found %s", describe(p.curToken)))
		return nil
	}
	def := &ast.AssumeDef{Name: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	if def.Assumption = p.parseExpression(LOWEST); def.Assumption == nil {
		return nil
	}
	def.ID = p.register(start, def.Assumption)
	return def
}

// type T = type, or type T for an uninterpreted type
func (p *Parser) parseTypeDef() ast.Def {
	start := posOf(p.curToken)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	def := &ast.TypeDef{Name: p.curToken.Lexeme}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		if def.Type = p.parseType(); def.Type == nil {
			return nil
		}
	}
	def.ID = p.register(start, def.Type)
	return def
}

// import M.* or import M.name
func (p *Parser) parseImportDef() ast.Def {
	start := posOf(p.curToken)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	def := &ast.ImportDef{Path: p.curToken.Lexeme}
	if !p.expectPeek(token.DOT) {
		return nil
	}
	p.nextToken()
	switch p.curToken.Type {
	case token.ASTERISK:
		def.Name = "*"
	case token.IDENT:
		def.Name = p.curToken.Lexeme
	default:
		p.fail(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected a name or '*' after '%s.', found %s", def.Path, describe(p.curToken)))
		return nil
	}
	def.ID = p.register(start)
	return def
}

func (p *Parser) parseModuleDef() ast.Def {
	start := posOf(p.curToken)
	mod := p.parseModule()
	if mod == nil {
		return nil
	}
	def := &ast.ModuleDef{Module: mod}
	def.ID = p.register(start, mod)
	return def
}

// parseOpDef parses
//
//	qualifier name ('(' params ')')? (':' type)? '=' expr
//
// Parameters are turned into a lambda around the body, so
// `def f(x) = e` is `def f = x -> e` with the qualifier of the definition.
func (p *Parser) parseOpDef() *ast.OpDef {
	start := posOf(p.curToken)
	qual, ok := p.parseQualifier()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	def := &ast.OpDef{Name: p.curToken.Lexeme, Qualifier: qual}

	var params []*ast.Param
	var paramsStart token.Token
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		paramsStart = p.curToken
		params = p.parseParams()
		if params == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		if def.Type = p.parseType(); def.Type == nil {
			return nil
		}
	}

	if !p.peekTokenIs(token.ASSIGN) {
		if p.peekTokenIs(token.EQ) {
			p.fail(diagnostics.ErrP001, p.peekToken,
				fmt.Sprintf("expected '=' in the definition of '%s', found '=='", def.Name))
			return nil
		}
		p.peekError(token.ASSIGN)
		return nil
	}
	p.nextToken()
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}

	if len(params) > 0 {
		lam := &ast.Lambda{Params: params, Qualifier: qual, Expr: body}
		lam.ID = p.register(posOf(paramsStart), append(paramNodes(params), body)...)
		def.Expr = lam
	} else {
		def.Expr = body
	}
	def.ID = p.register(start, def.Type, def.Expr)
	return def
}

func (p *Parser) parseQualifier() (ast.OpQualifier, bool) {
	switch p.curToken.Type {
	case token.VAL:
		return ast.QualVal, true
	case token.DEF:
		return ast.QualDef, true
	case token.ACTION:
		return ast.QualAction, true
	case token.TEMPORAL:
		return ast.QualTemporal, true
	case token.NONDET:
		return ast.QualNondet, true
	case token.PURE:
		p.nextToken()
		switch p.curToken.Type {
		case token.VAL:
			return ast.QualPureVal, true
		case token.DEF:
			return ast.QualPureDef, true
		}
		p.fail(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected 'val' or 'def' after 'pure', found %s", describe(p.curToken)))
		return 0, false
	}
	p.fail(diagnostics.ErrP001, p.curToken,
		fmt.Sprintf("expected a definition, found %s", describe(p.curToken)))
	return 0, false
}

// parseParams parses `(a, _, b)`; curToken is '('. An empty list yields a
// non-nil empty slice. On return curToken is ')'.
func (p *Parser) parseParams() []*ast.Param {
	params := []*ast.Param{}
	p.nextToken()
	if p.curTokenIs(token.RPAREN) {
		return params
	}
	for {
		param := p.parseParam()
		if param == nil {
			return nil
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.UNDERSCORE) {
		p.fail(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected a parameter name, found %s", describe(p.curToken)))
		return nil
	}
	param := &ast.Param{Name: p.curToken.Lexeme}
	param.ID = p.register(posOf(p.curToken))
	return param
}

func paramNodes(params []*ast.Param) []ast.Node {
	out := make([]ast.Node, len(params))
	for i, prm := range params {
		out[i] = prm
	}
	return out
}

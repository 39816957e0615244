package parser

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/pipeline"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/token"
)

// MaxRecursionDepth bounds expression and type nesting.
const MaxRecursionDepth = 1000

const (
	_ int = iota
	LOWEST
	MATCH       // match
	IFF         // iff implies
	OR          // or
	AND         // and
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ^
	PREFIX      // -x
	CALL        // f(x) x.f x'
)

var precedences = map[token.TokenType]int{
	token.MATCH:    MATCH,
	token.IFF:      IFF,
	token.IMPLIES:  IFF,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.CARET:    POWER,
	token.DOT:      CALL,
	token.LPAREN:   CALL,
	token.PRIME:    CALL,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser turns a token stream into an identified module and its source map.
// It stops at the first syntax error.
type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth  int
	lastID ast.ID
	sm     *srcmap.SourceMap
	err    *diagnostics.DiagnosticError

	// grouped holds the opening '(' or '{' of a parenthesized node, where an
	// operator applied to it starts.
	grouped map[ast.ID]srcmap.Pos
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{
		stream: stream,
		ctx:    ctx,
		sm:     srcmap.New(),

		grouped: make(map[ast.ID]srcmap.Pos),
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.UNDERSCORE, p.parseHoleLambda)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseBraceExpression)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.AND, p.parseNaryExpression)
	p.registerPrefix(token.OR, p.parseNaryExpression)
	p.registerPrefix(token.ALL, p.parseNaryExpression)
	p.registerPrefix(token.ANY, p.parseNaryExpression)
	for _, q := range []token.TokenType{token.VAL, token.DEF, token.PURE, token.ACTION, token.TEMPORAL, token.NONDET} {
		p.registerPrefix(q, p.parseLetExpression)
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.IFF, token.IMPLIES, token.OR, token.AND,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.CARET, p.parseRightAssocInfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseDotCall)
	p.registerInfix(token.PRIME, p.parsePrimeExpression)
	p.registerInfix(token.MATCH, p.parseMatchExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// lookahead returns the token i positions after curToken (0 is curToken).
func (p *Parser) lookahead(i int) token.Token {
	switch i {
	case 0:
		return p.curToken
	case 1:
		return p.peekToken
	}
	toks := p.stream.Peek(i - 1)
	if len(toks) < i-1 {
		return token.Token{Type: token.EOF}
	}
	return toks[i-2]
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// fail records the first error of the parse. Later calls are ignored, the
// parser unwinds by returning nil. Any error located on an unrecognized
// token is reported as such.
func (p *Parser) fail(code diagnostics.ErrorCode, tok token.Token, msg string) {
	if p.err != nil {
		return
	}
	if tok.Type == token.ILLEGAL {
		code = diagnostics.ErrP004
		msg = fmt.Sprintf("token recognition error at: '%s'", tok.Lexeme)
	}
	p.err = diagnostics.NewError(code, tok, msg)
	p.err.File = p.ctx.FilePath
	p.err.Loc.Source = p.ctx.FilePath
}

func (p *Parser) failed() bool { return p.err != nil }

func (p *Parser) peekError(t token.TokenType) {
	p.fail(diagnostics.ErrP001, p.peekToken,
		fmt.Sprintf("expected '%s', found %s", t, describe(p.peekToken)))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	switch tok.Type {
	case token.ASSIGN:
		p.fail(diagnostics.ErrP005, tok, "unexpected '=', did you mean '=='?")
	case token.EOF:
		p.fail(diagnostics.ErrP002, tok, "unexpected end of input, expected an expression")
	default:
		p.fail(diagnostics.ErrP001, tok, fmt.Sprintf("expected an expression, found %s", describe(tok)))
	}
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return "'" + tok.Lexeme + "'"
}

func posOf(tok token.Token) srcmap.Pos {
	return srcmap.Pos{Line: tok.Line, Col: tok.Column}
}

// startOf returns where an already registered node begins, including the
// parentheses around it.
func (p *Parser) startOf(n ast.Node) srcmap.Pos {
	if pos, ok := p.grouped[n.NodeID()]; ok {
		return pos
	}
	loc, _ := p.sm.Lookup(n.NodeID())
	return loc.Start
}

// group records that e was written inside brackets opening at start.
// Outer brackets are seen last and win.
func (p *Parser) group(start srcmap.Pos, e ast.Expr) ast.Expr {
	if e != nil {
		p.grouped[e.NodeID()] = start
	}
	return e
}

// register allocates the next identifier for a node spanning from start to
// the end of curToken, and records it as the parent of children.
// Identifiers are handed out when a node is complete, so children always
// get smaller identifiers than their parent.
func (p *Parser) register(start srcmap.Pos, children ...ast.Node) ast.ID {
	p.lastID++
	id := p.lastID
	ids := make([]ast.ID, 0, len(children))
	for _, c := range children {
		if c != nil {
			ids = append(ids, c.NodeID())
		}
	}
	p.sm.Add(id, srcmap.Loc{
		Source: p.ctx.FilePath,
		Start:  start,
		End:    srcmap.Pos{Line: p.curToken.Line, Col: p.curToken.EndColumn()},
	}, ids...)
	return id
}

// release gives back the identifier of a node dropped right after it was
// registered.
func (p *Parser) release(id ast.ID) {
	if id == p.lastID {
		p.sm.DeleteLeaf(id)
		delete(p.grouped, id)
		p.lastID--
	}
}

// ParseModule parses a whole source file: exactly one top-level module.
func (p *Parser) ParseModule() (*ast.Module, *srcmap.SourceMap, *diagnostics.DiagnosticError) {
	if !p.curTokenIs(token.MODULE) {
		p.fail(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected 'module', found %s", describe(p.curToken)))
		return nil, nil, p.err
	}
	mod := p.parseModule()
	if mod == nil || p.failed() {
		return nil, nil, p.err
	}
	if !p.peekTokenIs(token.EOF) {
		p.fail(diagnostics.ErrP001, p.peekToken,
			fmt.Sprintf("extraneous input %s after module '%s'", describe(p.peekToken), mod.Name))
		return nil, nil, p.err
	}
	return mod, p.sm, nil
}

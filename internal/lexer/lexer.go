package lexer

import (
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/tntc/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

// Tokenize lexes the whole input. The last token is always EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	if line, col, ok := l.skipWhitespace(); !ok {
		return token.Token{Type: token.ILLEGAL, Lexeme: "/*", Literal: "/*", Line: line, Column: col}
	}

	line, col := l.line, l.column

	switch l.ch {
	case '=':
		// =, ==, =>
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: line, Column: col}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.FAT_ARROW, Lexeme: "=>", Literal: "=>", Line: line, Column: col}
		} else {
			tok = newToken(token.ASSIGN, l.ch, line, col)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: line, Column: col}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, line, col)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: line, Column: col}
		} else {
			tok = newToken(token.LT, l.ch, line, col)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: line, Column: col}
		} else {
			tok = newToken(token.GT, l.ch, line, col)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: line, Column: col}
		} else {
			tok = newToken(token.MINUS, l.ch, line, col)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, line, col)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, line, col)
	case '/':
		tok = newToken(token.SLASH, l.ch, line, col)
	case '%':
		tok = newToken(token.PERCENT, l.ch, line, col)
	case '^':
		tok = newToken(token.CARET, l.ch, line, col)
	case '|':
		tok = newToken(token.PIPE, l.ch, line, col)
	case '\'':
		tok = newToken(token.PRIME, l.ch, line, col)
	case ',':
		tok = newToken(token.COMMA, l.ch, line, col)
	case ':':
		tok = newToken(token.COLON, l.ch, line, col)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, line, col)
	case '.':
		tok = newToken(token.DOT, l.ch, line, col)
	case '(':
		tok = newToken(token.LPAREN, l.ch, line, col)
	case ')':
		tok = newToken(token.RPAREN, l.ch, line, col)
	case '{':
		tok = newToken(token.LBRACE, l.ch, line, col)
	case '}':
		tok = newToken(token.RBRACE, l.ch, line, col)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, line, col)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, line, col)
	case '"':
		content, ok := l.readString()
		if !ok {
			// Unterminated: report the opening quote and everything up to the line end.
			return token.Token{Type: token.ILLEGAL, Lexeme: "\"" + content, Literal: content, Line: line, Column: col}
		}
		tok = token.Token{Type: token.STRING, Lexeme: "\"" + content + "\"", Literal: content, Line: line, Column: col}
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch, line, col)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
		}
		if isDigit(l.ch) {
			return l.readNumber(line, col)
		}
		tok = newToken(token.ILLEGAL, l.ch, line, col)
	}

	l.readChar()
	return tok
}

// readString consumes a string literal starting at the opening quote and
// stops on the closing quote. Strings may not span lines.
func (l *Lexer) readString() (string, bool) {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' {
			return l.input[position:l.position], true
		}
		if l.ch == '\n' || (l.ch == 0 && l.position >= len(l.input)) {
			return l.input[position:l.position], false
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber(line, col int) token.Token {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	value, _ := new(big.Int).SetString(lexeme, 10)
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

// skipWhitespace skips blanks and comments. On a block comment that never
// closes it returns false with the position of its opening "/*".
func (l *Lexer) skipWhitespace() (line, col int, ok bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && !l.atEOF() {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				line, col = l.line, l.column
				l.readChar() // consume /
				l.readChar() // consume *
				closed := false
				for !l.atEOF() {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						closed = true
						break
					}
					l.readChar()
				}
				if !closed {
					return line, col, false
				}
				continue
			}
		}
		return 0, 0, true
	}
}

func (l *Lexer) atEOF() bool {
	return l.ch == 0 && l.position >= len(l.input)
}

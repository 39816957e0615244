package lexer

import (
	"testing"

	"github.com/funvibe/tntc/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `module A {
  // state
  var x: int
  action Next = x' = x + 1 /* step */
  val s = "hi" == "ho" and 10 >= 2 -> _
}`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
		line, col      int
	}{
		{token.MODULE, "module", 1, 1},
		{token.IDENT, "A", 1, 8},
		{token.LBRACE, "{", 1, 10},
		{token.VAR, "var", 3, 3},
		{token.IDENT, "x", 3, 7},
		{token.COLON, ":", 3, 8},
		{token.INT_TYPE, "int", 3, 10},
		{token.ACTION, "action", 4, 3},
		{token.IDENT, "Next", 4, 10},
		{token.ASSIGN, "=", 4, 15},
		{token.IDENT, "x", 4, 17},
		{token.PRIME, "'", 4, 18},
		{token.ASSIGN, "=", 4, 20},
		{token.IDENT, "x", 4, 22},
		{token.PLUS, "+", 4, 24},
		{token.INT, "1", 4, 26},
		{token.VAL, "val", 5, 3},
		{token.IDENT, "s", 5, 7},
		{token.ASSIGN, "=", 5, 9},
		{token.STRING, `"hi"`, 5, 11},
		{token.EQ, "==", 5, 16},
		{token.STRING, `"ho"`, 5, 19},
		{token.AND, "and", 5, 24},
		{token.INT, "10", 5, 28},
		{token.GTE, ">=", 5, 31},
		{token.INT, "2", 5, 34},
		{token.ARROW, "->", 5, 36},
		{token.UNDERSCORE, "_", 5, 39},
		{token.RBRACE, "}", 6, 1},
		{token.EOF, "", 6, 2},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Line != tt.line || tok.Column != tt.col {
			t.Fatalf("tests[%d] %q - position wrong. expected=%d:%d, got=%d:%d", i, tok.Lexeme, tt.line, tt.col, tok.Line, tok.Column)
		}
	}
}

func TestStringLiteralValue(t *testing.T) {
	toks := Tokenize(`"tag"`)
	if toks[0].Type != token.STRING || toks[0].Literal != "tag" {
		t.Fatalf("got %q %v", toks[0].Type, toks[0].Literal)
	}
	if toks[0].EndColumn() != 5 {
		t.Errorf("end column = %d, want 5", toks[0].EndColumn())
	}
}

func TestIllegalTokens(t *testing.T) {
	for _, input := range []string{"#", "!", "\"open", "`"} {
		toks := Tokenize(input)
		if toks[0].Type != token.ILLEGAL {
			t.Errorf("%q: expected ILLEGAL, got %q", input, toks[0].Type)
		}
		if toks[len(toks)-1].Type != token.EOF {
			t.Errorf("%q: token stream does not end with EOF", input)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks := Tokenize("x\n  /* open\n  y")
	if len(toks) != 3 {
		t.Fatalf("expected x, ILLEGAL and EOF, got %v", toks)
	}
	tok := toks[1]
	if tok.Type != token.ILLEGAL || tok.Lexeme != "/*" || tok.Line != 2 || tok.Column != 3 {
		t.Errorf("got %q %q at %d:%d, want ILLEGAL \"/*\" at 2:3", tok.Type, tok.Lexeme, tok.Line, tok.Column)
	}
	if toks[2].Type != token.EOF {
		t.Errorf("expected EOF after the open comment, got %q", toks[2].Type)
	}

	if toks := Tokenize("x /* closed */ y"); len(toks) != 3 || toks[1].Lexeme != "y" {
		t.Errorf("closed comment: %v", toks)
	}
}

func TestBigIntLiteral(t *testing.T) {
	toks := Tokenize("123456789012345678901234567890")
	if toks[0].Type != token.INT {
		t.Fatalf("expected INT, got %q", toks[0].Type)
	}
	if toks[0].Lexeme != "123456789012345678901234567890" {
		t.Errorf("lexeme = %q", toks[0].Lexeme)
	}
}

package token

import "unicode/utf8"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT      TokenType = "IDENT"
	INT        TokenType = "INT"
	STRING     TokenType = "STRING"
	UNDERSCORE TokenType = "_"

	// Operators
	ASSIGN    TokenType = "="
	EQ        TokenType = "=="
	NOT_EQ    TokenType = "!="
	LT        TokenType = "<"
	GT        TokenType = ">"
	LTE       TokenType = "<="
	GTE       TokenType = ">="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	PERCENT   TokenType = "%"
	CARET     TokenType = "^"
	ARROW     TokenType = "->"
	FAT_ARROW TokenType = "=>"
	PIPE      TokenType = "|"
	PRIME     TokenType = "'"

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	MODULE    TokenType = "module"
	CONST     TokenType = "const"
	VAR       TokenType = "var"
	ASSUME    TokenType = "assume"
	TYPE      TokenType = "type"
	IMPORT    TokenType = "import"
	VAL       TokenType = "val"
	DEF       TokenType = "def"
	PURE      TokenType = "pure"
	ACTION    TokenType = "action"
	TEMPORAL  TokenType = "temporal"
	NONDET    TokenType = "nondet"
	IF        TokenType = "if"
	ELSE      TokenType = "else"
	TRUE      TokenType = "true"
	FALSE     TokenType = "false"
	INT_TYPE  TokenType = "int"
	STR_TYPE  TokenType = "str"
	BOOL_TYPE TokenType = "bool"
	SET       TokenType = "set"
	SEQ       TokenType = "seq"
	LIST      TokenType = "list"
	AND       TokenType = "and"
	OR        TokenType = "or"
	IFF       TokenType = "iff"
	IMPLIES   TokenType = "implies"
	ALL       TokenType = "all"
	ANY       TokenType = "any"
	MATCH     TokenType = "match"
)

var keywords = map[string]TokenType{
	"module":   MODULE,
	"const":    CONST,
	"var":      VAR,
	"assume":   ASSUME,
	"type":     TYPE,
	"import":   IMPORT,
	"val":      VAL,
	"def":      DEF,
	"pure":     PURE,
	"action":   ACTION,
	"temporal": TEMPORAL,
	"nondet":   NONDET,
	"if":       IF,
	"else":     ELSE,
	"true":     TRUE,
	"false":    FALSE,
	"int":      INT_TYPE,
	"str":      STR_TYPE,
	"bool":     BOOL_TYPE,
	"set":      SET,
	"seq":      SEQ,
	"list":     LIST,
	"and":      AND,
	"or":       OR,
	"iff":      IFF,
	"implies":  IMPLIES,
	"all":      ALL,
	"any":      ANY,
	"match":    MATCH,
	"_":        UNDERSCORE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a lexeme with its 1-based source position.
// Tokens never span lines, so the end position is derived from the lexeme.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // *big.Int for INT, unquoted text for STRING
	Line    int
	Column  int
}

// EndColumn returns the column of the last character of the token.
// For EOF (empty lexeme) it equals Column.
func (t Token) EndColumn() int {
	n := utf8.RuneCountInString(t.Lexeme)
	if n == 0 {
		return t.Column
	}
	return t.Column + n - 1
}

// IsQualifier reports whether t starts an operator definition.
func (t TokenType) IsQualifier() bool {
	switch t {
	case VAL, DEF, PURE, ACTION, TEMPORAL, NONDET:
		return true
	}
	return false
}

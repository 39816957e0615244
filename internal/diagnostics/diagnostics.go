package diagnostics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/token"
)

type ErrorCode string

const (
	// Phase 1: syntax.
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // unterminated construct
	ErrP003 ErrorCode = "P003" // trailing input after a definition
	ErrP004 ErrorCode = "P004" // unrecognized token
	ErrP005 ErrorCode = "P005" // '=' where '==' was probably meant
	ErrP006 ErrorCode = "P006" // operator applied to too few arguments
	ErrP007 ErrorCode = "P007" // nondet outside of an action body

	// Phase 2: names and shapes.
	ErrA001 ErrorCode = "A001" // unresolved name
	ErrA002 ErrorCode = "A002" // name used outside of its scope
	ErrA003 ErrorCode = "A003" // unresolved type
	ErrA004 ErrorCode = "A004" // conflicting names
	ErrA005 ErrorCode = "A005" // malformed construct
)

// Kind classifies an error for API consumers.
type Kind string

const (
	SyntaxError        Kind = "SyntaxError"
	UnresolvedName     Kind = "UnresolvedName"
	NameOutOfScope     Kind = "NameOutOfScope"
	UnresolvedType     Kind = "UnresolvedType"
	ConflictingNames   Kind = "ConflictingNames"
	MalformedConstruct Kind = "MalformedConstruct"
)

func (c ErrorCode) Kind() Kind {
	switch c {
	case ErrA001:
		return UnresolvedName
	case ErrA002:
		return NameOutOfScope
	case ErrA003:
		return UnresolvedType
	case ErrA004:
		return ConflictingNames
	case ErrA005:
		return MalformedConstruct
	}
	return SyntaxError
}

// DiagnosticError is a positioned error produced by one of the stages.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Loc     srcmap.Loc
	// Ref is the offending node, 0 for syntax errors.
	Ref  ast.ID
	File string
}

// NewError creates an error located at tok.
func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: msg,
		Loc: srcmap.Loc{
			Start: srcmap.Pos{Line: tok.Line, Col: tok.Column},
			End:   srcmap.Pos{Line: tok.Line, Col: tok.EndColumn()},
		},
	}
}

// NewAnalyzerError creates an error about node ref, located at loc.
func NewAnalyzerError(code ErrorCode, ref ast.ID, loc srcmap.Loc, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: msg,
		Loc:     loc,
		Ref:     ref,
		File:    loc.Source,
	}
}

func (e *DiagnosticError) Kind() Kind { return e.Code.Kind() }

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = e.Loc.Source
	}
	if file == "" {
		return fmt.Sprintf("%d:%d: %s [%s]", e.Loc.Start.Line, e.Loc.Start.Col, e.Message, e.Code)
	}
	return fmt.Sprintf("%s:%d:%d: %s [%s]", file, e.Loc.Start.Line, e.Loc.Start.Col, e.Message, e.Code)
}

func (e *DiagnosticError) MarshalJSON() ([]byte, error) {
	loc := e.Loc
	if loc.Source == "" {
		loc.Source = e.File
	}
	return json.Marshal(struct {
		Code    ErrorCode  `json:"code"`
		Kind    Kind       `json:"kind"`
		Message string     `json:"explanation"`
		Loc     srcmap.Loc `json:"location"`
		Ref     ast.ID     `json:"reference,omitempty"`
	}{e.Code, e.Kind(), e.Message, loc, e.Ref})
}

// Errors is the list of errors of one run. It is itself an error.
type Errors []*DiagnosticError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Sort orders errors by position, then by node.
func (es Errors) Sort() {
	sort.SliceStable(es, func(i, j int) bool {
		a, b := es[i].Loc.Start, es[j].Loc.Start
		if a != b {
			return a.Before(b)
		}
		return es[i].Ref < es[j].Ref
	})
}

// Codes lists the error codes in order.
func (es Errors) Codes() []ErrorCode {
	out := make([]ErrorCode, len(es))
	for i, e := range es {
		out[i] = e.Code
	}
	return out
}

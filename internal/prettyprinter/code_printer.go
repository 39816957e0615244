package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/config"
)

// --- Code Printer (Output looks like source code) ---

// Binding strength of printed forms, higher binds tighter. The order
// follows the parser.
const (
	precLowest = iota + 1 // lambdas, lets, if
	precMatch
	precIff
	precOr
	precAnd
	precEquals
	precCompare
	precSum
	precProduct
	precPower
	precPrefix
	precCall
	precAtom
)

type infixOp struct {
	symbol string
	prec   int
}

var infixOps = map[string]infixOp{
	config.OpIff:     {"iff", precIff},
	config.OpImplies: {"implies", precIff},
	config.OpEq:      {"==", precEquals},
	config.OpNeq:     {"!=", precEquals},
	config.OpLt:      {"<", precCompare},
	config.OpGt:      {">", precCompare},
	config.OpLte:     {"<=", precCompare},
	config.OpGte:     {">=", precCompare},
	config.OpAdd:     {"+", precSum},
	config.OpSub:     {"-", precSum},
	config.OpMul:     {"*", precProduct},
	config.OpDiv:     {"/", precProduct},
	config.OpMod:     {"%", precProduct},
	config.OpPow:     {"^", precPower},
}

// Right-associative operators
var rightAssoc = map[string]bool{
	config.OpPow: true,
}

// Operators printed as `keyword { a, b }`
var naryKeywords = map[string]string{
	config.OpAnd:       "and",
	config.OpOr:        "or",
	config.OpActionAll: "all",
	config.OpActionAny: "any",
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders mod as source text.
func Print(mod *ast.Module) string {
	p := NewCodePrinter()
	p.PrintModule(mod)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteByte('\n')
	p.writeIndent()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) PrintModule(mod *ast.Module) {
	p.write("module " + mod.Name + " {")
	p.indent++
	for _, def := range mod.Defs {
		p.writeln()
		p.printDef(def)
	}
	p.indent--
	p.writeln()
	p.write("}")
	if p.indent == 0 {
		p.write("\n")
	}
}

func (p *CodePrinter) printDef(def ast.Def) {
	switch d := def.(type) {
	case *ast.ConstDef:
		p.write("const " + d.Name + ": ")
		p.printType(d.Type)
	case *ast.VarDef:
		p.write("var " + d.Name + ": ")
		p.printType(d.Type)
	case *ast.AssumeDef:
		p.write("assume " + d.Name + " = ")
		p.printExpr(d.Assumption, precLowest)
	case *ast.TypeDef:
		p.write("type " + d.Name)
		if d.Type != nil {
			p.write(" = ")
			p.printType(d.Type)
		}
	case *ast.ImportDef:
		p.write("import " + d.Path + "." + d.Name)
	case *ast.ModuleDef:
		p.PrintModule(d.Module)
	case *ast.OpDef:
		p.printOpDef(d)
	}
}

// printOpDef writes `def f(x, y): T = body`. A lambda carrying the
// qualifier of the definition is written as its parameter list.
func (p *CodePrinter) printOpDef(d *ast.OpDef) {
	p.write(d.Qualifier.Keyword() + " " + d.Name)
	body := d.Expr
	if lam, ok := d.Expr.(*ast.Lambda); ok && lam.Qualifier == d.Qualifier {
		p.write("(" + paramList(lam.Params) + ")")
		body = lam.Expr
	}
	if d.Type != nil {
		p.write(": ")
		p.printType(d.Type)
	}
	p.write(" = ")
	p.printExpr(body, precLowest)
}

func paramList(params []*ast.Param) string {
	names := make([]string, len(params))
	for i, prm := range params {
		names[i] = prm.Name
	}
	return strings.Join(names, ", ")
}

// precedence returns how tightly the printed form of e binds.
func precedence(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.Lambda, *ast.Let:
		return precLowest
	case *ast.App:
		if op, ok := infixOps[n.Opcode]; ok && len(n.Args) == 2 {
			return op.prec
		}
		switch {
		case n.Opcode == config.OpNeg && len(n.Args) == 1:
			return precPrefix
		case n.Opcode == config.OpNext && len(n.Args) == 1:
			return precCall
		case n.Opcode == config.OpAssign && len(n.Args) == 2:
			return precEquals
		case n.Opcode == config.OpIte && len(n.Args) == 3:
			return precLowest
		case isMatch(n):
			return precMatch
		}
	}
	return precAtom
}

// printExpr writes e, in parentheses when it binds looser than minPrec.
func (p *CodePrinter) printExpr(e ast.Expr, minPrec int) {
	if precedence(e) < minPrec {
		p.write("(")
		p.printBare(e)
		p.write(")")
		return
	}
	p.printBare(e)
}

func (p *CodePrinter) printBare(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Name:
		p.write(n.Name)
	case *ast.BoolLit:
		if n.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.IntLit:
		p.write(n.Value.String())
	case *ast.StrLit:
		p.write(`"` + n.Value + `"`)
	case *ast.Lambda:
		if len(n.Params) == 1 {
			p.write(n.Params[0].Name)
		} else {
			p.write("(" + paramList(n.Params) + ")")
		}
		p.write(" -> ")
		p.printExpr(n.Expr, precLowest)
	case *ast.Let:
		p.printOpDef(n.OpDef)
		p.writeln()
		// A body starting with '(' or '-' would continue the definition
		// above it as a call or a subtraction.
		body := &CodePrinter{indent: p.indent}
		body.printExpr(n.Expr, precLowest)
		if s := body.String(); strings.HasPrefix(s, "(") || strings.HasPrefix(s, "-") {
			p.write("{ " + s + " }")
		} else {
			p.write(s)
		}
	case *ast.App:
		p.printApp(n)
	}
}

func (p *CodePrinter) printApp(n *ast.App) {
	if op, ok := infixOps[n.Opcode]; ok && len(n.Args) == 2 {
		left, right := op.prec, op.prec+1
		if rightAssoc[n.Opcode] {
			left, right = right, left
		}
		p.printExpr(n.Args[0], left)
		p.write(" " + op.symbol + " ")
		p.printExpr(n.Args[1], right)
		return
	}
	if kw, ok := naryKeywords[n.Opcode]; ok {
		p.write(kw + " ")
		p.printList("{", n.Args, "}")
		return
	}

	switch {
	case n.Opcode == config.OpNeg && len(n.Args) == 1:
		p.write("-")
		p.printExpr(n.Args[0], precPrefix)
	case n.Opcode == config.OpNext && len(n.Args) == 1:
		p.printExpr(n.Args[0], precCall)
		p.write("'")
	case n.Opcode == config.OpAssign && len(n.Args) == 2:
		p.printExpr(n.Args[0], precCall)
		p.write("' = ")
		p.printExpr(n.Args[1], precEquals+1)
	case n.Opcode == config.OpIte && len(n.Args) == 3:
		p.write("if (")
		p.printExpr(n.Args[0], precLowest)
		p.write(") ")
		p.printExpr(n.Args[1], precLowest)
		p.write(" else ")
		p.printExpr(n.Args[2], precLowest)
	case n.Opcode == config.OpTuple && len(n.Args) >= 2:
		p.printList("(", n.Args, ")")
	case n.Opcode == config.OpList:
		p.printList("[", n.Args, "]")
	case isRecord(n):
		p.write("{ ")
		for i := 0; i < len(n.Args); i += 2 {
			if i > 0 {
				p.write(", ")
			}
			p.write(n.Args[i].(*ast.StrLit).Value + ": ")
			p.printExpr(n.Args[i+1], precLowest)
		}
		p.write(" }")
	case isMatch(n):
		p.printExpr(n.Args[0], precMatch)
		p.write(" match")
		for i := 1; i < len(n.Args); i += 2 {
			lam := n.Args[i+1].(*ast.Lambda)
			p.write(` | "` + n.Args[i].(*ast.StrLit).Value + `": ` + lam.Params[0].Name + " => ")
			p.printExpr(lam.Expr, precMatch+1)
		}
	default:
		p.write(n.Opcode)
		p.printList("(", n.Args, ")")
	}
}

func (p *CodePrinter) printList(open string, args []ast.Expr, close string) {
	p.write(open)
	if open == "{" && len(args) > 0 {
		p.write(" ")
	}
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a, precLowest)
	}
	if open == "{" && len(args) > 0 {
		p.write(" ")
	}
	p.write(close)
}

// isRecord reports whether n has the shape the parser gives `{ a: e }`.
func isRecord(n *ast.App) bool {
	if n.Opcode != config.OpRecord || len(n.Args) == 0 || len(n.Args)%2 != 0 {
		return false
	}
	for i := 0; i < len(n.Args); i += 2 {
		if _, ok := n.Args[i].(*ast.StrLit); !ok {
			return false
		}
	}
	return true
}

// isMatch reports whether n has the shape the parser gives `e match | ...`.
func isMatch(n *ast.App) bool {
	if n.Opcode != config.OpMatch || len(n.Args) < 3 || len(n.Args)%2 != 1 {
		return false
	}
	for i := 1; i < len(n.Args); i += 2 {
		if _, ok := n.Args[i].(*ast.StrLit); !ok {
			return false
		}
		lam, ok := n.Args[i+1].(*ast.Lambda)
		if !ok || len(lam.Params) != 1 {
			return false
		}
	}
	return true
}

func (p *CodePrinter) printType(t ast.Type) {
	switch n := t.(type) {
	case *ast.IntType:
		p.write("int")
	case *ast.StrType:
		p.write("str")
	case *ast.BoolType:
		p.write("bool")
	case *ast.ConstType:
		p.write(n.Name)
	case *ast.VarType:
		p.write(n.Name)
	case *ast.SetType:
		p.write("set(")
		p.printType(n.Elem)
		p.write(")")
	case *ast.SeqType:
		p.write("seq(")
		p.printType(n.Elem)
		p.write(")")
	case *ast.FunType:
		switch n.Arg.(type) {
		case *ast.FunType, *ast.OperType:
			p.write("(")
			p.printType(n.Arg)
			p.write(")")
		default:
			p.printType(n.Arg)
		}
		p.write(" -> ")
		p.printType(n.Res)
	case *ast.OperType:
		p.write("(")
		p.printTypes(n.Args)
		p.write(") => ")
		p.printType(n.Res)
	case *ast.TupleType:
		p.write("(")
		p.printTypes(n.Elems)
		p.write(")")
	case *ast.RecordType:
		p.printRecordType(n)
	case *ast.StrLitType:
		p.write(`"` + n.Value + `"`)
	case *ast.UnionType:
		for i, r := range n.Records {
			if i > 0 {
				p.write(" ")
			}
			p.write("| ")
			p.printRecordType(r)
		}
	}
}

func (p *CodePrinter) printTypes(ts []ast.Type) {
	for i, t := range ts {
		if i > 0 {
			p.write(", ")
		}
		p.printType(t)
	}
}

func (p *CodePrinter) printRecordType(r *ast.RecordType) {
	if len(r.Fields) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, f := range r.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name + ": ")
		p.printType(f.Type)
	}
	p.write(" }")
}

package diagnostics

import (
	"fmt"
	"strings"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// Format renders e with the offending source line and a caret underline:
//
//	error [P005] mocked_path:3:9: unexpected '=', did you mean '=='?
//
//	   2 |   var x: int
//	   3 |   val y = x = 1
//	     |             ^
//
// Positions outside of source are clamped.
func Format(e *DiagnosticError, source string, color bool) string {
	lines := strings.Split(source, "\n")
	line := e.Loc.Start.Line
	col := e.Loc.Start.Col
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	width := 1
	if e.Loc.End.Line == e.Loc.Start.Line && e.Loc.End.Col >= col {
		width = e.Loc.End.Col - col + 1
	}

	file := e.File
	if file == "" {
		file = e.Loc.Source
	}

	var b strings.Builder
	head := fmt.Sprintf("error [%s] %s:%d:%d: %s", e.Code, file, e.Loc.Start.Line, e.Loc.Start.Col, e.Message)
	if color {
		head = colorBold + colorRed + head + colorReset
	}
	b.WriteString(head)
	b.WriteString("\n\n")
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	caret := strings.Repeat("^", width)
	if color {
		caret = colorRed + caret + colorReset
	}
	fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", col-1), caret)
	return b.String()
}

// FormatAll renders every error of es, separated by blank lines.
func FormatAll(es Errors, source string, color bool) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = Format(e, source, color)
	}
	return strings.Join(parts, "\n")
}

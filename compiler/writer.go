package compiler

import "strings"

// StatementSeparator terminates every emitted statement.
const StatementSeparator = ";\n"

// Statement appends the statement separator to code unless it already ends
// with it. Applying it twice is the same as applying it once.
func Statement(code string) string {
	if strings.HasSuffix(code, StatementSeparator) {
		return code
	}
	return code + StatementSeparator
}

// commaList renders a parenthesized, comma separated argument list.
func commaList(parts []string) string {
	return "(" + strings.Join(parts, ", ") + ")"
}

// jsWriter accumulates emitted fragments for a block of statements.
type jsWriter struct {
	sb strings.Builder
}

// Raw writes code unchanged.
func (w *jsWriter) Raw(code string) {
	w.sb.WriteString(code)
}

// Statement writes code as a terminated statement.
func (w *jsWriter) Statement(code string) {
	w.sb.WriteString(Statement(code))
}

// String returns the accumulated output.
func (w *jsWriter) String() string { return w.sb.String() }

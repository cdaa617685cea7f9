package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (Null) String() string      { return "nil" }
func (i Int) String() string     { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string   { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (s Str) String() string     { return strconv.Quote(string(s)) }
func (s Symbol) String() string  { return string(s) }
func (k Keyword) String() string { return ":" + string(k) }
func (r Regex) String() string   { return `#"` + string(r) + `"` }

func (o *Opaque) String() string { return fmt.Sprint(o.Value) }

func (l *List) String() string   { return "(" + joinNodes(l.Items) + ")" }
func (v *Vector) String() string { return "[" + joinNodes(v.Items) + "]" }

func (m *Map) String() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = Print(p.Key) + " " + Print(p.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Print returns the readable form of n. A nil Node prints as nil.
func Print(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.String()
}

// Text returns the display form of n: strings contribute their raw content,
// every other node its readable form.
func Text(n Node) string {
	if s, ok := n.(Str); ok {
		return string(s)
	}
	return Print(n)
}

func joinNodes(items []Node) string {
	parts := make([]string, len(items))
	for i, n := range items {
		parts[i] = Print(n)
	}
	return strings.Join(parts, " ")
}

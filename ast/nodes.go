// Package ast defines the expression tree consumed by the JavaScript emitter.
//
// A tree is built from atoms (Null, Int, Float, Str, Symbol, Keyword, Regex,
// Opaque) and three composites: List (a call form), Vector (an array
// literal) and Map (an object literal). Nodes are immutable once built and
// may be shared freely between trees and goroutines.
package ast

import "strings"

// Node is the interface for all tree nodes. The set of implementations is
// closed: only this package defines them.
type Node interface {
	node()
	// String returns the node in its readable s-expression form.
	String() string
}

// Null is the null atom.
type Null struct{}

// Int is an integer atom.
type Int int64

// Float is a floating point atom. Rationals are represented as their
// floating point value, see Ratio.
type Float float64

// Str is a string atom.
type Str string

// Symbol is an identifier atom. A symbol may be namespace qualified as
// "ns/name"; only the local name is ever emitted.
type Symbol string

// Keyword is a quoted identifier atom (":name" in readable form).
type Keyword string

// Regex is a regular expression literal atom holding the pattern text.
type Regex string

// Opaque wraps an arbitrary Go value that is emitted through its default
// textual representation.
type Opaque struct {
	Value any
}

// List is a call form: an ordered sequence whose first element, when a
// Symbol, selects its interpretation.
type List struct {
	Items []Node
}

// Vector is an array literal. It is never interpreted as a call form.
type Vector struct {
	Items []Node
}

// Pair is a single key/value entry of a Map.
type Pair struct {
	Key   Node
	Value Node
}

// Map is an object literal with ordered entries.
type Map struct {
	Pairs []Pair
}

func (Null) node()    {}
func (Int) node()     {}
func (Float) node()   {}
func (Str) node()     {}
func (Symbol) node()  {}
func (Keyword) node() {}
func (Regex) node()   {}
func (*Opaque) node() {}
func (*List) node()   {}
func (*Vector) node() {}
func (*Map) node()    {}

// Namespace returns the namespace qualifier of s, or "" when unqualified.
func (s Symbol) Namespace() string {
	ns, _ := splitQualified(string(s))
	return ns
}

// Name returns the local name of s with any namespace qualifier removed.
// The division operator "/" and names such as "core//" are handled so the
// slash itself survives as a name.
func (s Symbol) Name() string {
	_, name := splitQualified(string(s))
	return name
}

// Name returns the local name of k with any namespace qualifier removed.
func (k Keyword) Name() string {
	_, name := splitQualified(string(k))
	return name
}

func splitQualified(s string) (string, string) {
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return "", s
	}
	return s[:i], s[i+1:]
}

// Head returns the leading symbol of a call form. ok is false when the list
// is empty or its first element is not a Symbol.
func (l *List) Head() (name string, ok bool) {
	if len(l.Items) == 0 {
		return "", false
	}
	sym, ok := l.Items[0].(Symbol)
	if !ok {
		return "", false
	}
	return sym.Name(), true
}

// Args returns every element after the head.
func (l *List) Args() []Node {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[1:]
}

// IsForm reports whether n is a call form headed by the symbol name.
func IsForm(n Node, name string) bool {
	l, ok := n.(*List)
	if !ok {
		return false
	}
	head, ok := l.Head()
	return ok && head == name
}

package ast

// Constructors for composite nodes. Atoms are plain conversions
// (Symbol("x"), Int(1), Str("s")) and need no helpers.

// NewList creates a call form from items.
func NewList(items ...Node) *List {
	return &List{Items: items}
}

// NewVector creates an array literal from items.
func NewVector(items ...Node) *Vector {
	return &Vector{Items: items}
}

// NewMap creates an object literal from pairs, keeping their order.
func NewMap(pairs ...Pair) *Map {
	return &Map{Pairs: pairs}
}

// KV creates a Map entry.
func KV(key, value Node) Pair {
	return Pair{Key: key, Value: value}
}

// Form creates a call form headed by the symbol name.
func Form(name string, args ...Node) *List {
	items := make([]Node, 0, len(args)+1)
	items = append(items, Symbol(name))
	items = append(items, args...)
	return &List{Items: items}
}

// Symbols converts names to Symbol nodes, e.g. for parameter vectors.
func Symbols(names ...string) []Node {
	out := make([]Node, len(names))
	for i, n := range names {
		out[i] = Symbol(n)
	}
	return out
}

// Ratio returns the floating point atom for num/den.
func Ratio(num, den int64) Float {
	return Float(float64(num) / float64(den))
}

// Wrap creates an Opaque atom around v.
func Wrap(v any) *Opaque {
	return &Opaque{Value: v}
}

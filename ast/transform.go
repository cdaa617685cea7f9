package ast

// --- Copy-on-write traversal helpers ---
// These walk slices of nodes, only allocating a new slice when at least
// one element changes, so untouched subtrees stay shared.

// mapSlice applies fn to each element. Returns (newSlice, true) if any
// element changed, or (original, false) if all elements are identical.
// It stops at the first error.
func mapSlice[T any](items []T, fn func(T) (T, error)) ([]T, bool, error) {
	var out []T
	modified := false
	for i, item := range items {
		newItem, err := fn(item)
		if err != nil {
			return nil, false, err
		}
		if !modified && any(newItem) != any(item) {
			out = make([]T, len(items))
			copy(out[:i], items[:i])
			modified = true
		}
		if modified {
			out[i] = newItem
		}
	}
	if !modified {
		return items, false, nil
	}
	return out, true, nil
}

// MapChildren returns n with fn applied to each of its direct children.
// Atoms are returned unchanged. A composite is only copied when one of its
// children changed, so untouched subtrees stay shared.
func MapChildren(n Node, fn func(Node) (Node, error)) (Node, error) {
	switch t := n.(type) {
	case *List:
		items, changed, err := mapSlice(t.Items, fn)
		if err != nil || !changed {
			return n, err
		}
		return &List{Items: items}, nil
	case *Vector:
		items, changed, err := mapSlice(t.Items, fn)
		if err != nil || !changed {
			return n, err
		}
		return &Vector{Items: items}, nil
	case *Map:
		pairs, changed, err := mapSlice(t.Pairs, func(p Pair) (Pair, error) {
			k, err := fn(p.Key)
			if err != nil {
				return p, err
			}
			v, err := fn(p.Value)
			if err != nil {
				return p, err
			}
			return Pair{Key: k, Value: v}, nil
		})
		if err != nil || !changed {
			return n, err
		}
		return &Map{Pairs: pairs}, nil
	}
	return n, nil
}

// Walk calls fn for n and every descendant in depth-first order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch t := n.(type) {
	case *List:
		for _, c := range t.Items {
			Walk(c, fn)
		}
	case *Vector:
		for _, c := range t.Items {
			Walk(c, fn)
		}
	case *Map:
		for _, p := range t.Pairs {
			Walk(p.Key, fn)
			Walk(p.Value, fn)
		}
	}
}

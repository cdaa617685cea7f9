package ast

import (
	"errors"
	"fmt"
)

// Template placeholders. A template is an ordinary tree in which these
// symbols mark where values are substituted.
const (
	// Unquote is replaced by exactly one value.
	Unquote Symbol = "~"
	// UnquoteSplice is replaced by the elements of a List or Vector value,
	// spliced into the enclosing sequence.
	UnquoteSplice Symbol = "~@"
)

var (
	// ErrTemplateArity is returned when the number of values does not match
	// the number of placeholders.
	ErrTemplateArity = errors.New("template: placeholder count mismatch")
	// ErrTemplateSplice is returned when a spliced value is not a sequence,
	// or a splice placeholder appears outside a sequence.
	ErrTemplateSplice = errors.New("template: invalid splice")
)

// Template builds a tree from tmpl, substituting values for placeholders
// positionally in depth-first order. Everything else in tmpl is copied as
// quoted structure; subtrees without placeholders are shared, not copied.
//
//	tmpl := NewList(Symbol("if"), Unquote, Form("do", UnquoteSplice))
//	n, _ := Template(tmpl, Symbol("ok"), NewList(Form("f"), Form("g")))
//	// n is (if ok (do (f) (g)))
func Template(tmpl Node, values ...Node) (Node, error) {
	t := &templater{values: values}
	out, err := t.expand(tmpl)
	if err != nil {
		return nil, err
	}
	if t.next != len(values) {
		return nil, fmt.Errorf("%w: %d placeholders, %d values", ErrTemplateArity, t.next, len(values))
	}
	return out, nil
}

// Placeholders returns the placeholders of tmpl in substitution order.
func Placeholders(tmpl Node) []Symbol {
	var out []Symbol
	Walk(tmpl, func(n Node) bool {
		if s, ok := n.(Symbol); ok && (s == Unquote || s == UnquoteSplice) {
			out = append(out, s)
		}
		return true
	})
	return out
}

type templater struct {
	values []Node
	next   int
}

func (t *templater) take() (Node, error) {
	if t.next >= len(t.values) {
		return nil, fmt.Errorf("%w: more placeholders than %d values", ErrTemplateArity, len(t.values))
	}
	v := t.values[t.next]
	t.next++
	return v, nil
}

func (t *templater) expand(n Node) (Node, error) {
	switch n := n.(type) {
	case Symbol:
		switch n {
		case Unquote:
			return t.take()
		case UnquoteSplice:
			return nil, fmt.Errorf("%w: %s outside a sequence", ErrTemplateSplice, UnquoteSplice)
		}
		return n, nil
	case *List:
		items, changed, err := t.expandItems(n.Items)
		if err != nil || !changed {
			return n, err
		}
		return &List{Items: items}, nil
	case *Vector:
		items, changed, err := t.expandItems(n.Items)
		if err != nil || !changed {
			return n, err
		}
		return &Vector{Items: items}, nil
	case *Map:
		return MapChildren(n, t.expand)
	}
	return n, nil
}

// expandItems substitutes placeholders in a sequence, splicing the
// elements of UnquoteSplice values in place.
func (t *templater) expandItems(items []Node) ([]Node, bool, error) {
	spliced := false
	for _, it := range items {
		if it == UnquoteSplice {
			spliced = true
			break
		}
	}
	if !spliced {
		return mapSlice(items, t.expand)
	}
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if it != UnquoteSplice {
			v, err := t.expand(it)
			if err != nil {
				return nil, false, err
			}
			out = append(out, v)
			continue
		}
		v, err := t.take()
		if err != nil {
			return nil, false, err
		}
		switch seq := v.(type) {
		case *List:
			out = append(out, seq.Items...)
		case *Vector:
			out = append(out, seq.Items...)
		default:
			return nil, false, fmt.Errorf("%w: cannot splice %s", ErrTemplateSplice, Print(v))
		}
	}
	return out, true, nil
}

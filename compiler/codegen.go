package compiler

import (
	"fmt"
	"strings"

	"github.com/nilern/scriptjure/ast"
	"github.com/nilern/scriptjure/forms"
)

// codeGen holds the state of one emission call. It is never shared between
// calls, so concurrent emissions cannot observe each other's scopes.
type codeGen struct {
	forms    forms.Table
	scopes   []*hoistScope
	depth    int // nesting depth of custom form expansions
	maxDepth int
}

// emit renders any node.
func (g *codeGen) emit(n ast.Node) (string, error) {
	switch n := n.(type) {
	case nil:
		return "null", nil
	case *ast.List:
		return g.emitList(n)
	case *ast.Vector:
		return g.emitVector(n)
	case *ast.Map:
		return g.emitMap(n)
	case ast.Null, ast.Int, ast.Float, ast.Str, ast.Symbol, ast.Keyword, ast.Regex, *ast.Opaque:
		return emitAtom(n)
	default:
		return "", newError(ErrUnknownForm, n, fmt.Sprintf("unsupported node type %T", n))
	}
}

func (g *codeGen) emitAll(nodes []ast.Node) ([]string, error) {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := g.emit(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// emitDo renders nodes as a sequence of terminated statements.
func (g *codeGen) emitDo(nodes []ast.Node) (string, error) {
	var w jsWriter
	for _, n := range nodes {
		s, err := g.emit(n)
		if err != nil {
			return "", err
		}
		w.Statement(s)
	}
	return w.String(), nil
}

func (g *codeGen) emitVector(v *ast.Vector) (string, error) {
	items, err := g.emitAll(v.Items)
	if err != nil {
		return "", err
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}

func (g *codeGen) emitMap(m *ast.Map) (string, error) {
	pairs := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		k, err := g.emit(p.Key)
		if err != nil {
			return "", err
		}
		v, err := g.emit(p.Value)
		if err != nil {
			return "", err
		}
		pairs[i] = k + ": " + v
	}
	return "{" + strings.Join(pairs, ", ") + "}", nil
}

// emitList classifies a call form by its head and routes it. The order of
// the checks is significant: dot-method shorthand, custom forms, special
// forms, operators, and finally a plain function call.
func (g *codeGen) emitList(l *ast.List) (string, error) {
	if len(l.Items) == 0 {
		return "", newError(ErrUnknownForm, l, "empty call form")
	}
	sym, ok := l.Items[0].(ast.Symbol)
	if !ok {
		if _, computed := l.Items[0].(*ast.List); computed {
			return g.emitCall(l.Items[0], l.Items[1:])
		}
		return "", newError(ErrUnknownForm, l, "call form head "+ast.Print(l.Items[0])+" is not callable")
	}

	name := sym.Name()
	args := l.Items[1:]
	if isDotMethod(name) {
		if len(args) == 0 {
			return "", newError(ErrMalformedForm, l, "method call "+name+" requires a target object")
		}
		return g.emitMethod(args[0], ast.Symbol(name[1:]), args[1:])
	}
	if fn, ok := g.forms[name]; ok {
		return g.expand(l, name, fn, args)
	}
	if handler, ok := specialForms[name]; ok {
		return handler(g, l, args)
	}
	switch {
	case infixOps[name]:
		return g.emitInfix(l, name, args)
	case prefixUnaryOps[name]:
		return g.emitUnary(l, name, args, false)
	case suffixUnaryOps[name]:
		return g.emitUnary(l, name, args, true)
	}
	return g.emitCall(sym, args)
}

// isDotMethod reports whether name is the (.method obj args...) shorthand.
func isDotMethod(name string) bool {
	return len(name) > 1 && name[0] == '.' && name[1] != '.'
}

// expand runs a custom form and emits its result in place of the form.
func (g *codeGen) expand(form *ast.List, name string, fn forms.Expander, args []ast.Node) (string, error) {
	if g.depth >= g.maxDepth {
		return "", newError(ErrExpansion, form, fmt.Sprintf("more than %d nested expansions", g.maxDepth))
	}
	out, err := fn(args...)
	if err != nil {
		e := newError(ErrExpansion, form, "expanding "+name)
		e.Err = err
		return "", e
	}
	g.depth++
	defer func() { g.depth-- }()
	return g.emit(out)
}

// emitCall renders callee(args...). A function literal callee is wrapped
// in parentheses so it is invoked as an expression.
func (g *codeGen) emitCall(callee ast.Node, args []ast.Node) (string, error) {
	fn, err := g.emit(callee)
	if err != nil {
		return "", err
	}
	if ast.IsForm(callee, "fn") {
		fn = "(" + fn + ")"
	}
	argv, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	return fn + commaList(argv), nil
}

// emitMethod renders obj.method(args...).
func (g *codeGen) emitMethod(obj, method ast.Node, args []ast.Node) (string, error) {
	o, err := g.emit(obj)
	if err != nil {
		return "", err
	}
	m, err := g.emit(method)
	if err != nil {
		return "", err
	}
	argv, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	return o + "." + m + commaList(argv), nil
}

// Package core registers the standard custom forms into forms.Default.
// Import it for its side effects.
package core

import (
	"errors"
	"fmt"

	"github.com/nilern/scriptjure/ast"
	"github.com/nilern/scriptjure/doc"
	"github.com/nilern/scriptjure/forms"
)

// ErrBindings is returned when a binding vector is malformed.
var ErrBindings = errors.New("malformed bindings")

var (
	u = ast.Unquote
	s = ast.UnquoteSplice
)

// Templates of the forms that need nothing beyond positional substitution.
var (
	whenTmpl    = ast.Form("if", u, ast.Form("do", s))
	whenNotTmpl = ast.Form("if", ast.Form("!", u), ast.Form("do", s))
	notTmpl     = ast.Form("!", u)
	letTmpl     = ast.Form("do", ast.Form("var", s), s)
	dotimesTmpl = ast.Form("do",
		ast.Form("var", u, ast.Int(0)),
		ast.Form("while", ast.Form("<", u, u), s, ast.Form("inc!", u)))
)

var docs = []doc.FormDoc{
	{Name: "when", Usage: "(when test body...)", Doc: "Runs body when test holds."},
	{Name: "when-not", Usage: "(when-not test body...)", Doc: "Runs body when test does not hold."},
	{Name: "unless", Usage: "(unless test body...)", Doc: "Same as when-not."},
	{Name: "not", Usage: "(not x)", Doc: "Logical negation."},
	{Name: "cond", Usage: "(cond test expr ... :else expr)", Doc: "Chain of if/else branches. :else is the catch-all test."},
	{Name: "let", Usage: "(let [name value ...] body...)", Doc: "Binds variables, then runs body."},
	{Name: "dotimes", Usage: "(dotimes [i n] body...)", Doc: "Runs body n times with i counting from 0."},
}

func init() {
	Register(forms.Default)
	for _, d := range docs {
		doc.Register(d)
	}
}

// Register adds the standard forms to r.
func Register(r *forms.Registry) {
	r.Register("when", forms.MustTemplateForm(whenTmpl))
	r.Register("when-not", forms.MustTemplateForm(whenNotTmpl))
	r.Register("unless", forms.MustTemplateForm(whenNotTmpl))
	r.Register("not", forms.MustTemplateForm(notTmpl))
	r.Register("cond", expandCond)
	r.Register("let", expandLet)
	r.Register("dotimes", expandDotimes)
}

// expandCond turns test/expression pairs into an if/else chain. A :else
// test is the catch-all branch.
func expandCond(args ...ast.Node) (ast.Node, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("cond requires an even number of forms, got %d", len(args))
	}
	if len(args) == 0 {
		return ast.Null{}, nil
	}
	test, expr := args[0], args[1]
	if kw, ok := test.(ast.Keyword); ok && kw.Name() == "else" {
		return expr, nil
	}
	if len(args) == 2 {
		return ast.Form("if", test, expr), nil
	}
	rest, err := expandCond(args[2:]...)
	if err != nil {
		return nil, err
	}
	return ast.Form("if", test, expr, rest), nil
}

// expandLet turns (let [a 1 b 2] body...) into hoisted var assignments
// followed by the body.
func expandLet(args ...ast.Node) (ast.Node, error) {
	bindings, err := bindingVector("let", args)
	if err != nil {
		return nil, err
	}
	if len(bindings.Items) == 0 {
		return ast.Form("do", args[1:]...), nil
	}
	return ast.Template(letTmpl, ast.NewList(bindings.Items...), ast.NewList(args[1:]...))
}

// expandDotimes turns (dotimes [i n] body...) into a counting while loop.
func expandDotimes(args ...ast.Node) (ast.Node, error) {
	bindings, err := bindingVector("dotimes", args)
	if err != nil {
		return nil, err
	}
	if len(bindings.Items) != 2 {
		return nil, fmt.Errorf("%w: dotimes takes exactly one binding", ErrBindings)
	}
	i, n := bindings.Items[0], bindings.Items[1]
	return ast.Template(dotimesTmpl, i, i, n, ast.NewList(args[1:]...), i)
}

func bindingVector(form string, args []ast.Node) (*ast.Vector, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s requires a binding vector", ErrBindings, form)
	}
	v, ok := args[0].(*ast.Vector)
	if !ok {
		return nil, fmt.Errorf("%w: %s bindings must be a vector, got %s", ErrBindings, form, ast.Print(args[0]))
	}
	if len(v.Items)%2 != 0 {
		return nil, fmt.Errorf("%w: %s requires an even number of binding forms", ErrBindings, form)
	}
	return v, nil
}

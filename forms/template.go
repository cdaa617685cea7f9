package forms

import (
	"fmt"

	"github.com/nilern/scriptjure/ast"
)

// TemplateForm returns an Expander that substitutes the form's arguments
// into tmpl. Each ast.Unquote placeholder takes one argument in order; a
// single trailing ast.UnquoteSplice placeholder takes all remaining
// arguments.
//
//	forms.RegisterCustomForm("unless", forms.MustTemplateForm(
//		ast.Form("if", ast.Form("!", ast.Unquote), ast.Form("do", ast.UnquoteSplice))))
func TemplateForm(tmpl ast.Node) (Expander, error) {
	holes := ast.Placeholders(tmpl)
	fixed := len(holes)
	rest := false
	for i, h := range holes {
		if h != ast.UnquoteSplice {
			continue
		}
		if i != len(holes)-1 {
			return nil, fmt.Errorf("%w: %s must be the last placeholder", ast.ErrTemplateSplice, ast.UnquoteSplice)
		}
		fixed--
		rest = true
	}

	return func(args ...ast.Node) (ast.Node, error) {
		if len(args) < fixed || (!rest && len(args) != fixed) {
			want := fmt.Sprint(fixed)
			if rest {
				want = "at least " + want
			}
			return nil, fmt.Errorf("%w: want %s arguments, got %d", ast.ErrTemplateArity, want, len(args))
		}
		values := args
		if rest {
			values = make([]ast.Node, 0, fixed+1)
			values = append(values, args[:fixed]...)
			values = append(values, ast.NewList(args[fixed:]...))
		}
		return ast.Template(tmpl, values...)
	}, nil
}

// MustTemplateForm is like TemplateForm but panics if tmpl is malformed.
func MustTemplateForm(tmpl ast.Node) Expander {
	fn, err := TemplateForm(tmpl)
	if err != nil {
		panic(err)
	}
	return fn
}

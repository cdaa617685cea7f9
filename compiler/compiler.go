// Package compiler emits JavaScript source text from ast trees.
//
// Emission is a single synchronous recursive pass. Custom forms are looked
// up in a forms.Registry and expanded lazily whenever their name heads a
// call form; special forms and operators are fixed. Variables declared with
// var inside a function body are hoisted into one var statement at the top
// of that body.
package compiler

import (
	"github.com/nilern/scriptjure/ast"
	"github.com/nilern/scriptjure/forms"
)

// DefaultMaxExpansionDepth bounds nested custom form expansion when
// Compiler.MaxExpansionDepth is zero.
const DefaultMaxExpansionDepth = 256

// Compiler emits JavaScript. The zero value is ready to use and expands
// custom forms from forms.Default. A Compiler may be used from several
// goroutines at once; every call works on its own state.
type Compiler struct {
	// Forms is the custom form registry consulted during emission.
	// Nil means forms.Default. It is snapshotted once per call, so
	// registrations made while a call is running do not affect it.
	Forms *forms.Registry
	// MaxExpansionDepth bounds how deeply custom form expansions may nest.
	MaxExpansionDepth int
}

func (c *Compiler) newCodeGen() *codeGen {
	reg := c.Forms
	if reg == nil {
		reg = forms.Default
	}
	depth := c.MaxExpansionDepth
	if depth <= 0 {
		depth = DefaultMaxExpansionDepth
	}
	return &codeGen{forms: reg.Snapshot(), maxDepth: depth}
}

// Emit renders top-level nodes as a program. A single node is emitted as
// is; several nodes are emitted as terminated statements. Variables
// declared outside any function are collected in a root scope and declared
// once at the top of the output.
func (c *Compiler) Emit(nodes ...ast.Node) (string, error) {
	g := c.newCodeGen()
	g.pushScope()
	var code string
	var err error
	if len(nodes) == 1 {
		code, err = g.emit(nodes[0])
	} else {
		code, err = g.emitDo(nodes)
	}
	root := g.popScope()
	if err != nil {
		return "", err
	}
	return root.declarations() + code, nil
}

// EmitExpr renders a single node as a fragment with no enclosing scope:
// var forms outside any function keep an inline var keyword.
func (c *Compiler) EmitExpr(n ast.Node) (string, error) {
	return c.newCodeGen().emit(n)
}

// Emit renders nodes with a zero Compiler, expanding forms.Default.
func Emit(nodes ...ast.Node) (string, error) {
	return (&Compiler{}).Emit(nodes...)
}

// EmitExpr renders a fragment with a zero Compiler.
func EmitExpr(n ast.Node) (string, error) {
	return (&Compiler{}).EmitExpr(n)
}

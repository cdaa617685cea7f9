package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionLiterals(t *testing.T) {
	// (fn [x] (return (+ x 1)))
	out := emitJS(t, l(sym("fn"), v(sym("x")), l(sym("return"), l(sym("+"), sym("x"), num(1)))))
	assert.Equal(t, "function (x) {\nreturn (x + 1);\n }", out)
	assert.Contains(t, out, "return (x + 1);")
	assert.NotContains(t, out, "var ", "parameters are not hoisted")

	// (function add [a b] (return (+ a b)))
	out = emitJS(t, l(sym("function"), sym("add"), v(sym("a"), sym("b")),
		l(sym("return"), l(sym("+"), sym("a"), sym("b")))))
	assert.Equal(t, "function add(a, b) {\nreturn (a + b);\n }", out)
}

func TestNamedFnDeclaresInEnclosingScope(t *testing.T) {
	// (fn foo [x] (foo a b)) at top level is declared in the root scope.
	out := emitJS(t, l(sym("fn"), sym("foo"), v(sym("x")), l(sym("foo"), sym("a"), sym("b"))))
	assert.Equal(t, "var foo;\nfoo = function (x) {\nfoo(a, b);\n }", out)

	// Inside another function the name is hoisted to that function.
	out = emitJS(t, l(sym("fn"), v(),
		l(sym("fn"), sym("helper"), v(), l(sym("return"), num(1))),
		l(sym("return"), l(sym("helper")))))
	assert.Equal(t,
		"function () {\nvar helper;\nhelper = function () {\nreturn 1;\n };\nreturn helper();\n }", out)
}

func TestFunctionDeclarationIsNotHoistedAsVar(t *testing.T) {
	out := emitJS(t, l(sym("function"), sym("f"), v()), l(sym("f")))
	assert.Equal(t, "function f() {\n };\nf();\n", out)
}

func TestVarHoisting(t *testing.T) {
	// (fn [x] (var y 3) (var z 4) (return (+ x y z)))
	out := emitJS(t, l(sym("fn"), v(sym("x")),
		l(sym("var"), sym("y"), num(3)),
		l(sym("var"), sym("z"), num(4)),
		l(sym("return"), l(sym("+"), sym("x"), sym("y"), sym("z")))))
	assert.Equal(t, "function (x) {\nvar y, z;\ny = 3;\nz = 4;\nreturn (x + y + z);\n }", out)
	assert.Equal(t, 1, strings.Count(out, "var "))
}

func TestVarHoistingMultiplePairs(t *testing.T) {
	out := emitJS(t, l(sym("fn"), v(),
		l(sym("var"), sym("a"), num(1), sym("b"), num(2)),
		l(sym("var"), sym("c"), num(3))))
	assert.Equal(t, "function () {\nvar a, b, c;\na = 1;\nb = 2;\nc = 3;\n }", out)
}

func TestVarHoistingCollapsesDuplicates(t *testing.T) {
	out := emitJS(t, l(sym("fn"), v(),
		l(sym("var"), sym("x"), num(1)),
		l(sym("var"), sym("y"), num(2)),
		l(sym("var"), sym("x"), num(3))))
	assert.Equal(t, "function () {\nvar x, y;\nx = 1;\ny = 2;\nx = 3;\n }", out)
}

func TestVarHoistingFromNestedBlocks(t *testing.T) {
	// (fn [] (if a (var x 1)))
	out := emitJS(t, l(sym("fn"), v(), l(sym("if"), sym("a"), l(sym("var"), sym("x"), num(1)))))
	assert.Equal(t, "function () {\nvar x;\nif (a) { \n x = 1;\n \n };\n }", out)
}

func TestVarHoistingDoesNotLeakBetweenFunctions(t *testing.T) {
	// (fn [] (var a 1) (fn [] (var b 2)))
	out := emitJS(t, l(sym("fn"), v(),
		l(sym("var"), sym("a"), num(1)),
		l(sym("fn"), v(), l(sym("var"), sym("b"), num(2)))))
	assert.Equal(t, "function () {\nvar a;\na = 1;\nfunction () {\nvar b;\nb = 2;\n };\n }", out)

	// Sibling functions get independent scopes.
	out = emitJS(t,
		l(sym("fn"), v(), l(sym("var"), sym("a"), num(1))),
		l(sym("fn"), v(), l(sym("var"), sym("b"), num(2))))
	assert.Equal(t, "function () {\nvar a;\na = 1;\n };\nfunction () {\nvar b;\nb = 2;\n };\n", out)
}

func TestRootScopeIsFreshPerEmit(t *testing.T) {
	c := &Compiler{}
	first, err := c.Emit(l(sym("var"), sym("a"), num(1)))
	assert.NoError(t, err)
	second, err := c.Emit(l(sym("var"), sym("b"), num(2)))
	assert.NoError(t, err)
	assert.Equal(t, "var a;\na = 1;\n", first)
	assert.Equal(t, "var b;\nb = 2;\n", second)
}

func TestHoistScope(t *testing.T) {
	var nilScope *hoistScope
	assert.Equal(t, "", nilScope.declarations())

	s := &hoistScope{}
	assert.Equal(t, "", s.declarations())
	s.declare("b")
	s.declare("a")
	s.declare("b")
	assert.Equal(t, []string{"b", "a"}, s.names)
	assert.Equal(t, "var b, a;\n", s.declarations())

	g := &codeGen{}
	assert.Nil(t, g.scope())
	g.pushScope()
	outer := g.scope()
	g.pushScope()
	assert.NotSame(t, outer, g.scope())
	g.popScope()
	assert.Same(t, outer, g.scope())
	g.popScope()
	assert.Nil(t, g.scope())
}

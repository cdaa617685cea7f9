package forms

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilern/scriptjure/ast"
)

func constant(n ast.Node) Expander {
	return func(args ...ast.Node) (ast.Node, error) { return n, nil }
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())
	assert.False(t, r.IsForm("when"))

	r.Register("when", constant(ast.Int(1)))
	r.Register("alpha", constant(ast.Int(2)))
	assert.True(t, r.IsForm("when"))
	assert.Equal(t, []string{"alpha", "when"}, r.Names())

	fn, ok := r.Get("when")
	require.True(t, ok)
	out, err := fn()
	require.NoError(t, err)
	assert.Equal(t, ast.Int(1), out)

	// Re-registering replaces.
	r.Register("when", constant(ast.Int(3)))
	fn, _ = r.Get("when")
	out, _ = fn()
	assert.Equal(t, ast.Int(3), out)

	// A nil expander removes the form.
	r.Register("when", nil)
	assert.False(t, r.IsForm("when"))
	assert.Equal(t, []string{"alpha"}, r.Names())
}

func TestSnapshotIsIsolated(t *testing.T) {
	r := NewRegistry()
	r.Register("a", constant(ast.Int(1)))
	snap := r.Snapshot()
	r.Register("b", constant(ast.Int(2)))
	r.Register("a", nil)

	assert.Len(t, snap, 1)
	_, ok := snap["a"]
	assert.True(t, ok)
}

func TestClone(t *testing.T) {
	r := NewRegistry()
	r.Register("a", constant(ast.Int(1)))
	c := r.Clone()
	c.Register("b", constant(ast.Int(2)))
	assert.Equal(t, []string{"a"}, r.Names())
	assert.Equal(t, []string{"a", "b"}, c.Names())
}

func TestExpand1(t *testing.T) {
	r := NewRegistry()
	r.Register("twice", func(args ...ast.Node) (ast.Node, error) {
		return ast.Form("do", args[0], args[0]), nil
	})

	out, ok, err := r.Expand1(ast.Form("twice", ast.Form("f")))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "(do (f) (f))", ast.Print(out))

	for _, n := range []ast.Node{ast.Form("other"), ast.Symbol("twice"), ast.NewList(), ast.NewVector(ast.Symbol("twice"))} {
		out, ok, err := r.Expand1(n)
		require.NoError(t, err)
		assert.False(t, ok, ast.Print(n))
		assert.Equal(t, n, out)
	}
}

func TestExpand1Error(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("bad", func(args ...ast.Node) (ast.Node, error) { return nil, boom })
	_, _, err := r.Expand1(ast.Form("bad"))
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "expanding bad: boom")
}

func TestExpandAll(t *testing.T) {
	r := NewRegistry()
	r.Register("sq", func(args ...ast.Node) (ast.Node, error) {
		return ast.Form("*", args[0], args[0]), nil
	})
	r.Register("sq-sum", func(args ...ast.Node) (ast.Node, error) {
		return ast.Form("+", ast.Form("sq", args[0]), ast.Form("sq", args[1])), nil
	})

	tree := ast.Form("f",
		ast.Form("sq-sum", ast.Symbol("a"), ast.Form("sq", ast.Int(2))),
		ast.NewVector(ast.Form("sq", ast.Symbol("x"))),
		ast.NewMap(ast.KV(ast.Keyword("k"), ast.Form("sq", ast.Int(3)))),
		ast.Form("quote", ast.Form("sq", ast.Symbol("raw"))))
	out, err := r.ExpandAll(tree)
	require.NoError(t, err)
	assert.Equal(t,
		"(f (+ (* a a) (* (* 2 2) (* 2 2))) [(* x x)] {:k (* 3 3)} (quote (sq raw)))",
		ast.Print(out))
}

func TestExpandAllUnchangedIsShared(t *testing.T) {
	r := NewRegistry()
	tree := ast.Form("f", ast.NewVector(ast.Int(1)))
	out, err := r.ExpandAll(tree)
	require.NoError(t, err)
	assert.Same(t, tree, out)
}

func TestExpandAllRunaway(t *testing.T) {
	r := NewRegistry()
	r.Register("loop", func(args ...ast.Node) (ast.Node, error) { return ast.Form("loop"), nil })
	_, err := r.ExpandAll(ast.Form("loop"))
	assert.ErrorContains(t, err, "nested expansions")
}

func TestDefaultRegistry(t *testing.T) {
	name := "forms-test-default"
	t.Cleanup(func() { Default.Register(name, nil) })

	RegisterCustomForm(name, constant(ast.Null{}))
	_, ok := Get(name)
	assert.True(t, ok)
	assert.Contains(t, Names(), name)
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			r.Register(name, constant(ast.Int(i)))
			r.Snapshot()
			r.Names()
			r.IsForm(name)
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Names(), 16)
}

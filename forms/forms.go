// Package forms holds the custom-form registry: named tree rewriting
// functions the emitter expands whenever their name heads a call form.
//
// Forms in the Default registry are usually registered from init functions
// and enabled with a blank import, the same way the standard forms in
// forms/core are:
//
//	import _ "github.com/nilern/scriptjure/forms/core"
package forms

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nilern/scriptjure/ast"
)

// Expander rewrites the arguments of a custom form into a new tree. The
// returned tree is emitted in place of the form and may itself contain
// further custom forms.
type Expander func(args ...ast.Node) (ast.Node, error)

// Table is an immutable snapshot of a registry.
type Table map[string]Expander

// Registry maps form names to expanders. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]Expander
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{forms: make(map[string]Expander)}
}

// Default is the process-wide registry used when a compiler is not given
// one explicitly.
var Default = NewRegistry()

// Register adds or replaces the expander for name. Registering a nil
// expander removes the form.
func (r *Registry) Register(name string, fn Expander) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.forms, name)
		return
	}
	r.forms[name] = fn
}

// Get returns the expander registered for name.
func (r *Registry) Get(name string) (Expander, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.forms[name]
	return fn, ok
}

// IsForm returns true if name is registered.
func (r *Registry) IsForm(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns sorted names of all registered forms.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.forms))
	for name := range r.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the current registrations. Later calls to
// Register do not affect it.
func (r *Registry) Snapshot() Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := make(Table, len(r.forms))
	for name, fn := range r.forms {
		t[name] = fn
	}
	return t
}

// Clone returns an independent registry holding the same forms.
func (r *Registry) Clone() *Registry {
	return &Registry{forms: r.Snapshot()}
}

// Expand1 expands form once if it is a call form headed by a registered
// name. ok reports whether an expansion happened.
func (r *Registry) Expand1(form ast.Node) (out ast.Node, ok bool, err error) {
	return r.Snapshot().Expand1(form)
}

// ExpandAll expands every custom form in n, outermost first, until none
// remain. The arguments of quote forms are left untouched, since they are
// emitted as raw text.
func (r *Registry) ExpandAll(n ast.Node) (ast.Node, error) {
	return r.Snapshot().ExpandAll(n)
}

// Expand1 is the snapshot equivalent of Registry.Expand1.
func (t Table) Expand1(form ast.Node) (ast.Node, bool, error) {
	l, ok := form.(*ast.List)
	if !ok {
		return form, false, nil
	}
	name, ok := l.Head()
	if !ok {
		return form, false, nil
	}
	fn, ok := t[name]
	if !ok {
		return form, false, nil
	}
	out, err := fn(l.Args()...)
	if err != nil {
		return nil, false, fmt.Errorf("expanding %s: %w", name, err)
	}
	return out, true, nil
}

// ExpandAll is the snapshot equivalent of Registry.ExpandAll.
func (t Table) ExpandAll(n ast.Node) (ast.Node, error) {
	return t.expandAll(n, 0)
}

// MaxExpandDepth bounds the number of successive expansions of a single
// node in ExpandAll.
const MaxExpandDepth = 256

func (t Table) expandAll(n ast.Node, depth int) (ast.Node, error) {
	for {
		out, ok, err := t.Expand1(n)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		depth++
		if depth > MaxExpandDepth {
			return nil, fmt.Errorf("expanding %s: more than %d nested expansions", ast.Print(n), MaxExpandDepth)
		}
		n = out
	}
	if ast.IsForm(n, "quote") {
		return n, nil
	}
	return ast.MapChildren(n, func(c ast.Node) (ast.Node, error) {
		return t.expandAll(c, depth)
	})
}

// RegisterCustomForm adds or replaces a form in the Default registry.
func RegisterCustomForm(name string, fn Expander) {
	Default.Register(name, fn)
}

// Get returns a form from the Default registry.
func Get(name string) (Expander, bool) {
	return Default.Get(name)
}

// Names returns sorted names of all forms in the Default registry.
func Names() []string {
	return Default.Names()
}

package doc

import (
	"sort"
	"sync"
)

// special documents the reserved forms of the emitter.
var special = []FormDoc{
	{Name: "var", Usage: "(var name value ...)", Doc: "Declares variables. Inside a function the names are hoisted into one var statement."},
	{Name: "funcall", Usage: "(funcall f args...)", Doc: "Calls f with args."},
	{Name: "str", Usage: "(str args...)", Doc: "Concatenates args with +."},
	{Name: ".", Usage: "(. obj method args...)", Doc: "Calls a method on obj."},
	{Name: "..", Usage: "(.. obj member...)", Doc: "Chains member access and calls."},
	{Name: "if", Usage: "(if test then else?)", Doc: "Conditional statement."},
	{Name: "return", Usage: "(return value?)", Doc: "Returns from the enclosing function."},
	{Name: "delete", Usage: "(delete place)", Doc: "Deletes a property."},
	{Name: "set!", Usage: "(set! place value ...)", Doc: "Assigns values to places."},
	{Name: "new", Usage: "(new Ctor args...)", Doc: "Constructs an object."},
	{Name: "aget", Usage: "(aget obj index...)", Doc: "Indexes into obj, one bracket per index."},
	{Name: "inc!", Usage: "(inc! place)", Doc: "Postfix increment."},
	{Name: "dec!", Usage: "(dec! place)", Doc: "Postfix decrement."},
	{Name: "inc", Usage: "(inc x)", Doc: "x plus one, without assignment."},
	{Name: "dec", Usage: "(dec x)", Doc: "x minus one, without assignment."},
	{Name: "defined?", Usage: "(defined? x)", Doc: "True when x is neither undefined nor null."},
	{Name: "?", Usage: "(? test then else)", Doc: "Ternary expression."},
	{Name: "and", Usage: "(and args...)", Doc: "Joins args with &&."},
	{Name: "or", Usage: "(or args...)", Doc: "Joins args with ||."},
	{Name: "quote", Usage: "(quote args...)", Doc: "Injects the text of args verbatim."},
	{Name: "do", Usage: "(do body...)", Doc: "Sequence of statements."},
	{Name: "while", Usage: "(while test body...)", Doc: "While loop."},
	{Name: "doseq", Usage: "(doseq [x coll ...] body...)", Doc: "Nested for-in loops, one per binding pair."},
	{Name: "fn", Usage: "(fn name? [params] body...)", Doc: "Function expression. A name is assigned in the enclosing scope."},
	{Name: "function", Usage: "(function name [params] body...)", Doc: "Function declaration."},
	{Name: "try", Usage: "(try body... (catch e body...) (finally body...))", Doc: "Exception handling. Needs at least one clause."},
	{Name: "break", Usage: "(break)", Doc: "Leaves the innermost loop."},
}

var (
	mu     sync.RWMutex
	custom = map[string]FormDoc{}
)

// Register records the documentation of a custom form. Form packages call
// it from init next to registering the form itself.
func Register(f FormDoc) {
	mu.Lock()
	defer mu.Unlock()
	custom[f.Name] = f
}

// Special returns the documentation of the reserved forms, sorted by name.
func Special() []FormDoc {
	out := append([]FormDoc(nil), special...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the documentation of a built-in or registered form.
func Lookup(name string) (FormDoc, bool) {
	for _, f := range special {
		if f.Name == name {
			return f, true
		}
	}
	mu.RLock()
	defer mu.RUnlock()
	f, ok := custom[name]
	return f, ok
}

// Custom returns documentation for the named custom forms. Forms without
// registered documentation get an entry with just their name.
func Custom(names []string) []FormDoc {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]FormDoc, len(names))
	for i, name := range names {
		f, ok := custom[name]
		if !ok {
			f = FormDoc{Name: name}
		}
		out[i] = f
	}
	return out
}

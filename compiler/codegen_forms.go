package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nilern/scriptjure/ast"
)

// specialForm renders one reserved form. form is the whole call form and
// args everything after its head.
type specialForm func(g *codeGen, form *ast.List, args []ast.Node) (string, error)

// specialForms is filled in init to break the initialization cycle between
// the table and the handlers that recurse through emit.
var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"var":      (*codeGen).emitVar,
		"funcall":  (*codeGen).emitFuncall,
		"str":      (*codeGen).emitStr,
		".":        (*codeGen).emitDot,
		"..":       (*codeGen).emitDotDot,
		"if":       (*codeGen).emitIf,
		"return":   (*codeGen).emitReturn,
		"delete":   (*codeGen).emitDelete,
		"set!":     (*codeGen).emitSet,
		"new":      (*codeGen).emitNew,
		"aget":     (*codeGen).emitAget,
		"inc!":     postfix("++"),
		"dec!":     postfix("--"),
		"inc":      offset("+"),
		"dec":      offset("-"),
		"defined?": (*codeGen).emitDefined,
		"?":        (*codeGen).emitTernary,
		"and":      joined(" && "),
		"or":       joined(" || "),
		"quote":    (*codeGen).emitQuote,
		"do":       (*codeGen).emitDoForm,
		"while":    (*codeGen).emitWhile,
		"doseq":    (*codeGen).emitDoseq,
		"fn":       (*codeGen).emitFn,
		"function": (*codeGen).emitFunctionDecl,
		"try":      (*codeGen).emitTry,
		"break":    (*codeGen).emitBreak,
	}
}

// SpecialForms returns the sorted names of the reserved forms.
func SpecialForms() []string {
	names := make([]string, 0, len(specialForms))
	for name := range specialForms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSpecialForm reports whether name is a reserved form.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]
	return ok
}

func malformed(form *ast.List, format string, args ...any) error {
	return newError(ErrMalformedForm, form, fmt.Sprintf(format, args...))
}

func arity(form *ast.List, args []ast.Node, lo, hi int) error {
	if len(args) >= lo && (hi < 0 || len(args) <= hi) {
		return nil
	}
	head, _ := form.Head()
	switch {
	case lo == hi:
		return malformed(form, "%s takes %d arguments, got %d", head, lo, len(args))
	case hi < 0:
		return malformed(form, "%s takes at least %d arguments, got %d", head, lo, len(args))
	}
	return malformed(form, "%s takes %d to %d arguments, got %d", head, lo, hi, len(args))
}

func pairs(form *ast.List, args []ast.Node) error {
	if len(args) == 0 || len(args)%2 != 0 {
		head, _ := form.Head()
		return malformed(form, "%s requires name/value pairs, got %d forms", head, len(args))
	}
	return nil
}

func (g *codeGen) emitVar(form *ast.List, args []ast.Node) (string, error) {
	if err := pairs(form, args); err != nil {
		return "", err
	}
	scope := g.scope()
	var w jsWriter
	for i := 0; i < len(args); i += 2 {
		if _, ok := args[i].(ast.Symbol); !ok {
			return "", malformed(form, "var name must be a symbol, got %s", ast.Print(args[i]))
		}
		name, err := g.emit(args[i])
		if err != nil {
			return "", err
		}
		value, err := g.emit(args[i+1])
		if err != nil {
			return "", err
		}
		if scope == nil {
			w.Statement("var " + name + " = " + value)
			continue
		}
		scope.declare(name)
		w.Statement(name + " = " + value)
	}
	return w.String(), nil
}

func (g *codeGen) emitFuncall(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, -1); err != nil {
		return "", err
	}
	return g.emitCall(args[0], args[1:])
}

func (g *codeGen) emitStr(form *ast.List, args []ast.Node) (string, error) {
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " + "), nil
}

func (g *codeGen) emitDot(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 2, -1); err != nil {
		return "", err
	}
	return g.emitMethod(args[0], args[1], args[2:])
}

func (g *codeGen) emitDotDot(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, -1); err != nil {
		return "", err
	}
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, "."), nil
}

func (g *codeGen) emitIf(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 2, 3); err != nil {
		return "", err
	}
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	code := "if (" + parts[0] + ") { \n " + parts[1] + " \n }"
	if len(parts) == 3 {
		code += " else { \n " + parts[2] + " \n }"
	}
	return code, nil
}

func (g *codeGen) emitReturn(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 0, 1); err != nil {
		return "", err
	}
	if len(args) == 0 {
		return Statement("return"), nil
	}
	value, err := g.emit(args[0])
	if err != nil {
		return "", err
	}
	return Statement("return " + value), nil
}

func (g *codeGen) emitDelete(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, 1); err != nil {
		return "", err
	}
	target, err := g.emit(args[0])
	if err != nil {
		return "", err
	}
	return "delete " + target, nil
}

func (g *codeGen) emitSet(form *ast.List, args []ast.Node) (string, error) {
	if err := pairs(form, args); err != nil {
		return "", err
	}
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	var w jsWriter
	for i := 0; i < len(parts); i += 2 {
		w.Statement(parts[i] + " = " + parts[i+1])
	}
	return w.String(), nil
}

func (g *codeGen) emitNew(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, -1); err != nil {
		return "", err
	}
	call, err := g.emitCall(args[0], args[1:])
	if err != nil {
		return "", err
	}
	return "new " + call, nil
}

func (g *codeGen) emitAget(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 2, -1); err != nil {
		return "", err
	}
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, idx := range parts[1:] {
		sb.WriteString("[" + idx + "]")
	}
	return sb.String(), nil
}

// postfix renders (inc! x) style forms as x++.
func postfix(op string) specialForm {
	return func(g *codeGen, form *ast.List, args []ast.Node) (string, error) {
		if err := arity(form, args, 1, 1); err != nil {
			return "", err
		}
		target, err := g.emit(args[0])
		if err != nil {
			return "", err
		}
		return target + op, nil
	}
}

// offset renders (inc x) style forms as the non-mutating (x + 1).
func offset(op string) specialForm {
	return func(g *codeGen, form *ast.List, args []ast.Node) (string, error) {
		if err := arity(form, args, 1, 1); err != nil {
			return "", err
		}
		value, err := g.emit(args[0])
		if err != nil {
			return "", err
		}
		return "(" + value + " " + op + " 1)", nil
	}
}

// joined renders every argument separated by sep.
func joined(sep string) specialForm {
	return func(g *codeGen, form *ast.List, args []ast.Node) (string, error) {
		if err := arity(form, args, 1, -1); err != nil {
			return "", err
		}
		parts, err := g.emitAll(args)
		if err != nil {
			return "", err
		}
		return strings.Join(parts, sep), nil
	}
}

func (g *codeGen) emitDefined(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, 1); err != nil {
		return "", err
	}
	v, err := g.emit(args[0])
	if err != nil {
		return "", err
	}
	return `typeof ` + v + ` !== "undefined" && ` + v + ` !== null`, nil
}

func (g *codeGen) emitTernary(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 3, 3); err != nil {
		return "", err
	}
	parts, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	return parts[0] + " ? " + parts[1] + " : " + parts[2], nil
}

// emitQuote injects the readable text of its arguments verbatim.
func (g *codeGen) emitQuote(form *ast.List, args []ast.Node) (string, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(ast.Text(a))
	}
	return sb.String(), nil
}

func (g *codeGen) emitDoForm(form *ast.List, args []ast.Node) (string, error) {
	return g.emitDo(args)
}

func (g *codeGen) emitWhile(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, -1); err != nil {
		return "", err
	}
	test, err := g.emit(args[0])
	if err != nil {
		return "", err
	}
	body, err := g.emitDo(args[1:])
	if err != nil {
		return "", err
	}
	return "while (" + test + ") { \n" + body + " }", nil
}

// emitDoseq renders (doseq [x xs y ys] body...) as nested for-in loops,
// one per binding pair.
func (g *codeGen) emitDoseq(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 1, -1); err != nil {
		return "", err
	}
	bindings, ok := args[0].(*ast.Vector)
	if !ok || len(bindings.Items) == 0 || len(bindings.Items)%2 != 0 {
		return "", malformed(form, "doseq requires a vector of binding pairs")
	}
	return g.emitForIn(bindings.Items, args[1:])
}

func (g *codeGen) emitForIn(bindings, body []ast.Node) (string, error) {
	v, err := g.emit(bindings[0])
	if err != nil {
		return "", err
	}
	coll, err := g.emit(bindings[1])
	if err != nil {
		return "", err
	}
	var inner string
	if len(bindings) > 2 {
		inner, err = g.emitForIn(bindings[2:], body)
	} else {
		inner, err = g.emitDo(body)
	}
	if err != nil {
		return "", err
	}
	return "for (" + v + " in " + coll + ") { \n" + inner + " }", nil
}

func (g *codeGen) emitBreak(form *ast.List, args []ast.Node) (string, error) {
	if err := arity(form, args, 0, 0); err != nil {
		return "", err
	}
	return Statement("break"), nil
}

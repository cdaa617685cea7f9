package compiler

import (
	"github.com/nilern/scriptjure/ast"
)

// emitFn renders (fn [params] body...) as a function expression and
// (fn name [params] body...) as an assignment of one to name, declaring
// name in the enclosing scope.
func (g *codeGen) emitFn(form *ast.List, args []ast.Node) (string, error) {
	if len(args) > 0 {
		if sym, ok := args[0].(ast.Symbol); ok {
			name, err := g.emit(sym)
			if err != nil {
				return "", err
			}
			params, body, err := signature(form, args[1:])
			if err != nil {
				return "", err
			}
			fn, err := g.emitFunction("", params, body)
			if err != nil {
				return "", err
			}
			if scope := g.scope(); scope != nil {
				scope.declare(name)
				return name + " = " + fn, nil
			}
			return "var " + name + " = " + fn, nil
		}
	}
	params, body, err := signature(form, args)
	if err != nil {
		return "", err
	}
	return g.emitFunction("", params, body)
}

// emitFunctionDecl renders (function name [params] body...) as a function
// declaration. The name is not recorded as a var since declarations hoist
// on their own.
func (g *codeGen) emitFunctionDecl(form *ast.List, args []ast.Node) (string, error) {
	if len(args) == 0 {
		return "", malformed(form, "function requires a name")
	}
	sym, ok := args[0].(ast.Symbol)
	if !ok {
		return "", malformed(form, "function name must be a symbol, got %s", ast.Print(args[0]))
	}
	name, err := g.emit(sym)
	if err != nil {
		return "", err
	}
	params, body, err := signature(form, args[1:])
	if err != nil {
		return "", err
	}
	return g.emitFunction(name, params, body)
}

func signature(form *ast.List, args []ast.Node) (*ast.Vector, []ast.Node, error) {
	if len(args) == 0 {
		return nil, nil, malformed(form, "missing parameter vector")
	}
	params, ok := args[0].(*ast.Vector)
	if !ok {
		return nil, nil, malformed(form, "parameters must be a vector, got %s", ast.Print(args[0]))
	}
	return params, args[1:], nil
}

// emitFunction renders a function literal. The body gets its own hoisting
// scope whose declarations are flushed before the body statements.
func (g *codeGen) emitFunction(name string, params *ast.Vector, body []ast.Node) (string, error) {
	ps, err := g.emitAll(params.Items)
	if err != nil {
		return "", err
	}
	g.pushScope()
	code, err := g.emitDo(body)
	scope := g.popScope()
	if err != nil {
		return "", err
	}
	return "function " + name + commaList(ps) + " {\n" + scope.declarations() + code + " }", nil
}

// emitTry renders (try body... (catch e body...) (finally body...)).
func (g *codeGen) emitTry(form *ast.List, args []ast.Node) (string, error) {
	var body []ast.Node
	var catchClause, finallyClause *ast.List
	for _, a := range args {
		switch {
		case ast.IsForm(a, "catch"):
			if catchClause != nil {
				return "", newError(ErrMalformedTry, form, "more than one catch clause")
			}
			catchClause = a.(*ast.List)
		case ast.IsForm(a, "finally"):
			if finallyClause != nil {
				return "", newError(ErrMalformedTry, form, "more than one finally clause")
			}
			finallyClause = a.(*ast.List)
		default:
			body = append(body, a)
		}
	}
	if catchClause == nil && finallyClause == nil {
		return "", newError(ErrMalformedTry, form, "try requires a catch or finally clause")
	}

	var w jsWriter
	code, err := g.emitDo(body)
	if err != nil {
		return "", err
	}
	w.Raw("try{\n" + code + "}\n")

	if catchClause != nil {
		cargs := catchClause.Args()
		if len(cargs) == 0 {
			return "", newError(ErrMalformedTry, form, "catch clause requires an exception binding")
		}
		e, err := g.emit(cargs[0])
		if err != nil {
			return "", err
		}
		code, err := g.emitDo(cargs[1:])
		if err != nil {
			return "", err
		}
		w.Raw("catch(" + e + "){\n" + code + "}\n")
	}
	if finallyClause != nil {
		code, err := g.emitDo(finallyClause.Args())
		if err != nil {
			return "", err
		}
		w.Raw("finally{\n" + code + "}\n")
	}
	return w.String(), nil
}

package compiler

import (
	"fmt"
	"strings"

	"github.com/nilern/scriptjure/ast"
)

func opSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var (
	prefixUnaryOps = opSet("!")
	suffixUnaryOps = opSet("++", "--")
	infixOps       = opSet(
		"+", "+=", "-", "-=", "/", "*", "%",
		"==", "===", "<", ">", "<=", ">=", "!=", "!==",
		"<<", ">>", "<<<", ">>>",
		"&", "|", "&&", "||",
		"=", "not=", "instanceof",
	)
	// chainableOps accept any number of operands greater than one.
	chainableOps = opSet("+", "-", "*", "/", "&", "|", "&&", "||")
	// opSubstitutions maps equality aliases to the operator emitted.
	opSubstitutions = map[string]string{
		"=":    "===",
		"!=":   "!==",
		"not=": "!==",
	}
)

// IsInfixOperator reports whether name is emitted as an infix operator.
func IsInfixOperator(name string) bool { return infixOps[name] }

// IsChainable reports whether the infix operator name accepts more than
// two operands.
func IsChainable(name string) bool { return chainableOps[name] }

// emitInfix renders (op a b ...) as a single parenthesized group.
func (g *codeGen) emitInfix(form *ast.List, op string, args []ast.Node) (string, error) {
	if chainableOps[op] {
		if len(args) < 2 {
			return "", newError(ErrUnsupportedArity, form,
				fmt.Sprintf("operator %s requires at least 2 operands, got %d", op, len(args)))
		}
	} else if len(args) != 2 {
		return "", newError(ErrUnsupportedArity, form,
			fmt.Sprintf("operator %s supports only 2 operands, got %d", op, len(args)))
	}
	operands, err := g.emitAll(args)
	if err != nil {
		return "", err
	}
	if sub, ok := opSubstitutions[op]; ok {
		op = sub
	}
	return "(" + strings.Join(operands, " "+op+" ") + ")", nil
}

func (g *codeGen) emitUnary(form *ast.List, op string, args []ast.Node, suffix bool) (string, error) {
	if len(args) != 1 {
		return "", newError(ErrUnsupportedArity, form,
			fmt.Sprintf("operator %s takes exactly 1 operand, got %d", op, len(args)))
	}
	operand, err := g.emit(args[0])
	if err != nil {
		return "", err
	}
	if suffix {
		return operand + op, nil
	}
	return op + operand, nil
}

package compiler

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nilern/scriptjure/ast"
)

// identRe is the identifier grammar: a letter, underscore or dollar sign
// followed by word characters and dots.
var identRe = regexp.MustCompile(`^[_$A-Za-z][.\w]*$`)

// ValidIdentifier reports whether name matches the identifier grammar.
func ValidIdentifier(name string) bool {
	return identRe.MatchString(name)
}

// emitAtom renders a leaf node as literal text.
func emitAtom(n ast.Node) (string, error) {
	switch v := n.(type) {
	case ast.Null:
		return "null", nil
	case ast.Int:
		return strconv.FormatInt(int64(v), 10), nil
	case ast.Float:
		return formatFloat(float64(v)), nil
	case ast.Str:
		return `"` + strings.ReplaceAll(string(v), `"`, `\"`) + `"`, nil
	case ast.Symbol:
		return identifier(n, v.Name())
	case ast.Keyword:
		return identifier(n, v.Name())
	case ast.Regex:
		return "/" + string(v) + "/", nil
	case *ast.Opaque:
		return fmt.Sprint(v.Value), nil
	}
	return "", newError(ErrUnknownForm, n, "not an atom")
}

func identifier(n ast.Node, name string) (string, error) {
	if !ValidIdentifier(name) {
		return "", newError(ErrInvalidIdentifier, n, strconv.Quote(name))
	}
	return name, nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

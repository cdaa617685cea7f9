package compiler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/nilern/scriptjure/ast"
)

// Emission errors. Every failure returned by the emitter wraps exactly one
// of these, so callers can test for them with errors.Is.
var (
	// ErrInvalidIdentifier: a symbol or keyword does not match the
	// identifier grammar.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrUnsupportedArity: an operator was given the wrong number of
	// operands.
	ErrUnsupportedArity = errors.New("unsupported arity")
	// ErrMalformedTry: a try form has no catch or finally clause, or more
	// than one of either.
	ErrMalformedTry = errors.New("malformed try")
	// ErrUnknownForm: a node cannot be classified by any dispatch rule.
	ErrUnknownForm = errors.New("unknown form")
	// ErrMalformedForm: a special form has the wrong shape or number of
	// arguments.
	ErrMalformedForm = errors.New("malformed form")
	// ErrExpansion: a custom form failed to expand or expanded too deeply.
	ErrExpansion = errors.New("custom form expansion failed")
)

// Error describes a fatal emission failure at a specific node.
// It implements slog.LogValuer for structured logging by callers.
type Error struct {
	Kind error  // one of the Err* sentinels
	Msg  string // detail, may be empty
	Form string // readable form of the offending node
	Err  error  // underlying cause, e.g. from a custom form expander
}

func newError(kind error, n ast.Node, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Form: ast.Print(n)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 3)
	part = append(part, e.Kind.Error())
	if e.Msg != "" {
		part = append(part, e.Msg)
	}
	if e.Err != nil {
		part = append(part, e.Err.Error())
	}
	s := strings.Join(part, ": ")
	if e.Form != "" {
		s += " in " + e.Form
	}
	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.Kind.Error())}
	if e.Msg != "" {
		attrs = append(attrs, slog.String("detail", e.Msg))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	if e.Form != "" {
		attrs = append(attrs, slog.String("form", e.Form))
	}
	return slog.GroupValue(attrs...)
}

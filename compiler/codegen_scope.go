package compiler

import "strings"

// hoistScope collects the variable names declared inside one function body
// (or one top-level emission). The names are flushed as a single var
// statement at the top of the body.
type hoistScope struct {
	names []string
	seen  map[string]bool
}

// declare records name, keeping first-seen order. A name declared twice is
// listed once.
func (s *hoistScope) declare(name string) {
	if s.seen[name] {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[name] = true
	s.names = append(s.names, name)
}

// declarations renders the consolidated var statement, or "" when nothing
// was declared.
func (s *hoistScope) declarations() string {
	if s == nil || len(s.names) == 0 {
		return ""
	}
	return "var " + strings.Join(s.names, ", ") + StatementSeparator
}

// pushScope opens a new hoisting scope for a function body.
func (g *codeGen) pushScope() {
	g.scopes = append(g.scopes, &hoistScope{})
}

// popScope closes the innermost scope and returns it.
func (g *codeGen) popScope() *hoistScope {
	s := g.scopes[len(g.scopes)-1]
	g.scopes = g.scopes[:len(g.scopes)-1]
	return s
}

// scope returns the innermost open scope, or nil when declarations are
// emitted inline.
func (g *codeGen) scope() *hoistScope {
	if len(g.scopes) == 0 {
		return nil
	}
	return g.scopes[len(g.scopes)-1]
}

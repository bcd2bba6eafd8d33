package smartenter

import (
	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/syntax"
)

// Arity is the number of arguments a callable accepts. Max is negative for
// varargs.
type Arity struct {
	Min, Max int
}

func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

// Resolver lists the arities a call may resolve to. A nil result means the
// call could not be resolved.
type Resolver interface {
	Arities(t *syntax.Tree, call syntax.NodeID) []Arity
}

// DeclResolver resolves calls against the method and constructor
// declarations of the same file, by name only.
type DeclResolver struct{}

func (DeclResolver) Arities(t *syntax.Tree, call syntax.NodeID) []Arity {
	var want parser.NodeKind
	var name string
	switch kindOf(t, call) {
	case parser.KindCallExpr:
		want, name = parser.KindMethodDecl, calleeName(t, call)
	case parser.KindNewExpr:
		want = parser.KindConstructorDecl
		if typ := t.Child(call, kinds(parser.KindType)); typ != syntax.NoNode {
			name = lastIdentifier(t, typ)
		}
	case parser.KindExplicitConstructorInvocation:
		if tokenChild(t, call, parser.TokenThis) == syntax.NoNode {
			return nil
		}
		want = parser.KindConstructorDecl
		if cls := t.Ancestor(call, classKinds); cls != syntax.NoNode {
			name = identifier(t, cls)
		}
	}
	if name == "" {
		return nil
	}

	var out []Arity
	t.Walk(t.Root(), func(id syntax.NodeID) bool {
		if kindOf(t, id) != want || identifier(t, id) != name {
			return true
		}
		if params := t.Child(id, kinds(parser.KindParameters)); params != syntax.NoNode {
			out = append(out, arityOf(t, params))
		}
		return true
	})
	return out
}

func calleeName(t *syntax.Tree, call syntax.NodeID) string {
	cs := significant(t, call)
	if len(cs) == 0 {
		return ""
	}
	switch kindOf(t, cs[0]) {
	case parser.KindIdentifier:
		return t.Text(cs[0])
	case parser.KindFieldAccess:
		return lastIdentifier(t, cs[0])
	}
	return ""
}

func lastIdentifier(t *syntax.Tree, id syntax.NodeID) string {
	name := ""
	for _, c := range t.Children(id) {
		if kindOf(t, c) == parser.KindIdentifier {
			name = t.Text(c)
		}
	}
	return name
}

func arityOf(t *syntax.Tree, params syntax.NodeID) Arity {
	n := 0
	varargs := false
	for _, c := range t.Children(params) {
		if kindOf(t, c) != parser.KindParameter {
			continue
		}
		n++
		varargs = tokenChild(t, c, parser.TokenEllipsis) != syntax.NoNode
	}
	if varargs {
		return Arity{Min: n - 1, Max: -1}
	}
	return Arity{Min: n, Max: n}
}

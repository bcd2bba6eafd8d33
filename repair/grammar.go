package repair

import (
	"fmt"

	"github.com/dhamidi/smartenter/syntax"
)

// Grammar is the language capability the engine is parameterised with.
// Kind sets group grammar kinds into the classes the engine reasons about;
// the accessors answer the few structural questions that differ per
// language. Nil sets are empty and nil accessors answer "no".
type Grammar struct {
	Statement  syntax.KindSet
	Comment    syntax.KindSet
	Whitespace syntax.KindSet
	CodeBlock  syntax.KindSet
	Member     syntax.KindSet
	Import     syntax.KindSet
	Package    syntax.KindSet
	Annotation syntax.KindSet
	ClassLike  syntax.KindSet
	MethodLike syntax.KindSet
	Ternary    syntax.KindSet
	ForLoop    syntax.KindSet

	// IsClosingBrace reports whether a leaf is a block-closing token.
	IsClosingBrace func(t *syntax.Tree, leaf syntax.NodeID) bool
	// BraceTerminated reports whether a node is an expression-like
	// construct that legitimately ends in a closing brace.
	BraceTerminated func(t *syntax.Tree, id syntax.NodeID) bool
	// ForInitializer returns the initializer clause of a for loop.
	ForInitializer func(t *syntax.Tree, forLoop syntax.NodeID) syntax.NodeID
	Condition      func(t *syntax.Tree, id syntax.NodeID) syntax.NodeID
	Body           func(t *syntax.Tree, id syntax.NodeID) syntax.NodeID

	KindName func(syntax.Kind) string
}

// Trivia is the set of kinds that carry no syntax.
func (g *Grammar) Trivia() syntax.KindSet {
	return g.Whitespace.Or(g.Comment)
}

func (g *Grammar) Name(k syntax.Kind) string {
	if g.KindName != nil {
		return g.KindName(k)
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (g *Grammar) doNotStepInto(k syntax.Kind) bool {
	return g.ClassLike.Has(k) || g.CodeBlock.Has(k) || g.Statement.Has(k) || g.MethodLike.Has(k)
}

func (g *Grammar) closingBrace(t *syntax.Tree, id syntax.NodeID) bool {
	return g.IsClosingBrace != nil && g.IsClosingBrace(t, id)
}

func (g *Grammar) braceTerminated(t *syntax.Tree, id syntax.NodeID) bool {
	return g.BraceTerminated != nil && g.BraceTerminated(t, id)
}

// opensUnclosed returns the brace-terminated construct that leaf opens
// when its closing brace is missing.
func (g *Grammar) opensUnclosed(t *syntax.Tree, leaf syntax.NodeID) syntax.NodeID {
	p := t.Parent(leaf)
	if p == syntax.NoNode || !g.braceTerminated(t, p) || t.FirstLeaf(p, g.Trivia()) != leaf {
		return syntax.NoNode
	}
	cs := t.Children(p)
	for i := len(cs) - 1; i >= 0; i-- {
		n := t.Node(cs[i])
		if g.Trivia().Has(n.Kind) {
			continue
		}
		if n.Start == n.End && n.Err != "" {
			return p
		}
		break
	}
	return syntax.NoNode
}

// openHeader reports whether n is the body of the statement parent while
// something in front of it, usually the header, still has an error.
func (g *Grammar) openHeader(t *syntax.Tree, parent, n syntax.NodeID) bool {
	if parent == syntax.NoNode || g.Body == nil || !g.Statement.Has(t.Kind(parent)) || g.Body(t, parent) != n {
		return false
	}
	for _, c := range t.Children(parent) {
		if c == n {
			break
		}
		if t.HasError(c) {
			return true
		}
	}
	return false
}

func (g *Grammar) forInitializer(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	if g.ForInitializer == nil || !g.ForLoop.Has(t.Kind(id)) {
		return syntax.NoNode
	}
	return g.ForInitializer(t, id)
}

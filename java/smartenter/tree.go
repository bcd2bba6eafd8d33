package smartenter

import (
	"strings"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/syntax"
)

func kinds(ks ...parser.NodeKind) syntax.KindSet {
	out := make([]syntax.Kind, len(ks))
	for i, k := range ks {
		out[i] = syntax.Kind(k)
	}
	return syntax.Kinds(out...)
}

var trivia = kinds(parser.KindWhitespace, parser.KindComment, parser.KindLineComment)

func kindOf(t *syntax.Tree, id syntax.NodeID) parser.NodeKind {
	return parser.NodeKind(t.Kind(id))
}

// tokenOf is TokenEOF for anything but a token leaf.
func tokenOf(t *syntax.Tree, id syntax.NodeID) parser.TokenKind {
	if !t.IsLeaf(id) {
		return parser.TokenEOF
	}
	return parser.TokenKind(t.Node(id).Token)
}

// isMissing reports whether id is a zero-width placeholder for something
// the parser expected.
func isMissing(t *syntax.Tree, id syntax.NodeID) bool {
	if !t.IsLeaf(id) {
		return false
	}
	n := t.Node(id)
	return parser.NodeKind(n.Kind) == parser.KindError && len(n.Children) == 0 && n.Start == n.End
}

// isMissingToken reports whether id stands for an absent token of kind tk.
func isMissingToken(t *syntax.Tree, id syntax.NodeID, tk parser.TokenKind) bool {
	return isMissing(t, id) && t.Node(id).Err == "expected "+tk.String()
}

func missingWith(t *syntax.Tree, id syntax.NodeID, msg string) bool {
	return isMissing(t, id) && t.Node(id).Err == msg
}

// significant returns the children of id that are not trivia.
func significant(t *syntax.Tree, id syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	for _, c := range t.Children(id) {
		if !trivia.Has(t.Kind(c)) {
			out = append(out, c)
		}
	}
	return out
}

func lastChild(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	cs := significant(t, id)
	if len(cs) == 0 {
		return syntax.NoNode
	}
	return cs[len(cs)-1]
}

// tokenChild returns the first direct child leaf holding a token of kind tk.
func tokenChild(t *syntax.Tree, id syntax.NodeID, tk parser.TokenKind) syntax.NodeID {
	for _, c := range t.Children(id) {
		if tokenOf(t, c) == tk {
			return c
		}
	}
	return syntax.NoNode
}

// slot returns the child of id that holds token tk, either as a real token
// or as a missing placeholder for it.
func slot(t *syntax.Tree, id syntax.NodeID, tk parser.TokenKind) syntax.NodeID {
	for _, c := range t.Children(id) {
		if tokenOf(t, c) == tk || isMissingToken(t, c, tk) {
			return c
		}
	}
	return syntax.NoNode
}

// next returns the significant sibling following c inside id.
func next(t *syntax.Tree, id, c syntax.NodeID) syntax.NodeID {
	cs := significant(t, id)
	for i, x := range cs {
		if x == c && i+1 < len(cs) {
			return cs[i+1]
		}
	}
	return syntax.NoNode
}

func prev(t *syntax.Tree, id, c syntax.NodeID) syntax.NodeID {
	cs := significant(t, id)
	for i, x := range cs {
		if x == c && i > 0 {
			return cs[i-1]
		}
	}
	return syntax.NoNode
}

// textEnd is the end of the last real token inside id, or its start when
// it holds none.
func textEnd(t *syntax.Tree, id syntax.NodeID) int {
	if l := t.LastLeaf(id, trivia); l != syntax.NoNode {
		_, end := t.Range(l)
		return end
	}
	start, _ := t.Range(id)
	return start
}

func start(t *syntax.Tree, id syntax.NodeID) int {
	s, _ := t.Range(id)
	return s
}

func end(t *syntax.Tree, id syntax.NodeID) int {
	_, e := t.Range(id)
	return e
}

// isEmpty reports whether id holds no real token.
func isEmpty(t *syntax.Tree, id syntax.NodeID) bool {
	return id == syntax.NoNode || t.FirstLeaf(id, trivia) == syntax.NoNode
}

func hasModifier(t *syntax.Tree, decl syntax.NodeID, tk parser.TokenKind) bool {
	mods := t.Child(decl, kinds(parser.KindModifiers))
	return mods != syntax.NoNode && tokenChild(t, mods, tk) != syntax.NoNode
}

func identifier(t *syntax.Tree, id syntax.NodeID) string {
	if c := t.Child(id, kinds(parser.KindIdentifier)); c != syntax.NoNode {
		return t.Text(c)
	}
	return ""
}

// lineOf is the zero-based line of offset in the tree's source.
func lineOf(t *syntax.Tree, offset int) int {
	src := t.Source()
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n")
}

func sameLine(t *syntax.Tree, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return !strings.Contains(t.Source()[a:b], "\n")
}

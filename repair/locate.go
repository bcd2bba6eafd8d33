package repair

import (
	"strings"

	"github.com/dhamidi/smartenter/syntax"
)

// LookupOffset maps a caret to the offset whose leaf is inspected: the last
// non-blank character before the caret on its line, or, when the line is
// blank up to the caret, the first non-blank position from the caret on.
func LookupOffset(src string, caret int) int {
	if caret > len(src) {
		caret = len(src)
	}
	i := caret - 1
	for i >= 0 && (src[i] == ' ' || src[i] == '\t') {
		i--
	}
	if i >= 0 && src[i] != '\n' && src[i] != '\r' {
		return i
	}
	j := caret
	for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
		j++
	}
	return j
}

// Locate finds the node smart enter should work on for a caret, or
// syntax.NoNode when there is nothing to repair there.
func Locate(t *syntax.Tree, g *Grammar, caret int) syntax.NodeID {
	leaf := t.LeafAt(LookupOffset(t.Source(), caret))
	if leaf == syntax.NoNode || g.Whitespace.Has(t.Kind(leaf)) {
		return syntax.NoNode
	}
	if g.Comment.Has(t.Kind(leaf)) {
		if leaf = codeBefore(t, g, leaf, caret); leaf == syntax.NoNode {
			return syntax.NoNode
		}
	}

	start := leaf
	if g.closingBrace(t, leaf) {
		p := t.Parent(leaf)
		if p == syntax.NoNode || !g.braceTerminated(t, p) {
			return syntax.NoNode
		}
		start = p
	} else if p := g.opensUnclosed(t, leaf); p != syntax.NoNode {
		start = p
	}

	for n := t.Parent(start); n != syntax.NoNode; n = t.Parent(n) {
		k := t.Kind(n)
		switch {
		case g.CodeBlock.Has(k), g.Comment.Has(k):
			return syntax.NoNode
		case g.Member.Has(k), g.Import.Has(k), g.Package.Has(k):
			return n
		case g.Annotation.Has(k) && t.HasError(n):
			return n
		case g.Statement.Has(k):
			p := t.Parent(n)
			if p != syntax.NoNode && g.ForLoop.Has(t.Kind(p)) && !t.HasError(n) {
				return p
			}
			if g.openHeader(t, p, n) {
				return p
			}
			return n
		case g.Ternary.Has(k) && t.HasError(n):
			return n
		}
	}
	return syntax.NoNode
}

// codeBefore resolves a caret after a trailing comment to the code the
// comment follows on its line. A caret inside a comment has no code.
func codeBefore(t *syntax.Tree, g *Grammar, comment syntax.NodeID, caret int) syntax.NodeID {
	from, to := t.Range(comment)
	if caret < to {
		return syntax.NoNode
	}
	prev := t.LeafBefore(from, g.Trivia())
	if prev == syntax.NoNode {
		return syntax.NoNode
	}
	_, end := t.Range(prev)
	if strings.ContainsAny(t.Source()[end:from], "\r\n") {
		return syntax.NoNode
	}
	return prev
}

// collect returns the work list for a target: its relevant descendants in
// reverse pre-order, ending with the target itself. Descent stops at the
// second node that must not be stepped into, and statements nested in
// statements are skipped apart from a for loop's initializer.
func collect(t *syntax.Tree, g *Grammar, target syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	var visit func(id syntax.NodeID, recursive bool)
	visit = func(id syntax.NodeID, recursive bool) {
		out = append(out, id)
		k := t.Kind(id)
		if g.doNotStepInto(k) {
			if !recursive {
				return
			}
			recursive = false
		}
		init := g.forInitializer(t, id)
		for _, c := range t.Children(id) {
			ck := t.Kind(c)
			if g.Whitespace.Has(ck) {
				continue
			}
			if g.Statement.Has(k) && g.Statement.Has(ck) && c != init {
				continue
			}
			visit(c, recursive)
		}
	}
	visit(target, true)

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

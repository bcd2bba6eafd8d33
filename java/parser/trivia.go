package parser

// attachTrivia inserts whitespace and comment leaves into the tree. A
// trivia token goes to the deepest node whose span strictly contains it,
// in source order among that node's children. Zero-width placeholders stay
// in front of trivia that starts where they are.
func attachTrivia(n *Node, trivia []Token) {
	if n == nil || len(trivia) == 0 {
		return
	}
	out := make([]*Node, 0, len(n.Children)+len(trivia))
	i := 0
	for _, c := range n.Children {
		start, end := c.Span.Start.Offset, c.Span.End.Offset
		for i < len(trivia) && trivia[i].Span.End.Offset <= start {
			out = append(out, newLeaf(trivia[i]))
			i++
		}
		j := i
		for j < len(trivia) && end > start && trivia[j].Span.End.Offset <= end {
			j++
		}
		if j > i {
			attachTrivia(c, trivia[i:j])
			i = j
		}
		out = append(out, c)
	}
	for ; i < len(trivia); i++ {
		out = append(out, newLeaf(trivia[i]))
	}
	n.Children = out
}

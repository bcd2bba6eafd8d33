package smartenter

import (
	"strings"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// EnterActions is the completion chain for a plain smart enter.
func EnterActions() []repair.Action {
	return []repair.Action{
		{Name: "comment-continuation", Complete: continueComment},
		{Name: "simple-statement", Complete: finishStatement},
		{Name: "leave-code-block", Complete: leaveBlock},
		{Name: "enter-into-body", Complete: enterBody},
	}
}

// PostCompletionActions is the chain used right after a code completion
// was accepted.
func PostCompletionActions() []repair.Action {
	return []repair.Action{
		{Name: "simple-statement", Complete: finishStatement},
		{Name: "enter-into-body", Complete: enterBody},
	}
}

func NoTargetActions() []repair.Action {
	return []repair.Action{
		{Name: "comment-continuation", Complete: continueComment},
	}
}

// StartNewLine moves to the end of the caret's line and opens an indented
// line below it.
func StartNewLine(s *repair.Session) error {
	s.MoveCaret(s.Buffer().LineEnd(s.Caret()))
	return s.LineBreak()
}

// SplitLine breaks the line at the caret. Between an opening and a closing
// brace it opens an indented blank line instead.
func SplitLine(s *repair.Session) error {
	buf := s.Buffer()
	src := buf.Bytes()
	caret := s.Caret()
	before := text.ShiftBackward(src, caret-1, " \t")
	after := text.ShiftForward(src, caret, " \t")
	if before >= 0 && src[before] == '{' && after < len(src) && src[after] == '}' {
		return openLine(s, before+1, after)
	}
	return s.LineBreak()
}

// openLine replaces [from, to) with an indented blank line followed by a
// line for the closing brace, and puts the caret on the blank line.
func openLine(s *repair.Session, from, to int) error {
	indent := s.Buffer().LineIndent(from - 1)
	inner := indent + s.Style().Unit()
	if err := s.Replace(from, to, "\n"+inner+"\n"+indent); err != nil {
		return err
	}
	s.MoveCaret(from + 1 + len(inner))
	return nil
}

// commentAt returns the comment leaf the caret is inside of.
func commentAt(t *syntax.Tree, caret int) syntax.NodeID {
	for _, off := range []int{caret, caret - 1} {
		leaf := t.LeafAt(off)
		if leaf == syntax.NoNode {
			continue
		}
		switch kindOf(t, leaf) {
		case parser.KindComment, parser.KindLineComment:
			if a, b := t.Range(leaf); caret > a+1 && caret <= b {
				return leaf
			}
		}
	}
	return syntax.NoNode
}

func continueComment(s *repair.Session, _ syntax.NodeID) (repair.Verdict, error) {
	t := s.Tree()
	caret := s.Caret()
	c := commentAt(t, caret)
	if c == syntax.NoNode {
		return repair.NotApplicable, nil
	}
	from, to := t.Range(c)
	body := t.Text(c)
	rest := body[caret-from:]
	indent := s.Buffer().LineIndent(from)
	blanks := afterBlanks(s, caret)
	trim := max(from+2, text.ShiftBackward(s.Buffer().Bytes(), caret-1, " \t")+1)

	if kindOf(t, c) == parser.KindLineComment {
		if strings.TrimSpace(rest) == "" {
			return repair.NotApplicable, nil
		}
		prefix := "\n" + indent + "// "
		if err := s.Replace(trim, blanks, prefix); err != nil {
			return repair.NotApplicable, err
		}
		s.MoveCaret(trim + len(prefix))
		return repair.Handled, nil
	}

	closed := len(body) >= 4 && strings.HasSuffix(body, "*/")
	switch {
	case !closed && strings.TrimSpace(rest) == "":
		middle := "\n" + indent + " * "
		if err := s.Replace(caret, to, middle+"\n"+indent+" */"); err != nil {
			return repair.NotApplicable, err
		}
		s.MoveCaret(caret + len(middle))
	case !closed || caret <= to-2:
		prefix := "\n" + indent + " * "
		if err := s.Replace(trim, blanks, prefix); err != nil {
			return repair.NotApplicable, err
		}
		s.MoveCaret(trim + len(prefix))
	default:
		return repair.NotApplicable, nil
	}
	return repair.Handled, nil
}

var completable = simpleStatements.Or(kinds(parser.KindEnumConstant))

// finishStatement moves the caret to the first error of a simple statement,
// or past its end and a line comment that trails it. Once the statement was changed that is all smart enter
// does.
func finishStatement(s *repair.Session, id syntax.NodeID) (repair.Verdict, error) {
	t := s.Tree()
	if !completable.Has(t.Kind(id)) {
		return repair.NotApplicable, nil
	}
	if e := t.FirstError(id); e != syntax.NoNode {
		s.MoveCaret(start(t, e))
		return repair.Handled, nil
	}
	at := textEnd(t, id)
	if kindOf(t, id) == parser.KindEnumConstant {
		if comma := next(t, t.Parent(id), id); tokenOf(t, comma) == parser.TokenComma {
			at = end(t, comma)
		}
	}
	if c := t.LeafAfter(at, kinds(parser.KindWhitespace)); c != syntax.NoNode &&
		kindOf(t, c) == parser.KindLineComment && sameLine(t, at, start(t, c)) {
		at = end(t, c)
	}
	s.MoveCaret(at)
	if s.IsModified() {
		return repair.Handled, nil
	}
	return repair.Continue, nil
}

// leaveBlock steps out of a block whose last statement is a return or a
// throw, since nothing can follow it.
func leaveBlock(s *repair.Session, id syntax.NodeID) (repair.Verdict, error) {
	t := s.Tree()
	switch kindOf(t, id) {
	case parser.KindReturnStmt, parser.KindThrowStmt:
	default:
		return repair.NotApplicable, nil
	}
	block := t.Parent(id)
	if kindOf(t, block) != parser.KindBlock || t.HasError(id) {
		return repair.NotApplicable, nil
	}
	rb := next(t, block, id)
	if tokenOf(t, rb) != parser.TokenRBrace {
		return repair.NotApplicable, nil
	}
	buf := s.Buffer()
	after := end(t, rb)
	eol := buf.LineEnd(after)
	if afterBlanks(s, after) < eol {
		return repair.NotApplicable, nil
	}
	if eol < buf.Len() && buf.IsBlankLine(eol+1) {
		s.MoveCaret(buf.LineEnd(eol + 1))
		return repair.Handled, nil
	}
	s.MoveCaret(after)
	return repair.Continue, nil
}

// enterBody puts the caret inside the braces of the body a construct owns.
func enterBody(s *repair.Session, id syntax.NodeID) (repair.Verdict, error) {
	t := s.Tree()
	b := body(t, id)
	switch kindOf(t, b) {
	case parser.KindBlock, parser.KindSwitchBody, parser.KindClassBody:
	default:
		return repair.NotApplicable, nil
	}
	lb := tokenChild(t, b, parser.TokenLBrace)
	if lb == syntax.NoNode {
		return repair.NotApplicable, nil
	}
	src := s.Buffer().Bytes()
	open := end(t, lb)
	s.MoveCaret(open)
	if rb := tokenChild(t, b, parser.TokenRBrace); rb != syntax.NoNode &&
		text.ShiftForward(src, open, " \t\r\n") == start(t, rb) {
		return repair.Handled, openLine(s, open, start(t, rb))
	}
	if afterBlanks(s, open) == s.Buffer().LineEnd(open) {
		return repair.Handled, StartNewLine(s)
	}
	return repair.Handled, SplitLine(s)
}

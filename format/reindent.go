package format

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

// Reindenter re-indents Java source by bracket depth. It only changes the
// leading whitespace of lines that start with a token, and optionally
// expands empty brace pairs onto two lines. It is not a pretty printer:
// everything after the first token of a line is left as written.
type Reindenter struct{}

var _ repair.Reformatter = (*Reindenter)(nil)

func NewReindenter() *Reindenter {
	return &Reindenter{}
}

// Reindent returns src with every line re-indented.
func Reindent(src []byte, style repair.Style) ([]byte, error) {
	buf := text.NewBuffer(string(src))
	if err := NewReindenter().Reformat(buf, 0, buf.Len(), style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type edit struct {
	start, end int
	text       string
}

// Reformat re-indents every line intersecting [start, end]. Whitespace-only
// lines and lines that begin inside a comment or text block keep their
// text. Edits that hit a read-only region are skipped.
func (r *Reindenter) Reformat(buf *text.Buffer, start, end int, style repair.Style) error {
	src := buf.Bytes()
	edits := r.plan(src, start, end, style)
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		err := buf.Replace(e.start, e.end, e.text)
		if errors.Is(err, text.ErrReadOnly) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reformat: %w", err)
		}
	}
	return nil
}

// Indent returns the indentation for a line that would start at offset,
// taking whatever follows offset on its line as that line's content.
func (r *Reindenter) Indent(buf *text.Buffer, offset int, style repair.Style) string {
	src := buf.Bytes()
	toks := parser.Tokenize(src)
	in := &indenter{}
	lineFirst := true
	for _, tok := range toks {
		if tok.Span.Start.Offset >= offset {
			break
		}
		lineFirst = in.feedLine(tok, lineFirst)
	}

	next := text.ShiftForward(src, offset, " \t")
	first := parser.Token{Kind: parser.TokenEOF}
	for _, tok := range toks {
		if tok.Span.Start.Offset == next && tok.Kind != parser.TokenWhitespace {
			first = tok
			break
		}
	}
	level, _ := in.levelFor(first)
	return indentation(style, level)
}

func (r *Reindenter) plan(src []byte, start, end int, style repair.Style) []edit {
	toks := parser.Tokenize(src)
	in := &indenter{}
	var edits []edit
	lineFirst := true
	for i, tok := range toks {
		at := tok.Span.Start.Offset
		if lineFirst && tok.Kind != parser.TokenWhitespace {
			ls := bytes.LastIndexByte(src[:at], '\n') + 1
			le := bytes.IndexByte(src[at:], '\n')
			if le < 0 {
				le = len(src)
			} else {
				le += at
			}
			level, _ := in.levelFor(tok)
			if ls <= end && le >= start {
				if want := indentation(style, level); string(src[ls:at]) != want {
					edits = append(edits, edit{start: ls, end: at, text: want})
				}
			}
		}
		if tok.Kind == parser.TokenRBrace && !style.KeepSimpleBlocksInOneLine {
			if e, ok := in.expansion(toks, i, style); ok && e.start >= start && e.start <= end {
				edits = append(edits, e)
			}
		}
		lineFirst = in.feedLine(tok, lineFirst)
	}
	return edits
}

func indentation(style repair.Style, level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(style.Unit(), level)
}

type frame struct {
	open     parser.TokenKind
	level    int
	openEnd  int
	isSwitch bool
	label    bool
	inCase   bool
	// expandable is set for braces that open a body, as opposed to an
	// array initialiser.
	expandable bool
}

// indenter tracks bracket frames while walking tokens in order.
type indenter struct {
	frames  []frame
	prev    parser.Token
	hasPrev bool
	// lineLevel is the level of the current line, stmtLevel the level of
	// the line the current statement started on.
	lineLevel      int
	stmtLevel      int
	annotationLine bool
	closedSwitch   bool
}

// feedLine processes tok and returns whether the next token starts a line.
func (in *indenter) feedLine(tok parser.Token, lineFirst bool) bool {
	if tok.Kind == parser.TokenWhitespace {
		return lineFirst || strings.Contains(tok.Literal, "\n")
	}
	if lineFirst {
		in.startLine(tok)
	}
	in.feed(tok)
	return false
}

func (in *indenter) startLine(tok parser.Token) {
	level, cont := in.levelFor(tok)
	in.lineLevel = level
	if !cont {
		in.stmtLevel = level
	}
	in.annotationLine = tok.Kind == parser.TokenAt
}

// levelFor computes the level of a line whose first token is tok. A
// TokenEOF token stands for an empty line. The second result reports
// whether the line continues an earlier one.
func (in *indenter) levelFor(tok parser.Token) (int, bool) {
	if len(in.frames) == 0 {
		if in.continues(tok) {
			return 1, true
		}
		return 0, false
	}
	top := in.frames[len(in.frames)-1]
	switch tok.Kind {
	case parser.TokenRBrace:
		for i := len(in.frames) - 1; i >= 0; i-- {
			if in.frames[i].open == parser.TokenLBrace {
				return in.frames[i].level, false
			}
		}
		return 0, false
	case parser.TokenRParen, parser.TokenRBracket:
		if closes(top.open, tok.Kind) {
			return top.level, false
		}
	}
	level := top.level + 1
	if top.open != parser.TokenLBrace {
		return level, true
	}
	if top.isSwitch && top.inCase && tok.Kind != parser.TokenCase && tok.Kind != parser.TokenDefault {
		level++
	}
	if in.continues(tok) {
		return level + 1, true
	}
	return level, false
}

// continues reports whether a line starting with tok is the continuation
// of an unfinished statement.
func (in *indenter) continues(tok parser.Token) bool {
	if !in.hasPrev || tok.Kind == parser.TokenLBrace {
		return false
	}
	switch in.prev.Kind {
	case parser.TokenSemicolon, parser.TokenLBrace, parser.TokenRBrace,
		parser.TokenColon, parser.TokenComma:
		return false
	case parser.TokenIdent, parser.TokenRParen:
		if in.annotationLine {
			return false
		}
	}
	return true
}

func (in *indenter) feed(tok parser.Token) {
	if tok.IsTrivia() {
		return
	}
	defer func() {
		in.prev = tok
		in.hasPrev = true
	}()

	switch tok.Kind {
	case parser.TokenLParen, parser.TokenLBracket:
		in.push(frame{
			open:     tok.Kind,
			level:    in.lineLevel,
			isSwitch: tok.Kind == parser.TokenLParen && in.prevIs(parser.TokenSwitch),
		})
	case parser.TokenLBrace:
		level := in.stmtLevel
		if n := len(in.frames); n > 0 && in.frames[n-1].open != parser.TokenLBrace {
			level = in.lineLevel
		}
		in.push(frame{
			open:       tok.Kind,
			level:      level,
			openEnd:    tok.Span.End.Offset,
			isSwitch:   in.prevIs(parser.TokenRParen) && in.closedSwitch,
			expandable: opensBody(in.prev.Kind),
		})
	case parser.TokenRParen, parser.TokenRBracket:
		if n := len(in.frames); n > 0 && closes(in.frames[n-1].open, tok.Kind) {
			in.closedSwitch = in.frames[n-1].isSwitch
			in.frames = in.frames[:n-1]
		}
	case parser.TokenRBrace:
		// unclosed parentheses inside the block are dropped with it
		for n := len(in.frames); n > 0; n-- {
			open := in.frames[n-1].open
			in.frames = in.frames[:n-1]
			if open == parser.TokenLBrace {
				break
			}
		}
	case parser.TokenCase, parser.TokenDefault:
		if top := in.top(); top != nil && top.isSwitch {
			top.label = true
			top.inCase = false
		}
	case parser.TokenColon:
		if top := in.top(); top != nil && top.label {
			top.label = false
			top.inCase = true
		}
	case parser.TokenArrow:
		if top := in.top(); top != nil && top.label {
			top.label = false
		}
	}
}

// expansion returns the edit that moves the brace at toks[i] onto its own
// line when it closes an empty body opened on the same line.
func (in *indenter) expansion(toks []parser.Token, i int, style repair.Style) (edit, bool) {
	top := in.top()
	if top == nil || top.open != parser.TokenLBrace || !top.expandable {
		return edit{}, false
	}
	j := i - 1
	if j >= 0 && toks[j].Kind == parser.TokenWhitespace && !strings.Contains(toks[j].Literal, "\n") {
		j--
	}
	if j < 0 || toks[j].Kind != parser.TokenLBrace || toks[j].Span.End.Offset != top.openEnd {
		return edit{}, false
	}
	return edit{
		start: top.openEnd,
		end:   toks[i].Span.Start.Offset,
		text:  "\n" + indentation(style, top.level),
	}, true
}

func (in *indenter) push(f frame) {
	in.frames = append(in.frames, f)
}

func (in *indenter) top() *frame {
	if len(in.frames) == 0 {
		return nil
	}
	return &in.frames[len(in.frames)-1]
}

func (in *indenter) prevIs(kind parser.TokenKind) bool {
	return in.hasPrev && in.prev.Kind == kind
}

func closes(open, close parser.TokenKind) bool {
	switch open {
	case parser.TokenLParen:
		return close == parser.TokenRParen
	case parser.TokenLBracket:
		return close == parser.TokenRBracket
	case parser.TokenLBrace:
		return close == parser.TokenRBrace
	}
	return false
}

// opensBody reports whether a brace after a token of the given kind starts
// a class, method, lambda or statement body.
func opensBody(prev parser.TokenKind) bool {
	switch prev {
	case parser.TokenRParen, parser.TokenIdent, parser.TokenArrow, parser.TokenGT,
		parser.TokenElse, parser.TokenTry, parser.TokenFinally, parser.TokenDo,
		parser.TokenStatic:
		return true
	}
	return false
}

package repair

import (
	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// State is the bookkeeping of one invocation.
type State struct {
	errorOffset *text.Anchor
	resume      *text.Anchor
	skip        bool
	attempt     int
}

// Session is what rules and actions see of a running invocation: the
// buffer, the last committed tree, the caret and the engine state.
type Session struct {
	engine          *Engine
	buf             *text.Buffer
	tree            *syntax.Tree
	caret           *text.Anchor
	state           State
	startVersion    int
	afterCompletion bool
	outcome         Outcome

	// previous target, used when the caret no longer resolves to it
	last     *text.Anchor
	lastKind syntax.Kind
}

func newSession(e *Engine, req Request) *Session {
	return &Session{
		engine:          e,
		buf:             req.Buffer,
		caret:           req.Buffer.Point(req.Caret, text.StickRight),
		startVersion:    req.Buffer.Version(),
		afterCompletion: req.AfterCompletion,
	}
}

func (s *Session) close() {
	s.caret.Dispose()
	s.state.errorOffset.Dispose()
	s.state.resume.Dispose()
	s.last.Dispose()
}

func (s *Session) Buffer() *text.Buffer { return s.buf }

// Tree is the tree of the last commit. It is stale once the buffer changes.
func (s *Session) Tree() *syntax.Tree { return s.tree }

func (s *Session) Grammar() *Grammar { return s.engine.cfg.Grammar }

func (s *Session) Style() Style { return s.engine.cfg.Style }

func (s *Session) Caret() int { return s.caret.Offset() }

func (s *Session) MoveCaret(offset int) { s.caret.Move(offset) }

func (s *Session) Attempt() int { return s.state.attempt }

func (s *Session) AfterCompletion() bool { return s.afterCompletion }

// IsModified reports whether the buffer changed during this invocation.
func (s *Session) IsModified() bool {
	return s.buf.Version() != s.startVersion
}

// RegisterError records a place the user still has to fill in. Only the
// first registration of an attempt is kept.
func (s *Session) RegisterError(offset int) {
	if s.state.errorOffset != nil {
		return
	}
	s.state.errorOffset = s.buf.Point(offset, text.StickLeft)
}

// ErrorOffset returns the registered error offset, if any.
func (s *Session) ErrorOffset() (int, bool) {
	if s.state.errorOffset == nil {
		return 0, false
	}
	return s.state.errorOffset.Offset(), true
}

// SkipCompletion suppresses the completion chain and the line break
// fallback for the rest of the invocation.
func (s *Session) SkipCompletion() { s.state.skip = true }

func (s *Session) CompletionSkipped() bool { return s.state.skip }

// SetResumePoint places the caret at offset when the engine next locates.
func (s *Session) SetResumePoint(offset int) {
	s.state.resume.Dispose()
	s.state.resume = s.buf.Point(offset, text.StickRight)
}

func (s *Session) Insert(offset int, str string) error {
	return s.buf.Insert(offset, str)
}

func (s *Session) Replace(start, end int, str string) error {
	return s.buf.Replace(start, end, str)
}

// Commit reparses the buffer and makes the result the session's tree.
func (s *Session) Commit() (*syntax.Tree, error) {
	t, err := s.engine.cfg.Committer.Commit(s.buf)
	if err != nil {
		return nil, err
	}
	s.tree = t
	return t, nil
}

// Stale reports whether the buffer changed since the last commit.
func (s *Session) Stale() bool {
	return s.tree == nil || s.tree.Version() != s.buf.Version()
}

// Reformat re-indents the text covered by a node of the current tree.
func (s *Session) Reformat(id syntax.NodeID) error {
	start, end := s.tree.Range(id)
	return s.ReformatRange(start, end, s.Style())
}

func (s *Session) ReformatRange(start, end int, style Style) error {
	r := s.engine.cfg.Reformatter
	if r == nil {
		return nil
	}
	return r.Reformat(s.buf, start, end, style)
}

// Indent is the indentation a line starting at offset should get.
func (s *Session) Indent(offset int) string {
	if r := s.engine.cfg.Reformatter; r != nil {
		return r.Indent(s.buf, offset, s.Style())
	}
	return s.buf.LineIndent(offset)
}

// LineBreak splits the line at the caret and indents the new line.
func (s *Session) LineBreak() error {
	at := s.Caret()
	end := text.ShiftForward(s.buf.Bytes(), at, " \t")
	indent := s.Indent(at)
	if err := s.buf.Replace(at, end, "\n"+indent); err != nil {
		return err
	}
	s.caret.Move(at + 1 + len(indent))
	return nil
}

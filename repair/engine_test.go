package repair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// A toy line language: every non-blank line is a statement made of words,
// and a statement is complete when it ends in ';'.
const (
	kFile syntax.Kind = iota
	kStmt
	kWord
	kSpace
	kMissing
	kBlock
	kFor
)

type lineCommitter struct {
	commits int
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func (c *lineCommitter) Commit(buf *text.Buffer) (*syntax.Tree, error) {
	c.commits++
	src := buf.String()
	b := syntax.NewBuilder(src, buf.Version())
	root := b.Add(syntax.NoNode, syntax.Node{Kind: kFile, End: len(src)})
	for i := 0; i < len(src); {
		j := i
		for j < len(src) && (isBlank(src[j]) || src[j] == '\n') {
			j++
		}
		if j > i {
			b.Add(root, syntax.Node{Kind: kSpace, Start: i, End: j})
			i = j
			continue
		}
		end := i
		for end < len(src) && src[end] != '\n' {
			end++
		}
		for end > i && isBlank(src[end-1]) {
			end--
		}
		stmt := b.Add(root, syntax.Node{Kind: kStmt, Start: i, End: end})
		for k := i; k < end; {
			m := k
			kind := kWord
			if isBlank(src[k]) {
				kind = kSpace
				for m < end && isBlank(src[m]) {
					m++
				}
			} else {
				for m < end && !isBlank(src[m]) {
					m++
				}
			}
			b.Add(stmt, syntax.Node{Kind: kind, Start: k, End: m})
			k = m
		}
		if src[end-1] != ';' {
			b.Add(stmt, syntax.Node{Kind: kMissing, Start: end, End: end, Err: "expected ;"})
		}
		i = end
	}
	return b.Tree(), nil
}

func lineGrammar() *Grammar {
	return &Grammar{
		Statement:  syntax.Kinds(kStmt),
		Whitespace: syntax.Kinds(kSpace),
		CodeBlock:  syntax.Kinds(kBlock),
		ForLoop:    syntax.Kinds(kFor),
	}
}

var semicolon = Rule{Name: "semicolon", Apply: func(s *Session, id syntax.NodeID) error {
	t := s.Tree()
	if t.Kind(id) != kStmt || !t.HasError(id) {
		return nil
	}
	_, end := t.Range(id)
	return s.Insert(end, ";")
}}

var toEnd = Action{Name: "to-end", Complete: func(s *Session, id syntax.NodeID) (Verdict, error) {
	_, end := s.Tree().Range(id)
	s.MoveCaret(end)
	if s.IsModified() {
		return Handled, nil
	}
	return Continue, nil
}}

func newLineEngine(cfg Config) *Engine {
	cfg.Grammar = lineGrammar()
	if cfg.Committer == nil {
		cfg.Committer = &lineCommitter{}
	}
	cfg.Logger = commonlog.MOCK_LOGGER
	return NewEngine(cfg)
}

func TestEngineCompletes(t *testing.T) {
	buf := text.NewBuffer("foo bar")
	e := newLineEngine(Config{Rules: []Rule{semicolon}, EnterActions: []Action{toEnd}})

	res, err := e.Run(Request{Buffer: buf, Caret: 7})
	require.NoError(t, err)

	assert.Equal(t, "foo bar;", buf.String())
	assert.Equal(t, Result{Caret: 8, Outcome: OutcomeCompleted, Attempts: 1}, res)
}

func TestEngineIdempotentOnCompleteInput(t *testing.T) {
	buf := text.NewBuffer("  foo;")
	e := newLineEngine(Config{Rules: []Rule{semicolon}, EnterActions: []Action{toEnd}})

	res, err := e.Run(Request{Buffer: buf, Caret: 6})
	require.NoError(t, err)

	assert.Equal(t, "  foo;\n  ", buf.String(), "only the line break is added")
	assert.Equal(t, 9, res.Caret)
	assert.Equal(t, 0, res.Attempts)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
}

func TestEngineRollsBack(t *testing.T) {
	grow := Rule{Name: "grow", Apply: func(s *Session, id syntax.NodeID) error {
		if s.Tree().Kind(id) != kStmt {
			return nil
		}
		_, end := s.Tree().Range(id)
		return s.Insert(end, "x")
	}}
	buf := text.NewBuffer("foo")
	e := newLineEngine(Config{Rules: []Rule{grow}, MaxAttempts: 3})

	res, err := e.Run(Request{Buffer: buf, Caret: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	var rb *RollbackError
	require.True(t, errors.As(err, &rb))
	assert.Equal(t, 4, rb.Attempts)

	assert.Equal(t, "foo", buf.String())
	assert.Equal(t, OutcomeRolledBack, res.Outcome)
	assert.Equal(t, 3, res.Caret)
}

func TestEnginePreemptedByLookup(t *testing.T) {
	buf := text.NewBuffer("foo")
	e := newLineEngine(Config{
		Rules:        []Rule{semicolon},
		EnterActions: []Action{toEnd},
		LookupActive: func() bool { return buf.Version() > 0 },
	})

	res, err := e.Run(Request{Buffer: buf, Caret: 3})
	require.NoError(t, err)

	assert.Equal(t, OutcomePreempted, res.Outcome)
	assert.Equal(t, "foo;", buf.String(), "no line break after pre-emption")
}

func TestEngineAbortsOnMutationFault(t *testing.T) {
	buf := text.NewBuffer("foo\nbar;")
	guard := buf.Protect(2, 6)
	defer guard.Dispose()

	var reported []error
	e := newLineEngine(Config{
		Rules:  []Rule{semicolon},
		Report: func(err error) { reported = append(reported, err) },
	})

	res, err := e.Run(Request{Buffer: buf, Caret: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, text.ErrReadOnly)
	assert.Equal(t, OutcomeAborted, res.Outcome)
	assert.Len(t, reported, 1)
	assert.Equal(t, "foo\nbar;", buf.String())
}

func TestEnginePendingError(t *testing.T) {
	await := Rule{Name: "await", Apply: func(s *Session, id syntax.NodeID) error {
		if s.Tree().Kind(id) == kStmt && s.Tree().HasError(id) {
			start, _ := s.Tree().Range(id)
			s.RegisterError(start)
			s.RegisterError(start + 1)
		}
		return nil
	}}
	buf := text.NewBuffer("foo")
	e := newLineEngine(Config{Rules: []Rule{await}, EnterActions: []Action{toEnd}})

	res, err := e.Run(Request{Buffer: buf, Caret: 3})
	require.NoError(t, err)

	assert.Equal(t, OutcomePendingError, res.Outcome)
	assert.Equal(t, 0, res.Caret, "first registered error wins")
	assert.Equal(t, "foo", buf.String())
}

func TestEngineNoTarget(t *testing.T) {
	t.Run("line break", func(t *testing.T) {
		buf := text.NewBuffer("foo;\n\n")
		e := newLineEngine(Config{Rules: []Rule{semicolon}})

		res, err := e.Run(Request{Buffer: buf, Caret: 5})
		require.NoError(t, err)

		assert.Equal(t, OutcomeNoTarget, res.Outcome)
		assert.Equal(t, "foo;\n\n\n", buf.String())
		assert.Equal(t, 6, res.Caret)
	})

	t.Run("handled", func(t *testing.T) {
		called := false
		handled := Action{Name: "handled", Complete: func(s *Session, id syntax.NodeID) (Verdict, error) {
			called = true
			assert.Equal(t, syntax.NoNode, id)
			return Handled, nil
		}}
		buf := text.NewBuffer("foo;\n\n")
		e := newLineEngine(Config{NoTargetActions: []Action{handled}})

		res, err := e.Run(Request{Buffer: buf, Caret: 5})
		require.NoError(t, err)

		assert.True(t, called)
		assert.Equal(t, OutcomeNoTarget, res.Outcome)
		assert.Equal(t, "foo;\n\n", buf.String())
	})
}

func TestEngineSkipCompletion(t *testing.T) {
	skip := Rule{Name: "skip", Apply: func(s *Session, id syntax.NodeID) error {
		s.SkipCompletion()
		return nil
	}}
	buf := text.NewBuffer("foo;")
	e := newLineEngine(Config{Rules: []Rule{skip}, EnterActions: []Action{toEnd}})

	res, err := e.Run(Request{Buffer: buf, Caret: 4})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "foo;", buf.String())
	assert.Equal(t, 4, res.Caret)
}

func TestEngineReportsRuleEvents(t *testing.T) {
	var events []RuleEvent
	buf := text.NewBuffer("foo")
	e := newLineEngine(Config{
		Rules:  []Rule{semicolon},
		OnRule: func(ev RuleEvent) { events = append(events, ev) },
	})

	_, err := e.Run(Request{Buffer: buf, Caret: 3})
	require.NoError(t, err)

	// attempt 0: missing, word, statement (edits); attempt 1: word, statement
	require.Len(t, events, 5)
	assert.True(t, events[2].Modified)
	assert.Equal(t, kStmt, events[2].Kind)
	assert.Equal(t, 0, events[2].Attempt)
	assert.Equal(t, 1, events[4].Attempt)
	assert.False(t, events[4].Modified)
}

func TestEngineUsesPostCompletionChain(t *testing.T) {
	var chain []string
	record := func(name string) Action {
		return Action{Name: name, Complete: func(s *Session, id syntax.NodeID) (Verdict, error) {
			chain = append(chain, name)
			return NotApplicable, nil
		}}
	}
	buf := text.NewBuffer("foo;")
	e := newLineEngine(Config{
		EnterActions:          []Action{record("enter")},
		PostCompletionActions: []Action{record("post")},
	})

	_, err := e.Run(Request{Buffer: buf, Caret: 4, AfterCompletion: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"post"}, chain)
}

func TestEngineNeedsGrammar(t *testing.T) {
	_, err := NewEngine(Config{Logger: commonlog.MOCK_LOGGER}).Run(Request{Buffer: text.NewBuffer("")})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "pending-error", OutcomePendingError.String())
	assert.Equal(t, "Outcome(42)", Outcome(42).String())
	assert.Equal(t, "continue", Continue.String())
}

package repair

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// DefaultMaxAttempts bounds the number of reparses per invocation.
const DefaultMaxAttempts = 20

// Committer turns the current buffer text into a syntax tree. Committing an
// unchanged buffer version must return an equivalent tree.
type Committer interface {
	Commit(buf *text.Buffer) (*syntax.Tree, error)
}

// Reformatter re-indents text. Indent returns the indentation a line
// starting at offset should get.
type Reformatter interface {
	Reformat(buf *text.Buffer, start, end int, style Style) error
	Indent(buf *text.Buffer, offset int, style Style) string
}

// Style holds the code style options rules and reformatting consult.
type Style struct {
	IndentSize                int
	UseTabs                   bool
	SpaceAfterSemicolon       bool
	KeepSimpleBlocksInOneLine bool
}

func DefaultStyle() Style {
	return Style{
		IndentSize:                4,
		SpaceAfterSemicolon:       true,
		KeepSimpleBlocksInOneLine: true,
	}
}

// Unit is one level of indentation.
func (s Style) Unit() string {
	if s.UseTabs {
		return "\t"
	}
	size := s.IndentSize
	if size <= 0 {
		size = 4
	}
	return strings.Repeat(" ", size)
}

// Rule rewrites one node. It must be a no-op for nodes it does not target.
type Rule struct {
	Name  string
	Apply func(s *Session, id syntax.NodeID) error
}

// Verdict is what a completion action did.
type Verdict int

const (
	// NotApplicable means the action did nothing.
	NotApplicable Verdict = iota
	// Handled ends the chain.
	Handled
	// Continue means the action had a side effect, such as moving the
	// caret, but later actions and the fallback still run.
	Continue
)

func (v Verdict) String() string {
	switch v {
	case Handled:
		return "handled"
	case Continue:
		return "continue"
	default:
		return "not applicable"
	}
}

// Action is one completion strategy. For the no-target chain id is
// syntax.NoNode.
type Action struct {
	Name     string
	Complete func(s *Session, id syntax.NodeID) (Verdict, error)
}

// RuleEvent describes one rule application.
type RuleEvent struct {
	Rule     string
	Node     syntax.NodeID
	Kind     syntax.Kind
	Attempt  int
	Modified bool
}

type Config struct {
	Grammar     *Grammar
	Committer   Committer
	Reformatter Reformatter

	Rules                 []Rule
	EnterActions          []Action
	PostCompletionActions []Action
	// NoTargetActions run when nothing at the caret can be repaired.
	NoTargetActions []Action

	MaxAttempts int
	Style       Style

	// LookupActive reports whether a completion popup is showing. When it
	// returns true the engine stops right after the current rule.
	LookupActive func() bool
	// OnRule is called after every rule application.
	OnRule func(RuleEvent)
	// Report receives mutation faults. The default logs them.
	Report func(error)
	Logger commonlog.Logger
}

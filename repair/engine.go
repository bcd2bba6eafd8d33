// Package repair implements smart enter: a fixed-point driver that turns
// the incomplete construct at the caret into well-formed text with an
// ordered set of rules, then runs a completion action.
package repair

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// Outcome tells how an invocation ended.
type Outcome int

const (
	// OutcomeCompleted means the construct is complete and a completion
	// action ran.
	OutcomeCompleted Outcome = iota
	// OutcomePendingError means the caret was moved to a place the user
	// still has to fill in.
	OutcomePendingError
	OutcomeNoTarget
	OutcomePreempted
	OutcomeRolledBack
	OutcomeAborted
)

var outcomeNames = map[Outcome]string{
	OutcomeCompleted:    "completed",
	OutcomePendingError: "pending-error",
	OutcomeNoTarget:     "no-target",
	OutcomePreempted:    "preempted",
	OutcomeRolledBack:   "rolled-back",
	OutcomeAborted:      "aborted",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Request struct {
	Buffer          *text.Buffer
	Caret           int
	AfterCompletion bool
}

type Result struct {
	Caret    int
	Outcome  Outcome
	Attempts int
}

type phase int

const (
	phaseLocate phase = iota
	phaseRepair
	phaseReparse
	phaseComplete
	phaseDone
)

// Engine runs smart enter. It holds no per-invocation state and may be
// shared, but invocations on one buffer must not overlap.
type Engine struct {
	cfg Config
	log commonlog.Logger
}

func NewEngine(cfg Config) *Engine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Style.IndentSize <= 0 && !cfg.Style.UseTabs {
		cfg.Style.IndentSize = DefaultStyle().IndentSize
	}
	log := cfg.Logger
	if log == nil {
		log = commonlog.GetLogger("smartenter.repair")
	}
	return &Engine{cfg: cfg, log: log}
}

func (e *Engine) Config() Config { return e.cfg }

// Run performs one smart enter invocation on req.Buffer.
func (e *Engine) Run(req Request) (Result, error) {
	if e.cfg.Grammar == nil || e.cfg.Committer == nil {
		return Result{Caret: req.Caret, Outcome: OutcomeAborted}, ErrNotConfigured
	}
	snapshot := req.Buffer.String()
	s := newSession(e, req)
	defer s.close()

	target := syntax.NoNode
	next := phaseLocate
	var err error
	for next != phaseDone && err == nil {
		switch next {
		case phaseLocate:
			target, next, err = e.locate(s)
		case phaseRepair:
			next, err = e.repair(s, target)
		case phaseReparse:
			s.state.attempt++
			if s.state.attempt > e.cfg.MaxAttempts {
				req.Buffer.Reset(snapshot)
				e.log.Warningf("rolled back after %d attempts", s.state.attempt)
				return Result{Caret: req.Caret, Outcome: OutcomeRolledBack, Attempts: s.state.attempt},
					&RollbackError{Attempts: s.state.attempt, Err: ErrTooManyAttempts}
			}
			next = phaseLocate
		case phaseComplete:
			next, err = e.complete(s, target)
		}
	}

	res := Result{Caret: s.Caret(), Outcome: s.outcome, Attempts: s.state.attempt}
	if err != nil {
		e.report(err)
		res.Outcome = OutcomeAborted
		return res, fmt.Errorf("smart enter: %w", err)
	}
	e.log.Debugf("%s after %d attempts, caret at %d", res.Outcome, res.Attempts, res.Caret)
	return res, nil
}

func (e *Engine) report(err error) {
	var me *text.MutationError
	if errors.As(err, &me) {
		e.log.Errorf("rejected %s: %s", me.Edit, me.Err)
	}
	if e.cfg.Report != nil {
		e.cfg.Report(err)
		return
	}
	e.log.Errorf("%s", err)
}

func (e *Engine) locate(s *Session) (syntax.NodeID, phase, error) {
	if _, err := s.Commit(); err != nil {
		return syntax.NoNode, phaseDone, err
	}
	if s.state.attempt > 0 {
		moved, err := e.normalizeCaret(s)
		if err != nil {
			return syntax.NoNode, phaseDone, err
		}
		if moved && s.Stale() {
			if _, err := s.Commit(); err != nil {
				return syntax.NoNode, phaseDone, err
			}
		}
	}
	if a := s.state.errorOffset; a != nil {
		s.caret.Move(a.Offset())
		a.Dispose()
		s.state.errorOffset = nil
	}
	if a := s.state.resume; a != nil {
		s.caret.Move(a.Offset())
		a.Dispose()
		s.state.resume = nil
	}

	g := e.cfg.Grammar
	target := Locate(s.tree, g, s.Caret())
	if target == syntax.NoNode && s.last != nil {
		target = s.tree.Find(s.last.Start(), s.last.End(), s.lastKind)
	}
	if target == syntax.NoNode {
		return syntax.NoNode, phaseDone, e.noTarget(s)
	}

	start, end := s.tree.Range(target)
	s.last.Dispose()
	s.last = s.buf.Anchor(start, end)
	s.lastKind = s.tree.Kind(target)
	e.log.Debugf("attempt %d: target %s [%d,%d)", s.state.attempt, g.Name(s.lastKind), start, end)
	return target, phaseRepair, nil
}

func (e *Engine) noTarget(s *Session) error {
	s.outcome = OutcomeNoTarget
	for _, a := range e.cfg.NoTargetActions {
		v, err := a.Complete(s, syntax.NoNode)
		if err != nil {
			return fmt.Errorf("action %s: %w", a.Name, err)
		}
		if v == Handled {
			return nil
		}
	}
	if s.state.skip {
		return nil
	}
	return s.LineBreak()
}

func (e *Engine) repair(s *Session, target syntax.NodeID) (phase, error) {
	version := s.tree.Version()
	for _, id := range collect(s.tree, e.cfg.Grammar, target) {
		for _, r := range e.cfg.Rules {
			if err := r.Apply(s, id); err != nil {
				return phaseDone, fmt.Errorf("rule %s: %w", r.Name, err)
			}
			modified := s.buf.Version() != version
			if e.cfg.OnRule != nil {
				e.cfg.OnRule(RuleEvent{
					Rule:     r.Name,
					Node:     id,
					Kind:     s.tree.Kind(id),
					Attempt:  s.state.attempt,
					Modified: modified,
				})
			}
			if e.cfg.LookupActive != nil && e.cfg.LookupActive() {
				s.outcome = OutcomePreempted
				return phaseDone, nil
			}
			if modified {
				e.log.Debugf("%s changed %s", r.Name, e.cfg.Grammar.Name(s.tree.Kind(id)))
				return phaseReparse, nil
			}
		}
	}
	return phaseComplete, nil
}

func (e *Engine) complete(s *Session, target syntax.NodeID) (phase, error) {
	if a := s.state.errorOffset; a != nil {
		s.outcome = OutcomePendingError
		if err := s.Reformat(target); err != nil {
			return phaseDone, err
		}
		s.caret.Move(a.Offset())
		return phaseDone, nil
	}

	kind := s.tree.Kind(target)
	start, end := s.tree.Range(target)
	anchor := s.buf.Anchor(start, end)
	defer anchor.Dispose()

	if err := s.Reformat(target); err != nil {
		return phaseDone, err
	}
	if _, err := s.Commit(); err != nil {
		return phaseDone, err
	}
	s.outcome = OutcomeCompleted
	if s.state.skip {
		return phaseDone, nil
	}

	chain := e.cfg.EnterActions
	if s.afterCompletion {
		chain = e.cfg.PostCompletionActions
	}
	if node := s.tree.Find(anchor.Start(), anchor.End(), kind); node != syntax.NoNode {
		for _, a := range chain {
			v, err := a.Complete(s, node)
			if err != nil {
				return phaseDone, fmt.Errorf("action %s: %w", a.Name, err)
			}
			if v == Handled {
				e.log.Debugf("completed by %s", a.Name)
				return phaseDone, nil
			}
			if v == Continue && s.Stale() {
				if _, err := s.Commit(); err != nil {
					return phaseDone, err
				}
				if node = s.tree.Find(anchor.Start(), anchor.End(), kind); node == syntax.NoNode {
					break
				}
			}
		}
	}
	return phaseDone, s.LineBreak()
}

// normalizeCaret moves a caret that sits right after freshly inserted empty
// braces in between them, expanding the braces onto two lines.
func (e *Engine) normalizeCaret(s *Session) (bool, error) {
	src := s.buf.Bytes()
	caret := s.Caret()
	switch {
	case hasAt(src, caret, "{}"):
		caret += 2
	case hasAt(src, caret, "{\n}"):
		caret += 3
	}
	caret = text.ShiftBackward(src, caret-1, " \t") + 1

	var open int
	switch {
	case hasAt(src, caret-2, "{}"):
		open = caret - 2
	case hasAt(src, caret-3, "{\n}"):
		open = caret - 3
	default:
		return false, nil
	}

	g := e.cfg.Grammar
	leaf := s.tree.LeafAt(caret - 1)
	block := s.tree.Ancestor(leaf, g.CodeBlock)
	if block == syntax.NoNode {
		block = s.tree.Ancestor(leaf, g.ClassLike)
	}
	if block == syntax.NoNode {
		return false, nil
	}

	inside := s.buf.Point(open+1, text.StickLeft)
	defer inside.Dispose()
	style := s.Style()
	style.KeepSimpleBlocksInOneLine = false
	start, end := s.tree.Range(block)
	if err := s.ReformatRange(start, end, style); err != nil {
		return false, err
	}
	s.caret.Move(inside.Offset())
	return true, nil
}

func hasAt(src []byte, i int, s string) bool {
	return i >= 0 && i+len(s) <= len(src) && string(src[i:i+len(s)]) == s
}

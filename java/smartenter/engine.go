package smartenter

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/smartenter/format"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

// Options configure a Java smart enter engine. The zero value is usable.
type Options struct {
	Style       repair.Style
	MaxAttempts int
	// Resolver decides where unterminated calls end. Nil uses the
	// declarations of the buffer itself.
	Resolver     Resolver
	Logger       commonlog.Logger
	OnRule       func(repair.RuleEvent)
	LookupActive func() bool
	Report       func(error)
}

func NewConfig(opts Options) repair.Config {
	style := opts.Style
	if style == (repair.Style{}) {
		style = repair.DefaultStyle()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = DeclResolver{}
	}
	log := opts.Logger
	if log == nil {
		log = commonlog.GetLogger("smartenter.java")
	}
	return repair.Config{
		Grammar:               Grammar(),
		Committer:             NewCommitter(),
		Reformatter:           format.NewReindenter(),
		Rules:                 Rules(resolver),
		EnterActions:          EnterActions(),
		PostCompletionActions: PostCompletionActions(),
		NoTargetActions:       NoTargetActions(),
		MaxAttempts:           opts.MaxAttempts,
		Style:                 style,
		LookupActive:          opts.LookupActive,
		OnRule:                opts.OnRule,
		Report:                opts.Report,
		Logger:                log,
	}
}

func NewEngine(opts Options) *repair.Engine {
	return repair.NewEngine(NewConfig(opts))
}

// Enter runs smart enter on a copy of src and returns the new text.
func Enter(e *repair.Engine, src string, caret int, afterCompletion bool) (string, repair.Result, error) {
	buf := text.NewBuffer(src)
	res, err := e.Run(repair.Request{Buffer: buf, Caret: caret, AfterCompletion: afterCompletion})
	return buf.String(), res, err
}

package replay

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dshills/nescassist/internal/assist"
	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/logging"
	"github.com/dshills/nescassist/internal/session"
)

// Mismatch is an expect step that did not hold.
type Mismatch struct {
	Step int
	Want string
	Got  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d: want %q, got %q", m.Step, m.Want, m.Got)
}

// Result is the outcome of a run.
type Result struct {
	Name       string
	Output     string
	Steps      int
	Mismatches []Mismatch
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Mismatches) == 0
}

// Option is a functional option for configuring a Runner.
type Option func(*Runner)

// WithConfig sets the base configuration scripts start from.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runner) {
		if cfg != nil {
			r.cfg = cfg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner executes scripts one at a time. Each script runs in a fresh
// session with the runner's assistant configured for it.
type Runner struct {
	cfg    *config.Config
	logger *log.Logger
	asst   *assist.Assistant
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{cfg: config.Default(), logger: logging.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.WithComponent(r.logger, "replay")
	r.asst = assist.New(assist.WithConfig(r.cfg), assist.WithLogger(r.logger))
	return r
}

// Config returns the base configuration scripts start from.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// SetConfig replaces the base configuration for later runs.
func (r *Runner) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.cfg = cfg
	r.logger.Debug("base config replaced", logging.FieldIndent, assist.IndentOptions(cfg).Unit())
}

// Run plays s in a fresh session. Mismatched expectations are collected in
// the result; any other failure stops the run.
func (r *Runner) Run(ctx context.Context, s *Script) (*Result, error) {
	cfg, err := s.ApplyConfig(r.cfg)
	if err != nil {
		return nil, err
	}
	r.asst.Configure(cfg)
	r.asst.ResetPairs()
	opts := []session.Option{session.WithAssistant(r.asst), session.WithLogger(r.logger)}
	if s.Caret != nil {
		opts = append(opts, session.WithCaret(*s.Caret))
	}
	sess := session.New(s.Text, opts...)

	res := &Result{Name: s.Name}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := i + 1
		if step.Expect != nil {
			if got := sess.Render(); got != *step.Expect {
				m := Mismatch{Step: n, Want: *step.Expect, Got: got}
				res.Mismatches = append(res.Mismatches, m)
				r.logger.Warn("expectation failed", logging.FieldScript, s.Name, logging.FieldStep, n)
			}
		} else if err := apply(sess, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", n, step.Action(), err)
		}
		res.Steps++
	}
	res.Output = sess.Render()
	r.logger.Debug("script finished",
		logging.FieldScript, s.Name,
		logging.FieldStep, res.Steps,
		"mismatches", len(res.Mismatches))
	return res, nil
}

func apply(sess *session.Session, step Step) error {
	switch {
	case step.Type != nil:
		return sess.TypeString(*step.Type)
	case step.Paste != nil:
		return sess.Paste(*step.Paste)
	case step.Move != nil:
		return sess.Move(*step.Move)
	case step.Backspace != nil:
		return repeat(*step.Backspace, sess.Backspace)
	case step.Replace != nil:
		return sess.Replace(step.Replace.Offset, step.Replace.Length, step.Replace.Text)
	case step.Undo != nil:
		return repeat(*step.Undo, sess.Undo)
	case step.Redo != nil:
		return repeat(*step.Redo, sess.Redo)
	case step.Reindent != nil:
		if *step.Reindent {
			return sess.Reindent()
		}
		return nil
	}
	return ErrInvalidStep
}

func repeat(n int, fn func() error) error {
	for i := 0; i < max(n, 1); i++ {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

package command

import (
	"fmt"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// Wrapped delegates the lifecycle to an inner command while overriding its
// scheduling properties.
type Wrapped struct {
	Base
	inner domain.Command
}

func wrap(inner domain.Command) (*Wrapped, error) {
	children := []domain.Command{inner}
	if err := checkClaimable(children); err != nil {
		return nil, err
	}
	claimAll(children)
	w := &Wrapped{Base: NewBase(inner.Name(), inner.Requirements()...), inner: inner}
	w.runsWhenDisabled = inner.RunsWhenDisabled()
	w.interruption = inner.InterruptionBehavior()
	return w, nil
}

// Inner returns the wrapped command.
func (w *Wrapped) Inner() domain.Command { return w.inner }

func (w *Wrapped) Initialize()          { w.inner.Initialize() }
func (w *Wrapped) Execute()             { w.inner.Execute() }
func (w *Wrapped) IsFinished() bool     { return w.inner.IsFinished() }
func (w *Wrapped) End(interrupted bool) { w.inner.End(interrupted) }

// IgnoringDisable keeps cmd running while the robot is disabled.
func IgnoringDisable(cmd domain.Command) (*Wrapped, error) {
	w, err := wrap(cmd)
	if err != nil {
		return nil, fmt.Errorf("ignoring disable: %w", err)
	}
	w.runsWhenDisabled = true
	return w, nil
}

// Named renames cmd.
func Named(cmd domain.Command, name string) (*Wrapped, error) {
	w, err := wrap(cmd)
	if err != nil {
		return nil, fmt.Errorf("named %q: %w", name, err)
	}
	w.name = name
	return w, nil
}

// WithInterruption overrides how cmd reacts to conflicting incoming commands.
func WithInterruption(cmd domain.Command, ib domain.InterruptionBehavior) (*Wrapped, error) {
	w, err := wrap(cmd)
	if err != nil {
		return nil, fmt.Errorf("with interruption: %w", err)
	}
	w.interruption = ib
	return w, nil
}

// WithTimeout interrupts cmd once d has elapsed on clock.
func WithTimeout(cmd domain.Command, clock ports.Clock, d time.Duration) (*ParallelGroup, error) {
	wait, err := Wait(clock, d)
	if err != nil {
		return nil, err
	}
	return Race(cmd, wait)
}

// Until interrupts cmd on the first tick cond samples true.
func Until(cmd domain.Command, cond domain.Condition) (*ParallelGroup, error) {
	return Race(cmd, WaitUntil(cond))
}

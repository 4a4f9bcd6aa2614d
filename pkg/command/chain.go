package command

import (
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// Chain provides a fluent API for composing commands.
// The first error aborts the chain and is reported by Build.
type Chain struct {
	steps         []domain.Command
	name          string
	ignoreDisable bool
	timeout       time.Duration
	timeoutClock  ports.Clock
	err           error
}

// Start begins a chain with the given commands run in sequence.
func Start(cmds ...domain.Command) *Chain {
	return (&Chain{}).AndThen(cmds...)
}

// AndThen appends commands run one after another.
func (c *Chain) AndThen(cmds ...domain.Command) *Chain {
	c.steps = append(c.steps, cmds...)
	return c
}

// ThenParallel appends one step that runs cmds together and waits for all.
func (c *Chain) ThenParallel(cmds ...domain.Command) *Chain {
	return c.then(Parallel(cmds...))
}

// ThenRace appends one step that runs cmds together until the first finishes.
func (c *Chain) ThenRace(cmds ...domain.Command) *Chain {
	return c.then(Race(cmds...))
}

// AlongWith runs cmds in parallel with the last step.
func (c *Chain) AlongWith(cmds ...domain.Command) *Chain {
	if len(c.steps) == 0 {
		return c.ThenParallel(cmds...)
	}
	last := c.steps[len(c.steps)-1]
	c.steps = c.steps[:len(c.steps)-1]
	return c.then(Parallel(append([]domain.Command{last}, cmds...)...))
}

// WithTimeout interrupts the whole chain after d.
func (c *Chain) WithTimeout(clock ports.Clock, d time.Duration) *Chain {
	c.timeoutClock = clock
	c.timeout = d
	return c
}

// IgnoringDisable keeps the whole chain running while disabled.
func (c *Chain) IgnoringDisable() *Chain {
	c.ignoreDisable = true
	return c
}

// Named sets the name of the built command.
func (c *Chain) Named(name string) *Chain {
	c.name = name
	return c
}

// Build composes the chain into a single command.
func (c *Chain) Build() (domain.Command, error) {
	if c.err != nil {
		return nil, c.err
	}

	var cmd domain.Command
	var err error
	if len(c.steps) == 1 {
		cmd = c.steps[0]
	} else {
		cmd, err = Sequence(c.steps...)
		if err != nil {
			return nil, err
		}
	}

	if c.timeoutClock != nil {
		if cmd, err = WithTimeout(cmd, c.timeoutClock, c.timeout); err != nil {
			return nil, err
		}
	}
	if c.ignoreDisable {
		if cmd, err = IgnoringDisable(cmd); err != nil {
			return nil, err
		}
	}
	if c.name != "" {
		if cmd, err = Named(cmd, c.name); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (c *Chain) then(group *ParallelGroup, err error) *Chain {
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	c.steps = append(c.steps, group)
	return c
}

package command

import (
	"fmt"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// WaitCommand finishes once a fixed duration has elapsed on its clock.
// It requires nothing and keeps running while disabled.
type WaitCommand struct {
	Base
	clock    ports.Clock
	duration time.Duration
	started  time.Duration
}

// Wait creates a WaitCommand. Negative durations are rejected.
func Wait(clock ports.Clock, d time.Duration) (*WaitCommand, error) {
	if clock == nil {
		return nil, fmt.Errorf("wait: nil clock: %w", domain.ErrInvalidConstant)
	}
	if d < 0 {
		return nil, fmt.Errorf("wait %v: %w", d, domain.ErrInvalidConstant)
	}
	c := &WaitCommand{
		Base:     NewBase(fmt.Sprintf("wait(%s)", d)),
		clock:    clock,
		duration: d,
	}
	c.SetRunsWhenDisabled(true)
	return c, nil
}

// Duration returns the configured wait time.
func (c *WaitCommand) Duration() time.Duration { return c.duration }

func (c *WaitCommand) Initialize() {
	c.started = c.clock.Now()
}

func (c *WaitCommand) IsFinished() bool {
	return c.clock.Now()-c.started >= c.duration
}

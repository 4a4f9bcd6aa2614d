package command

import (
	"slices"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Base carries the bookkeeping every command needs. Embed it and override
// the lifecycle methods the command cares about.
type Base struct {
	name             string
	requirements     []domain.Subsystem
	runsWhenDisabled bool
	interruption     domain.InterruptionBehavior
	composed         bool
}

// NewBase creates a Base with a name and its requirements.
func NewBase(name string, requirements ...domain.Subsystem) Base {
	b := Base{name: name}
	b.AddRequirements(requirements...)
	return b
}

func (b *Base) Initialize()      {}
func (b *Base) Execute()         {}
func (b *Base) IsFinished() bool { return false }
func (b *Base) End(bool)         {}

// Name returns the command name used in logs and telemetry.
func (b *Base) Name() string { return b.name }

// SetName overrides the command name.
func (b *Base) SetName(name string) { b.name = name }

// Requirements returns a copy of the required subsystems.
func (b *Base) Requirements() []domain.Subsystem { return slices.Clone(b.requirements) }

// AddRequirements adds subsystems to the requirement set, ignoring duplicates.
func (b *Base) AddRequirements(subs ...domain.Subsystem) {
	for _, s := range subs {
		if s != nil && !slices.Contains(b.requirements, s) {
			b.requirements = append(b.requirements, s)
		}
	}
}

func (b *Base) RunsWhenDisabled() bool { return b.runsWhenDisabled }

// SetRunsWhenDisabled controls whether the scheduler keeps the command in Disabled mode.
func (b *Base) SetRunsWhenDisabled(v bool) { b.runsWhenDisabled = v }

func (b *Base) InterruptionBehavior() domain.InterruptionBehavior { return b.interruption }

// SetInterruptionBehavior controls what happens to conflicting incoming commands.
func (b *Base) SetInterruptionBehavior(ib domain.InterruptionBehavior) { b.interruption = ib }

func (b *Base) claim() { b.composed = true }

func (b *Base) isComposed() bool { return b.composed }

// claimer is implemented by every command embedding Base.
type claimer interface {
	claim()
	isComposed() bool
}

// IsComposed reports whether cmd already belongs to a composition. Composed
// commands are driven by their group and must not be scheduled on their own.
func IsComposed(cmd domain.Command) bool {
	c, ok := cmd.(claimer)
	return ok && c.isComposed()
}

// checkClaimable fails if a child is nil, is listed twice or already
// belongs to another composition.
func checkClaimable(children []domain.Command) error {
	for i, c := range children {
		if c == nil {
			return domain.ErrNilCommand
		}
		if slices.Contains(children[:i], c) {
			return domain.ErrCommandReused
		}
		if IsComposed(c) {
			return domain.ErrCommandReused
		}
	}
	return nil
}

// claimAll marks every child as composed.
func claimAll(children []domain.Command) {
	for _, c := range children {
		if cl, ok := c.(claimer); ok {
			cl.claim()
		}
	}
}

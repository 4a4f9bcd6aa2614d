package command

import (
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubsystem struct{ name string }

func (s *fakeSubsystem) Name() string { return s.name }
func (s *fakeSubsystem) Periodic()    {}

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

// probe finishes after a fixed number of Execute calls and records its lifecycle.
type probe struct {
	Base
	log      *[]string
	ticks    int
	executed int
}

func newProbe(log *[]string, name string, ticks int, reqs ...domain.Subsystem) *probe {
	return &probe{Base: NewBase(name, reqs...), log: log, ticks: ticks}
}

func (p *probe) Initialize() {
	p.executed = 0
	*p.log = append(*p.log, p.Name()+":init")
}

func (p *probe) Execute() {
	p.executed++
	*p.log = append(*p.log, p.Name()+":exec")
}

func (p *probe) IsFinished() bool { return p.ticks >= 0 && p.executed >= p.ticks }

func (p *probe) End(interrupted bool) {
	*p.log = append(*p.log, fmt.Sprintf("%s:end(%t)", p.Name(), interrupted))
}

// drive mimics the scheduler for a single command.
func drive(cmd domain.Command, maxTicks int) int {
	cmd.Initialize()
	for tick := 1; tick <= maxTicks; tick++ {
		cmd.Execute()
		if cmd.IsFinished() {
			cmd.End(false)
			return tick
		}
	}
	return -1
}

func TestSequence_RunsInOrder(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)
	b := newProbe(&log, "b", 2)

	seq, err := Sequence(a, b)
	require.NoError(t, err)
	assert.Equal(t, "sequence(a -> b)", seq.Name())

	ticks := drive(seq, 10)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, []string{
		"a:init", "a:exec", "a:end(false)", "b:init",
		"b:exec", "b:exec", "b:end(false)",
	}, log)
}

func TestSequence_InterruptEndsCurrentChild(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)
	b := newProbe(&log, "b", -1)
	c := newProbe(&log, "c", 1)

	seq, err := Sequence(a, b, c)
	require.NoError(t, err)

	seq.Initialize()
	seq.Execute()
	seq.Execute()
	seq.End(true)

	assert.Equal(t, []string{
		"a:init", "a:exec", "a:end(false)", "b:init", "b:exec", "b:end(true)",
	}, log)
}

func TestSequence_Empty(t *testing.T) {
	seq, err := Sequence()
	require.NoError(t, err)
	seq.Initialize()
	assert.True(t, seq.IsFinished())
}

func TestParallel_WaitsForAll(t *testing.T) {
	var log []string
	arm := &fakeSubsystem{name: "arm"}
	drivetrain := &fakeSubsystem{name: "drive"}
	a := newProbe(&log, "a", 1, arm)
	b := newProbe(&log, "b", 3, drivetrain)

	par, err := Parallel(a, b)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Subsystem{arm, drivetrain}, par.Requirements())

	par.Initialize()
	assert.Equal(t, []string{"a:init", "b:init"}, log, "all children start in the same tick")

	assert.Equal(t, 3, drive2(par, 10))
	assert.Contains(t, log, "a:end(false)")
	assert.Contains(t, log, "b:end(false)")
}

// drive2 continues a command that was already initialized.
func drive2(cmd domain.Command, maxTicks int) int {
	for tick := 1; tick <= maxTicks; tick++ {
		cmd.Execute()
		if cmd.IsFinished() {
			cmd.End(false)
			return tick
		}
	}
	return -1
}

func TestRace_InterruptsLosers(t *testing.T) {
	var log []string
	fast := newProbe(&log, "fast", 1)
	slow := newProbe(&log, "slow", 5)

	race, err := Race(slow, fast)
	require.NoError(t, err)

	assert.Equal(t, 1, drive(race, 10))
	assert.Contains(t, log, "fast:end(false)")
	assert.Contains(t, log, "slow:end(true)")
}

func TestDeadline_FinishesWithDeadline(t *testing.T) {
	var log []string
	deadline := newProbe(&log, "deadline", 2)
	quick := newProbe(&log, "quick", 1)
	forever := newProbe(&log, "forever", -1)

	group, err := Deadline(deadline, quick, forever)
	require.NoError(t, err)

	assert.Equal(t, 2, drive(group, 10))
	assert.Contains(t, log, "quick:end(false)")
	assert.Contains(t, log, "deadline:end(false)")
	assert.Contains(t, log, "forever:end(true)")
}

func TestParallel_RejectsSharedRequirement(t *testing.T) {
	var log []string
	arm := &fakeSubsystem{name: "arm"}

	_, err := Parallel(newProbe(&log, "a", 1, arm), newProbe(&log, "b", 1, arm))
	assert.ErrorIs(t, err, domain.ErrOverlappingRequirements)
}

func TestSequence_AllowsSharedRequirement(t *testing.T) {
	var log []string
	arm := &fakeSubsystem{name: "arm"}

	seq, err := Sequence(newProbe(&log, "a", 1, arm), newProbe(&log, "b", 1, arm))
	require.NoError(t, err)
	assert.Equal(t, []domain.Subsystem{arm}, seq.Requirements())
}

func TestComposition_RejectsReuse(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)

	_, err := Sequence(a, a)
	assert.ErrorIs(t, err, domain.ErrCommandReused)

	_, err = Sequence(a)
	require.NoError(t, err)
	assert.True(t, IsComposed(a))

	_, err = Parallel(a)
	assert.ErrorIs(t, err, domain.ErrCommandReused)

	_, err = Sequence(nil)
	assert.ErrorIs(t, err, domain.ErrNilCommand)
}

func TestGroup_DerivesDisabledAndInterruption(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)
	b := newProbe(&log, "b", 1)
	a.SetRunsWhenDisabled(true)
	b.SetInterruptionBehavior(domain.CancelIncoming)

	seq, err := Sequence(a, b)
	require.NoError(t, err)
	assert.False(t, seq.RunsWhenDisabled())
	assert.Equal(t, domain.CancelIncoming, seq.InterruptionBehavior())
}

func TestWait(t *testing.T) {
	clock := &fakeClock{}
	w, err := Wait(clock, 750*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, w.RunsWhenDisabled())

	clock.now = time.Second
	w.Initialize()
	assert.False(t, w.IsFinished())
	clock.now += 700 * time.Millisecond
	assert.False(t, w.IsFinished())
	clock.now += 50 * time.Millisecond
	assert.True(t, w.IsFinished())

	_, err = Wait(clock, -time.Second)
	assert.ErrorIs(t, err, domain.ErrInvalidConstant)
}

func TestWithTimeout(t *testing.T) {
	var log []string
	clock := &fakeClock{}
	forever := newProbe(&log, "forever", -1)

	cmd, err := WithTimeout(forever, clock, 100*time.Millisecond)
	require.NoError(t, err)

	cmd.Initialize()
	cmd.Execute()
	assert.False(t, cmd.IsFinished())
	clock.now = 100 * time.Millisecond
	cmd.Execute()
	assert.True(t, cmd.IsFinished())
	assert.Contains(t, log, "forever:end(true)")
}

func TestDecorators(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)

	w, err := IgnoringDisable(a)
	require.NoError(t, err)
	assert.True(t, w.RunsWhenDisabled())
	assert.Equal(t, "a", w.Name())
	assert.True(t, IsComposed(a))

	n, err := Named(w, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", n.Name())
	assert.True(t, n.RunsWhenDisabled())

	assert.Equal(t, 1, drive(n, 3))
	assert.Equal(t, []string{"a:init", "a:exec", "a:end(false)"}, log)
}

func TestChain(t *testing.T) {
	var log []string
	arm := &fakeSubsystem{name: "arm"}
	drivetrain := &fakeSubsystem{name: "drive"}

	first := newProbe(&log, "first", 1)
	armCmd := newProbe(&log, "arm", 1, arm)
	driveCmd := newProbe(&log, "drive", 2, drivetrain)

	cmd, err := Start(first).ThenParallel(armCmd, driveCmd).Named("routine").Build()
	require.NoError(t, err)
	assert.Equal(t, "routine", cmd.Name())
	assert.ElementsMatch(t, []domain.Subsystem{arm, drivetrain}, cmd.Requirements())

	assert.Equal(t, 3, drive(cmd, 10))
}

func TestChain_AlongWith(t *testing.T) {
	var log []string
	a := newProbe(&log, "a", 1)
	b := newProbe(&log, "b", 1)
	c := newProbe(&log, "c", 1)

	cmd, err := Start(a, b).AlongWith(c).Build()
	require.NoError(t, err)
	assert.Equal(t, "sequence(a -> parallel(b | c))", cmd.Name())
}

func TestChain_PropagatesFirstError(t *testing.T) {
	var log []string
	arm := &fakeSubsystem{name: "arm"}

	_, err := Start(newProbe(&log, "a", 1)).
		ThenParallel(newProbe(&log, "b", 1, arm), newProbe(&log, "c", 1, arm)).
		Build()
	assert.ErrorIs(t, err, domain.ErrOverlappingRequirements)
}

func TestInstantAndRun(t *testing.T) {
	count := 0
	inst := Instant("inc", func() { count++ })
	assert.Equal(t, 1, drive(inst, 3))
	assert.Equal(t, 1, count)

	runs := 0
	r := Run("loop", func() { runs++ })
	assert.Equal(t, -1, drive(r, 4))
	assert.Equal(t, 4, runs)
}

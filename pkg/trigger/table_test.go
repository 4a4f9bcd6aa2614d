package trigger

import (
	"fmt"
	"testing"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Tick int
	Op   string
	Cmd  string
}

// recorder is a Scheduler that records start/end calls per tick.
type recorder struct {
	tick      int
	calls     []call
	scheduled map[domain.Command]bool
}

func newRecorder() *recorder {
	return &recorder{scheduled: make(map[domain.Command]bool)}
}

func (r *recorder) Schedule(cmds ...domain.Command) {
	for _, c := range cmds {
		r.scheduled[c] = true
		r.calls = append(r.calls, call{r.tick, "start", c.Name()})
	}
}

func (r *recorder) Cancel(cmds ...domain.Command) {
	for _, c := range cmds {
		delete(r.scheduled, c)
		r.calls = append(r.calls, call{r.tick, "end", c.Name()})
	}
}

func (r *recorder) IsScheduled(cmd domain.Command) bool { return r.scheduled[cmd] }

type fakeSubsystem struct{ name string }

func (s *fakeSubsystem) Name() string { return s.name }
func (s *fakeSubsystem) Periodic()    {}

type fakeCommand struct {
	name string
	reqs []domain.Subsystem
}

func (c *fakeCommand) Initialize()                                       {}
func (c *fakeCommand) Execute()                                          {}
func (c *fakeCommand) IsFinished() bool                                  { return false }
func (c *fakeCommand) End(bool)                                          {}
func (c *fakeCommand) Requirements() []domain.Subsystem                  { return c.reqs }
func (c *fakeCommand) RunsWhenDisabled() bool                            { return false }
func (c *fakeCommand) InterruptionBehavior() domain.InterruptionBehavior { return domain.CancelSelf }
func (c *fakeCommand) Name() string                                      { return c.name }

type fakeFactory struct {
	name    string
	reqs    []domain.Subsystem
	created int
}

func (f *fakeFactory) NewCommand() domain.Command {
	f.created++
	return &fakeCommand{name: f.name, reqs: f.reqs}
}

// script is a condition replaying fixed samples, one per tick.
type script struct {
	values []bool
	i      int
}

func (s *script) Sample() bool {
	v := s.values[s.i]
	s.i++
	return v
}

func bits(vals ...int) *script {
	s := &script{}
	for _, v := range vals {
		s.values = append(s.values, v != 0)
	}
	return s
}

func run(t *testing.T, mode Mode, samples *script) []call {
	t.Helper()
	table := NewTable()
	_, err := table.Register(New("button", samples), mode, &fakeFactory{name: "cmd"})
	require.NoError(t, err)

	rec := newRecorder()
	for i := range samples.values {
		rec.tick = i
		table.Poll(rec)
	}
	return rec.calls
}

func TestPoll_WhileTrue(t *testing.T) {
	calls := run(t, WhileTrue, bits(0, 1, 1, 0, 1))
	assert.Equal(t, []call{
		{1, "start", "cmd"},
		{3, "end", "cmd"},
		{4, "start", "cmd"},
	}, calls)
}

func TestPoll_OnTrue_HeldStartsOnce(t *testing.T) {
	calls := run(t, OnTrue, bits(1, 1, 1, 1, 1))
	assert.Equal(t, []call{{0, "start", "cmd"}}, calls)
}

func TestPoll_OnTrue_EachPress(t *testing.T) {
	calls := run(t, OnTrue, bits(0, 1, 0, 1, 1, 0))
	assert.Equal(t, []call{{1, "start", "cmd"}, {3, "start", "cmd"}}, calls)
}

func TestPoll_OnFalse(t *testing.T) {
	calls := run(t, OnFalse, bits(0, 1, 1, 0, 0))
	assert.Equal(t, []call{{3, "start", "cmd"}}, calls)
}

func TestPoll_WhileFalse(t *testing.T) {
	calls := run(t, WhileFalse, bits(1, 0, 0, 1))
	assert.Equal(t, []call{{1, "start", "cmd"}, {3, "end", "cmd"}}, calls)
}

func TestPoll_ToggleOnTrue(t *testing.T) {
	calls := run(t, ToggleOnTrue, bits(1, 0, 1, 0, 1))
	assert.Equal(t, []call{
		{0, "start", "cmd"},
		{2, "end", "cmd"},
		{4, "start", "cmd"},
	}, calls)
}

func TestPoll_WhileTrue_DoesNotRestartFinishedCommand(t *testing.T) {
	table := NewTable()
	f := &fakeFactory{name: "cmd"}
	_, err := table.Register(New("button", bits(1, 1, 1)), WhileTrue, f)
	require.NoError(t, err)

	registered := f.created
	rec := newRecorder()
	table.Poll(rec)
	// The command finishes on its own while the button is still held.
	rec.scheduled = map[domain.Command]bool{}
	table.Poll(rec)
	table.Poll(rec)

	assert.Equal(t, registered+1, f.created)
	assert.Len(t, rec.calls, 1)
}

func TestPoll_SharedTriggerSampledOnce(t *testing.T) {
	samples := 0
	trig := New("shared", domain.ConditionFunc(func() bool {
		samples++
		return true
	}))
	table := NewTable()
	_, err := table.Register(trig, OnTrue, &fakeFactory{name: "a"})
	require.NoError(t, err)
	_, err = table.Register(trig, WhileTrue, &fakeFactory{name: "b"})
	require.NoError(t, err)

	table.Poll(newRecorder())
	assert.Equal(t, 1, samples)
}

func TestRegister_Validation(t *testing.T) {
	table := NewTable()
	trig := New("b", bits(0))

	_, err := table.Register(nil, OnTrue, &fakeFactory{})
	assert.Error(t, err)
	_, err = table.Register(trig, OnTrue, nil)
	assert.Error(t, err)
	_, err = table.Register(trig, Mode(42), &fakeFactory{})
	assert.Error(t, err)
	assert.Equal(t, 0, table.Len())

	b, err := table.Register(trig, WhileTrue, &fakeFactory{name: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, b.ID())
	assert.Equal(t, WhileTrue, b.Mode())
}

func TestHazards(t *testing.T) {
	arm := &fakeSubsystem{name: "arm"}
	leds := &fakeSubsystem{name: "leds"}

	table := NewTable()
	for i, f := range []*fakeFactory{
		{name: "arm_high", reqs: []domain.Subsystem{arm}},
		{name: "cone_leds", reqs: []domain.Subsystem{leds}},
		{name: "arm_low", reqs: []domain.Subsystem{arm}},
	} {
		_, err := table.Register(New(fmt.Sprintf("button %d", i+1), bits(0)), OnTrue, f)
		require.NoError(t, err)
	}

	hazards := table.Hazards()
	require.Len(t, hazards, 1)
	assert.Equal(t, 1, hazards[0].First.ID)
	assert.Equal(t, 3, hazards[0].Second.ID)
	assert.Equal(t, []string{"arm"}, hazards[0].Subsystems)
	assert.Contains(t, hazards[0].String(), "binding 3 wins")

	infos := table.Bindings()
	require.Len(t, infos, 3)
	assert.Equal(t, "cone_leds", infos[1].Action)
	assert.Equal(t, "on-true", infos[1].Mode)
}

func TestBindings_DescribedOnceAtRegister(t *testing.T) {
	arm := &fakeSubsystem{name: "arm"}
	first := &fakeFactory{name: "arm_high", reqs: []domain.Subsystem{arm}}
	second := &fakeFactory{name: "arm_low", reqs: []domain.Subsystem{arm}}

	table := NewTable()
	_, err := table.Register(New("button 1", bits(0)), OnTrue, first)
	require.NoError(t, err)
	_, err = table.Register(New("button 2", bits(0)), OnTrue, second)
	require.NoError(t, err)
	require.Equal(t, 1, first.created)
	require.Equal(t, 1, second.created)

	for range 3 {
		table.Bindings()
		table.Hazards()
	}
	assert.Equal(t, 1, first.created)
	assert.Equal(t, 1, second.created)

	infos := table.Bindings()
	infos[0].Requirements[0] = "mutated"
	assert.Equal(t, []string{"arm"}, table.Bindings()[0].Requirements)
}

func TestTriggerComposition(t *testing.T) {
	a, b := false, false
	ta := New("a", domain.ConditionFunc(func() bool { return a }))
	tb := New("b", domain.ConditionFunc(func() bool { return b }))

	and := ta.And(tb)
	or := ta.Or(tb)
	not := ta.Negate()

	assert.False(t, and.Sample())
	assert.False(t, or.Sample())
	assert.True(t, not.Sample())

	a = true
	assert.False(t, and.Sample())
	assert.True(t, or.Sample())
	assert.False(t, not.Sample())

	b = true
	assert.True(t, and.Sample())
	assert.Equal(t, "a && b", and.Name())
}

func TestTriggerDebounce(t *testing.T) {
	d := New("b", bits(1, 1, 0, 1, 1, 1)).Debounce(2)
	var got []bool
	for range 6 {
		got = append(got, d.Sample())
	}
	assert.Equal(t, []bool{false, true, false, false, true, true}, got)
}

func TestTriggerDebounce_Composed(t *testing.T) {
	tests := []struct {
		name    string
		compose func(a, b *Trigger) *Trigger
		a, b    []int
		want    []bool
	}{
		{
			name:    "and resets streak when left operand is false",
			compose: func(a, b *Trigger) *Trigger { return a.And(b.Debounce(2)) },
			a:       []int{1, 0, 1},
			b:       []int{1, 0, 1},
			want:    []bool{false, false, false},
		},
		{
			name:    "and holds after two true samples",
			compose: func(a, b *Trigger) *Trigger { return a.And(b.Debounce(2)) },
			a:       []int{0, 0, 1},
			b:       []int{1, 1, 1},
			want:    []bool{false, false, true},
		},
		{
			name:    "or resets streak when left operand is true",
			compose: func(a, b *Trigger) *Trigger { return a.Or(b.Debounce(2)) },
			a:       []int{0, 1, 0},
			b:       []int{1, 0, 1},
			want:    []bool{false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.compose(New("a", bits(tt.a...)), New("b", bits(tt.b...)))
			var got []bool
			for range tt.want {
				got = append(got, c.Sample())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("while-true")
	require.NoError(t, err)
	assert.Equal(t, WhileTrue, m)

	_, err = ParseMode("sometimes")
	assert.Error(t, err)
}

package robot

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoutine = Routine{
	ScorePosition:  78,
	ReturnPosition: 0,
	Delay:          750 * time.Millisecond,
	DriveDistance:  -1.0,
	DriveSpeed:     -0.4,
}

// instantFactory builds leaves that finish on their first tick and records
// the order in which they complete.
type instantFactory struct {
	completed []string
	built     []Action
}

func (f *instantFactory) Command(a Action) (domain.Command, error) {
	f.built = append(f.built, a)
	name := a.String()
	cmd := command.Func(name)
	cmd.Finished = func() bool { return true }
	cmd.OnEnd = func(interrupted bool) {
		if !interrupted {
			f.completed = append(f.completed, name)
		}
	}
	return cmd, nil
}

func TestBuildAutonomous_LeafOrder(t *testing.T) {
	f := &instantFactory{}
	auto, err := BuildAutonomous(f, testRoutine)
	require.NoError(t, err)
	assert.Equal(t, "autonomous", auto.Name())

	auto.Initialize()
	ticks := 0
	for !auto.IsFinished() {
		require.Less(t, ticks, 20, "routine never finished")
		assert.Less(t, len(f.completed), 6, "routine must not finish before every leaf completed")
		auto.Execute()
		ticks++
	}
	auto.End(false)

	require.Len(t, f.completed, 6)
	assert.Equal(t, []string{"low_gear", "arm_to(78.0)", "open_grabber", "wait(750ms)"}, f.completed[:4])
	assert.ElementsMatch(t, []string{"arm_to(0.0)", "drive_distance(-1.00 m @ -0.40)"}, f.completed[4:])
	assert.Equal(t, 5, ticks, "one tick per sequential step, the parallel pair shares the last")
}

func TestBuildAutonomous_IndependentGraphs(t *testing.T) {
	f := &instantFactory{}
	first, err := BuildAutonomous(f, testRoutine)
	require.NoError(t, err)
	second, err := BuildAutonomous(f, testRoutine)
	require.NoError(t, err)

	assert.Equal(t, shape(first), shape(second))

	a, b := leaves(first), leaves(second)
	require.Len(t, a, 6)
	require.Len(t, b, 6)
	for _, x := range a {
		for _, y := range b {
			assert.NotSame(t, x, y)
		}
	}
}

func TestBuildAutonomous_InvalidConstants(t *testing.T) {
	tests := map[string]func(*Routine){
		"negative delay":   func(r *Routine) { r.Delay = -time.Second },
		"zero drive speed": func(r *Routine) { r.DriveSpeed = 0 },
		"too fast":         func(r *Routine) { r.DriveSpeed = -2 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := testRoutine
			mutate(&r)
			_, err := BuildAutonomous(&instantFactory{}, r)
			assert.ErrorIs(t, err, domain.ErrInvalidConstant)
		})
	}
}

type failingFactory struct{ err error }

func (f failingFactory) Command(Action) (domain.Command, error) { return nil, f.err }

func TestBuildAutonomous_FactoryError(t *testing.T) {
	_, err := BuildAutonomous(failingFactory{err: domain.ErrUnknownAction}, testRoutine)
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestAction(t *testing.T) {
	assert.Equal(t, "open_grabber", OpenGrabber().String())
	assert.Equal(t, "arm_to(52.0)", ArmTo(52).String())
	assert.Equal(t, "action(99)", ActionKind(99).String())
	assert.ErrorIs(t, Action{Kind: 99}.Validate(), domain.ErrUnknownAction)
	assert.NoError(t, ManualDrive().Validate())
}

func children(cmd domain.Command) []domain.Command {
	switch c := cmd.(type) {
	case *command.SequentialGroup:
		return c.Children()
	case *command.ParallelGroup:
		return c.Children()
	case *command.Wrapped:
		return []domain.Command{c.Inner()}
	}
	return nil
}

func shape(cmd domain.Command) string {
	kids := children(cmd)
	if len(kids) == 0 {
		return cmd.Name()
	}
	s := fmt.Sprintf("%s:%s[", reflect.TypeOf(cmd).Elem().Name(), cmd.Name())
	for _, k := range kids {
		s += shape(k) + ","
	}
	return s + "]"
}

func leaves(cmd domain.Command) []domain.Command {
	kids := children(cmd)
	if len(kids) == 0 {
		return []domain.Command{cmd}
	}
	var out []domain.Command
	for _, k := range kids {
		out = append(out, leaves(k)...)
	}
	return out
}

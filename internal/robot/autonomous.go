package robot

import (
	"fmt"
	"time"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
)

// Routine holds the constants of the autonomous routine.
type Routine struct {
	ScorePosition  float64
	ReturnPosition float64
	Delay          time.Duration
	DriveDistance  float64
	DriveSpeed     float64
}

// BuildAutonomous builds the autonomous routine:
//
//	low gear -> arm to score -> open grabber -> wait -> (arm to return | drive back)
//
// Every call builds a new graph from fresh commands.
func BuildAutonomous(f CommandFactory, r Routine) (domain.Command, error) {
	steps := []Action{
		LowGear(),
		ArmTo(r.ScorePosition),
		OpenGrabber(),
		Wait(r.Delay),
	}
	final := []Action{
		ArmTo(r.ReturnPosition),
		DriveDistance(r.DriveDistance, r.DriveSpeed),
	}

	seq, err := build(f, steps)
	if err != nil {
		return nil, err
	}
	par, err := build(f, final)
	if err != nil {
		return nil, err
	}
	cmd, err := command.Start(seq...).ThenParallel(par...).Named("autonomous").Build()
	if err != nil {
		return nil, fmt.Errorf("autonomous: %w", err)
	}
	return cmd, nil
}

func build(f CommandFactory, actions []Action) ([]domain.Command, error) {
	cmds := make([]domain.Command, 0, len(actions))
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("autonomous: %w", err)
		}
		cmd, err := f.Command(a)
		if err != nil {
			return nil, fmt.Errorf("autonomous %v: %w", a, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

package cli

import (
	"log/slog"

	"github.com/aretw0/cmdbot/internal/config"
	"github.com/aretw0/cmdbot/internal/robot"
	"github.com/aretw0/cmdbot/pkg/adapters/memory"
	"github.com/aretw0/cmdbot/pkg/adapters/sim"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// Rig is a complete simulated robot: sim hardware, in-memory controllers
// and a driver station, with a clock that advances one period per step.
type Rig struct {
	Config    config.Config
	Station   *memory.DriverStation
	Clock     *memory.Clock
	Driver    *memory.Device
	Board     *memory.Device
	Drive     *sim.DriveTrain
	Shifter   *sim.Shifter
	Gripper   *sim.Gripper
	Arm       *sim.ArmJoint
	LEDs      *sim.LEDStrip
	Container *robot.Container
}

// boardAxes is the axis count of the simulated button board.
const boardAxes = 2

// NewRig builds the simulator for cfg. vision may be nil.
func NewRig(cfg config.Config, logger *slog.Logger, vision ports.NumberTable) (*Rig, error) {
	r := &Rig{
		Config:  cfg,
		Station: memory.NewDriverStation(),
		Clock:   memory.NewClock(),
		Driver:  memory.NewGamepad(cfg.Controllers.Driver),
		Board:   memory.NewDevice(cfg.Controllers.Board, config.MaxButtons, boardAxes),
		Drive:   sim.NewDriveTrain(cfg.Drive.TopSpeed),
		Shifter: sim.NewShifter(),
		Gripper: sim.NewGripper(),
		Arm:     sim.NewArmJoint(cfg.Arm.Start, cfg.Arm.Min, cfg.Arm.Max),
		LEDs:    sim.NewLEDStrip(cfg.LEDs.Length),
	}

	opts := []robot.Option{
		robot.WithLogger(logger),
		robot.WithClock(r.Clock),
		robot.WithDriverStation(r.Station),
	}
	if vision != nil {
		opts = append(opts, robot.WithVisionTable(vision))
	}

	var err error
	r.Container, err = robot.New(cfg,
		robot.Hardware{Drive: r.Drive, Shifter: r.Shifter, Gripper: r.Gripper, Arm: r.Arm, LEDs: r.LEDs},
		robot.Devices{Driver: r.Driver, Board: r.Board},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Steppers returns the devices the robot loop must advance, clock first.
func (r *Rig) Steppers() []ports.Stepper {
	return []ports.Stepper{r.Clock, r.Drive, r.Shifter, r.Gripper, r.Arm, r.LEDs}
}

// ButtonLabels names board buttons by index.
func (r *Rig) ButtonLabels() map[int]string {
	labels := make(map[int]string)
	for name, index := range r.Config.Buttons.All() {
		labels[index] = name
	}
	return labels
}

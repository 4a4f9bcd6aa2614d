package robot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cmdbot/internal/config"
	"github.com/aretw0/cmdbot/internal/robot/subsystems"
	"github.com/aretw0/cmdbot/internal/runtime"
	"github.com/aretw0/cmdbot/pkg/adapters/memory"
	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/hid"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/aretw0/cmdbot/pkg/trigger"
)

// Hardware is the set of actuators and sensors the robot drives.
type Hardware struct {
	Drive   ports.DriveTrain
	Shifter ports.Shifter
	Gripper ports.Gripper
	Arm     ports.ArmJoint
	LEDs    ports.LEDStrip
}

// Devices are the two operator controllers.
type Devices struct {
	Driver ports.InputDevice
	Board  ports.InputDevice
}

// Container owns the subsystems, controllers and bindings of the robot.
type Container struct {
	cfg     config.Config
	logger  *slog.Logger
	clock   ports.Clock
	vision  ports.NumberTable
	station ports.DriverStation

	drive   *subsystems.Drive
	gear    *subsystems.GearShift
	grabber *subsystems.Grabber
	arm     *subsystems.Arm
	leds    *subsystems.LEDs

	driver *hid.Gamepad
	board  *hid.Controller
	table  *trigger.Table
}

var _ CommandFactory = (*Container)(nil)

// Option defines a functional option for configuring the Container.
type Option func(*Container)

// WithLogger sets a structured logger for the container and its bindings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithClock sets the time source of timed commands. The default is the wall
// clock.
func WithClock(clock ports.Clock) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithVisionTable sets the table the vision settings are written to. The
// default is an in-memory table.
func WithVisionTable(t ports.NumberTable) Option {
	return func(c *Container) {
		c.vision = t
	}
}

// WithDriverStation sets the source of the alliance color.
func WithDriverStation(ds ports.DriverStation) Option {
	return func(c *Container) {
		c.station = ds
	}
}

// New builds the subsystems, wraps the controllers and registers every
// binding. Invalid ports, button indices and constants are returned as
// errors.
func New(cfg config.Config, hw Hardware, dev Devices, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw.Drive == nil || hw.Shifter == nil || hw.Gripper == nil || hw.Arm == nil || hw.LEDs == nil {
		return nil, fmt.Errorf("robot: incomplete hardware %+v", hw)
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if c.clock == nil {
		c.clock = newWallClock()
	}
	if c.vision == nil {
		c.vision = memory.NewTable(cfg.Vision.Table)
	}
	if c.station == nil {
		c.station = memory.NewDriverStation()
	}

	var err error
	if c.driver, err = openGamepad("driver", dev.Driver, cfg.Controllers.Driver); err != nil {
		return nil, err
	}
	if c.board, err = openController("board", dev.Board, cfg.Controllers.Board); err != nil {
		return nil, err
	}

	c.drive = subsystems.NewDrive(hw.Drive)
	c.gear = subsystems.NewGearShift(hw.Shifter)
	c.grabber = subsystems.NewGrabber(hw.Gripper)
	c.leds = subsystems.NewLEDs(hw.LEDs, c.logger)
	c.arm, err = subsystems.NewArm(hw.Arm, subsystems.ArmConfig{
		KP:        cfg.Arm.KP,
		Tolerance: cfg.Arm.Tolerance,
		MaxPower:  cfg.Arm.MaxPower,
		Min:       cfg.Arm.Min,
		Max:       cfg.Arm.Max,
		Deadband:  cfg.Arm.Deadband,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Arm.ManualAxis < 0 || cfg.Arm.ManualAxis >= dev.Board.AxisCount() {
		return nil, fmt.Errorf("arm.manual_axis %d: %w", cfg.Arm.ManualAxis, domain.ErrInvalidAxis)
	}

	c.table = trigger.NewTable(trigger.WithLogger(c.logger))
	if err := c.configureBindings(); err != nil {
		return nil, err
	}
	return c, nil
}

func openGamepad(name string, dev ports.InputDevice, port int) (*hid.Gamepad, error) {
	if err := checkPort(name, dev, port); err != nil {
		return nil, err
	}
	return hid.NewGamepad(name, dev)
}

func openController(name string, dev ports.InputDevice, port int) (*hid.Controller, error) {
	if err := checkPort(name, dev, port); err != nil {
		return nil, err
	}
	return hid.NewController(name, dev)
}

func checkPort(name string, dev ports.InputDevice, port int) error {
	if err := hid.ValidatePort(port); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if dev == nil {
		return fmt.Errorf("%s on port %d: %w", name, port, domain.ErrDeviceNotFound)
	}
	if dev.Port() != port {
		return fmt.Errorf("%s: device on port %d, configured port %d: %w", name, dev.Port(), port, domain.ErrInvalidPort)
	}
	return nil
}

func (c *Container) configureBindings() error {
	b := c.cfg.Buttons
	p := c.cfg.Arm.Presets

	if err := c.bind(c.driver.LeftBumper(), trigger.WhileTrue, ConeLEDs()); err != nil {
		return err
	}
	if err := c.bind(c.driver.RightBumper(), trigger.WhileTrue, CubeLEDs()); err != nil {
		return err
	}

	board := []struct {
		label  string
		index  int
		action Action
	}{
		{"blue_upper", b.BlueUpper, OpenGrabber()},
		{"blue_lower", b.BlueLower, CloseGrabber()},
		{"red_upper_1", b.RedUpper1, ArmTo(p.Substation)},
		{"red_upper_2", b.RedUpper2, ArmTo(p.UpperCone)},
		{"red_upper_3", b.RedUpper3, ArmTo(p.UpperCube)},
		{"red_lower_1", b.RedLower1, ArmTo(p.Default)},
		{"red_lower_2", b.RedLower2, ArmTo(p.LowerCone)},
		{"red_lower_3", b.RedLower3, ArmTo(p.LowerCube)},
		{"black_2", b.Black2, ArmTo(p.Ground)},
		{"black_1", b.Black1, ManualArm()},
	}
	for _, entry := range board {
		button, err := c.board.Button(entry.index)
		if err != nil {
			return err
		}
		trig := trigger.New("board."+entry.label, button)
		if err := c.bind(trig, trigger.OnTrue, entry.action); err != nil {
			return err
		}
	}
	return nil
}

// bind builds the action once to surface invalid constants at startup, then
// registers it.
func (c *Container) bind(trig *trigger.Trigger, mode trigger.Mode, a Action) error {
	if _, err := c.Command(a); err != nil {
		return fmt.Errorf("binding %s: %w", trig.Name(), err)
	}
	if _, err := c.table.Register(trig, mode, binding{factory: c, action: a}); err != nil {
		return err
	}
	return nil
}

// Command builds a fresh command for a.
func (c *Container) Command(a Action) (domain.Command, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	switch a.Kind {
	case ActionLowGear:
		return subsystems.LowGearCommand(c.gear), nil
	case ActionSwitchGear:
		return subsystems.SwitchGearCommand(c.gear), nil
	case ActionOpenGrabber:
		return subsystems.OpenGrabberCommand(c.grabber), nil
	case ActionCloseGrabber:
		return subsystems.CloseGrabberCommand(c.grabber), nil
	case ActionArmTo:
		return subsystems.NewAutoPosition(c.arm, a.Position)
	case ActionManualArm:
		axis := c.cfg.Arm.ManualAxis
		return subsystems.NewManualArm(c.arm, func() float64 { return c.board.Axis(axis) }), nil
	case ActionWait:
		return command.Wait(c.clock, a.Duration)
	case ActionDriveDistance:
		return subsystems.NewAutoDriveDistance(c.drive, a.Distance, a.Speed)
	case ActionManualDrive:
		band := c.cfg.Drive.Deadband
		return subsystems.NewManualDrive(c.drive,
			func() float64 { return hid.Deadband(c.driver.LeftY(), band) },
			func() float64 { return hid.Deadband(c.driver.RightX(), band) },
		), nil
	case ActionConeLEDs:
		return subsystems.ConeCommand(c.leds), nil
	case ActionCubeLEDs:
		return subsystems.CubeCommand(c.leds), nil
	case ActionRainbowLEDs:
		return subsystems.NewRainbowCommand(c.leds, c.cfg.LEDs.RainbowStep), nil
	case ActionAllianceLEDs:
		return subsystems.AllianceCommand(c.leds, c.station), nil
	}
	return nil, fmt.Errorf("%v: %w", a.Kind, domain.ErrUnknownAction)
}

// Install registers the subsystems, default commands and bindings with s
// and writes the vision settings.
func (c *Container) Install(ctx context.Context, s *runtime.Scheduler) error {
	s.RegisterSubsystem(c.Subsystems()...)

	manual, err := c.Command(ManualDrive())
	if err != nil {
		return err
	}
	if err := s.SetDefaultCommand(c.drive, manual); err != nil {
		return err
	}
	if err := s.SetDefaultCommand(c.gear, subsystems.LowGearCommand(c.gear)); err != nil {
		return err
	}
	rainbow, err := command.IgnoringDisable(subsystems.NewRainbowCommand(c.leds, c.cfg.LEDs.RainbowStep))
	if err != nil {
		return err
	}
	if err := s.SetDefaultCommand(c.leds, rainbow); err != nil {
		return err
	}

	if err := c.configureVision(ctx); err != nil {
		return err
	}

	s.AddPoller(c.table)
	c.table.LogHazards()
	c.logger.Info("robot installed",
		"bindings", c.table.Len(),
		"hazards", len(c.table.Hazards()),
		"subsystems", domain.SubsystemNames(c.Subsystems()))
	return nil
}

func (c *Container) configureVision(ctx context.Context) error {
	entries := []struct {
		key   string
		value float64
	}{
		{"ledMode", c.cfg.Vision.LEDMode},
		{"camMode", c.cfg.Vision.CamMode},
		{"pipeline", c.cfg.Vision.Pipeline},
	}
	for _, e := range entries {
		if err := c.vision.SetNumber(ctx, e.key, e.value); err != nil {
			return fmt.Errorf("vision %s.%s: %w", c.vision.Name(), e.key, err)
		}
	}
	return nil
}

// Routine returns the autonomous constants from the configuration.
func (c *Container) Routine() Routine {
	return Routine{
		ScorePosition:  c.cfg.Arm.Presets.LowerCone,
		ReturnPosition: c.cfg.Arm.Presets.Default,
		Delay:          c.cfg.Autonomous.Delay,
		DriveDistance:  c.cfg.Autonomous.DriveDistance,
		DriveSpeed:     c.cfg.Autonomous.DriveSpeed,
	}
}

// Autonomous builds the command run in autonomous mode.
func (c *Container) Autonomous() (domain.Command, error) {
	return BuildAutonomous(c, c.Routine())
}

// Subsystems returns the subsystems in registration order.
func (c *Container) Subsystems() []domain.Subsystem {
	return []domain.Subsystem{c.drive, c.gear, c.grabber, c.arm, c.leds}
}

func (c *Container) Table() *trigger.Table           { return c.table }
func (c *Container) Bindings() []trigger.BindingInfo { return c.table.Bindings() }
func (c *Container) Hazards() []trigger.Hazard       { return c.table.Hazards() }
func (c *Container) Vision() ports.NumberTable       { return c.vision }
func (c *Container) Clock() ports.Clock              { return c.clock }

// wallClock measures time since its creation.
type wallClock struct{ start time.Time }

func newWallClock() wallClock { return wallClock{start: time.Now()} }

func (w wallClock) Now() time.Duration { return time.Since(w.start) }

package subsystems

import (
	"fmt"
	"math"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// Drive is the drivetrain subsystem.
type Drive struct {
	hw ports.DriveTrain
}

func NewDrive(hw ports.DriveTrain) *Drive { return &Drive{hw: hw} }

func (d *Drive) Name() string               { return "drive" }
func (d *Drive) Periodic()                  {}
func (d *Drive) Hardware() ports.DriveTrain { return d.hw }

// ManualDrive arcade-drives from two stick readings every tick until
// interrupted.
type ManualDrive struct {
	command.Base
	drive    *Drive
	speed    func() float64
	rotation func() float64
}

func NewManualDrive(d *Drive, speed, rotation func() float64) *ManualDrive {
	return &ManualDrive{Base: command.NewBase("manual_drive", d), drive: d, speed: speed, rotation: rotation}
}

func (c *ManualDrive) Execute() { c.drive.hw.ArcadeDrive(c.speed(), c.rotation()) }
func (c *ManualDrive) End(bool) { c.drive.hw.Stop() }

// AutoDriveDistance drives straight at a fixed speed until the encoders
// report the requested distance in meters. Negative values drive backwards.
type AutoDriveDistance struct {
	command.Base
	drive    *Drive
	distance float64
	speed    float64
}

// NewAutoDriveDistance validates that speed is in [-1, 1], not zero, and
// moves toward distance.
func NewAutoDriveDistance(d *Drive, distance, speed float64) (*AutoDriveDistance, error) {
	if !finite(distance) || !finite(speed) || speed == 0 || math.Abs(speed) > 1 {
		return nil, fmt.Errorf("drive distance %v at speed %v: %w", distance, speed, domain.ErrInvalidConstant)
	}
	if distance != 0 && math.Signbit(distance) != math.Signbit(speed) {
		return nil, fmt.Errorf("drive distance %v at speed %v moves away from target: %w", distance, speed, domain.ErrInvalidConstant)
	}
	name := fmt.Sprintf("drive_distance(%.2f m @ %.2f)", distance, speed)
	return &AutoDriveDistance{Base: command.NewBase(name, d), drive: d, distance: distance, speed: speed}, nil
}

func (c *AutoDriveDistance) Distance() float64 { return c.distance }
func (c *AutoDriveDistance) Speed() float64    { return c.speed }

func (c *AutoDriveDistance) Initialize() { c.drive.hw.ResetEncoders() }
func (c *AutoDriveDistance) Execute()    { c.drive.hw.ArcadeDrive(c.speed, 0) }

func (c *AutoDriveDistance) IsFinished() bool {
	return math.Abs(c.drive.hw.Distance()) >= math.Abs(c.distance)
}

func (c *AutoDriveDistance) End(bool) { c.drive.hw.Stop() }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

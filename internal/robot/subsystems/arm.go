package subsystems

import (
	"fmt"
	"math"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/hid"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// ArmConfig holds the arm controller gains and travel limits. Angles are in
// degrees.
type ArmConfig struct {
	KP        float64
	Tolerance float64
	MaxPower  float64
	Min       float64
	Max       float64
	Deadband  float64
}

// Validate checks that the gains and limits can drive the arm.
func (c ArmConfig) Validate() error {
	switch {
	case !finite(c.KP) || c.KP <= 0:
		return fmt.Errorf("arm kp %v: %w", c.KP, domain.ErrInvalidConstant)
	case !finite(c.Tolerance) || c.Tolerance <= 0:
		return fmt.Errorf("arm tolerance %v: %w", c.Tolerance, domain.ErrInvalidConstant)
	case !finite(c.MaxPower) || c.MaxPower <= 0 || c.MaxPower > 1:
		return fmt.Errorf("arm max power %v: %w", c.MaxPower, domain.ErrInvalidConstant)
	case !finite(c.Min) || !finite(c.Max) || c.Min >= c.Max:
		return fmt.Errorf("arm travel [%v, %v]: %w", c.Min, c.Max, domain.ErrInvalidConstant)
	case c.Deadband < 0 || c.Deadband >= 1:
		return fmt.Errorf("arm deadband %v: %w", c.Deadband, domain.ErrInvalidConstant)
	}
	return nil
}

// Arm is the arm joint subsystem.
type Arm struct {
	hw  ports.ArmJoint
	cfg ArmConfig
}

func NewArm(hw ports.ArmJoint, cfg ArmConfig) (*Arm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Arm{hw: hw, cfg: cfg}, nil
}

func (a *Arm) Name() string      { return "arm" }
func (a *Arm) Periodic()         {}
func (a *Arm) Position() float64 { return a.hw.Position() }
func (a *Arm) Config() ArmConfig { return a.cfg }

// AutoPosition drives the arm to a target angle with a proportional
// controller and finishes once inside the tolerance band.
type AutoPosition struct {
	command.Base
	arm    *Arm
	target float64
}

// NewAutoPosition rejects targets outside the arm's travel.
func NewAutoPosition(a *Arm, target float64) (*AutoPosition, error) {
	if !finite(target) || target < a.cfg.Min || target > a.cfg.Max {
		return nil, fmt.Errorf("arm target %v outside [%v, %v]: %w", target, a.cfg.Min, a.cfg.Max, domain.ErrInvalidConstant)
	}
	name := fmt.Sprintf("arm_to(%.1f)", target)
	return &AutoPosition{Base: command.NewBase(name, a), arm: a, target: target}, nil
}

func (c *AutoPosition) Target() float64 { return c.target }

func (c *AutoPosition) Execute() {
	err := c.target - c.arm.hw.Position()
	power := c.arm.cfg.KP * err
	c.arm.hw.SetPower(math.Max(-c.arm.cfg.MaxPower, math.Min(c.arm.cfg.MaxPower, power)))
}

func (c *AutoPosition) IsFinished() bool {
	return math.Abs(c.target-c.arm.hw.Position()) <= c.arm.cfg.Tolerance
}

func (c *AutoPosition) End(bool) { c.arm.hw.SetPower(0) }

// ManualArm drives the arm from a stick axis until interrupted.
type ManualArm struct {
	command.Base
	arm  *Arm
	axis func() float64
}

func NewManualArm(a *Arm, axis func() float64) *ManualArm {
	return &ManualArm{Base: command.NewBase("manual_arm", a), arm: a, axis: axis}
}

func (c *ManualArm) Execute() {
	c.arm.hw.SetPower(hid.Deadband(c.axis(), c.arm.cfg.Deadband) * c.arm.cfg.MaxPower)
}

func (c *ManualArm) End(bool) { c.arm.hw.SetPower(0) }

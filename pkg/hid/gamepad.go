package hid

import (
	"fmt"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/aretw0/cmdbot/pkg/trigger"
)

// Xbox controller button indices.
const (
	ButtonA           = 1
	ButtonB           = 2
	ButtonX           = 3
	ButtonY           = 4
	ButtonLeftBumper  = 5
	ButtonRightBumper = 6
	ButtonBack        = 7
	ButtonStart       = 8
	ButtonLeftStick   = 9
	ButtonRightStick  = 10
)

// Xbox controller axis indices.
const (
	AxisLeftX        = 0
	AxisLeftY        = 1
	AxisLeftTrigger  = 2
	AxisRightTrigger = 3
	AxisRightX       = 4
	AxisRightY       = 5
)

// Gamepad is an Xbox-layout controller.
type Gamepad struct {
	*Controller
}

// NewGamepad validates that dev has the Xbox button and axis layout.
func NewGamepad(name string, dev ports.InputDevice) (*Gamepad, error) {
	c, err := NewController(name, dev)
	if err != nil {
		return nil, err
	}
	if dev.ButtonCount() < ButtonRightStick {
		return nil, fmt.Errorf("%s has %d buttons, gamepad needs %d: %w", name, dev.ButtonCount(), ButtonRightStick, domain.ErrInvalidButton)
	}
	if dev.AxisCount() <= AxisRightY {
		return nil, fmt.Errorf("%s has %d axes, gamepad needs %d: %w", name, dev.AxisCount(), AxisRightY+1, domain.ErrInvalidAxis)
	}
	return &Gamepad{Controller: c}, nil
}

func (g *Gamepad) named(index int, label string) *trigger.Trigger {
	return trigger.New(g.name+"."+label, ButtonCondition{Device: g.dev, Index: index})
}

func (g *Gamepad) A() *trigger.Trigger           { return g.named(ButtonA, "a") }
func (g *Gamepad) B() *trigger.Trigger           { return g.named(ButtonB, "b") }
func (g *Gamepad) X() *trigger.Trigger           { return g.named(ButtonX, "x") }
func (g *Gamepad) Y() *trigger.Trigger           { return g.named(ButtonY, "y") }
func (g *Gamepad) LeftBumper() *trigger.Trigger  { return g.named(ButtonLeftBumper, "left_bumper") }
func (g *Gamepad) RightBumper() *trigger.Trigger { return g.named(ButtonRightBumper, "right_bumper") }
func (g *Gamepad) Back() *trigger.Trigger        { return g.named(ButtonBack, "back") }
func (g *Gamepad) Start() *trigger.Trigger       { return g.named(ButtonStart, "start") }

// LeftY is the left stick's vertical axis, positive when pushed forward.
func (g *Gamepad) LeftY() float64 { return -g.Axis(AxisLeftY) }

// LeftX is the left stick's horizontal axis.
func (g *Gamepad) LeftX() float64 { return g.Axis(AxisLeftX) }

// RightX is the right stick's horizontal axis.
func (g *Gamepad) RightX() float64 { return g.Axis(AxisRightX) }

// RightY is the right stick's vertical axis, positive when pushed forward.
func (g *Gamepad) RightY() float64 { return -g.Axis(AxisRightY) }

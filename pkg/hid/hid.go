// Package hid wraps driver station input devices into named controllers
// and turns their buttons and axes into trigger conditions.
package hid

import (
	"fmt"
	"math"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/aretw0/cmdbot/pkg/trigger"
)

// MaxPorts is the number of driver station joystick ports.
const MaxPorts = 6

// MaxButtons is the largest button index a driver station device reports.
const MaxButtons = 32

// ValidatePort checks that port is a driver station joystick port.
func ValidatePort(port int) error {
	if port < 0 || port >= MaxPorts {
		return fmt.Errorf("port %d (want 0..%d): %w", port, MaxPorts-1, domain.ErrInvalidPort)
	}
	return nil
}

// ButtonCondition samples one button of a device.
type ButtonCondition struct {
	Device ports.InputDevice
	Index  int
}

func (c ButtonCondition) Sample() bool { return c.Device.Button(c.Index) }

// AxisCondition is true while an axis is beyond Threshold: above it for
// positive thresholds, below it for negative ones.
type AxisCondition struct {
	Device    ports.InputDevice
	Index     int
	Threshold float64
}

func (c AxisCondition) Sample() bool {
	v := c.Device.Axis(c.Index)
	if c.Threshold < 0 {
		return v < c.Threshold
	}
	return v > c.Threshold
}

// Controller is a validated input device on a known port.
type Controller struct {
	name string
	dev  ports.InputDevice
}

// NewController validates the device port and returns a Controller.
func NewController(name string, dev ports.InputDevice) (*Controller, error) {
	if dev == nil {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrDeviceNotFound)
	}
	if err := ValidatePort(dev.Port()); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Controller{name: name, dev: dev}, nil
}

func (c *Controller) Name() string              { return c.name }
func (c *Controller) Port() int                 { return c.dev.Port() }
func (c *Controller) Device() ports.InputDevice { return c.dev }

// Button returns a trigger for a 1-based button index.
func (c *Controller) Button(index int) (*trigger.Trigger, error) {
	if index < 1 || index > c.dev.ButtonCount() || index > MaxButtons {
		return nil, fmt.Errorf("%s button %d (device has %d): %w", c.name, index, c.dev.ButtonCount(), domain.ErrInvalidButton)
	}
	name := fmt.Sprintf("%s.button(%d)", c.name, index)
	return trigger.New(name, ButtonCondition{Device: c.dev, Index: index}), nil
}

// AxisBeyond returns a trigger that is true while axis index is beyond threshold.
func (c *Controller) AxisBeyond(index int, threshold float64) (*trigger.Trigger, error) {
	if err := c.checkAxis(index); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s.axis(%d) beyond %.2f", c.name, index, threshold)
	return trigger.New(name, AxisCondition{Device: c.dev, Index: index, Threshold: threshold}), nil
}

// Axis reads an axis, returning 0 for indices the device does not have.
func (c *Controller) Axis(index int) float64 {
	if c.checkAxis(index) != nil {
		return 0
	}
	v := c.dev.Axis(index)
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func (c *Controller) checkAxis(index int) error {
	if index < 0 || index >= c.dev.AxisCount() {
		return fmt.Errorf("%s axis %d (device has %d): %w", c.name, index, c.dev.AxisCount(), domain.ErrInvalidAxis)
	}
	return nil
}

// Deadband zeroes values within band of zero and rescales the rest to [-1, 1].
func Deadband(v, band float64) float64 {
	if math.Abs(v) <= band {
		return 0
	}
	if band >= 1 {
		return 0
	}
	if v > 0 {
		return (v - band) / (1 - band)
	}
	return (v + band) / (1 - band)
}

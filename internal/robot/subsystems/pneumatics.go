package subsystems

import (
	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// GearShift is the two-speed gearbox subsystem.
type GearShift struct {
	hw ports.Shifter
}

func NewGearShift(hw ports.Shifter) *GearShift { return &GearShift{hw: hw} }

func (g *GearShift) Name() string  { return "gear_shift" }
func (g *GearShift) Periodic()     {}
func (g *GearShift) LowGear() bool { return g.hw.LowGear() }

// LowGearCommand selects low gear and finishes immediately.
func LowGearCommand(g *GearShift) *command.FuncCommand {
	return command.Instant("low_gear", func() { g.hw.SetLowGear(true) }, g)
}

// SwitchGearCommand toggles the gear and finishes immediately.
func SwitchGearCommand(g *GearShift) *command.FuncCommand {
	return command.Instant("switch_gear", func() { g.hw.SetLowGear(!g.hw.LowGear()) }, g)
}

// Grabber is the pneumatic gripper subsystem.
type Grabber struct {
	hw ports.Gripper
}

func NewGrabber(hw ports.Gripper) *Grabber { return &Grabber{hw: hw} }

func (g *Grabber) Name() string { return "grabber" }
func (g *Grabber) Periodic()    {}
func (g *Grabber) IsOpen() bool { return g.hw.IsOpen() }

func OpenGrabberCommand(g *Grabber) *command.FuncCommand {
	return command.Instant("open_grabber", func() { g.hw.SetOpen(true) }, g)
}

func CloseGrabberCommand(g *Grabber) *command.FuncCommand {
	return command.Instant("close_grabber", func() { g.hw.SetOpen(false) }, g)
}

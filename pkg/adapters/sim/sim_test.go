package sim_test

import (
	"testing"
	"time"

	"github.com/aretw0/cmdbot/pkg/adapters/sim"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.DriveTrain = (*sim.DriveTrain)(nil)
	_ ports.Shifter    = (*sim.Shifter)(nil)
	_ ports.Gripper    = (*sim.Gripper)(nil)
	_ ports.ArmJoint   = (*sim.ArmJoint)(nil)
	_ ports.LEDStrip   = (*sim.LEDStrip)(nil)

	_ ports.Stepper = (*sim.DriveTrain)(nil)
	_ ports.Stepper = (*sim.Shifter)(nil)
	_ ports.Stepper = (*sim.Gripper)(nil)
	_ ports.Stepper = (*sim.ArmJoint)(nil)
	_ ports.Stepper = (*sim.LEDStrip)(nil)
)

func TestDriveTrain_Integrates(t *testing.T) {
	d := sim.NewDriveTrain(2)
	d.ArcadeDrive(-1.0, -0.4)
	d.Step(time.Second)
	assert.InDelta(t, -2.0, d.Distance(), 1e-9)

	speed, rot := d.Output()
	assert.Equal(t, -1.0, speed)
	assert.Equal(t, -0.4, rot)

	d.ArcadeDrive(5, 0)
	speed, _ = d.Output()
	assert.Equal(t, 1.0, speed, "output is clamped")

	d.ResetEncoders()
	d.Stop()
	d.Step(time.Second)
	assert.Zero(t, d.Distance())
}

func TestShifterAndGripper(t *testing.T) {
	s := sim.NewShifter()
	assert.False(t, s.LowGear())
	s.SetLowGear(true)
	s.SetLowGear(true)
	assert.True(t, s.LowGear())
	assert.Equal(t, 1, s.Shifts())

	g := sim.NewGripper()
	assert.False(t, g.IsOpen())
	g.SetOpen(true)
	assert.True(t, g.IsOpen())
}

func TestArmJoint_HardStops(t *testing.T) {
	a := sim.NewArmJoint(0, -10, 90)
	a.SetPower(0.5)
	a.Step(500 * time.Millisecond)
	assert.InDelta(t, 45, a.Position(), 1e-9)

	a.SetPower(1)
	a.Step(time.Second)
	assert.Equal(t, 90.0, a.Position())

	a.SetPower(-1)
	a.Step(5 * time.Second)
	assert.Equal(t, -10.0, a.Position())
}

func TestLEDStrip_Flush(t *testing.T) {
	l := sim.NewLEDStrip(3)
	red := ports.Color{R: 255}
	l.Set(0, red)
	l.Set(7, red)
	assert.Equal(t, ports.Color{}, l.Shown()[0], "not visible before flush")

	require.NoError(t, l.Flush())
	assert.Equal(t, red, l.Shown()[0])
	assert.Equal(t, 1, l.Flushes())

	assert.Error(t, sim.NewLEDStrip(0).Flush())
}

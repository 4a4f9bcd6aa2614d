package hid_test

import (
	"testing"

	"github.com/aretw0/cmdbot/pkg/adapters/memory"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/hid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePort(t *testing.T) {
	assert.NoError(t, hid.ValidatePort(0))
	assert.NoError(t, hid.ValidatePort(5))
	assert.ErrorIs(t, hid.ValidatePort(6), domain.ErrInvalidPort)
	assert.ErrorIs(t, hid.ValidatePort(-1), domain.ErrInvalidPort)
}

func TestNewController_InvalidPort(t *testing.T) {
	_, err := hid.NewController("board", memory.NewDevice(9, 12, 2))
	assert.ErrorIs(t, err, domain.ErrInvalidPort)

	_, err = hid.NewController("board", nil)
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestController_Button(t *testing.T) {
	dev := memory.NewDevice(1, 12, 2)
	board, err := hid.NewController("board", dev)
	require.NoError(t, err)

	trig, err := board.Button(3)
	require.NoError(t, err)
	assert.Equal(t, "board.button(3)", trig.Name())
	assert.False(t, trig.Sample())

	require.NoError(t, dev.SetButton(3, true))
	assert.True(t, trig.Sample())

	_, err = board.Button(0)
	assert.ErrorIs(t, err, domain.ErrInvalidButton)
	_, err = board.Button(13)
	assert.ErrorIs(t, err, domain.ErrInvalidButton)
}

func TestController_Axis(t *testing.T) {
	dev := memory.NewDevice(1, 12, 2)
	board, err := hid.NewController("board", dev)
	require.NoError(t, err)

	require.NoError(t, dev.SetAxis(1, 0.6))
	assert.Equal(t, 0.6, board.Axis(1))
	assert.Zero(t, board.Axis(7))

	up, err := board.AxisBeyond(1, 0.5)
	require.NoError(t, err)
	down, err := board.AxisBeyond(1, -0.5)
	require.NoError(t, err)
	assert.True(t, up.Sample())
	assert.False(t, down.Sample())

	_, err = board.AxisBeyond(2, 0.5)
	assert.ErrorIs(t, err, domain.ErrInvalidAxis)
}

func TestGamepad(t *testing.T) {
	dev := memory.NewGamepad(0)
	pad, err := hid.NewGamepad("driver", dev)
	require.NoError(t, err)

	require.NoError(t, dev.SetButton(hid.ButtonLeftBumper, true))
	assert.True(t, pad.LeftBumper().Sample())
	assert.False(t, pad.RightBumper().Sample())
	assert.Equal(t, "driver.left_bumper", pad.LeftBumper().Name())

	require.NoError(t, dev.SetAxis(hid.AxisLeftY, -0.5))
	assert.Equal(t, 0.5, pad.LeftY(), "forward is positive")

	_, err = hid.NewGamepad("small", memory.NewDevice(2, 4, 2))
	assert.ErrorIs(t, err, domain.ErrInvalidButton)
}

func TestDeadband(t *testing.T) {
	assert.Zero(t, hid.Deadband(0.05, 0.1))
	assert.Zero(t, hid.Deadband(-0.1, 0.1))
	assert.InDelta(t, 1.0, hid.Deadband(1, 0.1), 1e-9)
	assert.InDelta(t, -0.5, hid.Deadband(-0.55, 0.1), 1e-9)
}

package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Device implements ports.InputDevice in memory.
// Safe for concurrent use: a dashboard may press buttons while the control
// loop samples them.
type Device struct {
	port    int
	mu      sync.RWMutex
	buttons []bool
	axes    []float64
}

// NewDevice creates a device with the given number of buttons and axes.
func NewDevice(port, buttons, axes int) *Device {
	return &Device{
		port:    port,
		buttons: make([]bool, buttons),
		axes:    make([]float64, axes),
	}
}

// NewGamepad creates a device with the Xbox controller layout.
func NewGamepad(port int) *Device { return NewDevice(port, 10, 6) }

func (d *Device) Port() int        { return d.port }
func (d *Device) ButtonCount() int { return len(d.buttons) }
func (d *Device) AxisCount() int   { return len(d.axes) }

// Button reports a 1-based button; unknown indices read as released.
func (d *Device) Button(index int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 1 || index > len(d.buttons) {
		return false
	}
	return d.buttons[index-1]
}

// Axis reads a 0-based axis; unknown indices read as centered.
func (d *Device) Axis(index int) float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.axes) {
		return 0
	}
	return d.axes[index]
}

// SetButton presses or releases a 1-based button.
func (d *Device) SetButton(index int, pressed bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 1 || index > len(d.buttons) {
		return fmt.Errorf("port %d button %d: %w", d.port, index, domain.ErrInvalidButton)
	}
	d.buttons[index-1] = pressed
	return nil
}

// SetAxis moves a 0-based axis. Values are clamped to [-1, 1].
func (d *Device) SetAxis(index int, value float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.axes) {
		return fmt.Errorf("port %d axis %d: %w", d.port, index, domain.ErrInvalidAxis)
	}
	d.axes[index] = max(-1, min(1, value))
	return nil
}

// Reset releases every button and centers every axis.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.buttons)
	clear(d.axes)
}

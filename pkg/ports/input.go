package ports

// InputDevice is a controller attached to a driver station port.
type InputDevice interface {
	// Port is the driver station port the device is attached to.
	Port() int
	ButtonCount() int
	AxisCount() int

	// Button reports the state of a 1-based button index.
	Button(index int) bool
	// Axis returns the value in [-1, 1] of a 0-based axis index.
	Axis(index int) float64
}

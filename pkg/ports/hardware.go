package ports

// DriveTrain is a differential drive base with wheel encoders.
type DriveTrain interface {
	// ArcadeDrive sets forward speed and rotation, both in [-1, 1].
	ArcadeDrive(speed, rotation float64)
	Stop()
	// Distance is the average distance travelled by both sides, in meters,
	// since the last ResetEncoders.
	Distance() float64
	ResetEncoders()
}

// Shifter is a two-speed pneumatic gearbox.
type Shifter interface {
	SetLowGear(low bool)
	LowGear() bool
}

// Gripper is the pneumatic grabber actuator.
type Gripper interface {
	SetOpen(open bool)
	IsOpen() bool
}

// ArmJoint is the arm motor with its absolute position sensor.
type ArmJoint interface {
	// SetPower drives the motor with an output in [-1, 1].
	SetPower(power float64)
	// Position returns the arm angle in degrees.
	Position() float64
}

// Color is an RGB LED color.
type Color struct {
	R, G, B uint8
}

// LEDStrip is an addressable LED strip. Writes are buffered until Flush.
type LEDStrip interface {
	Len() int
	Set(index int, c Color)
	Flush() error
}

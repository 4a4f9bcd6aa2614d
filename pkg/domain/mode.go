package domain

// Mode is the robot operating mode reported by the driver station.
type Mode string

const (
	ModeDisabled   Mode = "disabled"
	ModeAutonomous Mode = "autonomous"
	ModeTeleop     Mode = "teleop"
	ModeTest       Mode = "test"
)

// Enabled reports whether actuators may move in this mode.
func (m Mode) Enabled() bool {
	return m == ModeAutonomous || m == ModeTeleop || m == ModeTest
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDisabled, ModeAutonomous, ModeTeleop, ModeTest:
		return m, nil
	}
	return "", ErrUnknownMode
}

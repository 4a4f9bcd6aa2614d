// Package subsystems holds the robot mechanisms and the commands that drive
// them. Each subsystem is a scheduler ownership slot wrapping one hardware
// port.
package subsystems

// Package robot declares the robot: its subsystems, the controllers the
// operators hold, the default commands, the button bindings and the
// autonomous routine.
//
// Nothing here is global. Hardware, input devices and tables are handed to
// New, so a container can run against simulated devices or real ones.
package robot

/*
Package ports defines the driven ports (interfaces) of the control layer.

These interfaces decouple the scheduler and the robot wiring from the
concrete devices, so the same container can run against simulated
hardware, in-memory controllers or real device drivers.

# Key Interfaces

  - InputDevice: a controller attached to a driver station port.
  - NumberTable: a named key/value table of numbers (e.g. the vision camera table).
  - DriverStation: reports the robot mode and alliance.
  - Clock: monotonic time source for timed commands.
  - DriveTrain, Shifter, Gripper, ArmJoint, LEDStrip: actuator ports used by subsystems.
*/
package ports

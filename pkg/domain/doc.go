/*
Package domain contains the core models of the command-based control layer.

It defines what the scheduler schedules and what the binding table binds,
without any knowledge of hardware, transports or persistence.

# Key Entities

  - Command: a schedulable unit of robot behavior with Initialize/Execute/IsFinished/End hooks.
  - Subsystem: an ownership slot. At most one scheduled command may require a subsystem at a time.
  - Condition: a boolean sampled once per control tick (a button, an axis threshold...).
  - Mode: the robot operating mode reported by the driver station.
  - LifecycleHooks: observability callbacks fired by the scheduler.
*/
package domain

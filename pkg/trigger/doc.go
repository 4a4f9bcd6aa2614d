/*
Package trigger binds sampled conditions to commands.

A Table holds bindings of (Trigger, Mode, Factory). It is installed once at
startup and polled once per control tick: each distinct Trigger is sampled
exactly once, compared with the previous sample of every binding that uses
it, and the binding's Mode decides whether to start or cancel a command.

Bindings are never removed. When two bindings can start commands that need
the same subsystem, the one polled last in a tick wins (bindings are polled
in registration order and the scheduler lets an incoming command interrupt
the running one). Such pairs are reported by Table.Hazards.
*/
package trigger

// Package runtime contains the command scheduler that drives subsystems,
// trigger pollers and commands once per control tick.
package runtime

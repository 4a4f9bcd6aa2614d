// Package sim provides simulated robot hardware.
//
// Every device implements ports.Stepper; the control loop steps them once per
// period so position and distance evolve with commanded outputs.
package sim

package domain

import "errors"

// ErrCommandReused is returned when the same command instance is placed in
// more than one composition, or twice in the same one.
var ErrCommandReused = errors.New("command already used in a composition")

// ErrOverlappingRequirements is returned when commands that must run at the
// same time require the same subsystem.
var ErrOverlappingRequirements = errors.New("parallel commands share a requirement")

// ErrDefaultRequirement is returned when a default command does not require
// the subsystem it is the default for.
var ErrDefaultRequirement = errors.New("default command must require its subsystem")

// ErrInvalidPort is returned for controller ports outside the driver station range.
var ErrInvalidPort = errors.New("invalid controller port")

// ErrInvalidButton is returned for button indices a device does not have.
var ErrInvalidButton = errors.New("invalid button index")

// ErrInvalidAxis is returned for axis indices a device does not have.
var ErrInvalidAxis = errors.New("invalid axis index")

// ErrInvalidConstant is returned when a tuning constant is out of range.
var ErrInvalidConstant = errors.New("invalid constant")

// ErrUnknownAction is returned when an action kind has no constructor.
var ErrUnknownAction = errors.New("unknown action")

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown robot mode")

// ErrDeviceNotFound is returned when no input device is attached to a port.
var ErrDeviceNotFound = errors.New("input device not found")

// ErrEntryNotFound is returned when a table has no entry for a key.
var ErrEntryNotFound = errors.New("table entry not found")

// ErrNilCommand is returned when a nil command is composed or bound.
var ErrNilCommand = errors.New("nil command")

package domain

// InterruptionBehavior decides what happens when a command is scheduled
// while another command holds one of its subsystems.
type InterruptionBehavior int

const (
	// CancelSelf lets the incoming command interrupt this one.
	CancelSelf InterruptionBehavior = iota
	// CancelIncoming keeps this command running and drops the incoming one.
	CancelIncoming
)

func (b InterruptionBehavior) String() string {
	switch b {
	case CancelIncoming:
		return "cancel_incoming"
	default:
		return "cancel_self"
	}
}

// Command is a unit of robot behavior driven by the scheduler.
//
// The scheduler calls Initialize once when the command is scheduled, then
// Execute and IsFinished once per tick, and End exactly once when the command
// finishes (interrupted=false) or is cancelled (interrupted=true).
type Command interface {
	Initialize()
	Execute()
	IsFinished() bool
	End(interrupted bool)

	// Requirements lists the subsystems this command owns while running.
	Requirements() []Subsystem
	// RunsWhenDisabled reports whether the command keeps running in Disabled mode.
	RunsWhenDisabled() bool
	InterruptionBehavior() InterruptionBehavior
	Name() string
}

// Subsystem is an ownership slot. Periodic is called once per tick,
// before any command runs.
type Subsystem interface {
	Name() string
	Periodic()
}

// Condition is a boolean sampled once per control tick.
type Condition interface {
	Sample() bool
}

// ConditionFunc adapts a plain function to a Condition.
type ConditionFunc func() bool

// Sample calls f.
func (f ConditionFunc) Sample() bool { return f() }

// Requires reports whether cmd requires s.
func Requires(cmd Command, s Subsystem) bool {
	for _, r := range cmd.Requirements() {
		if r == s {
			return true
		}
	}
	return false
}

// SubsystemNames returns the names of the given subsystems, in order.
func SubsystemNames(subs []Subsystem) []string {
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name())
	}
	return names
}

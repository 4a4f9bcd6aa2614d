package trigger

import (
	"github.com/aretw0/cmdbot/pkg/domain"
)

// Trigger is a named condition. Composed triggers sample their operands
// directly, so a Trigger can be shared by any number of bindings.
type Trigger struct {
	name string
	cond domain.Condition
}

// New creates a Trigger over cond.
func New(name string, cond domain.Condition) *Trigger {
	return &Trigger{name: name, cond: cond}
}

// Name returns the trigger's display name.
func (t *Trigger) Name() string { return t.name }

// Sample reads the underlying condition.
func (t *Trigger) Sample() bool { return t.cond.Sample() }

// And is true when both triggers are true. Both operands are sampled on
// every call so stateful operands such as Debounce see each tick.
func (t *Trigger) And(other *Trigger) *Trigger {
	return New(t.name+" && "+other.name, domain.ConditionFunc(func() bool {
		x, y := t.Sample(), other.Sample()
		return x && y
	}))
}

// Or is true when either trigger is true. Both operands are always sampled.
func (t *Trigger) Or(other *Trigger) *Trigger {
	return New(t.name+" || "+other.name, domain.ConditionFunc(func() bool {
		x, y := t.Sample(), other.Sample()
		return x || y
	}))
}

// Negate inverts the trigger.
func (t *Trigger) Negate() *Trigger {
	return New("!"+t.name, domain.ConditionFunc(func() bool {
		return !t.Sample()
	}))
}

// Debounce is true only after t has been true for n consecutive samples.
// The returned trigger keeps a counter and must be sampled once per tick.
// Table.Poll samples each registered trigger once, and And, Or and Negate
// sample every operand on each call.
func (t *Trigger) Debounce(n int) *Trigger {
	if n < 1 {
		n = 1
	}
	streak := 0
	return New(t.name+" (debounced)", domain.ConditionFunc(func() bool {
		if t.Sample() {
			streak++
		} else {
			streak = 0
		}
		return streak >= n
	}))
}

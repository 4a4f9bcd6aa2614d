package sim

import (
	"sync"
	"time"
)

// DefaultArmRate is how fast the simulated arm turns at full power, in degrees
// per second.
const DefaultArmRate = 180.0

// ArmJoint is a simulated arm with hard stops.
type ArmJoint struct {
	mu       sync.Mutex
	rate     float64
	min, max float64
	power    float64
	position float64
}

// NewArmJoint creates an arm at start degrees, travelling within [lo, hi].
func NewArmJoint(start, lo, hi float64) *ArmJoint {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &ArmJoint{rate: DefaultArmRate, min: lo, max: hi, position: max(lo, min(hi, start))}
}

func (a *ArmJoint) SetPower(power float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.power = clamp(power)
}

// Power returns the last commanded output.
func (a *ArmJoint) Power() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.power
}

func (a *ArmJoint) Position() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

func (a *ArmJoint) Step(dt time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.position + a.power*a.rate*dt.Seconds()
	a.position = max(a.min, min(a.max, p))
}

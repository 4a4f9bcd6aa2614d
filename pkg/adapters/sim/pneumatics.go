package sim

import (
	"sync"
	"time"
)

// Shifter is a simulated two-speed gearbox. It starts in high gear.
type Shifter struct {
	mu     sync.Mutex
	low    bool
	shifts int
}

func NewShifter() *Shifter { return &Shifter{} }

func (s *Shifter) SetLowGear(low bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.low != low {
		s.shifts++
	}
	s.low = low
}

func (s *Shifter) LowGear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.low
}

// Shifts counts gear changes.
func (s *Shifter) Shifts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shifts
}

func (s *Shifter) Step(time.Duration) {}

// Gripper is a simulated pneumatic grabber. It starts closed.
type Gripper struct {
	mu   sync.Mutex
	open bool
}

func NewGripper() *Gripper { return &Gripper{} }

func (g *Gripper) SetOpen(open bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open = open
}

func (g *Gripper) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.open
}

func (g *Gripper) Step(time.Duration) {}

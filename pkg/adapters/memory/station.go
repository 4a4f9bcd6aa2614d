package memory

import (
	"sync"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// DriverStation implements ports.DriverStation with operator-set values.
// Safe for concurrent use.
type DriverStation struct {
	mu       sync.RWMutex
	mode     domain.Mode
	alliance ports.Alliance
}

// NewDriverStation starts disabled with an unknown alliance.
func NewDriverStation() *DriverStation {
	return &DriverStation{mode: domain.ModeDisabled, alliance: ports.AllianceUnknown}
}

func (d *DriverStation) Mode() domain.Mode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mode
}

func (d *DriverStation) SetMode(m domain.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = m
}

func (d *DriverStation) Alliance() ports.Alliance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.alliance
}

func (d *DriverStation) SetAlliance(a ports.Alliance) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alliance = a
}

// Clock is a manual ports.Clock. The control loop advances it by one period
// per tick, which makes timed commands deterministic in simulation.
type Clock struct {
	mu  sync.RWMutex
	now time.Duration
}

// NewClock creates a clock at zero.
func NewClock() *Clock { return &Clock{} }

func (c *Clock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Step advances the clock, so it can be driven like simulated hardware.
func (c *Clock) Step(dt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += dt
}

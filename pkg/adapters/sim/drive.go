package sim

import (
	"math"
	"sync"
	"time"
)

// DefaultTopSpeed is the simulated drive top speed in meters per second.
const DefaultTopSpeed = 3.0

// DriveTrain is a simulated differential drive.
type DriveTrain struct {
	mu       sync.Mutex
	topSpeed float64
	speed    float64
	rotation float64
	distance float64
	heading  float64
}

// NewDriveTrain creates a drive with the given top speed in m/s.
// A non-positive topSpeed selects DefaultTopSpeed.
func NewDriveTrain(topSpeed float64) *DriveTrain {
	if topSpeed <= 0 {
		topSpeed = DefaultTopSpeed
	}
	return &DriveTrain{topSpeed: topSpeed}
}

func (d *DriveTrain) ArcadeDrive(speed, rotation float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.speed = clamp(speed)
	d.rotation = clamp(rotation)
}

func (d *DriveTrain) Stop() { d.ArcadeDrive(0, 0) }

func (d *DriveTrain) Distance() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.distance
}

func (d *DriveTrain) ResetEncoders() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.distance = 0
}

// Output returns the last commanded speed and rotation.
func (d *DriveTrain) Output() (speed, rotation float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speed, d.rotation
}

// Heading is the accumulated rotation in radians.
func (d *DriveTrain) Heading() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.heading
}

func (d *DriveTrain) Step(dt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := dt.Seconds()
	d.distance += d.speed * d.topSpeed * s
	d.heading = math.Mod(d.heading+d.rotation*math.Pi*s, 2*math.Pi)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-1, min(1, v))
}

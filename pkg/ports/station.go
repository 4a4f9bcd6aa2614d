package ports

import (
	"context"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Alliance is the side the robot plays for.
type Alliance string

const (
	AllianceRed     Alliance = "red"
	AllianceBlue    Alliance = "blue"
	AllianceUnknown Alliance = "unknown"
)

// DriverStation reports the mode the field (or the operator) has selected.
type DriverStation interface {
	Mode() domain.Mode
	Alliance() Alliance
}

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary, fixed origin.
type Clock interface {
	Now() time.Duration
}

// Stepper is implemented by simulated devices that integrate their state
// once per control period.
type Stepper interface {
	Step(dt time.Duration)
}

// TelemetrySink receives a snapshot of the scheduler after every tick.
type TelemetrySink interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}

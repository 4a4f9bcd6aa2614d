package cmdbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cmdbot/internal/runtime"
	"github.com/aretw0/cmdbot/pkg/adapters/memory"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
)

// DefaultPeriod is the control loop period.
const DefaultPeriod = 20 * time.Millisecond

// Container declares a robot: it installs subsystems, default commands and
// bindings on a scheduler and builds the autonomous command.
type Container interface {
	Install(ctx context.Context, s *runtime.Scheduler) error
	Autonomous() (domain.Command, error)
}

// Robot runs a Container on a fixed-period loop and follows the mode
// reported by the driver station.
type Robot struct {
	container Container
	scheduler *runtime.Scheduler
	station   ports.DriverStation
	period    time.Duration
	steppers  []ports.Stepper
	sinks     []ports.TelemetrySink
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mode domain.Mode
	auto domain.Command
}

// Option defines a functional option for configuring the Robot.
type Option func(*Robot)

// WithLogger sets a structured logger for the robot and its scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Robot) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on the scheduler.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Robot) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithPeriod sets the loop period (default: DefaultPeriod).
func WithPeriod(d time.Duration) Option {
	return func(r *Robot) {
		r.period = d
	}
}

// WithDriverStation sets the mode source. The default is an in-memory
// station that stays disabled until told otherwise.
func WithDriverStation(ds ports.DriverStation) Option {
	return func(r *Robot) {
		r.station = ds
	}
}

// WithSimulation steps simulated devices by one period after every tick.
func WithSimulation(steppers ...ports.Stepper) Option {
	return func(r *Robot) {
		r.steppers = append(r.steppers, steppers...)
	}
}

// WithTelemetry publishes the scheduler snapshot to sinks after every tick.
func WithTelemetry(sinks ...ports.TelemetrySink) Option {
	return func(r *Robot) {
		r.sinks = append(r.sinks, sinks...)
	}
}

// New creates the scheduler and installs c on it.
func New(ctx context.Context, c Container, opts ...Option) (*Robot, error) {
	if c == nil {
		return nil, errors.New("cmdbot: nil container")
	}
	r := &Robot{container: c, period: DefaultPeriod}
	for _, opt := range opts {
		opt(r)
	}
	if r.period <= 0 {
		return nil, fmt.Errorf("cmdbot: period %v: %w", r.period, domain.ErrInvalidConstant)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if r.station == nil {
		r.station = memory.NewDriverStation()
	}

	r.mode = domain.ModeDisabled
	r.scheduler = runtime.NewScheduler(
		runtime.WithLogger(r.logger),
		runtime.WithLifecycleHooks(r.hooks),
		runtime.WithMode(r.mode),
	)
	if err := c.Install(ctx, r.scheduler); err != nil {
		return nil, fmt.Errorf("failed to install robot: %w", err)
	}
	return r, nil
}

// Step runs one loop iteration: apply a mode change, run the scheduler,
// advance simulated devices and publish telemetry.
func (r *Robot) Step(ctx context.Context) error {
	if mode := r.station.Mode(); mode != r.mode {
		if err := r.enter(mode); err != nil {
			return err
		}
	}

	r.scheduler.Run(ctx)

	for _, s := range r.steppers {
		s.Step(r.period)
	}
	if len(r.sinks) > 0 {
		snap := r.scheduler.Snapshot()
		for _, sink := range r.sinks {
			if err := sink.Publish(ctx, snap); err != nil {
				r.logger.Warn("Telemetry publish failed", "err", err)
			}
		}
	}
	return nil
}

// enter switches mode. Entering autonomous schedules a freshly built
// autonomous command; leaving autonomous cancels it.
func (r *Robot) enter(mode domain.Mode) error {
	from := r.mode
	r.mode = mode
	r.scheduler.SetMode(mode)
	r.logger.Info("Robot mode changed", "from", from, "to", mode)

	if from == domain.ModeAutonomous && r.auto != nil {
		r.scheduler.Cancel(r.auto)
		r.auto = nil
	}
	if mode == domain.ModeAutonomous {
		auto, err := r.container.Autonomous()
		if err != nil {
			return fmt.Errorf("failed to build autonomous: %w", err)
		}
		r.auto = auto
		r.scheduler.Schedule(auto)
	}
	return nil
}

// Run steps the robot every period until ctx is done.
func (r *Robot) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for {
		if err := r.Step(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			r.scheduler.CancelAll()
			return nil
		case <-ticker.C:
		}
	}
}

// Scheduler returns the command scheduler.
func (r *Robot) Scheduler() *runtime.Scheduler { return r.scheduler }

// Mode returns the mode applied on the last Step.
func (r *Robot) Mode() domain.Mode { return r.mode }

// Autonomous returns the autonomous command while it was scheduled by the
// current autonomous period, or nil.
func (r *Robot) Autonomous() domain.Command { return r.auto }

// Period returns the loop period.
func (r *Robot) Period() time.Duration { return r.period }

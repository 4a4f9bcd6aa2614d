package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/cmdbot"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/observability"
)

// ErrAutonomousTimeout is returned when the routine outlasts the configured
// autonomous period.
var ErrAutonomousTimeout = errors.New("autonomous routine did not finish in time")

// AutoOptions configures the auto command.
type AutoOptions struct {
	ConfigPath string
	Debug      bool
}

// TraceEntry is one command lifecycle event of an autonomous run.
type TraceEntry struct {
	At      time.Duration
	Event   domain.EventType
	Command string
}

func (e TraceEntry) String() string {
	return fmt.Sprintf("%8.3fs  %-18s %s", e.At.Seconds(), e.Event, e.Command)
}

// AutoResult summarizes an autonomous run in simulated time.
type AutoResult struct {
	Trace    []TraceEntry
	Elapsed  time.Duration
	Distance float64
	Arm      float64
	Open     bool
}

// RunAutonomous simulates the autonomous period as fast as possible and
// writes the command trace to w. Time advances one period per tick, so the
// result is deterministic.
func RunAutonomous(ctx context.Context, opts AutoOptions, w io.Writer) (AutoResult, error) {
	cfg, logger, closer, err := loadConfig(opts.ConfigPath, opts.Debug)
	if err != nil {
		return AutoResult{}, err
	}
	defer closer.Close()

	rig, err := NewRig(cfg, logger, nil)
	if err != nil {
		return AutoResult{}, err
	}

	var res AutoResult
	record := func(ctx context.Context, e *domain.CommandEvent) {
		res.Trace = append(res.Trace, TraceEntry{At: rig.Clock.Now(), Event: e.Type, Command: e.Command})
	}
	hooks := domain.LifecycleHooks{
		OnCommandInitialize: record,
		OnCommandFinish:     record,
		OnCommandInterrupt:  record,
	}.Merge(observability.LogHooks(logger))

	bot, err := cmdbot.New(ctx, rig.Container,
		cmdbot.WithLogger(logger),
		cmdbot.WithLifecycleHooks(hooks),
		cmdbot.WithPeriod(cfg.Period),
		cmdbot.WithDriverStation(rig.Station),
		cmdbot.WithSimulation(rig.Steppers()...),
	)
	if err != nil {
		return AutoResult{}, err
	}

	rig.Station.SetMode(domain.ModeAutonomous)
	if err := bot.Step(ctx); err != nil {
		return AutoResult{}, err
	}
	auto := bot.Autonomous()
	for auto != nil && bot.Scheduler().IsScheduled(auto) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if rig.Clock.Now() >= cfg.Autonomous.Timeout {
			err = fmt.Errorf("%w after %v", ErrAutonomousTimeout, cfg.Autonomous.Timeout)
			break
		}
		if err := bot.Step(ctx); err != nil {
			return res, err
		}
	}

	res.Elapsed = rig.Clock.Now()
	res.Distance = rig.Drive.Distance()
	res.Arm = rig.Arm.Position()
	res.Open = rig.Gripper.IsOpen()

	if w != nil {
		for _, e := range res.Trace {
			fmt.Fprintln(w, e)
		}
		printSystemMessage(w, "Autonomous finished in %.3fs: drove %.2f m, arm at %.1f, grabber open=%t",
			res.Elapsed.Seconds(), res.Distance, res.Arm, res.Open)
	}
	return res, err
}

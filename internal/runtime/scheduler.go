package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/trigger"
)

// Poller is sampled once per tick, before any command executes.
// trigger.Table implements it.
type Poller interface {
	Poll(s trigger.Scheduler)
}

// Scheduler runs commands against subsystems.
//
// Every method except Snapshot must be called from the goroutine that calls
// Run. Snapshot may be read from anywhere.
type Scheduler struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	mode   domain.Mode
	tick   uint64

	subsystems []domain.Subsystem
	defaults   map[domain.Subsystem]domain.Command
	owners     map[domain.Subsystem]domain.Command
	scheduled  []domain.Command
	pollers    []Poller

	// Schedule and Cancel calls made while commands run are applied after
	// the command loop.
	inRunLoop  bool
	toSchedule []domain.Command
	toCancel   []domain.Command
	ctx        context.Context

	snapMu   sync.RWMutex
	snapshot domain.Snapshot
}

var _ trigger.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler in disabled mode.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		mode:     domain.ModeDisabled,
		defaults: make(map[domain.Subsystem]domain.Command),
		owners:   make(map[domain.Subsystem]domain.Command),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.snapshot = domain.Snapshot{Mode: s.mode, Running: []string{}, Owners: map[string]string{}}
	return s
}

// RegisterSubsystem adds subsystems whose Periodic runs every tick.
// Registering a subsystem twice has no effect.
func (s *Scheduler) RegisterSubsystem(subs ...domain.Subsystem) {
	for _, sub := range subs {
		if sub == nil || slices.Contains(s.subsystems, sub) {
			continue
		}
		s.subsystems = append(s.subsystems, sub)
	}
}

// Subsystems returns the registered subsystems in registration order.
func (s *Scheduler) Subsystems() []domain.Subsystem { return slices.Clone(s.subsystems) }

// SetDefaultCommand sets the command scheduled whenever sub is free.
// The command must require sub and must not belong to a composition.
func (s *Scheduler) SetDefaultCommand(sub domain.Subsystem, cmd domain.Command) error {
	if cmd == nil {
		return fmt.Errorf("default for %s: %w", sub.Name(), domain.ErrNilCommand)
	}
	if !domain.Requires(cmd, sub) {
		return fmt.Errorf("default %s for %s: %w", cmd.Name(), sub.Name(), domain.ErrDefaultRequirement)
	}
	if command.IsComposed(cmd) {
		return fmt.Errorf("default %s for %s: %w", cmd.Name(), sub.Name(), domain.ErrCommandReused)
	}
	if cmd.InterruptionBehavior() == domain.CancelIncoming {
		s.logger.Warn("default command cancels incoming commands", "command", cmd.Name(), "subsystem", sub.Name())
	}
	s.RegisterSubsystem(sub)
	s.defaults[sub] = cmd
	return nil
}

// DefaultCommand returns the default command of sub, or nil.
func (s *Scheduler) DefaultCommand(sub domain.Subsystem) domain.Command { return s.defaults[sub] }

// AddPoller registers a poller, typically a trigger binding table.
func (s *Scheduler) AddPoller(p Poller) {
	if p != nil {
		s.pollers = append(s.pollers, p)
	}
}

// SetMode changes the robot mode. Commands that do not run when disabled are
// cancelled on the next tick after entering disabled.
func (s *Scheduler) SetMode(m domain.Mode) {
	if m != s.mode {
		s.logger.Info("mode changed", "from", s.mode, "to", m)
	}
	s.mode = m
}

func (s *Scheduler) Mode() domain.Mode { return s.mode }
func (s *Scheduler) Tick() uint64      { return s.tick }

// Schedule starts commands. A command is ignored if it is already running,
// belongs to a composition, cannot run in the current mode, or needs a
// subsystem held by a command that cancels incoming commands. Otherwise the
// commands holding its subsystems are interrupted.
func (s *Scheduler) Schedule(cmds ...domain.Command) {
	for _, cmd := range cmds {
		s.schedule(cmd)
	}
}

func (s *Scheduler) schedule(cmd domain.Command) {
	if cmd == nil {
		s.logger.Warn("ignoring nil command")
		return
	}
	if s.inRunLoop {
		s.toSchedule = append(s.toSchedule, cmd)
		return
	}
	if command.IsComposed(cmd) {
		s.logger.Warn("command belongs to a composition and cannot be scheduled on its own", "command", cmd.Name())
		return
	}
	if !s.mode.Enabled() && !cmd.RunsWhenDisabled() {
		return
	}
	if s.IsScheduled(cmd) {
		return
	}

	reqs := cmd.Requirements()
	var holders []domain.Command
	for _, r := range reqs {
		h, ok := s.owners[r]
		if !ok || slices.Contains(holders, h) {
			continue
		}
		if h.InterruptionBehavior() == domain.CancelIncoming {
			s.logger.Debug("schedule refused", "command", cmd.Name(), "held_by", h.Name(), "subsystem", r.Name())
			return
		}
		holders = append(holders, h)
	}
	for _, h := range holders {
		s.Cancel(h)
	}

	s.scheduled = append(s.scheduled, cmd)
	for _, r := range reqs {
		s.owners[r] = cmd
	}
	cmd.Initialize()
	s.emit(s.hooks.OnCommandInitialize, domain.EventCommandInitialize, cmd)
}

// Cancel interrupts running commands. Commands that are not running are
// ignored.
func (s *Scheduler) Cancel(cmds ...domain.Command) {
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if s.inRunLoop {
			s.toCancel = append(s.toCancel, cmd)
			continue
		}
		if !s.IsScheduled(cmd) {
			continue
		}
		cmd.End(true)
		s.remove(cmd)
		s.emit(s.hooks.OnCommandInterrupt, domain.EventCommandInterrupt, cmd)
	}
}

// CancelAll interrupts every running command.
func (s *Scheduler) CancelAll() {
	s.Cancel(slices.Clone(s.scheduled)...)
}

// IsScheduled reports whether cmd is running.
func (s *Scheduler) IsScheduled(cmd domain.Command) bool {
	return slices.Contains(s.scheduled, cmd)
}

// Requiring returns the command holding sub, or nil.
func (s *Scheduler) Requiring(sub domain.Subsystem) domain.Command { return s.owners[sub] }

// Running returns the names of running commands in the order they were
// scheduled.
func (s *Scheduler) Running() []string {
	names := make([]string, 0, len(s.scheduled))
	for _, cmd := range s.scheduled {
		names = append(names, cmd.Name())
	}
	return names
}

// Run performs one tick: subsystem periodics, trigger polling, one step of
// every running command, deferred schedule and cancel calls, and finally the
// default commands of free subsystems.
func (s *Scheduler) Run(ctx context.Context) {
	start := time.Now()
	s.ctx = ctx
	s.tick++

	for _, sub := range s.subsystems {
		sub.Periodic()
	}
	for _, p := range s.pollers {
		p.Poll(s)
	}

	s.inRunLoop = true
	for _, cmd := range slices.Clone(s.scheduled) {
		if !s.IsScheduled(cmd) {
			continue
		}
		if !s.mode.Enabled() && !cmd.RunsWhenDisabled() {
			cmd.End(true)
			s.remove(cmd)
			s.emit(s.hooks.OnCommandInterrupt, domain.EventCommandInterrupt, cmd)
			continue
		}
		cmd.Execute()
		s.emit(s.hooks.OnCommandExecute, domain.EventCommandExecute, cmd)
		if cmd.IsFinished() {
			cmd.End(false)
			s.remove(cmd)
			s.emit(s.hooks.OnCommandFinish, domain.EventCommandFinish, cmd)
		}
	}
	s.inRunLoop = false

	pendingSchedule, pendingCancel := s.toSchedule, s.toCancel
	s.toSchedule, s.toCancel = nil, nil
	s.Schedule(pendingSchedule...)
	s.Cancel(pendingCancel...)

	for _, sub := range s.subsystems {
		def, ok := s.defaults[sub]
		if !ok {
			continue
		}
		if _, held := s.owners[sub]; !held {
			s.Schedule(def)
		}
	}

	snap := s.buildSnapshot()
	s.snapMu.Lock()
	s.snapshot = snap
	s.snapMu.Unlock()

	if s.hooks.OnTick != nil {
		s.hooks.OnTick(ctx, &domain.TickEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTick, Tick: s.tick},
			Mode:      s.mode,
			Running:   len(s.scheduled),
			Duration:  time.Since(start),
		})
	}
	s.ctx = context.Background()
}

// Snapshot returns the state published by the last Run.
func (s *Scheduler) Snapshot() domain.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	snap := s.snapshot
	snap.Running = slices.Clone(snap.Running)
	owners := make(map[string]string, len(snap.Owners))
	for k, v := range snap.Owners {
		owners[k] = v
	}
	snap.Owners = owners
	return snap
}

func (s *Scheduler) buildSnapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Tick:    s.tick,
		Mode:    s.mode,
		Running: s.Running(),
		Owners:  make(map[string]string, len(s.owners)),
	}
	for sub, cmd := range s.owners {
		snap.Owners[sub.Name()] = cmd.Name()
	}
	return snap
}

func (s *Scheduler) remove(cmd domain.Command) {
	s.scheduled = slices.DeleteFunc(s.scheduled, func(c domain.Command) bool { return c == cmd })
	for _, r := range cmd.Requirements() {
		if s.owners[r] == cmd {
			delete(s.owners, r)
		}
	}
}

func (s *Scheduler) emit(hook func(context.Context, *domain.CommandEvent), typ domain.EventType, cmd domain.Command) {
	if hook == nil {
		return
	}
	hook(s.ctx, &domain.CommandEvent{
		EventBase:    domain.EventBase{Timestamp: time.Now(), Type: typ, Tick: s.tick},
		Command:      cmd.Name(),
		Requirements: domain.SubsystemNames(cmd.Requirements()),
	})
}

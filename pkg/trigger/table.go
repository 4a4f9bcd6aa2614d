package trigger

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Factory creates the command a binding starts. A fresh command is created
// for every start, so bindings never share a running instance.
type Factory interface {
	NewCommand() domain.Command
}

// FactoryFunc adapts a function to a Factory.
type FactoryFunc func() domain.Command

func (f FactoryFunc) NewCommand() domain.Command { return f() }

// Scheduler is the part of the command scheduler a Table drives.
type Scheduler interface {
	Schedule(cmds ...domain.Command)
	Cancel(cmds ...domain.Command)
	IsScheduled(cmd domain.Command) bool
}

// Binding pairs a Trigger, a Mode and a Factory. Only its edge memory and
// the command it last started change after registration.
type Binding struct {
	id      int
	trigger *Trigger
	mode    Mode
	factory Factory
	info    BindingInfo

	last   bool
	active domain.Command
}

func (b *Binding) ID() int           { return b.id }
func (b *Binding) Trigger() *Trigger { return b.trigger }
func (b *Binding) Mode() Mode        { return b.mode }
func (b *Binding) Factory() Factory  { return b.factory }

// BindingInfo is a printable description of a binding.
type BindingInfo struct {
	ID           int      `json:"id"`
	Trigger      string   `json:"trigger"`
	Mode         string   `json:"mode"`
	Action       string   `json:"action"`
	Requirements []string `json:"requirements,omitempty"`
}

// Hazard reports two bindings whose commands need the same subsystem.
// If both triggers are true in the same tick, Second wins.
type Hazard struct {
	First      BindingInfo `json:"first"`
	Second     BindingInfo `json:"second"`
	Subsystems []string    `json:"subsystems"`
}

func (h Hazard) String() string {
	return fmt.Sprintf("binding %d (%s %s) and binding %d (%s %s) both require %v; binding %d wins",
		h.First.ID, h.First.Trigger, h.First.Action,
		h.Second.ID, h.Second.Trigger, h.Second.Action,
		h.Subsystems, h.Second.ID)
}

// Table is the list of bindings polled every tick.
type Table struct {
	bindings []*Binding
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Table.
type Option func(*Table)

// WithLogger sets a structured logger for the table.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable creates an empty binding table.
func NewTable(opts ...Option) *Table {
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return t
}

// Register appends a binding. The previous sample of a new binding is false,
// so a trigger already true on the first poll counts as a rising edge.
// The factory is called once here to record the action name and its
// requirements; Bindings and Hazards reuse that description.
func (t *Table) Register(trig *Trigger, mode Mode, f Factory) (*Binding, error) {
	if trig == nil {
		return nil, fmt.Errorf("register: nil trigger")
	}
	if f == nil {
		return nil, fmt.Errorf("register %s: nil factory", trig.Name())
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("register %s: %v is not a binding mode", trig.Name(), mode)
	}
	b := &Binding{
		id:      len(t.bindings) + 1,
		trigger: trig,
		mode:    mode,
		factory: f,
	}
	b.info = describe(b)
	t.bindings = append(t.bindings, b)
	t.logger.Debug("Binding registered", "binding", b.id, "trigger", trig.Name(), "mode", mode.String())
	return b, nil
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.bindings) }

// Poll samples every trigger once and applies each binding's edge rule.
func (t *Table) Poll(s Scheduler) {
	samples := make(map[*Trigger]bool, len(t.bindings))
	for _, b := range t.bindings {
		current, ok := samples[b.trigger]
		if !ok {
			current = b.trigger.Sample()
			samples[b.trigger] = current
		}

		rising := !b.last && current
		falling := b.last && !current
		b.last = current

		switch b.mode {
		case OnTrue:
			if rising {
				t.start(s, b)
			}
		case OnFalse:
			if falling {
				t.start(s, b)
			}
		case WhileTrue:
			if rising {
				t.start(s, b)
			} else if falling {
				t.stop(s, b)
			}
		case WhileFalse:
			if falling {
				t.start(s, b)
			} else if rising {
				t.stop(s, b)
			}
		case ToggleOnTrue:
			if !rising {
				break
			}
			if b.active != nil && s.IsScheduled(b.active) {
				t.stop(s, b)
			} else {
				t.start(s, b)
			}
		}
	}
}

func (t *Table) start(s Scheduler, b *Binding) {
	cmd := b.factory.NewCommand()
	if cmd == nil {
		t.logger.Warn("Binding produced no command", "binding", b.id, "trigger", b.trigger.Name())
		return
	}
	b.active = cmd
	t.logger.Debug("Binding fired", "binding", b.id, "trigger", b.trigger.Name(), "command", cmd.Name())
	s.Schedule(cmd)
}

func (t *Table) stop(s Scheduler, b *Binding) {
	if b.active == nil {
		return
	}
	t.logger.Debug("Binding released", "binding", b.id, "trigger", b.trigger.Name(), "command", b.active.Name())
	s.Cancel(b.active)
	b.active = nil
}

// Bindings describes every binding in registration order.
func (t *Table) Bindings() []BindingInfo {
	infos := make([]BindingInfo, 0, len(t.bindings))
	for _, b := range t.bindings {
		info := b.info
		info.Requirements = slices.Clone(info.Requirements)
		infos = append(infos, info)
	}
	return infos
}

// Hazards lists every pair of bindings whose commands share a subsystem.
func (t *Table) Hazards() []Hazard {
	infos := t.Bindings()
	var hazards []Hazard
	for i := range infos {
		for j := i + 1; j < len(infos); j++ {
			shared := intersect(infos[i].Requirements, infos[j].Requirements)
			if len(shared) == 0 {
				continue
			}
			hazards = append(hazards, Hazard{First: infos[i], Second: infos[j], Subsystems: shared})
		}
	}
	return hazards
}

// LogHazards writes one warning per hazard.
func (t *Table) LogHazards() {
	for _, h := range t.Hazards() {
		t.logger.Warn("Binding conflict", "first", h.First.ID, "second", h.Second.ID,
			"subsystems", h.Subsystems, "winner", h.Second.ID)
	}
}

func describe(b *Binding) BindingInfo {
	info := BindingInfo{
		ID:      b.id,
		Trigger: b.trigger.Name(),
		Mode:    b.mode.String(),
	}
	if cmd := b.factory.NewCommand(); cmd != nil {
		info.Action = cmd.Name()
		info.Requirements = domain.SubsystemNames(cmd.Requirements())
	}
	if s, ok := b.factory.(fmt.Stringer); ok {
		info.Action = s.String()
	}
	return info
}

func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if slices.Contains(b, x) && !slices.Contains(out, x) {
			out = append(out, x)
		}
	}
	return out
}

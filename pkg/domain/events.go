package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommandInitialize EventType = "command_initialize"
	EventCommandExecute    EventType = "command_execute"
	EventCommandFinish     EventType = "command_finish"
	EventCommandInterrupt  EventType = "command_interrupt"
	EventTick              EventType = "tick"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Tick      uint64    `json:"tick"`
}

// CommandEvent describes a lifecycle change of a scheduled command.
type CommandEvent struct {
	EventBase
	Command      string   `json:"command"`
	Requirements []string `json:"requirements,omitempty"`
}

// TickEvent is emitted once per scheduler run.
type TickEvent struct {
	EventBase
	Mode     Mode          `json:"mode"`
	Running  int           `json:"running"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for scheduler observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnCommandInitialize func(context.Context, *CommandEvent)
	OnCommandExecute    func(context.Context, *CommandEvent)
	OnCommandFinish     func(context.Context, *CommandEvent)
	OnCommandInterrupt  func(context.Context, *CommandEvent)
	OnTick              func(context.Context, *TickEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommandInitialize: chainCommand(h.OnCommandInitialize, other.OnCommandInitialize),
		OnCommandExecute:    chainCommand(h.OnCommandExecute, other.OnCommandExecute),
		OnCommandFinish:     chainCommand(h.OnCommandFinish, other.OnCommandFinish),
		OnCommandInterrupt:  chainCommand(h.OnCommandInterrupt, other.OnCommandInterrupt),
		OnTick:              chainTick(h.OnTick, other.OnTick),
	}
}

func chainCommand(a, b func(context.Context, *CommandEvent)) func(context.Context, *CommandEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CommandEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainTick(a, b func(context.Context, *TickEvent)) func(context.Context, *TickEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TickEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
